// Package parser layers a grammar-rule registry on top of a built lexer.
//
// Rules share the lexer's identifier space: rule IDs are allocated from
// MaxTokenID()+1 upward, so a grammar symbol is unambiguously either a token
// (low IDs) or a rule (high IDs). The package only does the bookkeeping;
// table construction and parsing proper are left to consumers.
package parser

import (
	"errors"
	"fmt"

	"github.com/dmatts/sublex"
	"github.com/dmatts/sublex/token"
)

var (
	ErrUnknownSymbol = errors.New("unknown grammar symbol")
	ErrDuplicateRule = errors.New("duplicate rule name")
	ErrBadPart       = errors.New("rule part must be a name or an ID")
)

// A Rule is a named production. Pattern holds the IDs of its right-hand-side
// symbols, tokens and rules mixed.
type Rule struct {
	Name    string
	ID      token.ID
	Pattern []token.ID
}

// A Parser accumulates grammar rules over the token space of a lexer.
type Parser struct {
	l      *sublex.Lexer
	rules  []Rule
	byName map[string]token.ID
	nextID token.ID
}

// New returns an empty rule registry for l. The lexer should be fully
// populated first: the registry snapshots MaxTokenID and hands out rule IDs
// above it.
func New(l *sublex.Lexer) *Parser {
	return &Parser{
		l:      l,
		byName: make(map[string]token.ID),
		nextID: l.MaxTokenID() + 1,
	}
}

// Lexer returns the lexer this registry was built over.
func (p *Parser) Lexer() *sublex.Lexer {
	return p.l
}

// GetID resolves a rule part to an ID. Accepted forms are a token.ID, a
// plain int, or a string naming either a lexer pattern or a previously
// added rule.
func (p *Parser) GetID(part interface{}) (token.ID, error) {
	switch v := part.(type) {
	case token.ID:
		return v, nil
	case int:
		return token.ID(v), nil
	case string:
		if id, ok := p.l.ID(v); ok {
			return id, nil
		}
		if id, ok := p.byName[v]; ok {
			return id, nil
		}
		return token.Error, fmt.Errorf("%w: %s", ErrUnknownSymbol, v)
	default:
		return token.Error, fmt.Errorf("%w: %T", ErrBadPart, part)
	}
}

// AddRule registers the production name -> parts and returns its new rule
// ID. Parts may reference tokens, earlier rules, or the rule being defined
// (direct recursion), by name or by ID.
func (p *Parser) AddRule(name string, parts ...interface{}) (token.ID, error) {
	if _, ok := p.byName[name]; ok {
		return token.Error, fmt.Errorf("%w: %s", ErrDuplicateRule, name)
	}
	if _, ok := p.l.ID(name); ok {
		return token.Error, fmt.Errorf("%w: %s", ErrDuplicateRule, name)
	}

	r := Rule{Name: name, ID: p.nextID}
	p.nextID++
	// registered up front so the rule can refer to itself
	p.byName[name] = r.ID

	for _, part := range parts {
		id, err := p.GetID(part)
		if err != nil {
			delete(p.byName, name)
			p.nextID--
			return token.Error, fmt.Errorf("rule %s: %w", name, err)
		}
		r.Pattern = append(r.Pattern, id)
	}
	p.rules = append(p.rules, r)
	return r.ID, nil
}

// Rule returns the rule registered under id.
func (p *Parser) Rule(id token.ID) (Rule, bool) {
	i := int(id - p.l.MaxTokenID() - 1)
	if i < 0 || i >= len(p.rules) {
		return Rule{}, false
	}
	return p.rules[i], true
}

// ID returns the rule ID registered under name.
func (p *Parser) ID(name string) (token.ID, bool) {
	id, ok := p.byName[name]
	return id, ok
}

// Name renders an ID using the lexer's pattern names for token IDs and the
// registry's rule names above them.
func (p *Parser) Name(id token.ID) string {
	if id <= p.l.MaxTokenID() {
		return p.l.Name(id)
	}
	if r, ok := p.Rule(id); ok {
		return r.Name
	}
	return id.String()
}

// NumRules returns the number of registered rules.
func (p *Parser) NumRules() int {
	return len(p.rules)
}
