package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmatts/sublex"
	"github.com/dmatts/sublex/parser"
	"github.com/dmatts/sublex/token"
)

func exprLexer(t *testing.T) *sublex.Lexer {
	t.Helper()
	l := sublex.New()
	for _, p := range []struct{ name, pattern string }{
		{"number", "[0-9]+"},
		{"plus", `\+`},
		{"times", `\*`},
	} {
		_, err := l.AddPattern(p.name, p.pattern)
		require.NoError(t, err)
	}
	require.NoError(t, l.Build())
	return l
}

func TestParser_RuleIDsAboveTokens(t *testing.T) {
	l := exprLexer(t)
	p := parser.New(l)

	factor, err := p.AddRule("factor", "number")
	require.NoError(t, err)
	assert.Equal(t, l.MaxTokenID()+1, factor)

	term, err := p.AddRule("term", "factor", "times", "factor")
	require.NoError(t, err)
	assert.Equal(t, factor+1, term)

	r, ok := p.Rule(term)
	require.True(t, ok)
	assert.Equal(t, "term", r.Name)
	timesID, _ := l.ID("times")
	assert.Equal(t, []token.ID{factor, timesID, factor}, r.Pattern)
	assert.Equal(t, 2, p.NumRules())
}

func TestParser_PartForms(t *testing.T) {
	l := exprLexer(t)
	p := parser.New(l)
	plus, _ := l.ID("plus")

	// names, token.IDs and plain ints all resolve
	sum, err := p.AddRule("sum", "number", plus, int(plus)+1)
	require.NoError(t, err)
	r, ok := p.Rule(sum)
	require.True(t, ok)
	assert.Len(t, r.Pattern, 3)
}

func TestParser_SelfReference(t *testing.T) {
	l := exprLexer(t)
	p := parser.New(l)

	list, err := p.AddRule("list", "number", "plus", "list")
	require.NoError(t, err)
	r, _ := p.Rule(list)
	assert.Equal(t, list, r.Pattern[2])
}

func TestParser_Errors(t *testing.T) {
	l := exprLexer(t)
	p := parser.New(l)

	_, err := p.AddRule("bad", "nosuch")
	assert.ErrorIs(t, err, parser.ErrUnknownSymbol)
	// a failed rule burns no ID and leaves no name behind
	_, ok := p.ID("bad")
	assert.False(t, ok)
	next, err := p.AddRule("ok", "number")
	require.NoError(t, err)
	assert.Equal(t, l.MaxTokenID()+1, next)

	_, err = p.AddRule("ok", "number")
	assert.ErrorIs(t, err, parser.ErrDuplicateRule)
	_, err = p.AddRule("number")
	assert.ErrorIs(t, err, parser.ErrDuplicateRule)
	_, err = p.AddRule("typed", 3.14)
	assert.ErrorIs(t, err, parser.ErrBadPart)
}

func TestParser_Name(t *testing.T) {
	l := exprLexer(t)
	p := parser.New(l)
	id, err := p.AddRule("expr", "number")
	require.NoError(t, err)

	assert.Equal(t, "number", p.Name(0))
	assert.Equal(t, "expr", p.Name(id))
	assert.Equal(t, (id + 1).String(), p.Name(id+1))
}
