// Command lexdump compiles a lexer from a pattern definition file and either
// tokenizes an input file or dumps the compiled DFA transition table for
// later reuse.
//
// The definition file holds one pattern per line, in priority order:
//
//	# keyword before identifier
//	kwif  = if
//	ident = [a-z][a-z0-9_]*
//	space = [ \t\n]+
//
// Blank lines and lines starting with '#' are skipped.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/dmatts/sublex"
	"github.com/dmatts/sublex/scanner"
	"github.com/dmatts/sublex/token"
)

type cli struct {
	Patterns    string `arg:"" help:"Pattern definition file, one 'name = pattern' per line in priority order" type:"existingfile"`
	Input       string `help:"Input file to tokenize" short:"i" type:"existingfile"`
	Table       string `help:"Write the compiled DFA transition table (XDR) to this file" short:"t" type:"path"`
	Recover     bool   `help:"Fold unmatched input into error tokens instead of stopping at the first one"`
	KeepInvalid bool   `help:"Make the DFA total over the alphabet, with an explicit sink state"`
	Alphabet    int    `help:"Symbol alphabet size" default:"256"`
	MaxStates   int    `help:"Cap on DFA states" default:"0"`
}

func main() {
	var params cli
	kong.Parse(&params)
	log.SetFlags(0)

	opts := []sublex.Option{sublex.AlphabetSize(params.Alphabet)}
	if params.KeepInvalid {
		opts = append(opts, sublex.KeepInvalid())
	}
	if params.MaxStates > 0 {
		opts = append(opts, sublex.MaxStates(params.MaxStates))
	}
	l := sublex.New(opts...)
	if err := loadPatterns(l, params.Patterns); err != nil {
		log.Fatalln(err)
	}
	if err := l.Build(); err != nil {
		log.Fatalln("build:", err)
	}

	d := l.DFA()
	log.Printf("%s: %d states over %d symbols", params.Patterns, d.Size(), d.NumSymbols())

	if params.Table != "" {
		data, err := d.Table().MarshalXDR()
		if err != nil {
			log.Fatalln("table:", err)
		}
		if err := os.WriteFile(params.Table, data, 0o644); err != nil {
			log.Fatalln(err)
		}
		log.Printf("%s: %d bytes", params.Table, len(data))
	}

	if params.Input != "" {
		if err := tokenize(l, params.Input, params.Recover); err != nil {
			log.Fatalln(err)
		}
	}
}

// loadPatterns registers the definitions from path into l, top line first.
func loadPatterns(l *sublex.Lexer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, pat, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("%s:%d: missing '=' in pattern definition", path, n)
		}
		if _, err := l.AddPattern(strings.TrimSpace(name), strings.TrimSpace(pat)); err != nil {
			return fmt.Errorf("%s:%d: %w", path, n, err)
		}
	}
	return sc.Err()
}

func tokenize(l *sublex.Lexer, path string, recover bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var sopts []scanner.Option
	if recover {
		sopts = append(sopts, scanner.Recover())
	}
	s, err := l.Tokenize(path, src, sopts...)
	if err != nil {
		return err
	}
	for {
		t, err := s.Scan()
		if err != nil {
			return err
		}
		if t.ID == token.EOF {
			return nil
		}
		fmt.Printf("%s: %s\n", s.File().Position(t.Start), l.TokenString(t))
	}
}
