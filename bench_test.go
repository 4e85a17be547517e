package sublex

import (
	"bytes"
	"testing"

	"github.com/dmatts/sublex/scanner"
	"github.com/dmatts/sublex/token"
)

func benchLexer(b *testing.B) *Lexer {
	l := New()
	for _, p := range []struct{ name, pattern string }{
		{"ident", "[a-zA-Z_][a-zA-Z0-9_]*"},
		{"number", "[0-9]+"},
		{"space", "[ \t\n]+"},
		{"punct", "[=+*(){};,-]"},
	} {
		if _, err := l.AddPattern(p.name, p.pattern); err != nil {
			b.Fatal(err)
		}
	}
	if err := l.Build(); err != nil {
		b.Fatal(err)
	}
	return l
}

func BenchmarkTokenize(b *testing.B) {
	l := benchLexer(b)
	src := bytes.Repeat([]byte("total = count1 + 42 * offset;\n"), 100)

	b.SetBytes(int64(len(src)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		s, err := l.Tokenize("", src)
		if err != nil {
			b.Fatal(err)
		}
		for {
			t, err := s.Scan()
			if err != nil {
				b.Fatal(err)
			}
			if t.ID == token.EOF {
				break
			}
		}
	}
}

func BenchmarkBuild(b *testing.B) {
	for i := 0; i < b.N; i++ {
		benchLexer(b)
	}
}

func BenchmarkTokenizeRecover(b *testing.B) {
	l := benchLexer(b)
	src := bytes.Repeat([]byte("x = 1; §§ y = 2;\n"), 100)

	b.SetBytes(int64(len(src)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		s, err := l.Tokenize("", src, scanner.Recover())
		if err != nil {
			b.Fatal(err)
		}
		for {
			t, err := s.Scan()
			if err != nil {
				b.Fatal(err)
			}
			if t.ID == token.EOF {
				break
			}
		}
	}
}
