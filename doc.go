// Copyright 2020-2021 Daniel Matts <dmatts.io@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

/*
Package sublex provides a table-driven lexer built by subset construction.

Token patterns are registered in priority order, compiled into fragments of
a single nondeterministic finite automaton, and determinized once into a
deterministic automaton that drives all subsequent tokenization:

	patterns -> NFA fragments -> unioned NFA -> subset construction -> DFA -> scanner -> tokens

Pattern registration and priorities

AddPattern assigns token IDs in registration order starting at 0. The ID is
also the pattern's priority: tokenization always prefers the longest match
at the current position (maximal munch), and when two patterns match a
prefix of the same length the pattern registered first wins. For example,
with a keyword pattern "if" registered before an identifier pattern
[a-z][a-z0-9_]*, the input "if" yields the keyword and "ifx" yields an
identifier.

Build and immutability

Build runs subset construction: every distinct epsilon-closed set of NFA
states reachable from the start set becomes exactly one DFA state, with a
canonical sorted form of each set guarding against duplicates. After Build
the lexer rejects further patterns and becomes safe for concurrent use; the
intermediate NFA is discarded.

The compiled automaton can be exported as a dense transition table (see the
dfa package) and reloaded later, skipping determinization entirely.

Tokenization and error policies

Tokenize returns a pull-based scanner over an input buffer. The sequence it
produces is lazy, finite and restartable, and ends with a token.EOF token.
Two error policies are available: in strict mode (the default) the scanner
stops at the first unmatched byte and reports its exact line and column; in
recovery mode (scanner.Recover) unmatched input is folded into token.Error
tokens and scanning continues.

A pattern that can match the empty string must be declared with the
ZeroWidth option; otherwise a zero-length match is reported as an error
rather than letting the scanner loop without consuming input.

Downstream grammar layers

Consumers that map token IDs into a larger symbol space (see the parser
package) reserve the token range first: MaxTokenID exposes the highest
assigned token ID, and rule identifiers are allocated from MaxTokenID()+1
upward.
*/
package sublex
