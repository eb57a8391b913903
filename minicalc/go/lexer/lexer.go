// Package lexer turns minicalc source text into tokens, one at a time.
//
// The lexer keeps a cursor into the source and materializes only the token
// the parser asks for next. The token stream always ends with exactly one EOF
// token, even for empty input.
package lexer

import (
	"fmt"
	"unicode"

	"go.skia.org/minicalc/minicalc/go/calcerr"
)

// Kind is the classification of a token.
type Kind int

const (
	EOF Kind = iota
	Number
	Operator
	Identifier
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Number:
		return "Number"
	case Operator:
		return "Operator"
	case Identifier:
		return "Identifier"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a single lexeme. Text is the source text of the token (empty for
// EOF) and Value is only meaningful for Number tokens. Pos and Len are rune
// offsets into the source.
type Token struct {
	Kind  Kind
	Text  string
	Value int32
	Pos   int
	Len   int
}

// Is returns true if the token is the operator op.
func (t Token) Is(op string) bool {
	return t.Kind == Operator && t.Text == op
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case Number:
		return fmt.Sprintf("number %d", t.Value)
	case Identifier:
		return fmt.Sprintf("identifier %q", t.Text)
	}
	return fmt.Sprintf("%q", t.Text)
}

// Separator ends every statement.
const Separator = ";"

// operators is the table of known operators. No operator is longer than
// maxOperatorLen runes.
var operators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true,
	"(": true, ")": true, Separator: true,
	"=": true, "==": true, "!=": true,
	"<": true, ">": true, "<=": true, ">=": true,
}

const maxOperatorLen = 2

// marks are the symbol characters that are scanned as a run before being
// matched against the operator table.
var marks = map[rune]bool{}

func init() {
	for _, r := range "=~|-^\\!\"#$%&'(){}[]`@*:/+<>,.?" {
		marks[r] = true
	}
}

// Lexer produces tokens from source text on demand.
type Lexer struct {
	src  []rune
	pos  int
	done bool
}

// New returns a Lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: []rune(src)}
}

// Source returns the text being lexed.
func (l *Lexer) Source() []rune {
	return l.src
}

// Next returns the next token. After the EOF token has been returned every
// further call fails with an Internal error.
func (l *Lexer) Next() (Token, error) {
	if l.done {
		return Token{}, l.errorAt(calcerr.Internal, len(l.src), 0, "read past the end of input")
	}
	for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		l.done = true
		return Token{Kind: EOF, Pos: len(l.src)}, nil
	}

	start := l.pos
	ch := l.src[start]
	switch {
	case string(ch) == Separator:
		l.pos++
		return Token{Kind: Operator, Text: Separator, Pos: start, Len: 1}, nil
	case isIdentStart(ch):
		for l.pos < len(l.src) && (isIdentStart(l.src[l.pos]) || isDigit(l.src[l.pos])) {
			l.pos++
		}
		return l.token(Identifier, start), nil
	case marks[ch]:
		return l.operator()
	case isDigit(ch):
		var n int32
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			// Wraps on overflow.
			n = n*10 + int32(l.src[l.pos]-'0')
			l.pos++
		}
		t := l.token(Number, start)
		t.Value = n
		return t, nil
	}
	return Token{}, l.errorAt(calcerr.InvalidCharacter, start, 1, "invalid character %q", ch)
}

// operator scans the run of mark characters at the cursor and consumes the
// longest operator that prefixes it.
func (l *Lexer) operator() (Token, error) {
	start := l.pos
	end := start
	for end < len(l.src) && marks[l.src[end]] {
		end++
	}
	n := end - start
	if n > maxOperatorLen {
		n = maxOperatorLen
	}
	for ; n > 0; n-- {
		if operators[string(l.src[start:start+n])] {
			l.pos = start + n
			return l.token(Operator, start), nil
		}
	}
	return Token{}, l.errorAt(calcerr.InvalidCharacter, start, 1, "invalid character %q", l.src[start])
}

func (l *Lexer) token(kind Kind, start int) Token {
	return Token{
		Kind: kind,
		Text: string(l.src[start:l.pos]),
		Pos:  start,
		Len:  l.pos - start,
	}
}

func (l *Lexer) errorAt(kind calcerr.Kind, pos, length int, format string, args ...interface{}) error {
	return calcerr.At(l.src, kind, pos, length, format, args...)
}

// ErrorAt returns a SyntaxError anchored at tok, with the surrounding source
// attached.
func (l *Lexer) ErrorAt(tok Token, format string, args ...interface{}) error {
	return l.errorAt(calcerr.SyntaxError, tok.Pos, tok.Len, format, args...)
}

// Tokenize lexes all of src. The returned slice always ends with the single
// EOF token.
func Tokenize(src string) ([]Token, error) {
	l := New(src)
	var ret []Token
	for {
		t, err := l.Next()
		if err != nil {
			return nil, err
		}
		ret = append(ret, t)
		if t.Kind == EOF {
			return ret, nil
		}
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
