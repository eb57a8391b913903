// Package calcerr defines the error taxonomy shared by every stage of
// minicalc, and the source window attached to an error for diagnostics.
package calcerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure.
type Kind int

const (
	// Internal is an inconsistency inside minicalc itself.
	Internal Kind = iota
	// CannotReadInput means the source text could not be obtained.
	CannotReadInput
	// InvalidCharacter is raised by the lexer.
	InvalidCharacter
	// SyntaxError is raised by the parser.
	SyntaxError
	// TypeError is raised by the evaluator when an address was needed but a
	// value was produced.
	TypeError
	// DivisionByZero is raised by the evaluator.
	DivisionByZero
)

// AllKinds lists every Kind, in declaration order.
var AllKinds = []Kind{Internal, CannotReadInput, InvalidCharacter, SyntaxError, TypeError, DivisionByZero}

func (k Kind) String() string {
	switch k {
	case Internal:
		return "Internal"
	case CannotReadInput:
		return "CannotReadInput"
	case InvalidCharacter:
		return "InvalidCharacter"
	case SyntaxError:
		return "SyntaxError"
	case TypeError:
		return "TypeError"
	case DivisionByZero:
		return "DivisionByZero"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// WindowWidth is the number of runes shown on each side of the offending
// token.
const WindowWidth = 30

// Window is the text around a failure position.
type Window struct {
	Before string
	Token  string
	After  string

	// Line and Col are 1-based and count runes.
	Line int
	Col  int
}

func (w *Window) String() string {
	return fmt.Sprintf("%s >>>%s<<< %s", w.Before, w.Token, w.After)
}

// NewWindow cuts the window for the token at [pos, pos+length) out of src.
// Positions past the end of src are clamped, so an EOF token gets an empty
// Token and no After text.
func NewWindow(src []rune, pos, length int) *Window {
	pos = clamp(pos, 0, len(src))
	end := clamp(pos+length, pos, len(src))
	start := clamp(pos-WindowWidth, 0, pos)
	stop := clamp(end+WindowWidth, end, len(src))

	line, col := 1, 1
	for _, r := range src[:pos] {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &Window{
		Before: flatten(src[start:pos]),
		Token:  string(src[pos:end]),
		After:  flatten(src[end:stop]),
		Line:   line,
		Col:    col,
	}
}

// flatten keeps a window on one line.
func flatten(r []rune) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(string(r))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Error is the failure produced by minicalc. Pos and Len are rune offsets
// into the source; Pos is -1 when the failure has no source position.
type Error struct {
	Kind   Kind
	Msg    string
	Pos    int
	Len    int
	Window *Window

	cause error
}

// New returns an Error of the given kind anchored at [pos, pos+length).
func New(kind Kind, pos, length int, format string, args ...interface{}) *Error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
		Pos:  pos,
		Len:  length,
	}
}

// At is like New, but also cuts the window out of src.
func At(src []rune, kind Kind, pos, length int, format string, args ...interface{}) *Error {
	e := New(kind, pos, length, format, args...)
	e.Window = NewWindow(src, pos, length)
	return e
}

// Input wraps an I/O failure that prevented reading name.
func Input(name string, cause error) *Error {
	return &Error{
		Kind:  CannotReadInput,
		Msg:   fmt.Sprintf("reading %s: %s", name, cause),
		Pos:   -1,
		cause: cause,
	}
}

func (e *Error) Error() string {
	if e.Window != nil {
		return fmt.Sprintf("%s at line %d, column %d: %s", e.Kind, e.Window.Line, e.Window.Col, e.Msg)
	}
	if e.Pos >= 0 {
		return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap returns the underlying I/O error, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the Kind of the *Error in err's chain. Errors that did not
// originate in minicalc are reported as Internal. Callers should check for
// nil first: a nil err, or a nil *Error, is also reported as Internal.
func KindOf(err error) Kind {
	if err == nil {
		return Internal
	}
	if e, ok := As(err); ok && e != nil {
		return e.Kind
	}
	return Internal
}

// Locate fills in the Window of the *Error in err's chain if it has a source
// position but no window yet. err is returned unchanged otherwise.
func Locate(err error, src []rune) error {
	if e, ok := As(err); ok && e.Window == nil && e.Pos >= 0 {
		e.Window = NewWindow(src, e.Pos, e.Len)
	}
	return err
}
