package parser

import (
	"io"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.skia.org/minicalc/minicalc/go/ast"
	"go.skia.org/minicalc/minicalc/go/calcerr"
	"go.skia.org/minicalc/minicalc/go/lexer"
)

func statements(t *testing.T, src string) []string {
	prog, err := Parse(src)
	require.NoError(t, err, src)
	ret := []string{}
	for _, stmt := range prog.Statements {
		ret = append(ret, stmt.String())
	}
	return ret
}

func TestParse(t *testing.T) {
	testCases := []struct {
		input string
		want  []string
	}{
		{"", []string{}},
		{"5;", []string{"5"}},
		{"1 + 2 * 3;", []string{"(+ 1 (* 2 3))"}},
		{"(1 + 2) * 3;", []string{"(* (+ 1 2) 3)"}},
		{"1 - 2 - 3;", []string{"(- (- 1 2) 3)"}},
		{"8 / 4 / 2;", []string{"(/ (/ 8 4) 2)"}},
		{"a == b != c;", []string{"(!= (== a b) c)"}},
		{"1 + 2 == 3;", []string{"(== (+ 1 2) 3)"}},
		// Assignment keeps the value first and the target second.
		{"a = 3;", []string{"(= 3 a)"}},
		{"a = b = 5;", []string{"(= (= 5 b) a)"}},
		{"a = 1 + 2;", []string{"(= (+ 1 2) a)"}},
		// "<" and "<=" become ">" and ">=" with swapped operands.
		{"1 < 2;", []string{"(> 2 1)"}},
		{"1 <= 2;", []string{"(>= 2 1)"}},
		{"2 > 1;", []string{"(> 2 1)"}},
		{"2 >= 1;", []string{"(>= 2 1)"}},
		// Relational chains associate to the right.
		{"a > b > c;", []string{"(> a (> b c))"}},
		{"a < b < c;", []string{"(> (> c b) a)"}},
		{"a < b > c;", []string{"(> (> b c) a)"}},
		{"a + 1 < b * 2;", []string{"(> (* b 2) (+ a 1))"}},
		// Unary minus is "0 - primary", unary plus vanishes.
		{"-5;", []string{"(- 0 5)"}},
		{"-(2 + 3);", []string{"(- 0 (+ 2 3))"}},
		{"+5;", []string{"5"}},
		{"+(-5);", []string{"(- 0 5)"}},
		{"2 * -x;", []string{"(* 2 (- 0 x))"}},
		{"a = 3; b = a + 2 * 5; c = b - a;", []string{"(= 3 a)", "(= (+ a (* 2 5)) b)", "(= (- b a) c)"}},
		{"((x));", []string{"x"}},
		// Any expression may appear on the left of "=", evaluation checks it.
		{"1 = 2;", []string{"(= 2 1)"}},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, statements(t, tc.input), tc.input)
	}
}

func TestParse_TreeShapeAndPositions(t *testing.T) {
	prog, err := Parse("x = -7 / y;")
	require.NoError(t, err)
	want := &ast.Program{
		Statements: []ast.Node{
			&ast.Binary{
				Op: ast.Assign,
				Left: &ast.Binary{
					Op:    ast.Div,
					Left:  &ast.Binary{Op: ast.Sub, Left: &ast.Number{Value: 0, Pos: 4, Len: 1}, Right: &ast.Number{Value: 7, Pos: 5, Len: 1}, Pos: 4, Len: 1},
					Right: &ast.Variable{Name: "y", Pos: 9, Len: 1},
					Pos:   7,
					Len:   1,
				},
				Right: &ast.Variable{Name: "x", Pos: 0, Len: 1},
				Pos:   2,
				Len:   1,
			},
		},
	}
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_IgnoringPositions(t *testing.T) {
	prog, err := Parse("a  =  b  ==  1 ;")
	require.NoError(t, err)
	want := &ast.Program{
		Statements: []ast.Node{
			&ast.Binary{
				Op:    ast.Assign,
				Left:  &ast.Binary{Op: ast.Equal, Left: &ast.Variable{Name: "b"}, Right: &ast.Number{Value: 1}},
				Right: &ast.Variable{Name: "a"},
			},
		},
	}
	ignore := cmp.Options{
		cmpopts.IgnoreFields(ast.Binary{}, "Pos", "Len"),
		cmpopts.IgnoreFields(ast.Number{}, "Pos", "Len"),
		cmpopts.IgnoreFields(ast.Variable{}, "Pos", "Len"),
	}
	assert.Empty(t, cmp.Diff(want, prog, ignore))
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		input string
		kind  calcerr.Kind
		token string
	}{
		{"a = ;", calcerr.SyntaxError, ";"},
		{"a = 3", calcerr.SyntaxError, ""},
		{"(1 + 2;", calcerr.SyntaxError, ";"},
		{"1 + ;", calcerr.SyntaxError, ";"},
		{"1 2;", calcerr.SyntaxError, "2"},
		{");", calcerr.SyntaxError, ")"},
		{"--5;", calcerr.SyntaxError, "-"},
		{"+-5;", calcerr.SyntaxError, "-"},
		{"++5;", calcerr.SyntaxError, "+"},
		{"-+5;", calcerr.SyntaxError, "+"},
		{"a = 1; b = * 2;", calcerr.SyntaxError, "*"},
		{";", calcerr.SyntaxError, ";"},
		{"a @ 3;", calcerr.InvalidCharacter, "@"},
		{"a = 1; b = 2 # 3;", calcerr.InvalidCharacter, "#"},
	}
	for _, tc := range testCases {
		_, err := Parse(tc.input)
		require.Error(t, err, tc.input)
		e, ok := calcerr.As(err)
		require.True(t, ok, tc.input)
		assert.Equal(t, tc.kind, e.Kind, tc.input)
		require.NotNil(t, e.Window, tc.input)
		assert.Equal(t, tc.token, e.Window.Token, tc.input)
	}
}

func TestParse_SyntaxErrorPointsAtTokenAfterEquals(t *testing.T) {
	_, err := Parse("a = ;")
	e, ok := calcerr.As(err)
	require.True(t, ok)
	assert.Equal(t, calcerr.SyntaxError, e.Kind)
	assert.Equal(t, 4, e.Pos)
	assert.Equal(t, "a = ", e.Window.Before)
}

func TestParse_NestingLimit(t *testing.T) {
	deep := strings.Repeat("(", 50) + "1" + strings.Repeat(")", 50) + ";"

	_, err := New(lexer.New(deep), 100).Program()
	require.NoError(t, err)

	_, err = New(lexer.New(deep), 20).Program()
	require.Error(t, err)
	assert.Equal(t, calcerr.SyntaxError, calcerr.KindOf(err))
	assert.Contains(t, err.Error(), "nested too deeply")
}

func TestParse_LongLeftAssociativeChain_DoesNotCountAsNesting(t *testing.T) {
	src := "x = 1" + strings.Repeat(" + 1", 5000) + ";"
	_, err := New(lexer.New(src), 10).Program()
	require.NoError(t, err)
}

func TestParse_LongLeftAssociativeChain_PrintsInASmallStack(t *testing.T) {
	defer debug.SetMaxStack(debug.SetMaxStack(1 << 20))

	prog, err := Parse(strings.Repeat("1 - ", 200000) + "2;")
	require.NoError(t, err)
	s := prog.Statements[0].String()
	assert.True(t, strings.HasPrefix(s, strings.Repeat("(- ", 200000)+"1 1)"), s[:20])
	assert.True(t, strings.HasSuffix(s, " 2)"))

	// The rendering indents every line by its depth, so keep this one shorter.
	prog, err = Parse(strings.Repeat("1 - ", 20000) + "2;")
	require.NoError(t, err)
	require.NoError(t, prog.Fprint(io.Discard))
}

func TestNew_NonPositiveDepth_UsesDefault(t *testing.T) {
	p := New(lexer.New(""), 0)
	assert.Equal(t, DefaultMaxDepth, p.maxDepth)
}
