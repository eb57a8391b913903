package ast

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assign(value, target Node) *Binary {
	return &Binary{Op: Assign, Left: value, Right: target}
}

func TestString_SExpression(t *testing.T) {
	n := assign(&Binary{Op: Add, Left: &Number{Value: 1}, Right: &Variable{Name: "b"}}, &Variable{Name: "a"})
	assert.Equal(t, "(= (+ 1 b) a)", n.String())
}

func TestOp_StringAndSymbol(t *testing.T) {
	assert.Equal(t, "GreaterOrEqual", GreaterOrEqual.String())
	assert.Equal(t, ">=", GreaterOrEqual.Symbol())
	assert.Equal(t, "Op(99)", Op(99).String())
	for op := Add; op <= Assign; op++ {
		assert.NotEmpty(t, op.Symbol(), op.String())
	}
}

func TestProgramFprint(t *testing.T) {
	p := &Program{
		Statements: []Node{
			assign(&Number{Value: 3}, &Variable{Name: "a"}),
			&Binary{
				Op:    Sub,
				Left:  &Binary{Op: Mul, Left: &Variable{Name: "a"}, Right: &Number{Value: 2}},
				Right: &Number{Value: -1},
			},
		},
	}
	var b bytes.Buffer
	require.NoError(t, p.Fprint(&b))
	want := "statement 0:\n" +
		"\t|[type:Num, value:3]\n" +
		"[type:Assign]\n" +
		"\t|[type:Var, name:\"a\"]\n" +
		"statement 1:\n" +
		"\t|\t|[type:Var, name:\"a\"]\n" +
		"\t|[type:Mul]\n" +
		"\t|\t|[type:Num, value:2]\n" +
		"[type:Sub]\n" +
		"\t|[type:Num, value:-1]\n"
	assert.Equal(t, want, b.String())
}

func TestSpan(t *testing.T) {
	var n Node = &Binary{Op: Div, Left: &Number{Value: 1}, Right: &Number{Value: 0}, Pos: 2, Len: 1}
	pos, length := n.Span()
	assert.Equal(t, 2, pos)
	assert.Equal(t, 1, length)
}
