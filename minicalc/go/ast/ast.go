// Package ast defines the syntax tree built by the parser and consumed by the
// evaluator.
//
// A Node is one of *Number, *Variable or *Binary. Leaves never have
// children and every *Binary has exactly two, so an operator without
// operands cannot be represented. Each node owns its children outright.
package ast

import (
	"fmt"
	"io"
	"strings"
)

// Op is the operator of a Binary node.
type Op int

const (
	Add Op = iota
	Sub
	Mul
	Div
	Equal
	NotEqual
	GreaterThan
	GreaterOrEqual
	// Assign stores its Left child into the variable named by its Right
	// child.
	Assign
)

var opNames = map[Op]string{
	Add:            "Add",
	Sub:            "Sub",
	Mul:            "Mul",
	Div:            "Div",
	Equal:          "Equal",
	NotEqual:       "NotEqual",
	GreaterThan:    "GreaterThan",
	GreaterOrEqual: "GreaterOrEqual",
	Assign:         "Assign",
}

var opSymbols = map[Op]string{
	Add:            "+",
	Sub:            "-",
	Mul:            "*",
	Div:            "/",
	Equal:          "==",
	NotEqual:       "!=",
	GreaterThan:    ">",
	GreaterOrEqual: ">=",
	Assign:         "=",
}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Symbol returns the source spelling of the operator.
func (o Op) Symbol() string {
	return opSymbols[o]
}

// Node is a node of the syntax tree.
type Node interface {
	// Span returns the rune offset and length of the source token the node
	// was built from.
	Span() (pos, length int)

	// String returns the node as an S-expression.
	String() string

	node()
}

// Number is an integer literal.
type Number struct {
	Value int32
	Pos   int
	Len   int
}

// Variable is a reference to a named memory slot.
type Variable struct {
	Name string
	Pos  int
	Len  int
}

// Binary applies Op to Left and Right. Pos and Len locate the operator.
type Binary struct {
	Op    Op
	Left  Node
	Right Node
	Pos   int
	Len   int
}

func (n *Number) Span() (int, int)   { return n.Pos, n.Len }
func (n *Variable) Span() (int, int) { return n.Pos, n.Len }
func (n *Binary) Span() (int, int)   { return n.Pos, n.Len }

func (*Number) node()   {}
func (*Variable) node() {}
func (*Binary) node()   {}

func (n *Number) String() string {
	return fmt.Sprintf("%d", n.Value)
}

func (n *Variable) String() string {
	return n.Name
}

func (n *Binary) String() string {
	var sb strings.Builder
	// Each entry is either a Node still to be rendered or literal text.
	stack := []interface{}{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch t := top.(type) {
		case string:
			sb.WriteString(t)
		case *Binary:
			sb.WriteString("(" + t.Op.Symbol() + " ")
			stack = append(stack, ")", t.Right, " ", t.Left)
		case Node:
			sb.WriteString(t.String())
		default:
			sb.WriteString("<nil>")
		}
	}
	return sb.String()
}

// Program is the list of top-level statements, in execution order.
type Program struct {
	Statements []Node
}

// Fprint writes the debug rendering of every statement to w. Each statement
// is printed in order with its left subtree above and its right subtree below
// the node itself, indented one step per level of depth.
func (p *Program) Fprint(w io.Writer) error {
	for i, stmt := range p.Statements {
		if _, err := fmt.Fprintf(w, "statement %d:\n", i); err != nil {
			return err
		}
		if err := Fprint(w, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Fprint writes the debug rendering of the tree rooted at n to w.
func Fprint(w io.Writer, n Node) error {
	return fprint(w, n, 0)
}

// pending is a node waiting to be printed by fprint. A Binary is visited
// twice: once to schedule its children and once to print itself.
type pending struct {
	node    Node
	depth   int
	visited bool
}

func fprint(w io.Writer, n Node, depth int) error {
	stack := []pending{{node: n, depth: depth}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if b, ok := p.node.(*Binary); ok && !p.visited {
			stack = append(stack,
				pending{node: b.Right, depth: p.depth + 1},
				pending{node: b, depth: p.depth, visited: true},
				pending{node: b.Left, depth: p.depth + 1},
			)
			continue
		}
		indent := strings.Repeat("\t|", p.depth)
		var err error
		switch n := p.node.(type) {
		case *Binary:
			_, err = fmt.Fprintf(w, "%s[type:%s]\n", indent, n.Op)
		case *Number:
			_, err = fmt.Fprintf(w, "%s[type:Num, value:%d]\n", indent, n.Value)
		case *Variable:
			_, err = fmt.Fprintf(w, "%s[type:Var, name:%q]\n", indent, n.Name)
		default:
			_, err = fmt.Fprintf(w, "%s[type:%T]\n", indent, n)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
