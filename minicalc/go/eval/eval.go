// Package eval executes a parsed minicalc program against a Store.
package eval

import (
	"context"

	"go.skia.org/minicalc/go/skerr"
	"go.skia.org/minicalc/go/util"
	"go.skia.org/minicalc/minicalc/go/ast"
	"go.skia.org/minicalc/minicalc/go/calcerr"
)

// Result is what evaluating a node produces: either a plain value or the
// address of a memory slot.
type Result struct {
	Value     int32
	Slot      int
	IsAddress bool
}

// Value returns a Result holding v.
func Value(v int32) Result {
	return Result{Value: v}
}

// Address returns a Result referring to slot.
func Address(slot int) Result {
	return Result{Slot: slot, IsAddress: true}
}

// Evaluator walks syntax trees, reading and writing its Store.
type Evaluator struct {
	store *Store
}

// New returns an Evaluator over store. A nil store gets a fresh one.
func New(store *Store) *Evaluator {
	if store == nil {
		store = NewStore()
	}
	return &Evaluator{
		store: store,
	}
}

// Store returns the memory the Evaluator works on.
func (e *Evaluator) Store() *Store {
	return e.store
}

// Run evaluates every statement of prog in order and returns the value of
// each one. Evaluation stops at the first error, or when ctx is done between
// two statements.
func (e *Evaluator) Run(ctx context.Context, prog *ast.Program) ([]int32, error) {
	ret := make([]int32, 0, len(prog.Statements))
	for i, stmt := range prog.Statements {
		if err := ctx.Err(); err != nil {
			return ret, skerr.Wrapf(err, "before statement %d", i)
		}
		v, err := e.Rvalue(stmt)
		if err != nil {
			return ret, err
		}
		ret = append(ret, v)
	}
	return ret, nil
}

// Rvalue evaluates n and dereferences the result.
func (e *Evaluator) Rvalue(n ast.Node) (int32, error) {
	r, err := e.Eval(n)
	if err != nil {
		return 0, err
	}
	return e.deref(r, n)
}

// frame is a node waiting on the evaluation stack. A Binary frame is first
// expanded into its operands and completed once both results are available.
type frame struct {
	node     ast.Node
	expanded bool

	// deref is set when the parent needs a value rather than an address.
	deref bool
}

// Eval evaluates n. Variables and assignments produce addresses, everything
// else produces values.
//
// The tree is walked with an explicit stack, so the depth of n is bounded by
// memory rather than by the goroutine stack. Operands are evaluated left to
// right and each one is dereferenced as soon as it is complete, before its
// right sibling runs.
func (e *Evaluator) Eval(n ast.Node) (Result, error) {
	stack := []frame{{node: n}}
	var results []Result
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		b, isBinary := top.node.(*ast.Binary)
		if isBinary && !top.expanded {
			top.expanded = true
			// Left is pushed last so that it runs first. The target of an
			// assignment stays an address.
			stack = append(stack,
				frame{node: b.Right, deref: b.Op != ast.Assign},
				frame{node: b.Left, deref: true},
			)
			continue
		}
		f := *top
		stack = stack[:len(stack)-1]

		var r Result
		var err error
		if isBinary {
			left, right := results[len(results)-2], results[len(results)-1]
			results = results[:len(results)-2]
			r, err = e.apply(b, left, right)
		} else {
			r, err = e.leaf(f.node)
		}
		if err != nil {
			return Result{}, err
		}
		if f.deref {
			v, err := e.deref(r, f.node)
			if err != nil {
				return Result{}, err
			}
			r = Value(v)
		}
		results = append(results, r)
	}
	return results[0], nil
}

func (e *Evaluator) leaf(n ast.Node) (Result, error) {
	switch n := n.(type) {
	case *ast.Number:
		return Value(n.Value), nil
	case *ast.Variable:
		return Address(e.store.Declare(n.Name)), nil
	}
	pos, length := -1, 0
	if n != nil {
		pos, length = n.Span()
	}
	return Result{}, calcerr.New(calcerr.Internal, pos, length, "unknown node %T", n)
}

func (e *Evaluator) deref(r Result, n ast.Node) (int32, error) {
	if !r.IsAddress {
		return r.Value, nil
	}
	v, ok := e.store.Load(r.Slot)
	if !ok {
		pos, length := n.Span()
		return 0, calcerr.New(calcerr.Internal, pos, length, "slot %d is out of range", r.Slot)
	}
	return v, nil
}

// maxQuoted bounds how much of a subtree is quoted in an error message.
const maxQuoted = 40

// apply completes n given the results of its operands. For everything but
// Assign both operands are already values.
func (e *Evaluator) apply(n *ast.Binary, left, right Result) (Result, error) {
	if n.Op == ast.Assign {
		if !right.IsAddress {
			pos, length := n.Right.Span()
			return Result{}, calcerr.New(calcerr.TypeError, pos, length, "cannot assign to %s", util.Truncate(n.Right.String(), maxQuoted))
		}
		if !e.store.Set(right.Slot, left.Value) {
			return Result{}, calcerr.New(calcerr.Internal, n.Pos, n.Len, "slot %d is out of range", right.Slot)
		}
		return right, nil
	}

	l, r := left.Value, right.Value
	switch n.Op {
	case ast.Add:
		return Value(l + r), nil
	case ast.Sub:
		return Value(l - r), nil
	case ast.Mul:
		return Value(l * r), nil
	case ast.Div:
		if r == 0 {
			return Result{}, calcerr.New(calcerr.DivisionByZero, n.Pos, n.Len, "%s is zero", util.Truncate(n.Right.String(), maxQuoted))
		}
		// Truncates toward zero; MinInt32 / -1 wraps to MinInt32.
		return Value(l / r), nil
	case ast.Equal:
		return boolean(l == r), nil
	case ast.NotEqual:
		return boolean(l != r), nil
	case ast.GreaterThan:
		return boolean(l > r), nil
	case ast.GreaterOrEqual:
		return boolean(l >= r), nil
	}
	return Result{}, calcerr.New(calcerr.Internal, n.Pos, n.Len, "unknown operator %s", n.Op)
}

func boolean(b bool) Result {
	if b {
		return Value(1)
	}
	return Value(0)
}
