// Package interp runs minicalc source text through the lexer, parser and
// evaluator, and keeps counters about what it ran.
package interp

import (
	"context"

	"go.skia.org/minicalc/go/metrics2"
	"go.skia.org/minicalc/go/skerr"
	"go.skia.org/minicalc/go/sklog"
	"go.skia.org/minicalc/go/timer"
	"go.skia.org/minicalc/minicalc/go/ast"
	"go.skia.org/minicalc/minicalc/go/calcerr"
	"go.skia.org/minicalc/minicalc/go/eval"
	"go.skia.org/minicalc/minicalc/go/lexer"
	"go.skia.org/minicalc/minicalc/go/parser"
)

// Metric names.
const (
	RunsMetric       = "minicalc_runs"
	StatementsMetric = "minicalc_statements"
	ErrorsMetric     = "minicalc_errors"
)

// Options configures an Interpreter.
type Options struct {
	// MaxDepth bounds expression nesting. Zero means parser.DefaultMaxDepth.
	MaxDepth int

	// Metrics receives the counters. A nil Metrics gets a private client.
	Metrics *metrics2.Client
}

// Interpreter runs programs. Each run gets its own store.
type Interpreter struct {
	maxDepth   int
	metrics    *metrics2.Client
	runs       metrics2.Counter
	statements metrics2.Counter
}

// New returns an Interpreter configured by opts.
func New(opts Options) *Interpreter {
	m := opts.Metrics
	if m == nil {
		m = metrics2.NewClient()
	}
	return &Interpreter{
		maxDepth:   opts.MaxDepth,
		metrics:    m,
		runs:       m.GetCounter(RunsMetric),
		statements: m.GetCounter(StatementsMetric),
	}
}

// Result is the outcome of a run. After a failed run it holds the state at
// the point of failure.
type Result struct {
	Program *ast.Program
	Store   *eval.Store
	Values  []int32
}

// Tokens lexes all of src.
func (in *Interpreter) Tokens(src string) ([]lexer.Token, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, in.fail(err, src, "lexing")
	}
	sklog.Debugf("Lexed %d tokens.", len(tokens))
	return tokens, nil
}

// Parse parses src.
func (in *Interpreter) Parse(src string) (*ast.Program, error) {
	prog, err := parser.New(lexer.New(src), in.maxDepth).Program()
	if err != nil {
		return nil, in.fail(err, src, "parsing")
	}
	sklog.Debugf("Parsed %d statements.", len(prog.Statements))
	return prog, nil
}

// Run parses and evaluates src against a fresh store.
func (in *Interpreter) Run(ctx context.Context, src string) (*Result, error) {
	defer timer.New("Run").Stop()
	in.runs.Inc(1)
	ret := &Result{
		Store: eval.NewStore(),
	}
	prog, err := in.Parse(src)
	if err != nil {
		return ret, err
	}
	ret.Program = prog
	values, err := eval.New(ret.Store).Run(ctx, prog)
	ret.Values = values
	in.statements.Inc(int64(len(values)))
	if err != nil {
		return ret, in.fail(err, src, "evaluating")
	}
	sklog.Debugf("Evaluated %d statements into %d slots.", len(values), ret.Store.Len())
	return ret, nil
}

// Metrics returns the client holding the counters.
func (in *Interpreter) Metrics() *metrics2.Client {
	return in.metrics
}

// fail attaches the source window to err, counts it and adds the stage as
// context.
func (in *Interpreter) fail(err error, src, stage string) error {
	err = calcerr.Locate(err, []rune(src))
	kind := calcerr.KindOf(err)
	in.metrics.GetCounter(ErrorsMetric, map[string]string{"kind": kind.String()}).Inc(1)
	sklog.Debugf("%s failed with %s: %s", stage, kind, err)
	return skerr.Wrapf(err, "%s", stage)
}
