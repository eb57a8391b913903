package interp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.skia.org/minicalc/go/metrics2"
	"go.skia.org/minicalc/go/skerr"
	"go.skia.org/minicalc/go/testutils"
	"go.skia.org/minicalc/minicalc/go/calcerr"
	"go.skia.org/minicalc/minicalc/go/lexer"
)

func TestRun_Store(t *testing.T) {
	in := New(Options{})
	res, err := in.Run(context.Background(), testutils.ReadFile(t, "store.mc"))
	require.NoError(t, err)
	assert.Equal(t, map[string]int32{"a": 3, "b": 13, "c": 10}, res.Store.Map())
	assert.Equal(t, []int32{3, 13, 10}, res.Values)
	assert.Len(t, res.Program.Statements, 3)
}

func TestRun_Compare(t *testing.T) {
	res, err := New(Options{}).Run(context.Background(), testutils.ReadFile(t, "compare.mc"))
	require.NoError(t, err)
	assert.Equal(t, map[string]int32{"lt": 1, "gt": 1, "ge": 0, "ne": 1, "chain": 1}, res.Store.Map())
}

func TestRun_DivisionByZero_LocatedAndPartial(t *testing.T) {
	src := testutils.ReadFile(t, "divzero.mc")
	res, err := New(Options{}).Run(context.Background(), src)
	require.Error(t, err)

	e, ok := calcerr.As(err)
	require.True(t, ok)
	assert.Equal(t, calcerr.DivisionByZero, e.Kind)
	require.NotNil(t, e.Window)
	assert.Equal(t, "/", e.Window.Token)
	assert.Equal(t, 3, e.Window.Line)
	assert.Contains(t, err.Error(), "evaluating")

	assert.Equal(t, []int32{10, 0}, res.Values)
	assert.Equal(t, []string{"n", "d"}, res.Store.Names())
}

func TestRun_SyntaxError(t *testing.T) {
	res, err := New(Options{}).Run(context.Background(), "a = ;")
	require.Error(t, err)
	assert.Equal(t, calcerr.SyntaxError, calcerr.KindOf(err))
	assert.Contains(t, err.Error(), "parsing")
	assert.Nil(t, res.Program)
	assert.Equal(t, 0, res.Store.Len())
}

func TestRun_TypeErrorIsLocated(t *testing.T) {
	_, err := New(Options{}).Run(context.Background(), "x = 1;\n3 = x;")
	e, ok := calcerr.As(err)
	require.True(t, ok)
	assert.Equal(t, calcerr.TypeError, e.Kind)
	require.NotNil(t, e.Window)
	assert.Equal(t, "3", e.Window.Token)
	assert.Equal(t, 2, e.Window.Line)
	assert.Equal(t, 1, e.Window.Col)
}

func TestRun_MaxDepth(t *testing.T) {
	src := strings.Repeat("(", 30) + "1" + strings.Repeat(")", 30) + ";"

	_, err := New(Options{MaxDepth: 10}).Run(context.Background(), src)
	assert.Equal(t, calcerr.SyntaxError, calcerr.KindOf(err))

	_, err = New(Options{}).Run(context.Background(), src)
	assert.NoError(t, err)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Options{}).Run(ctx, "a = 1;")
	require.Error(t, err)
	assert.ErrorIs(t, skerr.Unwrap(err), context.Canceled)
}

func TestTokens(t *testing.T) {
	in := New(Options{})
	tokens, err := in.Tokens("a <= 10;")
	require.NoError(t, err)
	kinds := []lexer.Kind{}
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []lexer.Kind{lexer.Identifier, lexer.Operator, lexer.Number, lexer.Operator, lexer.EOF}, kinds)

	_, err = in.Tokens("a @ 3;")
	e, ok := calcerr.As(err)
	require.True(t, ok)
	assert.Equal(t, calcerr.InvalidCharacter, e.Kind)
	assert.Equal(t, 2, e.Pos)
	assert.Equal(t, "@", e.Window.Token)
}

func TestMetrics(t *testing.T) {
	m := metrics2.NewClient()
	in := New(Options{Metrics: m})
	ctx := context.Background()

	_, err := in.Run(ctx, "a = 1; b = 2;")
	require.NoError(t, err)
	_, err = in.Run(ctx, "a = ;")
	require.Error(t, err)
	_, err = in.Run(ctx, "a = 1 / 0;")
	require.Error(t, err)
	_, err = in.Parse("1 $ 2;")
	require.Error(t, err)

	assert.Same(t, m, in.Metrics())
	assert.Equal(t, int64(3), m.GetCounter(RunsMetric).Get())
	assert.Equal(t, int64(2), m.GetCounter(StatementsMetric).Get())
	assert.Equal(t, int64(1), m.GetCounter(ErrorsMetric, map[string]string{"kind": "SyntaxError"}).Get())
	assert.Equal(t, int64(1), m.GetCounter(ErrorsMetric, map[string]string{"kind": "DivisionByZero"}).Get())
	assert.Equal(t, int64(1), m.GetCounter(ErrorsMetric, map[string]string{"kind": "InvalidCharacter"}).Get())

	path := filepath.Join(t.TempDir(), "minicalc.prom")
	require.NoError(t, m.WriteToTextfile(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "minicalc_runs 3")
	assert.Contains(t, string(b), `minicalc_errors{kind="DivisionByZero"} 1`)
}
