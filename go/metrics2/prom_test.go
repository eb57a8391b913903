package metrics2

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	assert.Equal(t, "a_b_c", clean("a.b-c"))
}

func TestGetCounter_SameNameAndTags_SameCounter(t *testing.T) {
	c := NewClient()
	a := c.GetCounter("minicalc.statements", map[string]string{"kind": "x"})
	b := c.GetCounter("minicalc.statements", map[string]string{"kind": "x"})
	a.Inc(2)
	b.Inc(3)
	assert.Equal(t, int64(5), a.Get())

	other := c.GetCounter("minicalc.statements", map[string]string{"kind": "y"})
	assert.Equal(t, int64(0), other.Get())

	a.Reset()
	assert.Equal(t, int64(0), b.Get())
}

func TestWriteToTextfile_ContainsCounters(t *testing.T) {
	c := NewClient()
	c.GetCounter("minicalc_runs").Inc(1)
	c.GetCounter("minicalc_errors", map[string]string{"kind": "SyntaxError"}).Inc(4)

	path := filepath.Join(t.TempDir(), "minicalc.prom")
	require.NoError(t, c.WriteToTextfile(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "minicalc_runs 1")
	assert.Contains(t, string(b), `minicalc_errors{kind="SyntaxError"} 4`)
}
