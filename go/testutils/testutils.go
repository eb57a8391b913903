// Convenience utilities for testing.
package testutils

import (
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/stretchr/testify/require"
)

// TestDataDir returns the path to the caller's testdata directory, which
// is assumed to be "<path to caller dir>/testdata".
func TestDataDir(t require.TestingT) string {
	_, file, _, ok := runtime.Caller(1)
	require.True(t, ok, "Could not find test data dir: runtime.Caller() failed.")
	return filepath.Join(filepath.Dir(file), "testdata")
}

// ReadFile reads a file from the caller's testdata directory.
func ReadFile(t require.TestingT, filename string) string {
	_, file, _, ok := runtime.Caller(1)
	require.True(t, ok, "Could not find test data dir: runtime.Caller() failed.")
	b, err := os.ReadFile(filepath.Join(filepath.Dir(file), "testdata", filename))
	require.NoError(t, err, "Could not read %s", filename)
	return string(b)
}

// WriteFile writes contents to a new file named filename inside dir and
// returns its path.
func WriteFile(t require.TestingT, dir, filename, contents string) string {
	p := filepath.Join(dir, filename)
	require.NoError(t, os.WriteFile(p, []byte(contents), 0o644))
	return p
}

// CloseInTest takes an io.Closer and Closes it, reporting any error.
func CloseInTest(t require.TestingT, c io.Closer) {
	require.NoError(t, c.Close())
}
