package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.skia.org/minicalc/minicalc/go/calcerr"
)

func TestRead_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.mc")
	require.NoError(t, os.WriteFile(path, []byte("a = 1;\n"), 0o644))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "a = 1;\n", got)
}

func TestRead_MissingFile_IsCannotReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.mc")

	_, err := Read(path)
	require.Error(t, err)
	e, ok := calcerr.As(err)
	require.True(t, ok)
	assert.Equal(t, calcerr.CannotReadInput, e.Kind)
	assert.Equal(t, -1, e.Pos)
	assert.True(t, os.IsNotExist(errors.Unwrap(e)))
	assert.Contains(t, err.Error(), "missing.mc")
}

func TestRead_Stdin(t *testing.T) {
	old := stdin
	defer func() { stdin = old }()
	stdin = strings.NewReader("x;")

	got, err := Read(Stdin)
	require.NoError(t, err)
	assert.Equal(t, "x;", got)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestReadFrom_ReaderFails_IsCannotReadInput(t *testing.T) {
	_, err := ReadFrom(failingReader{}, "broken")
	require.Error(t, err)
	assert.Equal(t, calcerr.CannotReadInput, calcerr.KindOf(err))
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestReadFrom_InvalidUTF8_IsCannotReadInput(t *testing.T) {
	_, err := ReadFrom(strings.NewReader("a = \xff;"), "bad.mc")
	require.Error(t, err)
	assert.Equal(t, calcerr.CannotReadInput, calcerr.KindOf(err))
}

func TestReadFrom_KeepsMultibyteText(t *testing.T) {
	got, err := ReadFrom(strings.NewReader("変数 = 1;"), "ja.mc")
	require.NoError(t, err)
	assert.Equal(t, "変数 = 1;", got)
}
