// Package source loads minicalc programs from files or stdin.
package source

import (
	"io"
	"os"
	"unicode/utf8"

	"go.skia.org/minicalc/go/util"
	"go.skia.org/minicalc/minicalc/go/calcerr"
)

// Stdin is the name that selects standard input instead of a file.
const Stdin = "-"

// stdin is replaced in tests.
var stdin io.Reader = os.Stdin

// Read returns the contents of the file at path, or of stdin if path is
// Stdin. Any failure is a CannotReadInput error.
func Read(path string) (string, error) {
	if path == Stdin {
		return ReadFrom(stdin, "<stdin>")
	}
	var ret string
	err := util.WithReadFile(path, func(r io.Reader) error {
		var err error
		ret, err = ReadFrom(r, path)
		return err
	})
	if err != nil {
		if _, ok := calcerr.As(err); ok {
			return "", err
		}
		return "", calcerr.Input(path, err)
	}
	return ret, nil
}

// ReadFrom reads all of r. name is only used in error messages.
func ReadFrom(r io.Reader, name string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", calcerr.Input(name, err)
	}
	if !utf8.Valid(b) {
		return "", calcerr.New(calcerr.CannotReadInput, -1, 0, "%s is not valid UTF-8", name)
	}
	return string(b), nil
}
