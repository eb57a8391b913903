// Package config loads the minicalc configuration file.
//
// The file is JSON5. Every field that is not a bool must be set unless it is
// tagged `optional:"true"`; fields missing from the file keep their Default
// value, so in practice only an explicit zero is rejected.
package config

import (
	"io"
	"reflect"
	"time"

	"github.com/flynn/json5"
	"go.skia.org/minicalc/go/config"
	"go.skia.org/minicalc/go/skerr"
	"go.skia.org/minicalc/go/util"
	"go.skia.org/minicalc/minicalc/go/display"
	"go.skia.org/minicalc/minicalc/go/messages"
	"go.skia.org/minicalc/minicalc/go/parser"
)

// Config controls how programs are run and how results are reported.
type Config struct {
	// Locale of error messages, e.g. "en" or "ja". Empty means English.
	Locale string `json:"locale" optional:"true"`

	// Format of the final store: "table", "json" or "yaml".
	Format string `json:"format"`

	// MaxDepth is the deepest expression nesting the parser accepts.
	MaxDepth int `json:"max_depth"`

	// Color highlights the offending token of a diagnostic.
	Color bool `json:"color"`

	// MetricsFile, if set, receives the run counters in the Prometheus
	// textfile format.
	MetricsFile string `json:"metrics_file" optional:"true"`

	// Timeout abandons a program that is still running after this long.
	// Zero means no limit.
	Timeout config.Duration `json:"timeout" optional:"true"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Format:   string(display.Table),
		MaxDepth: parser.DefaultMaxDepth,
	}
}

// Load reads the JSON5 file at path on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	err := util.WithReadFile(path, func(r io.Reader) error {
		return json5.NewDecoder(r).Decode(&cfg)
	})
	if err != nil {
		return Config{}, skerr.Wrapf(err, "reading config at %s", path)
	}
	if err := checkRequired(reflect.ValueOf(cfg)); err != nil {
		return Config{}, skerr.Wrapf(err, "in config at %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, skerr.Wrapf(err, "in config at %s", path)
	}
	return cfg, nil
}

// Validate returns an error if any value is out of range.
func (c Config) Validate() error {
	if _, err := display.ParseFormat(c.Format); err != nil {
		return skerr.Wrap(err)
	}
	if c.MaxDepth <= 0 {
		return skerr.Fmt("max_depth must be positive, got %d", c.MaxDepth)
	}
	if _, err := messages.NewPrinter(c.Locale); err != nil {
		return skerr.Wrap(err)
	}
	if c.Timeout.Duration < 0 {
		return skerr.Fmt("timeout must not be negative, got %s", c.Timeout.Duration)
	}
	return nil
}

// Deadline returns the timeout as a time.Duration.
func (c Config) Deadline() time.Duration {
	return c.Timeout.Duration
}

// checkRequired returns an error if any non-struct, non-bool fields of the given value have a zero
// value *unless* they have an optional tag with value true.
func checkRequired(rValue reflect.Value) error {
	rType := rValue.Type()
	for i := 0; i < rValue.NumField(); i++ {
		field := rType.Field(i)
		if field.Type.Kind() == reflect.Struct {
			if err := checkRequired(rValue.Field(i)); err != nil {
				return err
			}
			continue
		}
		if field.Type.Kind() == reflect.Bool {
			continue
		}
		if field.Tag.Get("json") == "" {
			// e.g. config.Duration.Duration.
			continue
		}
		if field.Tag.Get("optional") == "true" {
			continue
		}
		if rValue.Field(i).IsZero() {
			return skerr.Fmt("Required %s to be non-zero", field.Name)
		}
	}
	return nil
}
