// Package display renders minicalc results and diagnostics for people.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"go.skia.org/minicalc/go/skerr"
	"go.skia.org/minicalc/go/util"
	"go.skia.org/minicalc/minicalc/go/calcerr"
	"go.skia.org/minicalc/minicalc/go/lexer"
	"go.skia.org/minicalc/minicalc/go/messages"
)

// Format selects how a store is written.
type Format string

const (
	Table Format = "table"
	JSON  Format = "json"
	YAML  Format = "yaml"
)

// AllFormats lists the supported formats.
var AllFormats = []Format{Table, JSON, YAML}

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	for _, f := range AllFormats {
		if string(f) == s {
			return f, nil
		}
	}
	if f, ok := closestFormat(s); ok {
		return "", skerr.Fmt("unknown format %q, did you mean %q?", s, f)
	}
	names := make([]string, 0, len(AllFormats))
	for _, f := range AllFormats {
		names = append(names, string(f))
	}
	return "", skerr.Fmt("unknown format %q, want one of %s", s, strings.Join(names, ", "))
}

// maxSuggestDistance is the largest edit distance for which ParseFormat
// suggests a format.
const maxSuggestDistance = 2

func closestFormat(s string) (Format, bool) {
	var best Format
	bestDist := maxSuggestDistance + 1
	for _, f := range AllFormats {
		d := levenshtein.DistanceForStrings([]rune(s), []rune(string(f)), levenshtein.DefaultOptions)
		if d < bestDist {
			best, bestDist = f, d
		}
	}
	return best, bestDist <= maxSuggestDistance
}

// maxTokenText is the widest token text shown by WriteTokens.
const maxTokenText = 24

// Store is the part of eval.Store that is displayed.
type Store interface {
	Names() []string
	Values() []int32
}

// Variable is one row of a displayed store.
type Variable struct {
	Name  string `json:"name" yaml:"name"`
	Slot  int    `json:"slot" yaml:"slot"`
	Value int32  `json:"value" yaml:"value"`
}

// Variables lists the contents of s in slot order.
func Variables(s Store) []Variable {
	names := s.Names()
	values := s.Values()
	ret := make([]Variable, 0, len(names))
	for i, name := range names {
		ret = append(ret, Variable{Name: name, Slot: i, Value: values[i]})
	}
	return ret
}

// WriteStore writes the variables of s to w in the given format.
func WriteStore(w io.Writer, f Format, s Store) error {
	vars := Variables(s)
	switch f {
	case Table:
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Name", "Slot", "Value"})
		table.SetAutoFormatHeaders(false)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		for _, v := range vars {
			table.Append([]string{v.Name, strconv.Itoa(v.Slot), strconv.Itoa(int(v.Value))})
		}
		table.Render()
		return nil
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(vars); err != nil {
			return skerr.Wrapf(err, "encoding store as JSON")
		}
		return nil
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(vars); err != nil {
			return skerr.Wrapf(err, "encoding store as YAML")
		}
		return skerr.Wrap(enc.Close())
	}
	return skerr.Fmt("unknown format %q", f)
}

// WriteValues writes the value of each statement, one per line.
func WriteValues(w io.Writer, values []int32) error {
	for i, v := range values {
		if _, err := fmt.Fprintf(w, "statement %d: %d\n", i, v); err != nil {
			return skerr.Wrap(err)
		}
	}
	return nil
}

// WriteTokens writes tokens as a table of kind, text and position.
func WriteTokens(w io.Writer, tokens []lexer.Token) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Kind", "Text", "Offset", "Length"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for i, t := range tokens {
		table.Append([]string{
			strconv.Itoa(i),
			t.Kind.String(),
			util.Truncate(t.Text, maxTokenText),
			strconv.Itoa(t.Pos),
			strconv.Itoa(t.Len),
		})
	}
	table.Render()
}

// Diagnostics formats errors in the language of its printer.
type Diagnostics struct {
	p         *message.Printer
	highlight *color.Color
}

// NewDiagnostics returns Diagnostics that print with p. If colored is true
// the offending token is highlighted with terminal escapes, whether or not
// the output is a terminal.
func NewDiagnostics(p *message.Printer, colored bool) *Diagnostics {
	highlight := color.New(color.FgRed, color.Bold)
	if colored {
		highlight.EnableColor()
	} else {
		highlight.DisableColor()
	}
	return &Diagnostics{
		p:         p,
		highlight: highlight,
	}
}

// Write describes err, which happened while running name, on w.
func (d *Diagnostics) Write(w io.Writer, name string, err error) error {
	e, ok := calcerr.As(err)
	if !ok {
		_, werr := fmt.Fprintf(w, "%s: %s [%s]\n\t%s\n", name, messages.Kind(d.p, calcerr.Internal), calcerr.Internal, err)
		return skerr.Wrap(werr)
	}
	header := fmt.Sprintf("%s: %s [%s]", name, messages.Kind(d.p, e.Kind), e.Kind)
	if e.Window != nil {
		header += " " + messages.Where(d.p, e.Window)
	}
	if _, err := fmt.Fprintf(w, "%s\n\t%s\n", header, e.Msg); err != nil {
		return skerr.Wrap(err)
	}
	if e.Window == nil {
		return nil
	}
	_, err = fmt.Fprintf(w, "\t%s >>>%s<<< %s\n", e.Window.Before, d.highlight.Sprint(e.Window.Token), e.Window.After)
	return skerr.Wrap(err)
}
