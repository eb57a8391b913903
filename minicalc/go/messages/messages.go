// Package messages holds the human readable text for every calcerr.Kind, in
// English and Japanese.
package messages

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"go.skia.org/minicalc/go/skerr"
	"go.skia.org/minicalc/minicalc/go/calcerr"
)

// Location is the catalog key used to describe where an error happened.
const Location = "line %d, column %d"

var (
	builder = catalog.NewBuilder(catalog.Fallback(language.English))

	kindText = map[calcerr.Kind]map[language.Tag]string{
		calcerr.Internal: {
			language.English:  "unexpected internal error",
			language.Japanese: "予期せぬエラー",
		},
		calcerr.CannotReadInput: {
			language.English:  "could not open the input",
			language.Japanese: "ファイルを開けませんでした。",
		},
		calcerr.InvalidCharacter: {
			language.English:  "the input contains a character that cannot be used",
			language.Japanese: "使えない文字が含まれています。",
		},
		calcerr.SyntaxError: {
			language.English:  "syntax error",
			language.Japanese: "構文エラー",
		},
		calcerr.TypeError: {
			language.English:  "type error",
			language.Japanese: "型エラー",
		},
		calcerr.DivisionByZero: {
			language.English:  "division by zero",
			language.Japanese: "ゼロ除算",
		},
	}

	supported []language.Tag
	matcher   language.Matcher
)

func init() {
	for kind, texts := range kindText {
		for tag, text := range texts {
			if err := builder.SetString(tag, key(kind), text); err != nil {
				panic(err)
			}
		}
	}
	if err := builder.SetString(language.English, Location, Location); err != nil {
		panic(err)
	}
	if err := builder.SetString(language.Japanese, Location, "%d行目 %d文字目"); err != nil {
		panic(err)
	}
	supported = builder.Languages()
	matcher = language.NewMatcher(supported)
}

func key(k calcerr.Kind) string {
	return "kind." + k.String()
}

// Supported lists the locales that have a translation.
func Supported() []language.Tag {
	return append([]language.Tag{}, supported...)
}

// NewPrinter returns a printer for the closest supported match of locale,
// e.g. "ja", "ja-JP" or "en-US". An empty locale means English.
func NewPrinter(locale string) (*message.Printer, error) {
	if locale == "" {
		return message.NewPrinter(language.English, message.Catalog(builder)), nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, skerr.Wrapf(err, "parsing locale %q", locale)
	}
	_, index, conf := matcher.Match(tag)
	if conf == language.No {
		return message.NewPrinter(language.English, message.Catalog(builder)), nil
	}
	return message.NewPrinter(supported[index], message.Catalog(builder)), nil
}

// Kind returns the localized description of k.
func Kind(p *message.Printer, k calcerr.Kind) string {
	return p.Sprintf(key(k))
}

// Where returns the localized location of w.
func Where(p *message.Printer, w *calcerr.Window) string {
	return p.Sprintf(Location, w.Line, w.Col)
}
