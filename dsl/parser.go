package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	sheetLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)(?:pt|mm|cm|in)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[:;]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(sheetLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Document is the root AST node for a sheet configuration file.
type Document struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"Newline* 'sheet' @Ident"`
	Version  string         `parser:"@Ident"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section is one top-level statement: a dimension pair, the line width, or a
// keyed block (qr/colors/text).
type Section struct {
	Canvas    *SizePair `parser:"  'canvas' @@"`
	Label     *SizePair `parser:"| 'label' @@"`
	LineWidth *string   `parser:"| 'line-width' ':' @Number"`
	QR        *Block    `parser:"| 'qr' @@"`
	Colors    *Block    `parser:"| 'colors' @@"`
	Text      *Block    `parser:"| 'text' @@"`
}

// Kind returns the human-readable section type.
func (s *Section) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Canvas != nil:
		return "canvas"
	case s.Label != nil:
		return "label"
	case s.LineWidth != nil:
		return "line-width"
	case s.QR != nil:
		return "qr"
	case s.Colors != nil:
		return "colors"
	case s.Text != nil:
		return "text"
	default:
		return "unknown"
	}
}

// SizePair captures a `<width> x <height>` dimension, units attached.
type SizePair struct {
	Width  string `parser:"@Number"`
	Height string `parser:"'x' @Number"`
}

// Block is a delimited list of key/value entries.
type Block struct {
	Entries []*Entry `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Entry is one `key: value` assignment inside a block.
type Entry struct {
	Key string         `parser:"@Ident"`
	Str *StringLiteral `parser:"':' Newline* ( @String"`
	Num *string        `parser:"| @Number )"`
}

// Text returns the entry value as a plain string regardless of literal kind.
func (e *Entry) Text() string {
	switch {
	case e == nil:
		return ""
	case e.Str != nil:
		return string(*e.Str)
	case e.Num != nil:
		return *e.Num
	default:
		return ""
	}
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses sheet configuration from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses sheet configuration from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}
