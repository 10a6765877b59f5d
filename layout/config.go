package layout

import (
	"fmt"
	"math"
	"strconv"

	"github.com/wanshade/labels/dsl"
)

// TextAnchor places one line of label text relative to the cell's top-left
// corner, with Y increasing downward (the content coordinate used during
// layout, flipped to sheet coordinates on emission).
type TextAnchor struct {
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	Height float64 `json:"height"` // character height (mm)
}

// TextAnchors fixes where the five text lines of a label sit inside the cell.
type TextAnchors struct {
	Org       TextAnchor `json:"org"`
	Subtitle1 TextAnchor `json:"subtitle1"`
	Subtitle2 TextAnchor `json:"subtitle2"`
	Name      TextAnchor `json:"name"`
	Footer    TextAnchor `json:"footer"`
}

// SheetConfig is the immutable configuration record for one generation run.
// Construct it via DefaultConfig or FromDocument; Validate is the only eager
// check the pipeline performs.
type SheetConfig struct {
	CanvasWidth  float64 `json:"canvasWidth"`  // mm
	CanvasHeight float64 `json:"canvasHeight"` // mm
	LabelWidth   float64 `json:"labelWidth"`   // mm
	LabelHeight  float64 `json:"labelHeight"`  // mm

	QRSize    float64 `json:"qrSize"`    // mm, side of the placed symbol
	QRXOffset float64 `json:"qrXOffset"` // mm from the cell's left edge
	QRYOffset float64 `json:"qrYOffset"` // mm from the cell's top edge

	LineWidth float64 `json:"lineWidth"` // divider stroke width (mm)

	// ACI color indices carried onto primitives and the output layer table.
	TextColor    int `json:"textColor"`
	CuttingColor int `json:"cuttingColor"`
	BreakColor   int `json:"breakColor"`

	OrgName    string `json:"orgName"`
	Subtitle1  string `json:"subtitle1"`
	Subtitle2  string `json:"subtitle2"`
	FooterText string `json:"footerText"`

	Anchors TextAnchors `json:"anchors"`
}

// DefaultConfig returns the stock label sheet: 600×300mm canvas, 65×20mm
// labels, 11.5mm QR at offset (49, 3).
func DefaultConfig() SheetConfig {
	return SheetConfig{
		CanvasWidth:  600,
		CanvasHeight: 300,
		LabelWidth:   65,
		LabelHeight:  20,
		QRSize:       11.5,
		QRXOffset:    49,
		QRYOffset:    3,
		LineWidth:    0.3,
		TextColor:    5,
		CuttingColor: 1,
		BreakColor:   4,
		OrgName:      "HEALTH",
		Subtitle1:    "South Eastern Sydney",
		Subtitle2:    "Local Health District",
		FooterText:   "DO NOT REMOVE ASSET - CONTACT TAM",
		Anchors: TextAnchors{
			Org:       TextAnchor{DX: 13, DY: 4.7, Height: 2},
			Subtitle1: TextAnchor{DX: 13, DY: 7.2, Height: 1.3},
			Subtitle2: TextAnchor{DX: 13, DY: 9.2, Height: 1.3},
			Name:      TextAnchor{DX: 7, DY: 15.7, Height: 2},
			Footer:    TextAnchor{DX: 19, DY: 18, Height: 1},
		},
	}
}

// Validate checks the dimensional invariants. It is called by Build before
// any layout runs; all later anomalies (blank rasters, empty label lists)
// are non-errors by design.
func (c SheetConfig) Validate() error {
	dims := []struct {
		name  string
		value float64
	}{
		{"canvas width", c.CanvasWidth},
		{"canvas height", c.CanvasHeight},
		{"label width", c.LabelWidth},
		{"label height", c.LabelHeight},
		{"qr size", c.QRSize},
		{"line width", c.LineWidth},
	}
	for _, d := range dims {
		if d.value <= 0 || math.IsInf(d.value, 0) || math.IsNaN(d.value) {
			return fmt.Errorf("sheet config: %s must be positive and finite, got %g", d.name, d.value)
		}
	}
	for _, d := range []struct {
		name  string
		value float64
	}{{"qr x-offset", c.QRXOffset}, {"qr y-offset", c.QRYOffset}} {
		if d.value < 0 || math.IsInf(d.value, 0) || math.IsNaN(d.value) {
			return fmt.Errorf("sheet config: %s must be non-negative and finite, got %g", d.name, d.value)
		}
	}
	if c.LabelWidth > c.CanvasWidth {
		return fmt.Errorf("sheet config: label width %g exceeds canvas width %g", c.LabelWidth, c.CanvasWidth)
	}
	if c.LabelHeight > c.CanvasHeight {
		return fmt.Errorf("sheet config: label height %g exceeds canvas height %g", c.LabelHeight, c.CanvasHeight)
	}
	return nil
}

// Cols returns the number of label columns fitting on a page.
func (c SheetConfig) Cols() int { return int(c.CanvasWidth / c.LabelWidth) }

// Rows returns the number of label rows fitting on a page.
func (c SheetConfig) Rows() int { return int(c.CanvasHeight / c.LabelHeight) }

// Capacity returns the number of labels one page can hold.
func (c SheetConfig) Capacity() int { return c.Cols() * c.Rows() }

// FromDocument converts a parsed sheet file into a SheetConfig. Omitted
// sections keep their defaults; the result is validated before being
// returned.
func FromDocument(doc *dsl.Document) (SheetConfig, error) {
	cfg := DefaultConfig()
	if doc == nil {
		return cfg, nil
	}
	for _, section := range doc.Sections {
		switch {
		case section.Canvas != nil:
			cfg.CanvasWidth = ParseLength(section.Canvas.Width)
			cfg.CanvasHeight = ParseLength(section.Canvas.Height)
		case section.Label != nil:
			cfg.LabelWidth = ParseLength(section.Label.Width)
			cfg.LabelHeight = ParseLength(section.Label.Height)
		case section.LineWidth != nil:
			cfg.LineWidth = ParseLength(*section.LineWidth)
		case section.QR != nil:
			for _, e := range section.QR.Entries {
				switch e.Key {
				case "size":
					cfg.QRSize = ParseLength(e.Text())
				case "x-offset":
					cfg.QRXOffset = ParseLength(e.Text())
				case "y-offset":
					cfg.QRYOffset = ParseLength(e.Text())
				}
			}
		case section.Colors != nil:
			for _, e := range section.Colors.Entries {
				idx, err := strconv.Atoi(e.Text())
				if err != nil {
					return cfg, fmt.Errorf("sheet config: color %s: %w", e.Key, err)
				}
				switch e.Key {
				case "text":
					cfg.TextColor = idx
				case "cutting":
					cfg.CuttingColor = idx
				case "break":
					cfg.BreakColor = idx
				}
			}
		case section.Text != nil:
			for _, e := range section.Text.Entries {
				switch e.Key {
				case "org":
					cfg.OrgName = e.Text()
				case "subtitle1":
					cfg.Subtitle1 = e.Text()
				case "subtitle2":
					cfg.Subtitle2 = e.Text()
				case "footer":
					cfg.FooterText = e.Text()
				}
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
