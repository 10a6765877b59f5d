package layout

import (
	"strings"
	"testing"

	"github.com/wanshade/labels/dsl"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Cols() != 9 || cfg.Rows() != 15 {
		t.Fatalf("expected 9x15 grid, got %dx%d", cfg.Cols(), cfg.Rows())
	}
	if cfg.Capacity() != 135 {
		t.Fatalf("expected capacity 135, got %d", cfg.Capacity())
	}
}

func TestValidateRejectsBadDimensions(t *testing.T) {
	cases := []func(*SheetConfig){
		func(c *SheetConfig) { c.CanvasWidth = 0 },
		func(c *SheetConfig) { c.LabelHeight = -5 },
		func(c *SheetConfig) { c.QRSize = 0 },
		func(c *SheetConfig) { c.LineWidth = 0 },
		func(c *SheetConfig) { c.QRXOffset = -1 },
		func(c *SheetConfig) { c.LabelWidth = 700 },
		func(c *SheetConfig) { c.LabelHeight = 400 },
	}
	for i, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestFromDocumentOverrides(t *testing.T) {
	src := `
sheet Custom v1 {
  canvas 500mm x 250mm
  label 50mm x 25mm
  line-width: 0.5

  qr {
    size: 15
    x-offset: 30
    y-offset: 4
  }

  colors {
    text: 7
    cutting: 2
    break: 3
  }

  text {
    org: "ACME"
    footer: "RETURN TO STORES"
  }
}
`
	doc, err := dsl.ParseString(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	cfg, err := FromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument failed: %v", err)
	}

	if cfg.CanvasWidth != 500 || cfg.CanvasHeight != 250 {
		t.Fatalf("unexpected canvas %gx%g", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	if cfg.LabelWidth != 50 || cfg.LabelHeight != 25 {
		t.Fatalf("unexpected label %gx%g", cfg.LabelWidth, cfg.LabelHeight)
	}
	if cfg.LineWidth != 0.5 {
		t.Fatalf("unexpected line width %g", cfg.LineWidth)
	}
	if cfg.QRSize != 15 || cfg.QRXOffset != 30 || cfg.QRYOffset != 4 {
		t.Fatalf("unexpected qr settings %+v", cfg)
	}
	if cfg.TextColor != 7 || cfg.CuttingColor != 2 || cfg.BreakColor != 3 {
		t.Fatalf("unexpected colors %d/%d/%d", cfg.TextColor, cfg.CuttingColor, cfg.BreakColor)
	}
	if cfg.OrgName != "ACME" {
		t.Fatalf("unexpected org %q", cfg.OrgName)
	}
	// Untouched entries keep their defaults.
	if cfg.Subtitle1 != "South Eastern Sydney" {
		t.Fatalf("subtitle1 default lost: %q", cfg.Subtitle1)
	}
	if cfg.FooterText != "RETURN TO STORES" {
		t.Fatalf("unexpected footer %q", cfg.FooterText)
	}
}

func TestFromDocumentNilKeepsDefaults(t *testing.T) {
	cfg, err := FromDocument(nil)
	if err != nil {
		t.Fatalf("FromDocument(nil) failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestFromDocumentRejectsBadColor(t *testing.T) {
	doc, err := dsl.ParseString(`
sheet Bad v1 {
  colors {
    text: "blue"
  }
}
`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if _, err := FromDocument(doc); err == nil || !strings.Contains(err.Error(), "color") {
		t.Fatalf("expected color error, got %v", err)
	}
}

func TestFromDocumentValidates(t *testing.T) {
	doc, err := dsl.ParseString(`
sheet Bad v1 {
  label 700mm x 20mm
}
`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if _, err := FromDocument(doc); err == nil {
		t.Fatalf("expected validation error for oversized label")
	}
}
