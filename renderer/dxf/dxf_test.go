package dxf_test

import (
	"strings"
	"testing"

	"github.com/wanshade/labels/layout"
	"github.com/wanshade/labels/renderer/dxf"
)

func testPage() *layout.Page {
	return &layout.Page{
		Width:  600,
		Height: 300,
		Labels: 1,
		Primitives: []layout.Primitive{
			layout.Line{P1: layout.Point{X: 0, Y: 0}, P2: layout.Point{X: 65, Y: 0}, Layer: layout.LayerCutting},
			layout.Line{P1: layout.Point{X: 0, Y: 0}, P2: layout.Point{X: 0, Y: 20}, Layer: layout.LayerBreak},
			layout.Polyline{
				Points: []layout.Point{{X: 12.2, Y: 17.8}, {X: 12.2, Y: 9.8}},
				Layer:  layout.LayerText,
				Width:  0.3,
			},
			layout.Text{
				Content: "HEALTH",
				Anchor:  layout.Point{X: 13, Y: 15.3},
				Height:  2,
				Layer:   layout.LayerText,
				Style:   layout.TextStyle,
			},
			layout.FilledPolygon{
				Points: []layout.Point{{X: 49, Y: 5}, {X: 50, Y: 5}, {X: 50, Y: 6}, {X: 49, Y: 6}},
				Layer:  layout.LayerQR,
				Color:  5,
			},
		},
	}
}

func TestRenderPageStructure(t *testing.T) {
	r := dxf.NewRenderer(layout.DefaultConfig())
	if r.Ext() != ".dxf" {
		t.Fatalf("unexpected extension %q", r.Ext())
	}

	data, err := r.RenderPage(testPage())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"$ACADVER", "AC1027", "$MEASUREMENT", "$INSUNITS",
		"HEADER", "TABLES", "ENTITIES", "EOF",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q", want)
		}
	}
	for _, layer := range []string{
		layout.LayerCutting, layout.LayerBreak, layout.LayerText, layout.LayerQR,
	} {
		if !strings.Contains(out, "\n"+layer+"\n") {
			t.Fatalf("layer %s not declared", layer)
		}
	}
	if !strings.Contains(out, layout.TextStyle) || !strings.Contains(out, "calibri.ttf") {
		t.Fatalf("text style not declared")
	}
}

func TestRenderPageEntities(t *testing.T) {
	r := dxf.NewRenderer(layout.DefaultConfig())
	data, err := r.RenderPage(testPage())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	out := string(data)

	counts := map[string]int{
		"\nLINE\n":       2,
		"\nLWPOLYLINE\n": 1,
		"\nMTEXT\n":      1,
		"\nSOLID\n":      1,
	}
	for needle, want := range counts {
		if got := strings.Count(out, needle); got != want {
			t.Fatalf("expected %d of %q, got %d", want, strings.TrimSpace(needle), got)
		}
	}
	if !strings.Contains(out, "HEALTH") {
		t.Fatalf("text content missing")
	}
}

func TestRenderPageLayerColors(t *testing.T) {
	cfg := layout.DefaultConfig()
	cfg.CuttingColor = 2
	r := dxf.NewRenderer(cfg)
	data, err := r.RenderPage(&layout.Page{Width: 600, Height: 300})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	out := string(data)
	idx := strings.Index(out, "\n"+layout.LayerCutting+"\n")
	if idx < 0 {
		t.Fatalf("cutting layer missing")
	}
	if !strings.Contains(out[idx:idx+80], "62\n2\n") {
		t.Fatalf("cutting layer color not applied:\n%s", out[idx:idx+80])
	}
}

func TestRenderPageRejectsBadSolid(t *testing.T) {
	r := dxf.NewRenderer(layout.DefaultConfig())
	page := &layout.Page{
		Width:  600,
		Height: 300,
		Primitives: []layout.Primitive{
			layout.FilledPolygon{
				Points: []layout.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
				Layer:  layout.LayerQR,
			},
		},
	}
	if _, err := r.RenderPage(page); err == nil {
		t.Fatalf("expected error for non-quad polygon")
	}
}
