// Package dxf encodes laid-out pages as ASCII DXF documents. The writer
// emits tagged group codes directly: a HEADER with drawing units, a LAYER
// and STYLE table derived from the sheet configuration, and one entity per
// primitive (LINE, LWPOLYLINE, MTEXT, SOLID).
package dxf

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/wanshade/labels/layout"
)

// Renderer writes one DXF document per page.
type Renderer struct {
	cfg layout.SheetConfig
}

// NewRenderer returns a DXF renderer using cfg for layer colors and the
// text style declaration.
func NewRenderer(cfg layout.SheetConfig) *Renderer {
	return &Renderer{cfg: cfg}
}

// Ext implements renderer.Renderer.
func (r *Renderer) Ext() string { return ".dxf" }

// RenderPage implements renderer.Renderer.
func (r *Renderer) RenderPage(page *layout.Page) ([]byte, error) {
	w := newTagWriter()

	w.header()
	w.tables(r.cfg)

	w.section("ENTITIES")
	for _, p := range page.Primitives {
		if err := w.entity(p); err != nil {
			return nil, err
		}
	}
	w.endSection()
	w.tag(0, "EOF")

	return w.bytes(), nil
}

// tagWriter accumulates DXF group-code/value pairs. Handles are assigned
// sequentially to entities as they are written.
type tagWriter struct {
	buf    bytes.Buffer
	handle int
}

func newTagWriter() *tagWriter {
	return &tagWriter{handle: 0x100}
}

func (w *tagWriter) bytes() []byte { return w.buf.Bytes() }

func (w *tagWriter) tag(code int, value string) {
	fmt.Fprintf(&w.buf, "%d\n%s\n", code, value)
}

func (w *tagWriter) num(code int, v float64) {
	w.tag(code, strconv.FormatFloat(v, 'f', -1, 64))
}

func (w *tagWriter) intTag(code, v int) {
	w.tag(code, strconv.Itoa(v))
}

func (w *tagWriter) section(name string) {
	w.tag(0, "SECTION")
	w.tag(2, name)
}

func (w *tagWriter) endSection() {
	w.tag(0, "ENDSEC")
}

func (w *tagWriter) nextHandle() string {
	w.handle++
	return strconv.FormatInt(int64(w.handle), 16)
}

// header declares the drawing version and units: metric measurement,
// insertion units millimeters.
func (w *tagWriter) header() {
	w.section("HEADER")
	w.tag(9, "$ACADVER")
	w.tag(1, "AC1027")
	w.tag(9, "$MEASUREMENT")
	w.intTag(70, 1)
	w.tag(9, "$INSUNITS")
	w.intTag(70, 4)
	w.endSection()
}

// tables writes the LAYER table (four layers with configured colors) and the
// STYLE table declaring the CALIBRI text style.
func (w *tagWriter) tables(cfg layout.SheetConfig) {
	layers := []struct {
		name  string
		color int
	}{
		{layout.LayerCutting, cfg.CuttingColor},
		{layout.LayerBreak, cfg.BreakColor},
		{layout.LayerText, cfg.TextColor},
		{layout.LayerQR, cfg.TextColor},
	}

	w.section("TABLES")

	w.tag(0, "TABLE")
	w.tag(2, "LAYER")
	w.intTag(70, len(layers))
	for _, l := range layers {
		w.tag(0, "LAYER")
		w.tag(5, w.nextHandle())
		w.tag(100, "AcDbSymbolTableRecord")
		w.tag(100, "AcDbLayerTableRecord")
		w.tag(2, l.name)
		w.intTag(70, 0)
		w.intTag(62, l.color)
		w.tag(6, "CONTINUOUS")
	}
	w.tag(0, "ENDTAB")

	w.tag(0, "TABLE")
	w.tag(2, "STYLE")
	w.intTag(70, 1)
	w.tag(0, "STYLE")
	w.tag(5, w.nextHandle())
	w.tag(100, "AcDbSymbolTableRecord")
	w.tag(100, "AcDbTextStyleTableRecord")
	w.tag(2, layout.TextStyle)
	w.intTag(70, 0)
	w.num(40, 0) // not fixed height; entities carry their own
	w.num(41, 1)
	w.num(50, 0)
	w.intTag(71, 0)
	w.num(42, 2.5)
	w.tag(3, "calibri.ttf")
	w.tag(4, "")
	w.tag(0, "ENDTAB")

	w.endSection()
}

func (w *tagWriter) entity(p layout.Primitive) error {
	switch e := p.(type) {
	case layout.Line:
		w.line(e)
	case layout.Polyline:
		w.polyline(e)
	case layout.Text:
		w.mtext(e)
	case layout.FilledPolygon:
		return w.solid(e)
	default:
		return fmt.Errorf("dxf: unsupported primitive kind %q", p.Kind())
	}
	return nil
}

func (w *tagWriter) entityHead(kind, layer string) {
	w.tag(0, kind)
	w.tag(5, w.nextHandle())
	w.tag(100, "AcDbEntity")
	w.tag(8, layer)
}

func (w *tagWriter) line(e layout.Line) {
	w.entityHead("LINE", e.Layer)
	w.tag(100, "AcDbLine")
	w.num(10, e.P1.X)
	w.num(20, e.P1.Y)
	w.num(30, 0)
	w.num(11, e.P2.X)
	w.num(21, e.P2.Y)
	w.num(31, 0)
}

func (w *tagWriter) polyline(e layout.Polyline) {
	w.entityHead("LWPOLYLINE", e.Layer)
	w.tag(100, "AcDbPolyline")
	w.intTag(90, len(e.Points))
	w.intTag(70, 0)
	w.num(43, e.Width)
	for _, pt := range e.Points {
		w.num(10, pt.X)
		w.num(20, pt.Y)
	}
}

func (w *tagWriter) mtext(e layout.Text) {
	w.entityHead("MTEXT", e.Layer)
	w.tag(100, "AcDbMText")
	w.num(10, e.Anchor.X)
	w.num(20, e.Anchor.Y)
	w.num(30, 0)
	w.num(40, e.Height)
	w.intTag(71, 7) // attachment point: bottom left
	w.tag(1, e.Content)
	w.tag(7, e.Style)
}

// solid writes a filled quad. SOLID vertex order is a bowtie: third and
// fourth corners swap relative to the outline winding.
func (w *tagWriter) solid(e layout.FilledPolygon) error {
	if len(e.Points) != 4 {
		return fmt.Errorf("dxf: SOLID needs 4 points, got %d", len(e.Points))
	}
	w.entityHead("SOLID", e.Layer)
	w.intTag(62, e.Color)
	w.tag(100, "AcDbTrace")
	for i, src := range []int{0, 1, 3, 2} {
		pt := e.Points[src]
		w.num(10+i, pt.X)
		w.num(20+i, pt.Y)
		w.num(30+i, 0)
	}
	return nil
}
