// Package canvasrenderer draws laid-out pages as PDF via
// github.com/tdewolff/canvas. It is the on-screen preview counterpart to the
// DXF backend: same primitives, same mm coordinates, colors resolved from
// the ACI indices of the sheet configuration.
package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/wanshade/labels/layout"
	"github.com/wanshade/labels/renderer"
)

// Renderer draws pages via github.com/tdewolff/canvas.
type Renderer struct {
	cfg layout.SheetConfig

	fontOnce sync.Once
	family   *canvas.FontFamily
	fontErr  error
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates a PDF renderer using cfg for layer colors.
func NewRenderer(cfg layout.SheetConfig) *Renderer {
	return &Renderer{cfg: cfg}
}

// Ext implements renderer.Renderer.
func (r *Renderer) Ext() string { return ".pdf" }

// RenderPage implements renderer.Renderer. Each page becomes a standalone
// single-page PDF sized to the sheet canvas.
func (r *Renderer) RenderPage(page *layout.Page) ([]byte, error) {
	if page == nil {
		return nil, fmt.Errorf("render: nil page")
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, page.Width, page.Height, nil)

	c := canvas.New(page.Width, page.Height)
	ctx := canvas.NewContext(c)

	for _, p := range page.Primitives {
		if err := r.drawPrimitive(ctx, p); err != nil {
			return nil, err
		}
	}
	c.RenderTo(writer)

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawPrimitive(ctx *canvas.Context, p layout.Primitive) error {
	switch e := p.(type) {
	case layout.Line:
		ctx.SetStrokeColor(r.layerColor(e.Layer))
		ctx.SetStrokeWidth(r.cfg.LineWidth)
		path := &canvas.Path{}
		path.MoveTo(0, 0)
		path.LineTo(e.P2.X-e.P1.X, e.P2.Y-e.P1.Y)
		ctx.DrawPath(e.P1.X, e.P1.Y, path)
	case layout.Polyline:
		if len(e.Points) < 2 {
			return nil
		}
		w := e.Width
		if w <= 0 {
			w = r.cfg.LineWidth
		}
		ctx.SetStrokeColor(r.layerColor(e.Layer))
		ctx.SetStrokeWidth(w)
		path := &canvas.Path{}
		path.MoveTo(0, 0)
		for _, pt := range e.Points[1:] {
			path.LineTo(pt.X-e.Points[0].X, pt.Y-e.Points[0].Y)
		}
		ctx.DrawPath(e.Points[0].X, e.Points[0].Y, path)
	case layout.FilledPolygon:
		if len(e.Points) < 3 {
			return nil
		}
		ctx.SetFillColor(aciColor(e.Color))
		ctx.SetStrokeColor(color.RGBA{})
		path := &canvas.Path{}
		path.MoveTo(0, 0)
		for _, pt := range e.Points[1:] {
			path.LineTo(pt.X-e.Points[0].X, pt.Y-e.Points[0].Y)
		}
		path.Close()
		ctx.DrawPath(e.Points[0].X, e.Points[0].Y, path)
	case layout.Text:
		face, err := r.fontFace(e.Height, r.layerColor(e.Layer))
		if err != nil {
			return err
		}
		line := canvas.NewTextLine(face, e.Content, canvas.Left)
		ctx.DrawText(e.Anchor.X, e.Anchor.Y, line)
	default:
		return fmt.Errorf("render: unsupported primitive kind %q", p.Kind())
	}
	return nil
}

// fontFace resolves the configured text style lazily. The declared style
// maps to the Calibri system font; when it is not installed, the generic
// sans-serif family stands in so previews still render.
func (r *Renderer) fontFace(heightMM float64, col color.Color) (*canvas.FontFace, error) {
	r.fontOnce.Do(func() {
		family := canvas.NewFontFamily(layout.TextStyle)
		if err := family.LoadSystemFont("Calibri", canvas.FontRegular); err != nil {
			if err := family.LoadSystemFont("sans-serif", canvas.FontRegular); err != nil {
				r.fontErr = fmt.Errorf("load preview font: %w", err)
				return
			}
		}
		r.family = family
	})
	if r.fontErr != nil {
		return nil, r.fontErr
	}
	return r.family.Face(heightMM*layout.MmToPt, col, canvas.FontRegular, canvas.FontNormal), nil
}

func (r *Renderer) layerColor(layer string) color.Color {
	switch layer {
	case layout.LayerCutting:
		return aciColor(r.cfg.CuttingColor)
	case layout.LayerBreak:
		return aciColor(r.cfg.BreakColor)
	default:
		return aciColor(r.cfg.TextColor)
	}
}

// aciColor maps the small AutoCAD color indices used here to RGB. Unknown
// indices fall back to black.
func aciColor(idx int) color.Color {
	switch idx {
	case 1:
		return canvas.RGBA(1, 0, 0, 1)
	case 2:
		return canvas.RGBA(1, 1, 0, 1)
	case 3:
		return canvas.RGBA(0, 1, 0, 1)
	case 4:
		return canvas.RGBA(0, 1, 1, 1)
	case 5:
		return canvas.RGBA(0, 0, 1, 1)
	case 6:
		return canvas.RGBA(1, 0, 1, 1)
	default:
		return canvas.RGBA(0, 0, 0, 1)
	}
}
