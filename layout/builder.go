package layout

import (
	"errors"
	"image"
)

var errZeroCapacity = errors.New("layout: page capacity is zero")

// Divider stroke between the logo block and the QR area, relative to the
// cell's top-left corner in content coordinates.
const (
	dividerX    = 12.2
	dividerTop  = 2.2
	dividerBase = 10.2
)

// Build lays out labels onto as many pages as needed and returns the full
// primitive stream per page. Labels keep their input order; each page holds
// at most cfg.Capacity() cells. rasters maps label names to QR images to be
// vectorized in place; labels without a raster are laid out without a QR
// splice. An empty label list yields a result with zero pages.
func Build(labels []string, rasters map[string]image.Image, cfg SheetConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	capacity := cfg.Capacity()
	if capacity == 0 {
		// Validate guarantees label <= canvas per axis, so this is
		// unreachable; kept so a future config change fails loudly.
		return nil, errZeroCapacity
	}

	res := &Result{Config: cfg}
	for start := 0; start < len(labels); start += capacity {
		end := start + capacity
		if end > len(labels) {
			end = len(labels)
		}
		page := buildPage(labels[start:end], rasters, cfg)
		page.Index = len(res.Pages)
		res.Pages = append(res.Pages, page)
	}
	return res, nil
}

// buildPage arranges one page worth of labels. len(labels) must not exceed
// cfg.Capacity().
func buildPage(labels []string, rasters map[string]image.Image, cfg SheetConfig) Page {
	cols := cfg.Cols()
	usedCols := cols
	if len(labels) < usedCols {
		usedCols = len(labels)
	}
	usedRows := (len(labels) + cols - 1) / cols
	gridH := float64(usedRows) * cfg.LabelHeight

	page := Page{
		Width:  cfg.CanvasWidth,
		Height: cfg.CanvasHeight,
		Labels: len(labels),
	}
	for idx, name := range labels {
		col, row := idx%cols, idx/cols
		x := float64(col) * cfg.LabelWidth
		y := float64(row) * cfg.LabelHeight

		page.Primitives = append(page.Primitives, cellBorders(cfg, gridH, x, y, col, row, usedCols, usedRows)...)
		page.Primitives = append(page.Primitives, labelContent(cfg, gridH, x, y, name)...)

		if img, ok := rasters[name]; ok && img != nil {
			origin := Point{
				X: x + cfg.QRXOffset,
				Y: gridH - (y + cfg.QRYOffset + cfg.QRSize),
			}
			page.Primitives = append(page.Primitives, vectorizeQR(img, origin, cfg.QRSize, cfg.TextColor)...)
		}
	}
	return page
}

// cellBorders emits the four edges of one cell. Edges on the boundary of the
// used grid go to the Cutting layer, interior edges to Break, so shared edges
// between neighbouring cells are drawn twice but always classified the same
// way from both sides.
func cellBorders(cfg SheetConfig, gridH, x, y float64, col, row, usedCols, usedRows int) []Primitive {
	bx, by := x, gridH-y-cfg.LabelHeight // cell bottom-left, sheet coords
	w, h := cfg.LabelWidth, cfg.LabelHeight

	layer := func(outer bool) string {
		if outer {
			return LayerCutting
		}
		return LayerBreak
	}
	return []Primitive{
		Line{P1: Point{bx, by}, P2: Point{bx + w, by}, Layer: layer(row == usedRows-1)},
		Line{P1: Point{bx + w, by}, P2: Point{bx + w, by + h}, Layer: layer(col == usedCols-1)},
		Line{P1: Point{bx + w, by + h}, P2: Point{bx, by + h}, Layer: layer(row == 0)},
		Line{P1: Point{bx, by + h}, P2: Point{bx, by}, Layer: layer(col == 0)},
	}
}

// labelContent emits the five text lines and the vertical divider of one
// cell. (x, y) is the cell's top-left corner in content coordinates; gridH
// flips content Y into sheet Y.
func labelContent(cfg SheetConfig, gridH, x, y float64, name string) []Primitive {
	flipY := func(sy float64) float64 { return gridH - sy }

	texts := []struct {
		content string
		anchor  TextAnchor
	}{
		{cfg.OrgName, cfg.Anchors.Org},
		{cfg.Subtitle1, cfg.Anchors.Subtitle1},
		{cfg.Subtitle2, cfg.Anchors.Subtitle2},
		{name, cfg.Anchors.Name},
		{cfg.FooterText, cfg.Anchors.Footer},
	}

	out := make([]Primitive, 0, len(texts)+1)
	for _, t := range texts {
		out = append(out, Text{
			Content: t.content,
			Anchor:  Point{X: x + t.anchor.DX, Y: flipY(y + t.anchor.DY)},
			Height:  t.anchor.Height,
			Layer:   LayerText,
			Style:   TextStyle,
		})
	}
	out = append(out, Polyline{
		Points: []Point{
			{X: x + dividerX, Y: flipY(y + dividerTop)},
			{X: x + dividerX, Y: flipY(y + dividerBase)},
		},
		Layer: LayerText,
		Width: cfg.LineWidth,
	})
	return out
}
