package layout

import (
	"image"
	"math"
	"sort"
)

// QR symbol sizes: version 1 is 21 modules, version 40 is 177.
const (
	minModules = 21
	maxModules = 177
)

// darkAt reports whether the pixel at (x, y) reads as a dark module. The
// threshold splits 8-bit luma at the midpoint, which handles anti-aliased
// edges from scaled exports well enough because sampling happens at module
// centers.
func darkAt(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(img.Bounds().Min.X+x, img.Bounds().Min.Y+y).RGBA()
	luma := (299*r + 587*g + 114*b) / 1000
	return luma < 128<<8
}

// darkBounds finds the bounding box of dark pixels, in coordinates relative
// to the image bounds. ok is false when the image has no dark pixel at all.
func darkBounds(img image.Image) (x0, y0, x1, y1 int, ok bool) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	x0, y0 = w, h
	x1, y1 = -1, -1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !darkAt(img, x, y) {
				continue
			}
			if x < x0 {
				x0 = x
			}
			if x > x1 {
				x1 = x
			}
			if y < y0 {
				y0 = y
			}
			if y > y1 {
				y1 = y
			}
		}
	}
	return x0, y0, x1, y1, x1 >= 0
}

// median returns the middle value of vs. vs is sorted in place.
func median(vs []float64) float64 {
	sort.Float64s(vs)
	n := len(vs)
	if n%2 == 1 {
		return vs[n/2]
	}
	return (vs[n/2-1] + vs[n/2]) / 2
}

// estimateModulePx estimates the pixel size of one module inside the cropped
// symbol by measuring gaps between dark/light transitions along sampled rows
// and columns. Gaps outside [0.5, 1.5] of the first median are discarded as
// noise or multi-module runs before the final median is taken.
func estimateModulePx(img image.Image, x0, y0, x1, y1 int) int {
	w := x1 - x0 + 1
	h := y1 - y0 + 1

	// Gaps between consecutive dark/light boundaries along one scan line.
	// The leading and trailing runs are not counted; only fully enclosed
	// runs contribute, as they are the ones bounded by two transitions.
	var gaps []float64
	scan := func(along int, at func(i int) (x, y int)) {
		prev := -1
		x, y := at(0)
		prevDark := darkAt(img, x, y)
		for i := 1; i < along; i++ {
			x, y = at(i)
			d := darkAt(img, x, y)
			if d == prevDark {
				continue
			}
			if prev >= 0 {
				gaps = append(gaps, float64(i-prev))
			}
			prev = i
			prevDark = d
		}
	}

	rowStep := h / 10
	if rowStep < 1 {
		rowStep = 1
	}
	for y := y0; y <= y1; y += rowStep {
		row := y
		scan(w, func(i int) (int, int) { return x0 + i, row })
	}
	colStep := w / 10
	if colStep < 1 {
		colStep = 1
	}
	for x := x0; x <= x1; x += colStep {
		col := x
		scan(h, func(i int) (int, int) { return col, y0 + i })
	}

	if len(gaps) == 0 {
		side := w
		if h < side {
			side = h
		}
		px := side / minModules
		if px < 1 {
			px = 1
		}
		return px
	}

	m := median(append([]float64(nil), gaps...))
	kept := gaps[:0]
	for _, g := range gaps {
		if g >= 0.5*m && g <= 1.5*m {
			kept = append(kept, g)
		}
	}
	if len(kept) > 0 {
		m = median(kept)
	}
	px := int(math.Round(m))
	if px < 1 {
		px = 1
	}
	return px
}

// vectorizeQR converts a rasterized QR code into one filled square per dark
// module, scaled so the whole symbol spans sizeMM and anchored at origin
// (bottom-left, sheet coordinates). A raster with no dark pixels yields nil.
//
// The module grid is recovered from the image: the symbol is cropped to its
// dark bounding box, the per-module pixel pitch is estimated from transition
// gaps, and each module is classified by its center pixel. The module count
// is clamped to the valid symbol range so a noisy estimate cannot explode
// the output.
func vectorizeQR(img image.Image, origin Point, sizeMM float64, colorIdx int) []Primitive {
	x0, y0, x1, y1, ok := darkBounds(img)
	if !ok {
		return nil
	}
	w := x1 - x0 + 1
	h := y1 - y0 + 1

	px := estimateModulePx(img, x0, y0, x1, y1)
	n := int(math.Round(float64(w) / float64(px)))
	if m := int(math.Round(float64(h) / float64(px))); m > n {
		n = m
	}
	if n < minModules {
		n = minModules
	}
	if n > maxModules {
		n = maxModules
	}

	mm := sizeMM / float64(n)
	var out []Primitive
	for r := 0; r < n; r++ {
		iy := int((float64(r) + 0.5) * float64(h) / float64(n))
		if iy > h-1 {
			iy = h - 1
		}
		for c := 0; c < n; c++ {
			ix := int((float64(c) + 0.5) * float64(w) / float64(n))
			if ix > w-1 {
				ix = w - 1
			}
			if !darkAt(img, x0+ix, y0+iy) {
				continue
			}
			// Raster rows count downward; sheet Y grows upward.
			bx := origin.X + float64(c)*mm
			by := origin.Y + float64(n-1-r)*mm
			out = append(out, FilledPolygon{
				Points: []Point{
					{X: bx, Y: by},
					{X: bx + mm, Y: by},
					{X: bx + mm, Y: by + mm},
					{X: bx, Y: by + mm},
				},
				Layer: LayerQR,
				Color: colorIdx,
			})
		}
	}
	return out
}
