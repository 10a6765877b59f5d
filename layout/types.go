package layout

// This file defines the drawing primitives shared by layout computation,
// output renderers and the debug JSON dump. All coordinates are sheet
// coordinates in millimeters with the origin at the bottom-left corner and
// Y increasing upward.

// Layer names in the output document. Cutting carries page-boundary edges,
// Break carries interior fold edges, TEXT carries label text and the divider,
// QR carries the vectorized module squares.
const (
	LayerCutting = "Cutting"
	LayerBreak   = "Break"
	LayerText    = "TEXT"
	LayerQR      = "QR"
)

// TextStyle is the style name declared on every text primitive. Renderers
// map it to an actual font; the layout never rasterizes glyphs.
const TextStyle = "CALIBRI"

// Point is a position on the sheet in millimeters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Primitive is one immutable drawing instruction. Primitives are created by
// the layout, consumed in order by an output sink, and never mutated.
type Primitive interface {
	// Kind returns a short tag identifying the primitive type.
	Kind() string
}

// Line is a single straight segment tagged with its layer.
type Line struct {
	P1    Point  `json:"p1"`
	P2    Point  `json:"p2"`
	Layer string `json:"layer"`
}

func (Line) Kind() string { return "line" }

// Polyline is an open stroked path with a constant stroke width.
type Polyline struct {
	Points []Point `json:"points"`
	Layer  string  `json:"layer"`
	Width  float64 `json:"width"` // stroke width (mm)
}

func (Polyline) Kind() string { return "polyline" }

// FilledPolygon is a closed filled path. Points describe the outline; the
// closing edge back to the first point is implicit.
type FilledPolygon struct {
	Points []Point `json:"points"`
	Layer  string  `json:"layer"`
	Color  int     `json:"color"` // ACI color index
}

func (FilledPolygon) Kind() string { return "polygon" }

// Text is a styled text insertion anchored at its bottom-left corner.
// Content is not shaped or measured here; the declared style and character
// height travel with the primitive for the sink to resolve.
type Text struct {
	Content string  `json:"content"`
	Anchor  Point   `json:"anchor"`
	Height  float64 `json:"height"` // character height (mm)
	Layer   string  `json:"layer"`
	Style   string  `json:"style"`
}

func (Text) Kind() string { return "text" }

// Page is one fixed-capacity arrangement of label cells, the unit of output
// artifact generation. Primitives are ordered: per label, borders first, then
// text and divider, then QR squares.
type Page struct {
	Index      int         `json:"index"` // 0-based ordinal in the run
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Labels     int         `json:"labels"` // number of label cells on this page
	Primitives []Primitive `json:"primitives"`
}

// Result holds all generated pages together with the configuration that
// produced them.
type Result struct {
	Pages  []Page      `json:"pages"`
	Config SheetConfig `json:"config"`
}
