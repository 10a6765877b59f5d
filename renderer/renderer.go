// Package renderer defines the output sink contract shared by the DXF and
// PDF backends. A renderer consumes one laid-out page at a time and produces
// the encoded artifact bytes; it never mutates the page.
package renderer

import (
	"github.com/wanshade/labels/layout"
)

// Renderer encodes one page into an output document.
type Renderer interface {
	// RenderPage encodes a single page. Pages of one run are independent
	// documents; the caller decides file naming and packaging.
	RenderPage(page *layout.Page) ([]byte, error)
	// Ext returns the file extension for this backend, with the dot.
	Ext() string
}
