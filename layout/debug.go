package layout

import (
	"encoding/json"
	"fmt"
	"io"
)

// MarshalJSON emits the page with each primitive tagged by its kind, so the
// dump stays self-describing after the Go types are gone.
func (p Page) MarshalJSON() ([]byte, error) {
	prims := make([]json.RawMessage, 0, len(p.Primitives))
	for _, pr := range p.Primitives {
		raw, err := marshalPrimitive(pr)
		if err != nil {
			return nil, err
		}
		prims = append(prims, raw)
	}
	return json.Marshal(struct {
		Index      int               `json:"index"`
		Width      float64           `json:"width"`
		Height     float64           `json:"height"`
		Labels     int               `json:"labels"`
		Primitives []json.RawMessage `json:"primitives"`
	}{p.Index, p.Width, p.Height, p.Labels, prims})
}

func marshalPrimitive(p Primitive) (json.RawMessage, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	if len(raw) < 2 || raw[0] != '{' {
		return nil, fmt.Errorf("primitive %q did not marshal to an object", p.Kind())
	}
	tagged := []byte(fmt.Sprintf("{%q:%q", "kind", p.Kind()))
	if len(raw) > 2 {
		tagged = append(tagged, ',')
	}
	tagged = append(tagged, raw[1:]...)
	return tagged, nil
}

// WriteDebugJSON dumps the whole result as indented JSON. The dump is for
// inspection and diffing, not for round-tripping back into a Result.
func WriteDebugJSON(w io.Writer, res *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
