// Package flame turns weighted call trees into renderable flamegraph
// geometry: one rectangle per frame, with a normalized horizontal span and a
// discrete depth.
package flame

import (
	"github.com/gophertrace/flameprof/pkg/trace"
)

// Rect is one renderable flamegraph rectangle. X and Width are fractions of
// the root span [0,1); Depth is the distance from the root.
type Rect struct {
	Frame *trace.Frame `json:"-"`
	Name  string       `json:"name"`
	Value int64        `json:"value"`
	Depth int          `json:"depth"`
	X     float64      `json:"x"`
	Width float64      `json:"width"`
}

// Layout computes the rectangle for every node of the tree, depth-first and
// pre-order: a parent always precedes its children in the result. Consumers
// rely on that ordering when drawing.
func Layout(root *trace.Frame) []Rect {
	if root == nil {
		return nil
	}
	var rects []Rect
	visit(root, 0, 0, 1, &rects)
	return rects
}

func visit(f *trace.Frame, depth int, x, width float64, out *[]Rect) {
	*out = append(*out, Rect{
		Frame: f,
		Name:  f.Name,
		Value: f.Value,
		Depth: depth,
		X:     x,
		Width: width,
	})

	if len(f.Children) == 0 {
		return
	}

	var total int64
	for _, c := range f.Children {
		total += c.Value
	}

	cursor := x
	for _, c := range f.Children {
		var w float64
		if total == 0 {
			// All children weigh nothing: share the span equally so
			// they stay visible.
			w = width / float64(len(f.Children))
		} else {
			w = width * float64(c.Value) / float64(total)
		}
		visit(c, depth+1, cursor, w, out)
		cursor += w
	}
}

// MaxDepth reports the number of levels the layout of root spans: the
// maximum emitted depth plus one. A root with no children reports zero,
// which is what an unparseable input produces. Callers treat trees shallower
// than four levels as too thin to display.
func MaxDepth(root *trace.Frame) int {
	if root == nil || len(root.Children) == 0 {
		return 0
	}
	return levels(root)
}

func levels(f *trace.Frame) int {
	deepest := 0
	for _, c := range f.Children {
		if d := levels(c); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}
