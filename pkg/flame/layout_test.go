package flame

import (
	"math"
	"testing"

	"github.com/gophertrace/flameprof/pkg/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-9

func TestLayoutProportionalWidths(t *testing.T) {
	root := &trace.Frame{Name: "root"}
	trace.MergeStack(root, []string{"a", "b"}, 3)
	trace.MergeStack(root, []string{"a", "c"}, 5)

	rects := Layout(root)
	require.Len(t, rects, 4)

	// Pre-order: root, a, b, c.
	assert.Equal(t, "root", rects[0].Name)
	assert.Equal(t, "a", rects[1].Name)
	assert.Equal(t, "b", rects[2].Name)
	assert.Equal(t, "c", rects[3].Name)

	assert.Equal(t, 0, rects[0].Depth)
	assert.Equal(t, 1, rects[1].Depth)
	assert.Equal(t, 2, rects[2].Depth)
	assert.Equal(t, 2, rects[3].Depth)

	a := rects[1]
	assert.InDelta(t, 1.0, a.Width, epsilon)
	assert.InDelta(t, 3.0/8.0*a.Width, rects[2].Width, epsilon)
	assert.InDelta(t, 5.0/8.0*a.Width, rects[3].Width, epsilon)

	// Children are placed contiguously from the parent's left edge.
	assert.InDelta(t, a.X, rects[2].X, epsilon)
	assert.InDelta(t, a.X+rects[2].Width, rects[3].X, epsilon)
}

func TestLayoutOneRectPerNodeAndChildrenSumToParent(t *testing.T) {
	root := DemoTree("app", 5, "cpu")
	rects := Layout(root)

	assert.Equal(t, countNodes(root), len(rects))

	byFrame := map[*trace.Frame]Rect{}
	for _, r := range rects {
		byFrame[r.Frame] = r
	}

	var check func(f *trace.Frame)
	check = func(f *trace.Frame) {
		parent := byFrame[f]
		assert.GreaterOrEqual(t, parent.X, 0.0)
		assert.LessOrEqual(t, parent.X+parent.Width, 1.0+epsilon)

		if len(f.Children) > 0 {
			sum := 0.0
			for _, c := range f.Children {
				sum += byFrame[c].Width
			}
			assert.InDelta(t, parent.Width, sum, epsilon)
		}
		for _, c := range f.Children {
			check(c)
		}
	}
	check(root)
}

func TestLayoutZeroWeightChildrenShareEqually(t *testing.T) {
	root := &trace.Frame{Name: "root", Value: 10, Children: []*trace.Frame{
		{Name: "x"},
		{Name: "y"},
		{Name: "z"},
	}}

	rects := Layout(root)
	require.Len(t, rects, 4)
	for _, r := range rects[1:] {
		assert.InDelta(t, 1.0/3.0, r.Width, epsilon)
	}
	assert.InDelta(t, 0.0, rects[1].X, epsilon)
	assert.InDelta(t, 1.0/3.0, rects[2].X, epsilon)
	assert.InDelta(t, 2.0/3.0, rects[3].X, epsilon)
}

func TestLayoutPreOrderParentsFirst(t *testing.T) {
	root := DemoTree("app", 5, "mem")
	rects := Layout(root)

	seen := map[*trace.Frame]bool{}
	index := map[*trace.Frame]int{}
	for i, r := range rects {
		seen[r.Frame] = true
		index[r.Frame] = i
	}

	var walk func(f *trace.Frame)
	walk = func(f *trace.Frame) {
		for _, c := range f.Children {
			assert.True(t, seen[c])
			assert.Greater(t, index[c], index[f])
			walk(c)
		}
	}
	walk(root)
}

func TestMaxDepth(t *testing.T) {
	assert.Equal(t, 0, MaxDepth(nil))
	assert.Equal(t, 0, MaxDepth(&trace.Frame{Name: "root"}))

	root := &trace.Frame{Name: "root"}
	trace.MergeStack(root, []string{"a"}, 1)
	assert.Equal(t, 2, MaxDepth(root))

	trace.MergeStack(root, []string{"a", "b", "c"}, 1)
	assert.Equal(t, 4, MaxDepth(root))

	// The emitted rectangles agree with the computed depth.
	deepest := 0
	for _, r := range Layout(root) {
		if r.Depth > deepest {
			deepest = r.Depth
		}
	}
	assert.Equal(t, deepest+1, MaxDepth(root))
}

func TestLayoutWidthsFinite(t *testing.T) {
	for _, kind := range []string{"cpu", "mem"} {
		for _, r := range Layout(DemoTree("app", 1, kind)) {
			assert.False(t, math.IsNaN(r.Width) || math.IsInf(r.Width, 0))
			assert.GreaterOrEqual(t, r.Width, 0.0)
		}
	}
}

func countNodes(f *trace.Frame) int {
	n := 1
	for _, c := range f.Children {
		n += countNodes(c)
	}
	return n
}
