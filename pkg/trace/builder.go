package trace

import (
	"bufio"
	"io"
)

// Frame is a node in the weighted call tree. Children keep first-seen order
// so that the flame layout is stable across runs over the same input.
type Frame struct {
	Name     string   `json:"name"`
	Value    int64    `json:"value"`
	Children []*Frame `json:"children,omitempty"`
}

// child returns the direct child with the given name, creating it with zero
// weight when absent. Lookup is a linear scan; stacks are short and branching
// is narrow so this beats paying for a map per node.
func (f *Frame) child(name string) *Frame {
	for _, c := range f.Children {
		if c.Name == name {
			return c
		}
	}
	c := &Frame{Name: name}
	f.Children = append(f.Children, c)
	return c
}

// MergeStack merges one root-first stack into root with the given weight.
// The root's weight grows by the full stack weight, then every frame along
// the path is found or created and incremented. Two occurrences of the same
// name at different depths stay distinct nodes.
func MergeStack(root *Frame, stack []string, weight int64) {
	root.Value += weight
	current := root
	for _, name := range stack {
		current = current.child(name)
		current.Value += weight
	}
}

// Builder accumulates classified trace lines into a shared weighted tree.
// It degrades gracefully: malformed lines contribute nothing and no input,
// however mangled, makes it return an error.
type Builder struct {
	root   *Frame
	stack  []string
	weight int64
}

// NewBuilder returns a Builder with a fresh synthetic root.
func NewBuilder() *Builder {
	return &Builder{
		root:   &Frame{Name: "root"},
		weight: 1,
	}
}

// Consume classifies one line and folds it into the builder state.
func (b *Builder) Consume(line string) {
	c := Classify(line)
	switch c.Kind {
	case LineBoundary:
		b.flush()
	case LineSampleCount:
		b.weight = c.Weight
	case LineFrame:
		b.stack = append(b.stack, c.Frame)
	}
}

// Finish flushes any stack still pending (end of input is an implicit
// boundary) and returns the root of the merged tree.
func (b *Builder) Finish() *Frame {
	b.flush()
	return b.root
}

func (b *Builder) flush() {
	if len(b.stack) == 0 {
		return
	}

	// Frames are discovered leaf-first as the text is read top-down, but
	// the tree is rooted caller-first.
	for i, j := 0, len(b.stack)-1; i < j; i, j = i+1, j-1 {
		b.stack[i], b.stack[j] = b.stack[j], b.stack[i]
	}

	MergeStack(b.root, b.stack, b.weight)
	b.stack = nil
	b.weight = 1
}

// Parse reads raw multi-line stack-trace text and returns the merged call
// tree. Unparseable input yields a root with zero weight and no children.
func Parse(r io.Reader) *Frame {
	b := NewBuilder()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		b.Consume(scanner.Text())
	}
	return b.Finish()
}
