package layout

import "github.com/go-drift/mvu/pkg/graphics"

// Node is the resolved layout of one widget.
// Position is relative to the parent node; Children follow widget order.
type Node struct {
	Size     graphics.Size
	Position graphics.Offset
	Children []Node
}

// NewNode returns a leaf node of the given size.
func NewNode(size graphics.Size) Node {
	return Node{Size: size}
}

// WithChildren returns a node of the given size holding children.
func WithChildren(size graphics.Size, children []Node) Node {
	return Node{Size: size, Children: children}
}

// Move returns a copy of the node placed at position.
func (n Node) Move(position graphics.Offset) Node {
	n.Position = position
	return n
}

// Bounds returns the node rectangle in parent coordinates.
func (n Node) Bounds() graphics.Rect {
	return graphics.RectFromOffsetSize(n.Position, n.Size)
}

// Child returns the i-th child, or a zero node when the index is out of range.
// Layout of a panicking widget may produce fewer children than widgets.
func (n Node) Child(i int) Node {
	if i < 0 || i >= len(n.Children) {
		return Node{}
	}
	return n.Children[i]
}
