package arbor

// Layout constants, in logical (pre-pan/zoom) units.
const (
	// NodeWidth and NodeHeight are the fixed dimensions of every node box.
	NodeWidth  = 160.0
	NodeHeight = 70.0

	// RootY is the vertical offset of the root node from the top.
	RootY = 100.0

	// ChildGap is the horizontal distance between consecutive children.
	ChildGap = 220.0

	// ChildDrop is the vertical offset from the root's Y to its children's Y.
	ChildDrop = 120.0
)

// LayoutNode is a positioned entity box in logical space. Layouts are
// recomputed every frame and never persisted.
type LayoutNode struct {
	Entity Entity
	X, Y   float64
	Width  float64
	Height float64
}

// CenterX returns the horizontal center of the node.
func (n LayoutNode) CenterX() float64 {
	return n.X + n.Width/2
}

// LayoutEdge is a straight connector from a parent node's bottom-center to
// a child node's top-center, in logical space.
type LayoutEdge struct {
	X1, Y1 float64
	X2, Y2 float64
}

// ComputeLayout positions the tree described by entities against the given
// surface width: the root is horizontally centered, its children sit one
// row below, distributed around the root's center with ChildGap spacing.
// Children keep the order they appear in entities (left to right).
//
// The function is pure and deterministic; it is safe to call every frame.
// A collection with no rootless entity yields an empty layout.
func ComputeLayout(entities []Entity, surfaceWidth float64) ([]LayoutNode, []LayoutEdge) {
	var root *Entity
	for i := range entities {
		if entities[i].IsRoot() {
			root = &entities[i]
			break
		}
	}
	if root == nil {
		return nil, nil
	}

	rootNode := LayoutNode{
		Entity: *root,
		X:      surfaceWidth/2 - NodeWidth/2,
		Y:      RootY,
		Width:  NodeWidth,
		Height: NodeHeight,
	}

	var children []Entity
	for _, e := range entities {
		if e.ParentID == root.ID {
			children = append(children, e)
		}
	}

	nodes := make([]LayoutNode, 0, len(children)+1)
	nodes = append(nodes, rootNode)
	edges := make([]LayoutEdge, 0, len(children))

	rootCenterX := rootNode.CenterX()
	startX := rootCenterX - float64(len(children)-1)*ChildGap/2
	childY := rootNode.Y + ChildDrop

	for i, child := range children {
		node := LayoutNode{
			Entity: child,
			X:      startX + float64(i)*ChildGap,
			Y:      childY,
			Width:  NodeWidth,
			Height: NodeHeight,
		}
		nodes = append(nodes, node)
		edges = append(edges, LayoutEdge{
			X1: rootCenterX,
			Y1: rootNode.Y + rootNode.Height,
			X2: node.CenterX(),
			Y2: node.Y,
		})
	}

	return nodes, edges
}
