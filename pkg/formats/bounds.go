package formats

import "github.com/Faultbox/grf-graphics/pkg/graphics"

// BoundingBox returns the box around the node's vertices transformed by m.
// A node without vertices yields an empty box.
func (n *RSMNode) BoundingBox(m graphics.Matrix4) graphics.BoundingBox {
	b := graphics.NewBoundingBox()
	for _, v := range n.Vertices {
		b.Include(m.TransformPoint(v))
	}
	if !b.IsEmpty() {
		b.Recalculate()
	}
	return b
}

// BoundingBox returns the model-space box of every node posed at animTimeMs.
// Node boxes are merged with graphics.Union and the result is recalculated so
// Offset is populated as well.
func (rsm *RSM) BoundingBox(animTimeMs float32) graphics.BoundingBox {
	b := graphics.NewBoundingBox()
	for i := range rsm.Nodes {
		node := &rsm.Nodes[i]
		b = graphics.Union(b, node.BoundingBox(NodeMatrix(rsm, node, animTimeMs)))
	}
	if !b.IsEmpty() {
		b.Recalculate()
	}
	return b
}

// GroundedBoundingBox returns the model box centred on the origin in X and Z
// with its lowest point at Y = 0.
func (rsm *RSM) GroundedBoundingBox(animTimeMs float32) graphics.BoundingBox {
	b := rsm.BoundingBox(animTimeMs)
	if b.IsEmpty() {
		return b
	}
	return b.BaseCenter()
}
