package formats

import "github.com/Faultbox/grf-graphics/pkg/graphics"

// InstanceMatrix returns the world transform of a model placed on a map.
// Rotation is in degrees as stored by map files; Z and X turn the opposite way
// to Y:
//
//	T(position) * Rz(-rotation.Z) * Rx(-rotation.X) * Ry(rotation.Y) * S(scale)
func InstanceMatrix(position, rotation, scale graphics.Vector3) graphics.Matrix4 {
	m := graphics.TranslationMatrix(position)
	m = graphics.RotateZ(m, -graphics.DegreesToRadians(rotation.Z))
	m = graphics.RotateX(m, -graphics.DegreesToRadians(rotation.X))
	m = graphics.RotateY(m, graphics.DegreesToRadians(rotation.Y))
	return graphics.Scale(m, scale)
}

// InstanceBoundingBox returns the view-space box of the model placed with
// InstanceMatrix. Every vertex is transformed, so rotated instances get a
// tight axis-aligned box; the result is flipped with ReverseY since map
// space has Y pointing down.
func (rsm *RSM) InstanceBoundingBox(position, rotation, scale graphics.Vector3, animTimeMs float32) graphics.BoundingBox {
	inst := InstanceMatrix(position, rotation, scale)
	b := graphics.NewBoundingBox()
	for i := range rsm.Nodes {
		node := &rsm.Nodes[i]
		m := graphics.Multiply(inst, NodeMatrix(rsm, node, animTimeMs))
		for _, v := range node.Vertices {
			b.Include(m.TransformPoint(v))
		}
	}
	if b.IsEmpty() {
		return b
	}
	b.Recalculate()
	return b.ReverseY()
}
