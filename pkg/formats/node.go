package formats

import "github.com/Faultbox/grf-graphics/pkg/graphics"

// NodeMatrix returns the matrix that takes a node's vertices to model space at
// animTimeMs. It is the inherited hierarchy transform
// (parent * Position * Rotation * Scale) followed by the node's own Offset and
// Matrix, which children do not inherit.
func NodeMatrix(rsm *RSM, node *RSMNode, animTimeMs float32) graphics.Matrix4 {
	visited := make(map[string]bool)
	m := hierarchyMatrix(rsm, node, animTimeMs, visited)
	m = graphics.Translate(m, node.Offset)
	return graphics.Multiply(m, node.Matrix.ToMatrix4())
}

// hierarchyMatrix returns the transform children inherit from node.
func hierarchyMatrix(rsm *RSM, node *RSMNode, animTimeMs float32, visited map[string]bool) graphics.Matrix4 {
	if visited[node.Name] {
		return graphics.Identity()
	}
	visited[node.Name] = true

	local := graphics.TranslationMatrix(node.Position)

	// Axis-angle or keyframes, never both.
	if len(node.RotKeys) > 0 {
		local = graphics.RotateQuaternion(local, InterpolateRotKeys(node.RotKeys, animTimeMs))
	} else if node.RotAngle != 0 {
		local = graphics.Rotate(local, node.RotAngle, node.RotAxis)
	}

	local = graphics.Scale(local, node.Scale)
	if len(node.ScaleKeys) > 0 {
		local = graphics.Scale(local, InterpolateScaleKeys(node.ScaleKeys, animTimeMs))
	}

	if node.Parent != "" && node.Parent != node.Name {
		if parent := rsm.GetNodeByName(node.Parent); parent != nil {
			return graphics.Multiply(hierarchyMatrix(rsm, parent, animTimeMs, visited), local)
		}
	}
	return local
}

// keyframeSpan finds the keys surrounding timeMs in a frame-sorted sequence.
// prev == next when timeMs is before the first key or at or past the last one;
// otherwise t is the blend factor from prev to next.
func keyframeSpan(frames func(i int) int32, n int, timeMs float32) (prev, next int, t float32) {
	for i := 0; i < n; i++ {
		if float32(frames(i)) > timeMs {
			next = i
			break
		}
		prev = i
		next = i
	}
	if prev == next {
		return prev, next, 0
	}
	f0, f1 := frames(prev), frames(next)
	if f1 != f0 {
		t = (timeMs - float32(f0)) / float32(f1-f0)
	}
	return prev, next, t
}

// InterpolateRotKeys samples rotation keys at timeMs with Slerp. Times past
// the last key hold the last rotation.
func InterpolateRotKeys(keys []RSMRotKeyframe, timeMs float32) graphics.Quaternion {
	switch len(keys) {
	case 0:
		return graphics.QuaternionIdentity()
	case 1:
		return keys[0].Rotation
	}
	prev, next, t := keyframeSpan(func(i int) int32 { return keys[i].Frame }, len(keys), timeMs)
	if prev == next {
		return keys[prev].Rotation
	}
	return graphics.Slerp(keys[prev].Rotation, keys[next].Rotation, t)
}

// InterpolateScaleKeys samples scale keys at timeMs linearly.
func InterpolateScaleKeys(keys []RSMScaleKeyframe, timeMs float32) graphics.Vector3 {
	switch len(keys) {
	case 0:
		return graphics.Vector3One
	case 1:
		return keys[0].Scale
	}
	prev, next, t := keyframeSpan(func(i int) int32 { return keys[i].Frame }, len(keys), timeMs)
	if prev == next {
		return keys[prev].Scale
	}
	return keys[prev].Scale.Lerp(keys[next].Scale, t)
}

// InterpolatePosKeys samples position keys (v < 1.5) at timeMs linearly. With
// no keys it returns fallback.
func InterpolatePosKeys(keys []RSMPosKeyframe, timeMs float32, fallback graphics.Vector3) graphics.Vector3 {
	switch len(keys) {
	case 0:
		return fallback
	case 1:
		return keys[0].Position
	}
	prev, next, t := keyframeSpan(func(i int) int32 { return keys[i].Frame }, len(keys), timeMs)
	if prev == next {
		return keys[prev].Position
	}
	return keys[prev].Position.Lerp(keys[next].Position, t)
}
