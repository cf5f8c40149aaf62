package graphics

import "github.com/chewxy/math32"

const epsilon = 1e-4

func near(a, b float32) bool {
	return math32.Abs(a-b) <= epsilon
}

func nearVec3(a, b Vector3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func nearQuat(a, b Quaternion) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z) && near(a.W, b.W)
}
