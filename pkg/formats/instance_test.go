package formats

import (
	"testing"

	"github.com/Faultbox/grf-graphics/pkg/graphics"
)

func TestInstanceMatrix(t *testing.T) {
	one := graphics.Vector3One
	tests := []struct {
		name     string
		position graphics.Vector3
		rotation graphics.Vector3
		scale    graphics.Vector3
		in, want graphics.Vector3
	}{
		{"translate", graphics.Vector3{X: 1, Y: 2, Z: 3}, graphics.Vector3{}, one, graphics.Vector3{X: 1, Y: 0, Z: 0}, graphics.Vector3{X: 2, Y: 2, Z: 3}},
		{"yaw", graphics.Vector3{}, graphics.Vector3{X: 0, Y: 90, Z: 0}, one, graphics.Vector3{X: 1, Y: 0, Z: 0}, graphics.Vector3{X: 0, Y: 0, Z: -1}},
		{"roll is negated", graphics.Vector3{}, graphics.Vector3{X: 0, Y: 0, Z: 90}, one, graphics.Vector3{X: 1, Y: 0, Z: 0}, graphics.Vector3{X: 0, Y: -1, Z: 0}},
		{"pitch is negated", graphics.Vector3{}, graphics.Vector3{X: 90, Y: 0, Z: 0}, one, graphics.Vector3{X: 0, Y: 1, Z: 0}, graphics.Vector3{X: 0, Y: 0, Z: -1}},
		{"yaw before roll", graphics.Vector3{}, graphics.Vector3{X: 0, Y: 90, Z: 90}, one, graphics.Vector3{X: 1, Y: 0, Z: 0}, graphics.Vector3{X: 0, Y: 0, Z: -1}},
		{"scale first", graphics.Vector3{X: 10, Y: 0, Z: 0}, graphics.Vector3{}, graphics.Vector3{X: 2, Y: 1, Z: 1}, graphics.Vector3{X: 1, Y: 0, Z: 0}, graphics.Vector3{X: 12, Y: 0, Z: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := InstanceMatrix(tt.position, tt.rotation, tt.scale)
			if got := m.TransformPoint(tt.in); !nearVec(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInstanceBoundingBox(t *testing.T) {
	node := plainNode("root", "")
	node.Vertices = []graphics.Vector3{{X: -1, Y: -1, Z: -1}, {X: 2, Y: 3, Z: 4}}
	rsm := &RSM{Nodes: []RSMNode{node}}

	b := rsm.InstanceBoundingBox(graphics.Vector3{X: 10, Y: 20, Z: 30}, graphics.Vector3{}, graphics.Vector3One, 0)
	if !nearVec(b.Min, graphics.Vector3{X: 9, Y: -19, Z: 29}) || !nearVec(b.Max, graphics.Vector3{X: 12, Y: -23, Z: 34}) {
		t.Errorf("instance box = %v..%v", b.Min, b.Max)
	}

	// A quarter turn about Y swaps the X and Z extents.
	b = rsm.InstanceBoundingBox(graphics.Vector3{}, graphics.Vector3{X: 0, Y: 90, Z: 0}, graphics.Vector3One, 0)
	if !nearVec(b.Range, graphics.Vector3{X: 2.5, Y: -2, Z: 1.5}) {
		t.Errorf("rotated Range = %v", b.Range)
	}

	if !(&RSM{}).InstanceBoundingBox(graphics.Vector3{}, graphics.Vector3{}, graphics.Vector3One, 0).IsEmpty() {
		t.Error("empty model should give an empty box")
	}
}
