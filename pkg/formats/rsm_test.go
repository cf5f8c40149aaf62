package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"slices"
	"testing"

	"github.com/Faultbox/grf-graphics/pkg/encoding"
	"github.com/Faultbox/grf-graphics/pkg/graphics"
)

// testModel describes an RSM file for encode to serialize.
type testModel struct {
	major, minor uint8
	animLength   int32
	shading      RSMShadingType
	alpha        uint8
	textures     []string
	root         string
	nodes        []RSMNode
	boxes        []RSMVolumeBox
}

func (m testModel) version() RSMVersion {
	return RSMVersion{m.major, m.minor}
}

func (m testModel) encode(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := func(v any) {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("encoding test model: %v", err)
		}
	}
	name := func(s string) { buf.Write(encoding.UTF8ToFixedString(s, rsmNameSize)) }
	vec := func(v graphics.Vector3) { buf.Write(v.AppendBytes(nil)) }
	v := m.version()

	buf.WriteString("GRSM")
	w([]uint8{m.major, m.minor})
	w(m.animLength)
	w(int32(m.shading))
	if v.AtLeast(1, 4) {
		w(m.alpha)
	}
	buf.Write(make([]byte, 16))
	w(int32(len(m.textures)))
	for _, tex := range m.textures {
		name(tex)
	}
	name(m.root)

	w(int32(len(m.nodes)))
	for _, n := range m.nodes {
		name(n.Name)
		name(n.Parent)
		w(int32(len(n.TextureIDs)))
		for _, id := range n.TextureIDs {
			w(id)
		}
		buf.Write(n.Matrix.AppendBytes(nil))
		vec(n.Offset)
		vec(n.Position)
		w(n.RotAngle)
		vec(n.RotAxis)
		vec(n.Scale)

		w(int32(len(n.Vertices)))
		for _, p := range n.Vertices {
			vec(p)
		}
		w(int32(len(n.TexCoords)))
		for _, tc := range n.TexCoords {
			if v.AtLeast(1, 2) {
				buf.Write(tc.AppendBytes(nil))
			} else if err := tc.WriteUV(&buf); err != nil {
				t.Fatal(err)
			}
		}
		w(int32(len(n.Faces)))
		for _, f := range n.Faces {
			w(f.VertexIDs)
			w(f.TexCoordIDs)
			w(f.TextureID)
			w(f.Padding)
			w(f.TwoSide)
			if v.AtLeast(1, 2) {
				w(f.SmoothGroup)
			}
		}
		if !v.AtLeast(1, 5) {
			w(int32(len(n.PosKeys)))
			for _, k := range n.PosKeys {
				w(k.Frame)
				vec(k.Position)
			}
		}
		w(int32(len(n.RotKeys)))
		for _, k := range n.RotKeys {
			w(k.Frame)
			buf.Write(k.Rotation.AppendBytes(nil))
		}
		if v.AtLeast(1, 5) {
			w(int32(len(n.ScaleKeys)))
			for _, k := range n.ScaleKeys {
				w(k.Frame)
				vec(k.Scale)
			}
		}
	}

	w(int32(len(m.boxes)))
	for _, b := range m.boxes {
		vec(b.Size)
		vec(b.Position)
		vec(b.Rotation)
		if v.AtLeast(1, 3) {
			w(b.Flag)
		}
	}
	return buf.Bytes()
}

// plainNode returns a node with an identity transform.
func plainNode(name, parent string) RSMNode {
	return RSMNode{
		Name:   name,
		Parent: parent,
		Matrix: graphics.Identity3(),
		Scale:  graphics.Vector3One,
	}
}

// fullNode returns a node with every section populated.
func fullNode() RSMNode {
	n := plainNode("root", "")
	n.TextureIDs = []int32{0, 1}
	n.Matrix = graphics.Matrix3FromRows(graphics.Vector3{X: 0, Y: 1, Z: 0}, graphics.Vector3{X: -1, Y: 0, Z: 0}, graphics.Vector3{X: 0, Y: 0, Z: 1})
	n.Offset = graphics.Vector3{X: 1, Y: 2, Z: 3}
	n.Position = graphics.Vector3{X: 4, Y: 5, Z: 6}
	n.RotAngle = 0.5
	n.RotAxis = graphics.Vector3{X: 0, Y: 1, Z: 0}
	n.Scale = graphics.Vector3{X: 1, Y: 2, Z: 1}
	n.Vertices = []graphics.Vector3{{X: -1, Y: -1, Z: -1}, {X: 2, Y: 3, Z: 4}, {X: 0, Y: 1, Z: 0}}
	n.TexCoords = []graphics.TextureVertex{
		{Color: 0x80FF0000, U: 0, V: 1},
		{Color: 0xFFFFFFFF, U: 0.5, V: 0.25},
	}
	n.Faces = []RSMFace{{
		VertexIDs:   [3]uint16{0, 1, 2},
		TexCoordIDs: [3]uint16{0, 1, 1},
		TextureID:   1,
		TwoSide:     1,
		SmoothGroup: 3,
	}}
	n.PosKeys = []RSMPosKeyframe{{Frame: 0, Position: graphics.Vector3{X: 1, Y: 1, Z: 1}}}
	n.RotKeys = []RSMRotKeyframe{
		{Frame: 0, Rotation: graphics.QuaternionIdentity()},
		{Frame: 100, Rotation: graphics.Quaternion{X: 0, Y: 0, Z: 0.70710677, W: 0.70710677}},
	}
	n.ScaleKeys = []RSMScaleKeyframe{{Frame: 50, Scale: graphics.Vector3{X: 2, Y: 2, Z: 2}}}
	return n
}

func compareNodes(t *testing.T, got, want RSMNode) {
	t.Helper()
	if got.Name != want.Name || got.Parent != want.Parent {
		t.Errorf("names = %q/%q, want %q/%q", got.Name, got.Parent, want.Name, want.Parent)
	}
	if got.Matrix != want.Matrix || got.Offset != want.Offset || got.Position != want.Position ||
		got.RotAngle != want.RotAngle || got.RotAxis != want.RotAxis || got.Scale != want.Scale {
		t.Errorf("transform = %+v, want %+v", got, want)
	}
	if !slices.Equal(got.TextureIDs, want.TextureIDs) {
		t.Errorf("TextureIDs = %v, want %v", got.TextureIDs, want.TextureIDs)
	}
	if !slices.Equal(got.Vertices, want.Vertices) {
		t.Errorf("Vertices = %v, want %v", got.Vertices, want.Vertices)
	}
	if !slices.Equal(got.TexCoords, want.TexCoords) {
		t.Errorf("TexCoords = %v, want %v", got.TexCoords, want.TexCoords)
	}
	if !slices.Equal(got.Faces, want.Faces) {
		t.Errorf("Faces = %v, want %v", got.Faces, want.Faces)
	}
	if !slices.Equal(got.PosKeys, want.PosKeys) {
		t.Errorf("PosKeys = %v, want %v", got.PosKeys, want.PosKeys)
	}
	if !slices.Equal(got.RotKeys, want.RotKeys) {
		t.Errorf("RotKeys = %v, want %v", got.RotKeys, want.RotKeys)
	}
	if !slices.Equal(got.ScaleKeys, want.ScaleKeys) {
		t.Errorf("ScaleKeys = %v, want %v", got.ScaleKeys, want.ScaleKeys)
	}
}

func TestParseRSM_MagicValidation(t *testing.T) {
	valid := testModel{major: 1, minor: 5}.encode(t)
	invalid := slices.Clone(valid)
	copy(invalid, "XXXX")

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"valid magic", valid, nil},
		{"invalid magic", invalid, ErrInvalidRSMMagic},
		{"empty data", []byte{}, ErrTruncatedRSMData},
		{"truncated data", []byte{'G', 'R', 'S'}, ErrTruncatedRSMData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRSM(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseRSM_VersionSupport(t *testing.T) {
	tests := []struct {
		name    string
		major   uint8
		minor   uint8
		wantErr bool
	}{
		{"v1.1", 1, 1, false},
		{"v1.2", 1, 2, false},
		{"v1.3", 1, 3, false},
		{"v1.4", 1, 4, false},
		{"v1.5", 1, 5, false},
		{"v2.1", 2, 1, false},
		{"v2.2", 2, 2, false},
		{"v2.3", 2, 3, false},
		{"v0.1 unsupported", 0, 1, true},
		{"v3.0 unsupported", 3, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testModel{major: tt.major, minor: tt.minor, root: "root", nodes: []RSMNode{fullNode()}}
			_, err := ParseRSM(m.encode(t))
			if (err != nil) != tt.wantErr {
				t.Errorf("version %d.%d: got error=%v, wantErr=%v", tt.major, tt.minor, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnsupportedRSMVersion) {
				t.Errorf("error = %v, want ErrUnsupportedRSMVersion", err)
			}
		})
	}
}

func TestRSMVersion_String(t *testing.T) {
	tests := []struct {
		version RSMVersion
		want    string
	}{
		{RSMVersion{1, 5}, "1.5"},
		{RSMVersion{2, 3}, "2.3"},
		{RSMVersion{1, 1}, "1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.version.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRSMVersion_AtLeast(t *testing.T) {
	tests := []struct {
		version RSMVersion
		major   uint8
		minor   uint8
		want    bool
	}{
		{RSMVersion{1, 5}, 1, 5, true},
		{RSMVersion{1, 5}, 1, 4, true},
		{RSMVersion{1, 5}, 1, 6, false},
		{RSMVersion{1, 5}, 2, 0, false},
		{RSMVersion{2, 3}, 1, 9, true},
		{RSMVersion{2, 3}, 2, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.version.String(), func(t *testing.T) {
			if got := tt.version.AtLeast(tt.major, tt.minor); got != tt.want {
				t.Errorf("AtLeast(%d, %d) = %v, want %v", tt.major, tt.minor, got, tt.want)
			}
		})
	}
}

func TestRSMShadingType_String(t *testing.T) {
	tests := []struct {
		shading RSMShadingType
		want    string
	}{
		{RSMShadingNone, "None"},
		{RSMShadingFlat, "Flat"},
		{RSMShadingSmooth, "Smooth"},
		{RSMShadingType(99), "Unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.shading.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRSM_V15_Structure(t *testing.T) {
	want := fullNode()
	m := testModel{
		major: 1, minor: 5,
		animLength: 1000,
		shading:    RSMShadingSmooth,
		alpha:      255,
		textures:   []string{"test.bmp", "wall.bmp"},
		root:       "root",
		nodes:      []RSMNode{want},
	}

	rsm, err := ParseRSM(m.encode(t))
	if err != nil {
		t.Fatalf("ParseRSM failed: %v", err)
	}
	if rsm.Version != (RSMVersion{1, 5}) || rsm.AnimLength != 1000 || rsm.Shading != RSMShadingSmooth {
		t.Errorf("header = %s %d %s", rsm.Version, rsm.AnimLength, rsm.Shading)
	}
	if !slices.Equal(rsm.Textures, m.textures) || rsm.RootNode != "root" {
		t.Errorf("textures = %q root = %q", rsm.Textures, rsm.RootNode)
	}
	if len(rsm.Nodes) != 1 {
		t.Fatalf("node count = %d, want 1", len(rsm.Nodes))
	}

	// Position keys only exist before 1.5.
	want.PosKeys = nil
	compareNodes(t, rsm.Nodes[0], want)
}

func TestParseRSM_V11_Layout(t *testing.T) {
	node := fullNode()
	m := testModel{major: 1, minor: 1, root: "root", nodes: []RSMNode{node}}

	rsm, err := ParseRSM(m.encode(t))
	if err != nil {
		t.Fatalf("ParseRSM failed: %v", err)
	}

	want := node
	want.ScaleKeys = nil
	want.TexCoords = []graphics.TextureVertex{
		{Color: graphics.ColorWhite, U: 0, V: 1},
		{Color: graphics.ColorWhite, U: 0.5, V: 0.25},
	}
	want.Faces = slices.Clone(node.Faces)
	want.Faces[0].SmoothGroup = 0
	compareNodes(t, rsm.Nodes[0], want)

	if rsm.Alpha != 1.0 {
		t.Errorf("Alpha = %f, want 1.0 before v1.4", rsm.Alpha)
	}
}

func TestParseRSM_V14_Alpha(t *testing.T) {
	rsm, err := ParseRSM(testModel{major: 1, minor: 4, alpha: 128}.encode(t))
	if err != nil {
		t.Fatalf("ParseRSM failed: %v", err)
	}

	expectedAlpha := float32(128) / 255.0
	if rsm.Alpha < expectedAlpha-0.01 || rsm.Alpha > expectedAlpha+0.01 {
		t.Errorf("Alpha = %f, want ~%f", rsm.Alpha, expectedAlpha)
	}
}

func TestParseRSM_KoreanNames(t *testing.T) {
	m := testModel{
		major: 1, minor: 5,
		textures: []string{"유저인터페이스\\벽.bmp"},
		root:     "본체",
		nodes:    []RSMNode{plainNode("본체", "")},
	}
	rsm, err := ParseRSM(m.encode(t))
	if err != nil {
		t.Fatalf("ParseRSM failed: %v", err)
	}
	if rsm.Textures[0] != m.textures[0] || rsm.RootNode != "본체" || rsm.GetRootNode() == nil {
		t.Errorf("decoded names: textures=%q root=%q", rsm.Textures, rsm.RootNode)
	}
}

func TestParseRSM_VolumeBoxes(t *testing.T) {
	boxes := []RSMVolumeBox{
		{Size: graphics.Vector3{X: 1, Y: 2, Z: 3}, Position: graphics.Vector3{X: 4, Y: 5, Z: 6}, Rotation: graphics.Vector3{X: 0, Y: 90, Z: 0}, Flag: 1},
		{Size: graphics.Vector3{X: 7, Y: 8, Z: 9}},
	}
	rsm, err := ParseRSM(testModel{major: 1, minor: 5, boxes: boxes}.encode(t))
	if err != nil {
		t.Fatalf("ParseRSM failed: %v", err)
	}
	if !slices.Equal(rsm.VolumeBoxes, boxes) {
		t.Errorf("VolumeBoxes = %+v, want %+v", rsm.VolumeBoxes, boxes)
	}

	// Before 1.3 boxes carry no flag.
	rsm, err = ParseRSM(testModel{major: 1, minor: 2, boxes: boxes[1:]}.encode(t))
	if err != nil || len(rsm.VolumeBoxes) != 1 || rsm.VolumeBoxes[0] != boxes[1] {
		t.Errorf("v1.2 boxes = %+v, %v", rsm.VolumeBoxes, err)
	}
}

func TestParseRSM_Truncated(t *testing.T) {
	data := testModel{major: 1, minor: 5, root: "root", nodes: []RSMNode{fullNode()}}.encode(t)

	for _, cut := range []int{8, 30, 80, 200, len(data) - 20} {
		if _, err := ParseRSM(data[:cut]); !errors.Is(err, ErrTruncatedRSMData) {
			t.Errorf("cut at %d of %d: error = %v, want ErrTruncatedRSMData", cut, len(data), err)
		}
	}

	// The trailing volume box section is optional.
	if _, err := ParseRSM(data[:len(data)-4]); err != nil {
		t.Errorf("missing volume box count: %v", err)
	}
}

func TestParseRSM_InvalidCounts(t *testing.T) {
	data := testModel{major: 1, minor: 5, root: "root", nodes: []RSMNode{plainNode("root", "")}}.encode(t)

	// v1.5 header without textures: magic, version, anim length, shading,
	// alpha, reserved, texture count, root name.
	const nodeCountAt = 4 + 2 + 4 + 4 + 1 + 16 + 4 + rsmNameSize
	// Node: names, texture id count, Matrix3, offset, position, angle, axis, scale.
	const vertexCountAt = nodeCountAt + 4 + 2*rsmNameSize + 4 + 36 + 12 + 12 + 4 + 12 + 12

	badNodes := slices.Clone(data)
	binary.LittleEndian.PutUint32(badNodes[nodeCountAt:], 0xFFFFFFFF)
	if _, err := ParseRSM(badNodes); !errors.Is(err, ErrInvalidNodeCount) {
		t.Errorf("node count -1: error = %v, want ErrInvalidNodeCount", err)
	}

	badVertices := slices.Clone(data)
	binary.LittleEndian.PutUint32(badVertices[vertexCountAt:], 0xFFFFFFFB)
	if _, err := ParseRSM(badVertices); !errors.Is(err, ErrInvalidRSMCount) {
		t.Errorf("vertex count -5: error = %v, want ErrInvalidRSMCount", err)
	}
}

func TestParseRSMFile(t *testing.T) {
	if _, err := ParseRSMFile(t.TempDir() + "/missing.rsm"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRSM_GetTotalVertexCount(t *testing.T) {
	rsm := &RSM{
		Nodes: []RSMNode{
			{Vertices: make([]graphics.Vector3, 10)},
			{Vertices: make([]graphics.Vector3, 20)},
			{Vertices: make([]graphics.Vector3, 5)},
		},
	}

	if got := rsm.GetTotalVertexCount(); got != 35 {
		t.Errorf("GetTotalVertexCount() = %d, want 35", got)
	}
}

func TestRSM_GetTotalFaceCount(t *testing.T) {
	rsm := &RSM{
		Nodes: []RSMNode{
			{Faces: make([]RSMFace, 10)},
			{Faces: make([]RSMFace, 20)},
		},
	}

	if got := rsm.GetTotalFaceCount(); got != 30 {
		t.Errorf("GetTotalFaceCount() = %d, want 30", got)
	}
}

func TestRSM_NodeLookup(t *testing.T) {
	rsm := &RSM{
		RootNode: "root",
		Nodes: []RSMNode{
			{Name: "root", Parent: ""},
			{Name: "child1", Parent: "root"},
			{Name: "child2", Parent: "root"},
			{Name: "grandchild", Parent: "child1"},
		},
	}

	if node := rsm.GetNodeByName("child1"); node == nil || node.Name != "child1" {
		t.Errorf("GetNodeByName(child1) = %v", node)
	}
	if rsm.GetNodeByName("nonexistent") != nil {
		t.Error("GetNodeByName returned non-nil for nonexistent node")
	}
	if root := rsm.GetRootNode(); root == nil || root.Name != "root" {
		t.Errorf("GetRootNode() = %v", root)
	}

	tests := []struct {
		parent string
		want   int
	}{
		{"root", 2},
		{"child1", 1},
		{"nonexistent", 0},
	}
	for _, tt := range tests {
		if got := len(rsm.GetChildNodes(tt.parent)); got != tt.want {
			t.Errorf("GetChildNodes(%q) = %d children, want %d", tt.parent, got, tt.want)
		}
	}
}

func TestRSM_HasAnimation(t *testing.T) {
	tests := []struct {
		name       string
		animLength int32
		nodes      []RSMNode
		want       bool
	}{
		{
			name:       "no keys",
			animLength: 1000,
			nodes:      []RSMNode{{Name: "node"}},
			want:       false,
		},
		{
			name:       "single rotation key is a pose",
			animLength: 1000,
			nodes:      []RSMNode{{Name: "node", RotKeys: []RSMRotKeyframe{{Frame: 0}}}},
			want:       false,
		},
		{
			name:       "rotation keys",
			animLength: 1000,
			nodes:      []RSMNode{{Name: "node", RotKeys: []RSMRotKeyframe{{Frame: 0}, {Frame: 10}}}},
			want:       true,
		},
		{
			name:       "position keys",
			animLength: 1000,
			nodes:      []RSMNode{{Name: "node", PosKeys: []RSMPosKeyframe{{Frame: 0}, {Frame: 10}}}},
			want:       true,
		},
		{
			name:       "scale keys",
			animLength: 1000,
			nodes:      []RSMNode{{Name: "node", ScaleKeys: []RSMScaleKeyframe{{Frame: 0}, {Frame: 10}}}},
			want:       true,
		},
		{
			name:  "zero length",
			nodes: []RSMNode{{Name: "node", ScaleKeys: []RSMScaleKeyframe{{Frame: 0}, {Frame: 10}}}},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rsm := &RSM{AnimLength: tt.animLength, Nodes: tt.nodes}
			if got := rsm.HasAnimation(); got != tt.want {
				t.Errorf("HasAnimation() = %v, want %v", got, tt.want)
			}
		})
	}
}
