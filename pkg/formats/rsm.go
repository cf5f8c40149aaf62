// Package formats parses Ragnarok Online model files into graphics types.
package formats

import (
	"errors"
	"fmt"
	"os"

	"github.com/Faultbox/grf-graphics/pkg/graphics"
)

// RSM format errors.
var (
	ErrInvalidRSMMagic       = errors.New("invalid RSM magic: expected 'GRSM'")
	ErrUnsupportedRSMVersion = errors.New("unsupported RSM version")
	ErrTruncatedRSMData      = errors.New("truncated RSM data")
	ErrInvalidNodeCount      = errors.New("invalid RSM node count")
	ErrInvalidRSMCount       = errors.New("invalid RSM element count")
)

// Upper bounds for element counts; anything larger is a corrupt file.
const (
	maxRSMTextures = 1000
	maxRSMNodes    = 10000
	maxRSMElements = 100000
	maxRSMKeys     = 10000
	maxRSMBoxes    = 1000

	rsmNameSize = 40
)

// RSMVersion represents the RSM file version.
type RSMVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v RSMVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtLeast returns true if version is >= major.minor.
func (v RSMVersion) AtLeast(major, minor uint8) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

// RSMShadingType represents the shading mode for rendering.
type RSMShadingType int32

const (
	RSMShadingNone   RSMShadingType = 0
	RSMShadingFlat   RSMShadingType = 1
	RSMShadingSmooth RSMShadingType = 2
)

// String returns a human-readable shading type name.
func (s RSMShadingType) String() string {
	switch s {
	case RSMShadingNone:
		return "None"
	case RSMShadingFlat:
		return "Flat"
	case RSMShadingSmooth:
		return "Smooth"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// RSMFace represents a triangle face in a mesh.
type RSMFace struct {
	VertexIDs   [3]uint16 // Indices into Vertices
	TexCoordIDs [3]uint16 // Indices into TexCoords
	TextureID   uint16    // Index into the node's TextureIDs
	Padding     uint16
	TwoSide     int32
	SmoothGroup int32 // v1.2+
}

// RSMPosKeyframe is a position keyframe (v < 1.5).
type RSMPosKeyframe struct {
	Frame    int32
	Position graphics.Vector3
}

// RSMRotKeyframe is a rotation keyframe.
type RSMRotKeyframe struct {
	Frame    int32
	Rotation graphics.Quaternion
}

// RSMScaleKeyframe is a scale keyframe (v >= 1.5).
type RSMScaleKeyframe struct {
	Frame int32
	Scale graphics.Vector3
}

// RSMNode is a mesh node in the model hierarchy.
type RSMNode struct {
	Name       string
	Parent     string // empty for the root
	TextureIDs []int32

	// Vertex-only transform, not inherited by children.
	Matrix graphics.Matrix3
	Offset graphics.Vector3

	// Hierarchy transform, inherited by children.
	Position graphics.Vector3
	RotAngle float32 // radians
	RotAxis  graphics.Vector3
	Scale    graphics.Vector3

	Vertices  []graphics.Vector3
	TexCoords []graphics.TextureVertex
	Faces     []RSMFace

	PosKeys   []RSMPosKeyframe
	RotKeys   []RSMRotKeyframe
	ScaleKeys []RSMScaleKeyframe
}

// RSMVolumeBox is a collision volume.
type RSMVolumeBox struct {
	Size     graphics.Vector3
	Position graphics.Vector3
	Rotation graphics.Vector3
	Flag     int32 // v1.3+
}

// RSM represents a parsed RSM (Resource Model) file.
type RSM struct {
	Version     RSMVersion
	AnimLength  int32 // milliseconds
	Shading     RSMShadingType
	Alpha       float32 // 0-1
	Textures    []string
	RootNode    string
	Nodes       []RSMNode
	VolumeBoxes []RSMVolumeBox
}

// ParseRSM parses RSM data from a byte slice.
func ParseRSM(data []byte) (*RSM, error) {
	if len(data) < 6 {
		return nil, ErrTruncatedRSMData
	}
	if string(data[:4]) != "GRSM" {
		return nil, ErrInvalidRSMMagic
	}

	p := newFieldReader(data[4:], ErrTruncatedRSMData, ErrInvalidRSMCount)
	rsm := &RSM{}
	p.read(&rsm.Version.Major)
	p.read(&rsm.Version.Minor)
	if rsm.Version.Major < 1 || rsm.Version.Major > 2 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRSMVersion, rsm.Version)
	}

	rsm.AnimLength = p.i32()
	rsm.Shading = RSMShadingType(p.i32())

	rsm.Alpha = 1.0
	if rsm.Version.AtLeast(1, 4) {
		var alpha uint8
		p.read(&alpha)
		rsm.Alpha = float32(alpha) / 255.0
	}

	// Reserved.
	p.skip(16)

	textureCount := p.count("textures", maxRSMTextures)
	rsm.Textures = make([]string, textureCount)
	for i := range rsm.Textures {
		rsm.Textures[i] = p.name(rsmNameSize)
	}

	rsm.RootNode = p.name(rsmNameSize)
	if err := p.failure("header"); err != nil {
		return nil, err
	}

	nodeCount := p.i32()
	if err := p.failure("node count"); err != nil {
		return nil, err
	}
	if nodeCount < 0 || nodeCount > maxRSMNodes {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNodeCount, nodeCount)
	}

	rsm.Nodes = make([]RSMNode, nodeCount)
	for i := range rsm.Nodes {
		parseRSMNode(p, rsm.Version, &rsm.Nodes[i])
		if err := p.failure(fmt.Sprintf("node %d", i)); err != nil {
			return nil, err
		}
	}

	// Volume boxes are optional trailing data.
	if p.r.Len() >= 4 {
		boxCount := p.count("volume boxes", maxRSMBoxes)
		rsm.VolumeBoxes = make([]RSMVolumeBox, boxCount)
		for i := range rsm.VolumeBoxes {
			box := &rsm.VolumeBoxes[i]
			box.Size = p.vector3()
			box.Position = p.vector3()
			box.Rotation = p.vector3()
			if rsm.Version.AtLeast(1, 3) {
				box.Flag = p.i32()
			}
		}
		if err := p.failure("volume boxes"); err != nil {
			return nil, err
		}
	}

	return rsm, nil
}

func parseRSMNode(p *fieldReader, version RSMVersion, node *RSMNode) {
	node.Name = p.name(rsmNameSize)
	node.Parent = p.name(rsmNameSize)

	node.TextureIDs = make([]int32, p.count("texture ids", maxRSMTextures))
	for i := range node.TextureIDs {
		node.TextureIDs[i] = p.i32()
	}

	node.Matrix = p.matrix3()
	node.Offset = p.vector3()
	node.Position = p.vector3()
	node.RotAngle = p.f32()
	node.RotAxis = p.vector3()
	node.Scale = p.vector3()

	node.Vertices = make([]graphics.Vector3, p.count("vertices", maxRSMElements))
	for i := range node.Vertices {
		node.Vertices[i] = p.vector3()
	}

	withColor := version.AtLeast(1, 2)
	node.TexCoords = make([]graphics.TextureVertex, p.count("texture vertices", maxRSMElements))
	for i := range node.TexCoords {
		node.TexCoords[i] = p.textureVertex(withColor)
	}

	node.Faces = make([]RSMFace, p.count("faces", maxRSMElements))
	for i := range node.Faces {
		face := &node.Faces[i]
		p.read(&face.VertexIDs)
		p.read(&face.TexCoordIDs)
		p.read(&face.TextureID)
		p.read(&face.Padding)
		face.TwoSide = p.i32()
		if version.AtLeast(1, 2) {
			face.SmoothGroup = p.i32()
		}
	}

	if !version.AtLeast(1, 5) {
		node.PosKeys = make([]RSMPosKeyframe, p.count("position keys", maxRSMKeys))
		for i := range node.PosKeys {
			node.PosKeys[i] = RSMPosKeyframe{Frame: p.i32(), Position: p.vector3()}
		}
	}

	node.RotKeys = make([]RSMRotKeyframe, p.count("rotation keys", maxRSMKeys))
	for i := range node.RotKeys {
		node.RotKeys[i] = RSMRotKeyframe{Frame: p.i32(), Rotation: p.quaternion()}
	}

	if version.AtLeast(1, 5) {
		node.ScaleKeys = make([]RSMScaleKeyframe, p.count("scale keys", maxRSMKeys))
		for i := range node.ScaleKeys {
			node.ScaleKeys[i] = RSMScaleKeyframe{Frame: p.i32(), Scale: p.vector3()}
		}
	}
}

// ParseRSMFile parses an RSM file from disk.
func ParseRSMFile(path string) (*RSM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading RSM file: %w", err)
	}
	return ParseRSM(data)
}

// GetTotalVertexCount returns the total number of vertices across all nodes.
func (rsm *RSM) GetTotalVertexCount() int {
	total := 0
	for _, node := range rsm.Nodes {
		total += len(node.Vertices)
	}
	return total
}

// GetTotalFaceCount returns the total number of faces across all nodes.
func (rsm *RSM) GetTotalFaceCount() int {
	total := 0
	for _, node := range rsm.Nodes {
		total += len(node.Faces)
	}
	return total
}

// GetNodeByName returns a node by its name, or nil if not found.
func (rsm *RSM) GetNodeByName(name string) *RSMNode {
	for i := range rsm.Nodes {
		if rsm.Nodes[i].Name == name {
			return &rsm.Nodes[i]
		}
	}
	return nil
}

// GetRootNode returns the node named by RootNode.
func (rsm *RSM) GetRootNode() *RSMNode {
	return rsm.GetNodeByName(rsm.RootNode)
}

// GetChildNodes returns all nodes that have the given parent name.
func (rsm *RSM) GetChildNodes(parentName string) []*RSMNode {
	var children []*RSMNode
	for i := range rsm.Nodes {
		if rsm.Nodes[i].Parent == parentName {
			children = append(children, &rsm.Nodes[i])
		}
	}
	return children
}

// HasAnimation reports whether any node has more than one keyframe and the
// model has a positive animation length. Single keyframes are static poses.
func (rsm *RSM) HasAnimation() bool {
	if rsm.AnimLength <= 0 {
		return false
	}
	for i := range rsm.Nodes {
		node := &rsm.Nodes[i]
		if len(node.RotKeys) > 1 || len(node.PosKeys) > 1 || len(node.ScaleKeys) > 1 {
			return true
		}
	}
	return false
}
