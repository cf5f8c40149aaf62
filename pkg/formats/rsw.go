package formats

import (
	"errors"
	"fmt"
	"os"

	"github.com/Faultbox/grf-graphics/pkg/graphics"
)

// RSW format errors.
var (
	ErrInvalidRSWMagic       = errors.New("invalid RSW magic: expected 'GRSW'")
	ErrUnsupportedRSWVersion = errors.New("unsupported RSW version")
	ErrTruncatedRSWData      = errors.New("truncated RSW data")
	ErrUnknownObjectType     = errors.New("unknown RSW object type")
	ErrInvalidRSWCount       = errors.New("invalid RSW object count")
)

const (
	maxRSWObjects = 100000

	rswFileNameSize   = 40
	rswObjectNameSize = 80

	// Max, Min, HalfSize and Center vectors.
	rswQuadNodeSize = 48
)

// RSWVersion represents the RSW file version.
type RSWVersion struct {
	Major       uint8
	Minor       uint8
	BuildNumber uint32 // v2.2+
}

func (v RSWVersion) String() string {
	if v.BuildNumber > 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.BuildNumber)
	}
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtLeast returns true if version is >= major.minor.
func (v RSWVersion) AtLeast(major, minor uint8) bool {
	return v.Major > major || (v.Major == major && v.Minor >= minor)
}

// RSWObjectType represents the type of object in the world.
type RSWObjectType int32

const (
	RSWObjectModel  RSWObjectType = 1
	RSWObjectLight  RSWObjectType = 2
	RSWObjectSound  RSWObjectType = 3
	RSWObjectEffect RSWObjectType = 4
)

func (t RSWObjectType) String() string {
	switch t {
	case RSWObjectModel:
		return "Model"
	case RSWObjectLight:
		return "Light"
	case RSWObjectSound:
		return "Sound"
	case RSWObjectEffect:
		return "Effect"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// RSWWater contains water rendering settings.
type RSWWater struct {
	Level      float32
	Type       int32
	WaveHeight float32
	WaveSpeed  float32
	WavePitch  float32
	AnimSpeed  int32
}

// RSWLight contains global lighting settings.
type RSWLight struct {
	Longitude int32
	Latitude  int32
	Diffuse   graphics.Vector3
	Ambient   graphics.Vector3
	Opacity   float32 // v1.7+
}

// RSWGround contains ground view bounds.
type RSWGround struct {
	Top    int32
	Bottom int32
	Left   int32
	Right  int32
}

// RSWModel is an RSM model placed in the world. Rotation is in degrees.
type RSWModel struct {
	Name      string
	AnimType  int32
	AnimSpeed float32
	BlockType int32
	ModelName string
	NodeName  string
	Position  graphics.Vector3
	Rotation  graphics.Vector3
	Scale     graphics.Vector3
}

// Matrix returns the placement transform of the model instance.
func (m *RSWModel) Matrix() graphics.Matrix4 {
	return InstanceMatrix(m.Position, m.Rotation, m.Scale)
}

// BoundingBox returns the world box of rsm placed by this instance.
func (m *RSWModel) BoundingBox(rsm *RSM, animTimeMs float32) graphics.BoundingBox {
	return rsm.InstanceBoundingBox(m.Position, m.Rotation, m.Scale, animTimeMs)
}

// RSWLightSource represents a point light in the world.
type RSWLightSource struct {
	Name     string
	Position graphics.Vector3
	Color    graphics.Vector3
	Range    float32
}

// RSWSoundSource represents a sound emitter in the world.
type RSWSoundSource struct {
	Name     string
	File     string
	Position graphics.Vector3
	Volume   float32
	Width    int32
	Height   int32
	Range    float32
	Cycle    float32 // v2.0+
}

// RSWEffectSource represents a visual effect in the world.
type RSWEffectSource struct {
	Name     string
	Position graphics.Vector3
	EffectID int32
	Delay    float32
	Param    graphics.Vector4
}

// RSWObject holds exactly one of its pointer fields, selected by Type.
type RSWObject struct {
	Type   RSWObjectType
	Model  *RSWModel
	Light  *RSWLightSource
	Sound  *RSWSoundSource
	Effect *RSWEffectSource
}

// RSWQuadNode is one node of the scene partitioning tree.
type RSWQuadNode struct {
	Max      graphics.Vector3
	Min      graphics.Vector3
	HalfSize graphics.Vector3
	Center   graphics.Vector3
}

// Box returns the node extent as a bounding box.
func (n RSWQuadNode) Box() graphics.BoundingBox {
	b := graphics.BoundingBox{Min: n.Min, Max: n.Max}
	b.Recalculate()
	return b
}

// RSW represents a parsed Resource World file.
type RSW struct {
	Version  RSWVersion
	IniFile  string
	GndFile  string
	GatFile  string // v1.4+
	SrcFile  string // v1.4+
	Water    RSWWater
	Light    RSWLight
	Ground   RSWGround
	Objects  []RSWObject
	Quadtree []RSWQuadNode // v2.1+
}

// CountByType returns the count of objects for each type.
func (r *RSW) CountByType() map[RSWObjectType]int {
	counts := make(map[RSWObjectType]int)
	for _, obj := range r.Objects {
		counts[obj.Type]++
	}
	return counts
}

// GetModels returns all model objects.
func (r *RSW) GetModels() []*RSWModel {
	var models []*RSWModel
	for _, obj := range r.Objects {
		if obj.Model != nil {
			models = append(models, obj.Model)
		}
	}
	return models
}

func (r *RSW) GetLights() []*RSWLightSource {
	var lights []*RSWLightSource
	for _, obj := range r.Objects {
		if obj.Light != nil {
			lights = append(lights, obj.Light)
		}
	}
	return lights
}

func (r *RSW) GetSounds() []*RSWSoundSource {
	var sounds []*RSWSoundSource
	for _, obj := range r.Objects {
		if obj.Sound != nil {
			sounds = append(sounds, obj.Sound)
		}
	}
	return sounds
}

func (r *RSW) GetEffects() []*RSWEffectSource {
	var effects []*RSWEffectSource
	for _, obj := range r.Objects {
		if obj.Effect != nil {
			effects = append(effects, obj.Effect)
		}
	}
	return effects
}

// ParseRSW parses RSW data from a byte slice. Versions 1.2 to 2.6 are supported.
func ParseRSW(data []byte) (*RSW, error) {
	if len(data) < 6 {
		return nil, ErrTruncatedRSWData
	}
	if string(data[:4]) != "GRSW" {
		return nil, ErrInvalidRSWMagic
	}

	rsw := &RSW{Version: RSWVersion{Major: data[4], Minor: data[5]}}
	v := rsw.Version
	if v.Major < 1 || v.Major > 2 || (v.Major == 1 && v.Minor < 2) || (v.Major == 2 && v.Minor > 6) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRSWVersion, v)
	}

	p := newFieldReader(data[6:], ErrTruncatedRSWData, ErrInvalidRSWCount)
	switch {
	case v.AtLeast(2, 5):
		p.read(&rsw.Version.BuildNumber)
		// Render flag.
		p.skip(1)
	case v.AtLeast(2, 2):
		rsw.Version.BuildNumber = uint32(p.u8())
	}
	v = rsw.Version

	rsw.IniFile = p.name(rswFileNameSize)
	rsw.GndFile = p.name(rswFileNameSize)
	if v.AtLeast(1, 4) {
		rsw.GatFile = p.name(rswFileNameSize)
		rsw.SrcFile = p.name(rswFileNameSize)
	}

	// Water moved to the GND file in 2.6.
	if v.AtLeast(1, 3) && !v.AtLeast(2, 6) {
		w := &rsw.Water
		w.Level = p.f32()
		w.Type = p.i32()
		w.WaveHeight = p.f32()
		w.WaveSpeed = p.f32()
		w.WavePitch = p.f32()
		w.AnimSpeed = p.i32()
	}

	if v.AtLeast(1, 5) {
		rsw.Light.Longitude = p.i32()
		rsw.Light.Latitude = p.i32()
		rsw.Light.Diffuse = p.vector3()
		rsw.Light.Ambient = p.vector3()
	}
	if v.AtLeast(1, 7) {
		rsw.Light.Opacity = p.f32()
	}

	if v.AtLeast(1, 6) {
		g := &rsw.Ground
		g.Top = p.i32()
		g.Bottom = p.i32()
		g.Left = p.i32()
		g.Right = p.i32()
	}
	if err := p.failure("header"); err != nil {
		return nil, err
	}

	objectCount := p.count("objects", maxRSWObjects)
	if err := p.failure("object count"); err != nil {
		return nil, err
	}
	rsw.Objects = make([]RSWObject, objectCount)
	for i := range rsw.Objects {
		if err := parseRSWObject(p, v, &rsw.Objects[i]); err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		if err := p.failure(fmt.Sprintf("object %d", i)); err != nil {
			return nil, err
		}
	}

	if v.AtLeast(2, 1) {
		for p.r.Len() >= rswQuadNodeSize {
			var n RSWQuadNode
			n.Max = p.vector3()
			n.Min = p.vector3()
			n.HalfSize = p.vector3()
			n.Center = p.vector3()
			rsw.Quadtree = append(rsw.Quadtree, n)
		}
		if err := p.failure("quadtree"); err != nil {
			return nil, err
		}
	}

	return rsw, nil
}

func parseRSWObject(p *fieldReader, v RSWVersion, obj *RSWObject) error {
	obj.Type = RSWObjectType(p.i32())
	if p.err != nil {
		return nil
	}

	switch obj.Type {
	case RSWObjectModel:
		m := &RSWModel{}
		m.Name = p.name(rswFileNameSize)
		m.AnimType = p.i32()
		m.AnimSpeed = p.f32()
		m.BlockType = p.i32()
		// Collision flags from 2.6.162 on.
		if v.AtLeast(2, 6) && v.BuildNumber >= 162 {
			p.skip(1)
		}
		m.ModelName = p.name(rswObjectNameSize)
		m.NodeName = p.name(rswObjectNameSize)
		m.Position = p.vector3()
		m.Rotation = p.vector3()
		m.Scale = p.vector3()
		obj.Model = m

	case RSWObjectLight:
		l := &RSWLightSource{}
		l.Name = p.name(rswObjectNameSize)
		l.Position = p.vector3()
		l.Color = p.vector3()
		l.Range = p.f32()
		obj.Light = l

	case RSWObjectSound:
		s := &RSWSoundSource{}
		s.Name = p.name(rswObjectNameSize)
		s.File = p.name(rswObjectNameSize)
		s.Position = p.vector3()
		s.Volume = p.f32()
		s.Width = p.i32()
		s.Height = p.i32()
		s.Range = p.f32()
		if v.AtLeast(2, 0) {
			s.Cycle = p.f32()
		}
		obj.Sound = s

	case RSWObjectEffect:
		e := &RSWEffectSource{}
		e.Name = p.name(rswObjectNameSize)
		e.Position = p.vector3()
		e.EffectID = p.i32()
		e.Delay = p.f32()
		e.Param = graphics.Vector4{X: p.f32(), Y: p.f32(), Z: p.f32(), W: p.f32()}
		obj.Effect = e

	default:
		return fmt.Errorf("%w: %d", ErrUnknownObjectType, obj.Type)
	}
	return nil
}

// ParseRSWFile parses a RSW file from disk.
func ParseRSWFile(path string) (*RSW, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading RSW file: %w", err)
	}
	return ParseRSW(data)
}
