package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"path"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/grf-graphics/internal/assets"
	"github.com/Faultbox/grf-graphics/internal/config"
	"github.com/Faultbox/grf-graphics/internal/logger"
	"github.com/Faultbox/grf-graphics/pkg/formats"
	"github.com/Faultbox/grf-graphics/pkg/graphics"
)

// modelDir is where RSW model references are resolved.
const modelDir = "data/model/"

// vec is a vector rounded for output.
type vec [3]float64

// boxReport is the printed form of a bounding box.
type boxReport struct {
	Model  string `yaml:"model,omitempty"`
	Min    vec    `yaml:"min,flow"`
	Max    vec    `yaml:"max,flow"`
	Center vec    `yaml:"center,flow"`
	Range  vec    `yaml:"range,flow"`
	Offset vec    `yaml:"offset,flow"`
}

type nodeReport struct {
	Name        string `yaml:"name"`
	Parent      string `yaml:"parent,omitempty"`
	Vertices    int    `yaml:"vertices"`
	Faces       int    `yaml:"faces"`
	Translation vec    `yaml:"translation,flow"`
	Scale       vec    `yaml:"scale,flow"`
	Euler       vec    `yaml:"euler_degrees,flow"`
	Animated    bool   `yaml:"animated,omitempty"`
	Matrix      []vec4 `yaml:"matrix,flow"`
}

type vec4 [4]float64

type placementReport struct {
	Name     string     `yaml:"name"`
	Model    string     `yaml:"model"`
	Position vec        `yaml:"position,flow"`
	Rotation vec        `yaml:"rotation,flow"`
	Scale    vec        `yaml:"scale,flow"`
	Box      *boxReport `yaml:"box,omitempty"`
}

// rounder rounds values to the configured precision.
type rounder float64

func newRounder(precision int) rounder {
	return rounder(math.Pow10(precision))
}

func (r rounder) f(x float32) float64 {
	return math.Round(float64(x)*float64(r)) / float64(r)
}

func (r rounder) v3(v graphics.Vector3) vec {
	return vec{r.f(v.X), r.f(v.Y), r.f(v.Z)}
}

func (r rounder) v4(v graphics.Vector4) vec4 {
	return vec4{r.f(v.X), r.f(v.Y), r.f(v.Z), r.f(v.W)}
}

func (r rounder) box(name string, b graphics.BoundingBox) *boxReport {
	return &boxReport{
		Model:  name,
		Min:    r.v3(b.Min),
		Max:    r.v3(b.Max),
		Center: r.v3(b.Center),
		Range:  r.v3(b.Range),
		Offset: r.v3(b.Offset),
	}
}

// modelBox applies the configured grounding and Y flip to the model box.
func modelBox(rsm *formats.RSM, m config.ModelConfig) graphics.BoundingBox {
	var b graphics.BoundingBox
	if m.GroundAlign {
		b = rsm.GroundedBoundingBox(m.AnimTimeMs)
	} else {
		b = rsm.BoundingBox(m.AnimTimeMs)
	}
	if m.ReverseY && !b.IsEmpty() {
		b = b.ReverseY()
	}
	return b
}

func loadRSM(src *assets.Manager, name string) (*formats.RSM, error) {
	rsm, err := src.LoadRSM(name)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed model",
		zap.String("path", name),
		zap.Stringer("version", rsm.Version),
		zap.Int("nodes", len(rsm.Nodes)),
		zap.Int("vertices", rsm.GetTotalVertexCount()))
	return rsm, nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func (c *cli) fmtVec(v vec) string {
	p := c.cfg.Output.Precision
	return fmt.Sprintf("%.*f %.*f %.*f", p, v[0], p, v[1], p, v[2])
}

func cmdBounds(c *cli, args []string) error {
	fs := c.newFlagSet()
	output := fs.String("o", "", "Write the 48-byte binary box to this file")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%w: grftool bounds [-grf file.grf] [-o out] <model.rsm>", errUsage)
	}
	name := fs.Arg(0)

	src := c.assets()
	defer src.Close()
	rsm, err := loadRSM(src, name)
	if err != nil {
		return err
	}

	b := modelBox(rsm, c.cfg.Model)
	if rsm.GetTotalVertexCount() == 0 {
		logger.Warn("model has no vertices", zap.String("path", name))
	}

	if *output != "" {
		if err := os.WriteFile(*output, b.AppendBytes(nil), 0o644); err != nil {
			return fmt.Errorf("writing box: %w", err)
		}
		logger.Info("wrote bounding box", zap.String("path", *output), zap.Int("bytes", graphics.BoundingBoxSize))
	}

	report := newRounder(c.cfg.Output.Precision).box(name, b)
	if c.cfg.Output.Format == config.FormatYAML {
		return writeYAML(c.stdout, report)
	}
	fmt.Fprintf(c.stdout, "Model:  %s\n", name)
	fmt.Fprintf(c.stdout, "Min:    %s\n", c.fmtVec(report.Min))
	fmt.Fprintf(c.stdout, "Max:    %s\n", c.fmtVec(report.Max))
	fmt.Fprintf(c.stdout, "Center: %s\n", c.fmtVec(report.Center))
	fmt.Fprintf(c.stdout, "Range:  %s\n", c.fmtVec(report.Range))
	fmt.Fprintf(c.stdout, "Offset: %s\n", c.fmtVec(report.Offset))
	return nil
}

// nodeRotation returns the node's local rotation at animTimeMs.
func nodeRotation(node *formats.RSMNode, animTimeMs float32) graphics.Quaternion {
	if len(node.RotKeys) > 0 {
		return formats.InterpolateRotKeys(node.RotKeys, animTimeMs)
	}
	q, err := graphics.QuaternionFromAxisAngle(node.RotAxis, graphics.RadiansToDegrees(node.RotAngle))
	if err != nil {
		return graphics.QuaternionIdentity()
	}
	return q
}

func cmdInspect(c *cli, args []string) error {
	fs := c.newFlagSet()
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%w: grftool inspect [-grf file.grf] <model.rsm>", errUsage)
	}
	name := fs.Arg(0)

	src := c.assets()
	defer src.Close()
	rsm, err := loadRSM(src, name)
	if err != nil {
		return err
	}

	r := newRounder(c.cfg.Output.Precision)
	t := c.cfg.Model.AnimTimeMs
	nodes := make([]nodeReport, len(rsm.Nodes))
	for i := range rsm.Nodes {
		node := &rsm.Nodes[i]
		m := formats.NodeMatrix(rsm, node, t)
		euler := nodeRotation(node, t).ToEulerAngles()
		nodes[i] = nodeReport{
			Name:        node.Name,
			Parent:      node.Parent,
			Vertices:    len(node.Vertices),
			Faces:       len(node.Faces),
			Translation: r.v3(m.Offset()),
			Scale:       r.v3(m.ExtractScale()),
			Euler: vec{
				r.f(graphics.RadiansToDegrees(euler.X)),
				r.f(graphics.RadiansToDegrees(euler.Y)),
				r.f(graphics.RadiansToDegrees(euler.Z)),
			},
			Animated: len(node.RotKeys) > 0 || len(node.ScaleKeys) > 0 || len(node.PosKeys) > 0,
			Matrix:   []vec4{r.v4(m.Row(0)), r.v4(m.Row(1)), r.v4(m.Row(2)), r.v4(m.Row(3))},
		}
	}

	if c.cfg.Output.Format == config.FormatYAML {
		return writeYAML(c.stdout, map[string]any{
			"model":   name,
			"version": rsm.Version.String(),
			"nodes":   nodes,
		})
	}

	fmt.Fprintf(c.stdout, "Model:    %s (RSM %s)\n", name, rsm.Version)
	fmt.Fprintf(c.stdout, "Root:     %s\n", rsm.RootNode)
	fmt.Fprintf(c.stdout, "Textures: %d\n", len(rsm.Textures))
	for _, n := range nodes {
		fmt.Fprintln(c.stdout)
		fmt.Fprintf(c.stdout, "Node %s", n.Name)
		if n.Parent != "" {
			fmt.Fprintf(c.stdout, " (parent %s)", n.Parent)
		}
		fmt.Fprintf(c.stdout, ": %d vertices, %d faces\n", n.Vertices, n.Faces)
		fmt.Fprintf(c.stdout, "  translation: %s\n", c.fmtVec(n.Translation))
		fmt.Fprintf(c.stdout, "  scale:       %s\n", c.fmtVec(n.Scale))
		fmt.Fprintf(c.stdout, "  rotation:    %s\n", c.fmtVec(n.Euler))
		for _, row := range n.Matrix {
			p := c.cfg.Output.Precision
			fmt.Fprintf(c.stdout, "  [%.*f %.*f %.*f %.*f]\n", p, row[0], p, row[1], p, row[2], p, row[3])
		}
	}
	return nil
}

func cmdPlacements(c *cli, args []string) error {
	fs := c.newFlagSet()
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%w: grftool placements [-grf file.grf] <map.rsw>", errUsage)
	}
	name := fs.Arg(0)

	src := c.assets()
	defer src.Close()
	rsw, err := src.LoadRSW(name)
	if err != nil {
		return err
	}

	r := newRounder(c.cfg.Output.Precision)
	t := c.cfg.Model.AnimTimeMs
	models := make(map[string]*formats.RSM)
	world := graphics.NewBoundingBox()
	var placements []placementReport
	for _, m := range rsw.GetModels() {
		p := placementReport{
			Name:     m.Name,
			Model:    m.ModelName,
			Position: r.v3(m.Position),
			Rotation: r.v3(m.Rotation),
			Scale:    r.v3(m.Scale),
		}

		rsm, ok := models[m.ModelName]
		if !ok {
			rsm, err = loadRSM(src, path.Join(modelDir, normalizeSlashes(m.ModelName)))
			if err != nil {
				logger.Warn("model unavailable", zap.String("model", m.ModelName), zap.Error(err))
			}
			models[m.ModelName] = rsm
		}
		if rsm != nil && rsm.GetTotalVertexCount() > 0 {
			// Placed boxes are Y-reversed, so Max.Y may be below Min.Y.
			b := m.BoundingBox(rsm, t)
			world.Include(b.Min)
			world.Include(b.Max)
			p.Box = r.box("", b)
		}
		placements = append(placements, p)
	}

	if !world.IsEmpty() {
		world.Recalculate()
	}
	if c.cfg.Output.Format == config.FormatYAML {
		out := map[string]any{"map": name, "models": placements}
		if !world.IsEmpty() {
			out["bounds"] = r.box("", world)
		}
		return writeYAML(c.stdout, out)
	}

	fmt.Fprintf(c.stdout, "Map:    %s (RSW %s)\n", name, rsw.Version)
	fmt.Fprintf(c.stdout, "Models: %d\n", len(placements))
	for _, p := range placements {
		fmt.Fprintln(c.stdout)
		fmt.Fprintf(c.stdout, "%s [%s]\n", p.Name, p.Model)
		fmt.Fprintf(c.stdout, "  position: %s\n", c.fmtVec(p.Position))
		fmt.Fprintf(c.stdout, "  rotation: %s\n", c.fmtVec(p.Rotation))
		fmt.Fprintf(c.stdout, "  scale:    %s\n", c.fmtVec(p.Scale))
		if p.Box != nil {
			fmt.Fprintf(c.stdout, "  min:      %s\n", c.fmtVec(p.Box.Min))
			fmt.Fprintf(c.stdout, "  max:      %s\n", c.fmtVec(p.Box.Max))
		}
	}
	if !world.IsEmpty() {
		wb := r.box("", world)
		fmt.Fprintln(c.stdout)
		fmt.Fprintf(c.stdout, "World min: %s\n", c.fmtVec(wb.Min))
		fmt.Fprintf(c.stdout, "World max: %s\n", c.fmtVec(wb.Max))
	}
	return nil
}
