package graphics

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Point is an integer 2D coordinate, typically a pixel or cell position.
type Point struct {
	X, Y int
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// ToPoint2D converts to float coordinates.
func (p Point) ToPoint2D() Point2D {
	return Point2D{float32(p.X), float32(p.Y)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Point2D is a float 2D coordinate.
type Point2D struct {
	X, Y float32
}

// Add returns p+q.
func (p Point2D) Add(q Point2D) Point2D {
	return Point2D{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{p.X - q.X, p.Y - q.Y}
}

// Rotate rotates p about the origin by degrees.
func (p Point2D) Rotate(degrees float32) Point2D {
	s, c := sinCos(DegreesToRadians(degrees))
	return Point2D{p.X*c - p.Y*s, p.X*s + p.Y*c}
}

// RotateAround rotates p about pivot by degrees.
func (p Point2D) RotateAround(pivot Point2D, degrees float32) Point2D {
	return p.Sub(pivot).Rotate(degrees).Add(pivot)
}

// Distance returns the Euclidean distance between p and q.
func (p Point2D) Distance(q Point2D) float32 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return math32.Sqrt(dx*dx + dy*dy)
}

// Round converts to the nearest integer point.
func (p Point2D) Round() Point {
	return Point{int(math32.Round(p.X)), int(math32.Round(p.Y))}
}

// Vector2 converts to a vector.
func (p Point2D) Vector2() Vector2 {
	return Vector2{p.X, p.Y}
}

// Point2DFromVector2 converts a vector to a point.
func Point2DFromVector2(v Vector2) Point2D {
	return Point2D{v.X, v.Y}
}

func (p Point2D) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
