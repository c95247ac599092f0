package ply

// Vector2 is a 2D point or offset in pixels.
type Vector2 struct {
	X float32
	Y float32
}

// Add returns the component-wise sum of two vectors.
func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Dimensions is a width/height pair in pixels.
type Dimensions struct {
	Width  float32
	Height float32
}

// BoundingBox describes the rectangular area occupied by an element.
type BoundingBox struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// Contains reports whether the point lies inside the box (edges inclusive).
func (b BoundingBox) Contains(p Vector2) bool {
	return p.X >= b.X && p.X <= b.X+b.Width &&
		p.Y >= b.Y && p.Y <= b.Y+b.Height
}

// maxFloat is used as the "unbounded" sentinel for sizing maximums.
const maxFloat float32 = 3.40282346638528859812e+38

// epsilon is the tolerance used when distributing space across elements.
const epsilon float32 = 0.01

func floatEqual(left, right float32) bool {
	diff := left - right
	return diff < epsilon && diff > -epsilon
}
