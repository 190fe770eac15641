package data

// Contains the X,Y,Z coordinates of a single Point Cloud Point
type Point struct {
	X float64
	Y float64
	Z float64
}

// Builds a new Point from the given coordinates
func NewPoint(X, Y, Z float64) Point {
	return Point{
		X: X,
		Y: Y,
		Z: Z,
	}
}

// Returns the coordinates of the point in x, y, z order
func (p Point) Coords() [3]float64 {
	return [3]float64{p.X, p.Y, p.Z}
}
