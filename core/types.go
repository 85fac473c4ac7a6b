package core

// NoSource marks an item or curve that was not derived from another curve.
const NoSource = -1

// Point is a point of the plane.
type Point struct {
	X float64
	Y float64
}

// Equal reports whether p and q have exactly the same coordinates.
func (p Point) Equal(q Point) bool {
	return p.X == q.X && p.Y == q.Y
}

// Curve is a named polygonal curve.
// Source is the position of the original curve in its input collection
// when this curve was derived from it, NoSource otherwise.
type Curve struct {
	Name   string
	Points []Point
	Source int
}

// NewCurve returns an original curve.
func NewCurve(name string, points []Point) Curve {
	return Curve{Name: name, Points: points, Source: NoSource}
}

// Len returns the number of points of the curve.
func (c Curve) Len() int {
	return len(c.Points)
}

// Item is a named vector stored by an index.
// Indexes hold *Item references and never copy the coordinates.
type Item struct {
	Name   string
	Coords []float64
	Source int
}

// NewItem returns an item that is not derived from a curve.
func NewItem(name string, coords []float64) *Item {
	return &Item{Name: name, Coords: coords, Source: NoSource}
}

// Dimension returns the number of coordinates of the item.
func (it *Item) Dimension() int {
	return len(it.Coords)
}
