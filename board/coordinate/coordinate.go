package coordinate

// Point is a generic x/y pair. Grid positions and screen coordinates share
// the shape but not the meaning, so both are spellings of this type.
type Point[T comparable] struct {
	X T
	Y T
}

func NewPoint[T comparable](x, y T) Point[T] {
	return Point[T]{X: x, Y: y}
}

// Position is a cell position on the board: X is the column, Y is the row,
// both zero-based. Compared by equality.
type Position = Point[int]

func NewPosition(x, y int) Position {
	return Position{X: x, Y: y}
}
