// Package tile defines the shared rectangle-with-identity type used for
// both demand tiles and stock panels throughout the optimizer.
package tile

// Orientation constrains how a tile may be rotated relative to a mosaic
// (grain direction). OrientationAny allows free rotation.
type Orientation int

const (
	OrientationAny Orientation = iota
	OrientationHorizontal
	OrientationVertical
)

func (o Orientation) String() string {
	switch o {
	case OrientationHorizontal:
		return "Horizontal"
	case OrientationVertical:
		return "Vertical"
	default:
		return "Any"
	}
}

// Edges names the optional edge-banding material assigned to each of a
// tile's four sides, in the tile's unrotated frame. An empty string
// means that side is not banded.
type Edges struct {
	Top    string
	Bottom string
	Left   string
	Right  string
}

// HasAny reports whether at least one side carries an edge material.
func (e Edges) HasAny() bool {
	return e.Top != "" || e.Bottom != "" || e.Left != "" || e.Right != ""
}

// Dimensions is a single demand tile or stock panel. ID is stable across
// rotations: rotating a Dimensions produces a new value with swapped
// Width/Height and a toggled IsRotated flag, but the same ID.
type Dimensions struct {
	ID          string
	Width       int64
	Height      int64
	Material    string
	Orientation Orientation
	Label       string
	IsRotated   bool
	EdgeBanding Edges
}

func (d Dimensions) Area() int64 { return d.Width * d.Height }

func (d Dimensions) MaxDim() int64 {
	if d.Width > d.Height {
		return d.Width
	}
	return d.Height
}

// IsSquare reports whether the tile is square; square tiles never rotate.
func (d Dimensions) IsSquare() bool { return d.Width == d.Height }

// Rotate returns a copy with Width/Height swapped and IsRotated toggled.
// Square tiles are returned unchanged since a 90-degree rotation of a
// square is indistinguishable from the original.
func (d Dimensions) Rotate() Dimensions {
	if d.IsSquare() {
		return d
	}
	d.Width, d.Height = d.Height, d.Width
	d.IsRotated = !d.IsRotated
	return d
}
