package world

import (
	"fmt"
	"math"
)

// ZoneCoord identifies a zone cell on the world grid. Each cell covers a
// square of zoneSize world units; cell (0,0) spans [0,zoneSize) on both axes.
type ZoneCoord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ZoneID is the synthetic identifier used for persistence and the event feed.
func (c ZoneCoord) ZoneID() string {
	return fmt.Sprintf("zone_%d_%d", c.X, c.Y)
}

// Origin returns the world-space position of the cell's top-left corner.
func (c ZoneCoord) Origin(zoneSize int) Position {
	return Position{X: float64(c.X * zoneSize), Y: float64(c.Y * zoneSize)}
}

// Chebyshev returns the chessboard distance between two cells.
func (c ZoneCoord) Chebyshev(o ZoneCoord) int {
	dx := absInt(c.X - o.X)
	dy := absInt(c.Y - o.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// CoordAt maps a world position to its containing cell. Floor division keeps
// negative positions in the correct cell: x=-1 belongs to cell -1, not 0.
func CoordAt(worldX, worldY float64, zoneSize int) ZoneCoord {
	return ZoneCoord{
		X: int(math.Floor(worldX / float64(zoneSize))),
		Y: int(math.Floor(worldY / float64(zoneSize))),
	}
}

// Position is a point in continuous world space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned world-space rectangle.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
