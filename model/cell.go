package model

const (
	glyphAlive = "▓"
	glyphDead  = "░"
)

// Cell is a single square of the board. The zero value is a dead cell.
type Cell struct {
	alive bool
}

// NewCell returns a cell with the given liveness.
func NewCell(alive bool) Cell {
	return Cell{alive: alive}
}

// Alive returns the current liveness of the cell
func (c Cell) Alive() bool {
	return c.alive
}

// SetAlive sets the liveness of the cell
func (c *Cell) SetAlive(alive bool) {
	c.alive = alive
}

// String returns a filled glyph for a live cell and an empty glyph for a dead one
func (c Cell) String() string {
	if c.alive {
		return glyphAlive
	}
	return glyphDead
}
