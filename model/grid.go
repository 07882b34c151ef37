package model

import "github.com/pkg/errors"

// Grid holds cells in row-major order: grid[y][x]. Its height is len(grid) and
// its width is the length of every row.
type Grid [][]Cell

// NewGrid allocates a width x height grid of dead cells
func NewGrid(width, height int) Grid {
	cells := make([]Cell, width*height)
	grid := make(Grid, height)
	for y := range grid {
		grid[y] = cells[y*width : (y+1)*width : (y+1)*width]
	}
	return grid
}

// Dimensions validates the grid and returns its extents.
func (g Grid) Dimensions() (width, height int, err error) {
	if len(g) == 0 || len(g[0]) == 0 {
		return 0, 0, errors.WithStack(ErrEmptyGrid)
	}
	width, height = len(g[0]), len(g)
	for y, row := range g {
		if len(row) != width {
			return 0, 0, errors.Wrapf(ErrJaggedGrid, "[Dimensions] row %d has %d cells, expected %d", y, len(row), width)
		}
	}
	if err = checkDimensions(width, height); err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

// Clone returns a deep copy that shares no storage with g
func (g Grid) Clone() Grid {
	if len(g) == 0 {
		return nil
	}
	next := NewGrid(len(g[0]), len(g))
	for y, row := range g {
		copy(next[y], row)
	}
	return next
}

// Population counts the live cells
func (g Grid) Population() (count int) {
	for _, row := range g {
		for _, c := range row {
			if c.alive {
				count++
			}
		}
	}
	return
}
