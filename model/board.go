package model

import (
	"crypto/md5"
	"fmt"
	"math/rand/v2"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/torus-life/rules"
)

const (
	DefaultWidth  = 500
	DefaultHeight = 500
)

// Board is a toroidal Game of Life grid. It owns its cells outright: grids
// passed to FromGrid and SetGrid are copied.
//
// Mutating methods are serialized with each other. Readers never observe a
// generation that is only partially computed.
type Board struct {
	// step serializes AdvanceGeneration, Randomize, Set and SetGrid
	step sync.Mutex

	mu         sync.RWMutex
	width      int
	height     int
	generation int
	grid       Grid

	rng *rand.Rand
}

// Option configures a Board at construction time
type Option func(*Board)

// WithSeed seeds the board's random source for reproducible Randomize calls
func WithSeed(seed int64) Option {
	return func(b *Board) {
		b.rng = rand.New(rand.NewPCG(uint64(seed), 0))
	}
}

// WithRand threads an existing random source through the board
func WithRand(r *rand.Rand) Option {
	return func(b *Board) {
		if r != nil {
			b.rng = r
		}
	}
}

// StepResult summarizes one generation advance
type StepResult struct {
	Births     int
	Deaths     int
	Population int
}

// NewBoard creates a width x height board with every cell dead
func NewBoard(width, height int, opts ...Option) (*Board, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, errors.Wrap(err, "[NewBoard] invalid dimensions")
	}
	return newBoard(NewGrid(width, height), width, height, opts), nil
}

// FromGrid creates a board from a copy of grid, taking its dimensions from the
// grid's own extents.
func FromGrid(grid Grid, opts ...Option) (*Board, error) {
	width, height, err := grid.Dimensions()
	if err != nil {
		return nil, errors.Wrap(err, "[FromGrid] invalid grid")
	}
	return newBoard(grid.Clone(), width, height, opts), nil
}

// NewDefaultBoard creates a DefaultWidth x DefaultHeight board of dead cells
func NewDefaultBoard(opts ...Option) *Board {
	return newBoard(NewGrid(DefaultWidth, DefaultHeight), DefaultWidth, DefaultHeight, opts)
}

func newBoard(grid Grid, width, height int, opts []Option) *Board {
	b := &Board{width: width, height: height, grid: grid}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return b
}

// Width returns the number of cells in each row
func (b *Board) Width() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.width
}

// Height returns the number of rows
func (b *Board) Height() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.height
}

// Generation returns how many times the board has advanced since it was built
// or last replaced with SetGrid.
func (b *Board) Generation() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.generation
}

// Grid returns the live backing grid, not a copy. It exists so renderers can
// read cells without allocating; writing through it bypasses every guarantee
// the board makes. Use Snapshot for a private copy and Set to change cells.
func (b *Board) Grid() Grid {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.grid
}

// Snapshot returns a deep copy of the current generation
func (b *Board) Snapshot() Grid {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.grid.Clone()
}

// SetGrid replaces the backing grid with a copy of grid. Dimensions are
// recomputed from the replacement and the generation counter restarts.
func (b *Board) SetGrid(grid Grid) error {
	width, height, err := grid.Dimensions()
	if err != nil {
		return errors.Wrap(err, "[SetGrid] invalid grid")
	}
	next := grid.Clone()

	b.step.Lock()
	defer b.step.Unlock()

	b.mu.Lock()
	b.grid, b.width, b.height, b.generation = next, width, height, 0
	b.mu.Unlock()
	return nil
}

func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Alive reports the liveness of the cell at (x, y)
func (b *Board) Alive(x, y int) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.inBounds(x, y) {
		return false, errors.Wrapf(ErrOutOfBounds, "[Alive] (%d,%d) on %dx%d board", x, y, b.width, b.height)
	}
	return b.grid[y][x].alive, nil
}

// Set changes the liveness of the cell at (x, y)
func (b *Board) Set(x, y int, alive bool) error {
	b.step.Lock()
	defer b.step.Unlock()

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.inBounds(x, y) {
		return errors.Wrapf(ErrOutOfBounds, "[Set] (%d,%d) on %dx%d board", x, y, b.width, b.height)
	}
	b.grid[y][x].SetAlive(alive)
	return nil
}

// NeighborCount returns how many of the 8 toroidal neighbors of (x, y) are alive
func (b *Board) NeighborCount(x, y int) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.inBounds(x, y) {
		return 0, errors.Wrapf(ErrOutOfBounds, "[NeighborCount] (%d,%d) on %dx%d board", x, y, b.width, b.height)
	}
	return countNeighbors(b.grid, b.width, b.height, x, y), nil
}

// countNeighbors counts live cells around (x, y), wrapping at every edge
func countNeighbors(grid Grid, width, height, x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		ny := (y + dy + height) % height
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if grid[ny][(x+dx+width)%width].alive {
				count++
			}
		}
	}
	return count
}

// Randomize sets every cell alive with probability 1/2 using the board's
// random source.
func (b *Board) Randomize() {
	b.step.Lock()
	defer b.step.Unlock()

	b.mu.Lock()
	defer b.mu.Unlock()
	for y := range b.grid {
		for x := range b.grid[y] {
			b.grid[y][x].SetAlive(b.rng.IntN(2) == 0)
		}
	}
}

// AdvanceGeneration computes the next generation from the current one and
// swaps it in. No cell of the current grid is written during the computation.
//
// It fails only if the grid was resized through the Grid escape hatch, in
// which case the board is left unchanged.
func (b *Board) AdvanceGeneration() (StepResult, error) {
	b.step.Lock()
	defer b.step.Unlock()

	// Mutators all hold step, so the current grid is stable from here on.
	b.mu.RLock()
	cur, width, height := b.grid, b.width, b.height
	b.mu.RUnlock()

	if len(cur) != height {
		return StepResult{}, errors.Wrapf(ErrJaggedGrid, "[AdvanceGeneration] grid has %d rows, expected %d", len(cur), height)
	}
	next := NewGrid(width, height)

	var (
		eg            errgroup.Group
		numWorkers    = min(runtime.NumCPU(), height)
		rowsPerWorker = (height + numWorkers - 1) / numWorkers // Ceiling division
		bands         = make([]StepResult, numWorkers)
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, height)
			band     = &bands[i]
		)
		if startRow >= height {
			break
		}

		eg.Go(func() error {
			// the band reads one row above and below itself
			for y := startRow - 1; y <= endRow; y++ {
				row := (y + height) % height
				if len(cur[row]) != width {
					return errors.Wrapf(ErrJaggedGrid, "[AdvanceGeneration] row %d has %d cells, expected %d", row, len(cur[row]), width)
				}
			}
			for y := startRow; y < endRow; y++ {
				for x := 0; x < width; x++ {
					alive := cur[y][x].alive
					t := rules.Classify(countNeighbors(cur, width, height, x, y), alive)
					switch {
					case t == rules.Reproduction:
						band.Births++
					case alive && !t.Alive():
						band.Deaths++
					}
					if t.Alive() {
						next[y][x].alive = true
						band.Population++
					}
				}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return StepResult{}, err
	}

	var res StepResult
	for _, band := range bands {
		res.Births += band.Births
		res.Deaths += band.Deaths
		res.Population += band.Population
	}

	b.mu.Lock()
	b.grid = next
	b.generation++
	b.mu.Unlock()

	return res, nil
}

// Population returns the total number of living cells
func (b *Board) Population() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.grid.Population()
}

// Hash returns an MD5 digest of the current cell states
func (b *Board) Hash() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	h := md5.New()
	row := make([]byte, 0, b.width)
	for _, cells := range b.grid {
		row = row[:0]
		for _, c := range cells {
			if c.alive {
				row = append(row, 1)
			} else {
				row = append(row, 0)
			}
		}
		h.Write(row)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// String renders one glyph per cell, row by row, with a newline after each row
func (b *Board) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var sb strings.Builder
	sb.Grow(b.height * (b.width*len(glyphAlive) + 1))
	for _, row := range b.grid {
		for _, c := range row {
			sb.WriteString(c.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
