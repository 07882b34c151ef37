package model

import (
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
)

// gridFromRows builds a grid from rows of '#' (alive) and '.' (dead)
func gridFromRows(rows ...string) Grid {
	grid := make(Grid, len(rows))
	for y, row := range rows {
		for _, r := range row {
			grid[y] = append(grid[y], NewCell(r == '#'))
		}
	}
	return grid
}

func mustBoard(t *testing.T, rows ...string) *Board {
	t.Helper()
	b, err := FromGrid(gridFromRows(rows...), WithSeed(1))
	if err != nil {
		t.Fatalf("FromGrid: %v", err)
	}
	return b
}

func mustAdvance(t *testing.T, b *Board) StepResult {
	t.Helper()
	res, err := b.AdvanceGeneration()
	if err != nil {
		t.Fatalf("AdvanceGeneration: %v", err)
	}
	return res
}

func expectRows(t *testing.T, b *Board, rows ...string) {
	t.Helper()
	want := gridFromRows(rows...)
	for y := range want {
		for x := range want[y] {
			alive, err := b.Alive(x, y)
			if err != nil {
				t.Fatalf("Alive(%d,%d): %v", x, y, err)
			}
			if alive != want[y][x].Alive() {
				t.Fatalf("generation %d cell (%d,%d) alive=%v, expected %v\n%s", b.Generation(), x, y, alive, want[y][x].Alive(), b)
			}
		}
	}
}

func TestNewBoardRejectsBadDimensions(t *testing.T) {
	cases := []struct {
		w, h int
		want error
	}{
		{0, 5, ErrInvalidDimensions},
		{5, -1, ErrInvalidDimensions},
		{2, 5, ErrBoardTooSmall},
		{5, 1, ErrBoardTooSmall},
	}
	for _, c := range cases {
		b, err := NewBoard(c.w, c.h)
		if b != nil || !errors.Is(err, c.want) {
			t.Fatalf("NewBoard(%d,%d) = %v, %v; expected %v", c.w, c.h, b, err, c.want)
		}
	}
}

func TestNewBoardAllDead(t *testing.T) {
	b, err := NewBoard(75, 50)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	if b.Width() != 75 || b.Height() != 50 {
		t.Fatalf("dimensions %dx%d, expected 75x50", b.Width(), b.Height())
	}
	if b.Population() != 0 {
		t.Fatalf("new board has %d live cells", b.Population())
	}
}

func TestNewDefaultBoard(t *testing.T) {
	b := NewDefaultBoard(WithSeed(1))
	if b.Width() != DefaultWidth || b.Height() != DefaultHeight || b.Population() != 0 {
		t.Fatalf("default board %dx%d with %d live cells", b.Width(), b.Height(), b.Population())
	}
}

func TestFromGridValidation(t *testing.T) {
	if _, err := FromGrid(nil); !errors.Is(err, ErrEmptyGrid) {
		t.Fatalf("nil grid: got %v", err)
	}
	if _, err := FromGrid(Grid{{}}); !errors.Is(err, ErrEmptyGrid) {
		t.Fatalf("grid with empty row: got %v", err)
	}
	if _, err := FromGrid(gridFromRows("....", "...", "....")); !errors.Is(err, ErrJaggedGrid) {
		t.Fatalf("jagged grid: got %v", err)
	}
	if _, err := FromGrid(gridFromRows("..", "..", "..")); !errors.Is(err, ErrBoardTooSmall) {
		t.Fatalf("narrow grid: got %v", err)
	}
}

func TestFromGridDerivesDimensionsAndCopies(t *testing.T) {
	src := gridFromRows(
		"#.....",
		"......",
		"......",
		".....#",
	)
	b, err := FromGrid(src)
	if err != nil {
		t.Fatalf("FromGrid: %v", err)
	}
	if b.Width() != 6 || b.Height() != 4 {
		t.Fatalf("dimensions %dx%d, expected 6x4", b.Width(), b.Height())
	}

	src[0][0].SetAlive(false)
	if alive, _ := b.Alive(0, 0); !alive {
		t.Fatal("board aliases the grid it was built from")
	}
}

func TestSetGridRecomputesDimensions(t *testing.T) {
	b := mustBoard(t, ".....", ".....", ".....", ".....", ".....")
	mustAdvance(t, b)

	if err := b.SetGrid(gridFromRows("....", "....", ".##.", ".##.", "....", "....")); err != nil {
		t.Fatalf("SetGrid: %v", err)
	}
	if b.Width() != 4 || b.Height() != 6 {
		t.Fatalf("dimensions %dx%d, expected 4x6", b.Width(), b.Height())
	}
	if b.Generation() != 0 {
		t.Fatalf("generation %d after SetGrid, expected 0", b.Generation())
	}
	if b.Population() != 4 {
		t.Fatalf("population %d, expected 4", b.Population())
	}

	if err := b.SetGrid(nil); !errors.Is(err, ErrEmptyGrid) {
		t.Fatalf("SetGrid(nil): got %v", err)
	}
	if b.Width() != 4 || b.Height() != 6 {
		t.Fatal("failed SetGrid changed the board")
	}
}

func TestOutOfBounds(t *testing.T) {
	b := mustBoard(t, "...", "...", "...")
	if _, err := b.Alive(3, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("Alive(3,0): got %v", err)
	}
	if _, err := b.Alive(0, -1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("Alive(0,-1): got %v", err)
	}
	if err := b.Set(-1, 0, true); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("Set(-1,0): got %v", err)
	}
	if _, err := b.NeighborCount(0, 3); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("NeighborCount(0,3): got %v", err)
	}
}

func TestAllDeadStaysDead(t *testing.T) {
	b, err := NewBoard(16, 9)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	res := mustAdvance(t, b)
	if res != (StepResult{}) || b.Population() != 0 {
		t.Fatalf("dead board produced life: %+v", res)
	}
}

func TestCornerWrap(t *testing.T) {
	b := mustBoard(t,
		"#...",
		"....",
		"....",
		"...#",
	)
	if n, _ := b.NeighborCount(0, 0); n != 1 {
		t.Fatalf("corner (0,0) sees %d neighbors, expected 1", n)
	}
	if n, _ := b.NeighborCount(3, 3); n != 1 {
		t.Fatalf("corner (3,3) sees %d neighbors, expected 1", n)
	}
	// (3,0) touches both corners across the vertical and horizontal seams
	if n, _ := b.NeighborCount(3, 0); n != 2 {
		t.Fatalf("cell (3,0) sees %d neighbors, expected 2", n)
	}
}

func TestNextStateDependsOnlyOnNeighborhood(t *testing.T) {
	const size, cx, cy = 8, 3, 3

	base, err := NewBoard(size, size, WithSeed(7))
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	base.Randomize()
	start := base.Snapshot()

	mustAdvance(t, base)
	want, _ := base.Alive(cx, cy)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x >= cx-1 && x <= cx+1 && y >= cy-1 && y <= cy+1 {
				continue
			}
			grid := start.Clone()
			grid[y][x].SetAlive(!grid[y][x].Alive())
			b, err := FromGrid(grid)
			if err != nil {
				t.Fatalf("FromGrid: %v", err)
			}
			mustAdvance(t, b)
			if got, _ := b.Alive(cx, cy); got != want {
				t.Fatalf("flipping (%d,%d) changed the next state of (%d,%d)", x, y, cx, cy)
			}
		}
	}
}

func TestRandomizeIsFairAndSeeded(t *testing.T) {
	a, _ := NewBoard(200, 200, WithSeed(42))
	b, _ := NewBoard(200, 200, WithSeed(42))
	a.Randomize()
	b.Randomize()

	ratio := float64(a.Population()) / float64(200*200)
	if ratio < 0.47 || ratio > 0.53 {
		t.Fatalf("randomized live ratio %.3f, expected about 0.5", ratio)
	}
	if a.Hash() != b.Hash() {
		t.Fatal("boards with the same seed randomized differently")
	}
}

func TestStringFormat(t *testing.T) {
	b := mustBoard(t,
		"#..",
		".#.",
		"..#",
	)
	want := "▓░░\n░▓░\n░░▓\n"
	if got := b.String(); got != want {
		t.Fatalf("String() = %q, expected %q", got, want)
	}
}

func TestStringGlyphCountMatchesPopulation(t *testing.T) {
	b, _ := NewBoard(31, 17, WithSeed(3))
	b.Randomize()
	text := b.String()

	if got := strings.Count(text, glyphAlive); got != b.Population() {
		t.Fatalf("%d alive glyphs for %d live cells", got, b.Population())
	}
	if got := strings.Count(text, "\n"); got != 17 {
		t.Fatalf("%d lines, expected 17", got)
	}
}

func TestBlinkerOscillates(t *testing.T) {
	b := mustBoard(t,
		".....",
		".....",
		".###.",
		".....",
		".....",
	)
	start := b.Hash()

	res := mustAdvance(t, b)
	expectRows(t, b,
		".....",
		"..#..",
		"..#..",
		"..#..",
		".....",
	)
	if res.Births != 2 || res.Deaths != 2 || res.Population != 3 {
		t.Fatalf("unexpected step result %+v", res)
	}

	mustAdvance(t, b)
	expectRows(t, b,
		".....",
		".....",
		".###.",
		".....",
		".....",
	)
	if b.Hash() != start || b.Generation() != 2 {
		t.Fatalf("blinker did not return to its start after 2 generations")
	}
}

func TestIsolatedCellDies(t *testing.T) {
	b := mustBoard(t,
		"....",
		".#..",
		"....",
		"....",
	)
	res := mustAdvance(t, b)
	if b.Population() != 0 || res.Deaths != 1 {
		t.Fatalf("isolated cell survived: %+v", res)
	}
}

func TestBlockIsStill(t *testing.T) {
	for _, rows := range [][]string{
		{"....", ".##.", ".##.", "...."},
		{"##..", "##..", "....", "...."},
		{"......", "......", "..##..", "..##..", "......", "......"},
	} {
		b := mustBoard(t, rows...)
		for range 5 {
			mustAdvance(t, b)
		}
		expectRows(t, b, rows...)
	}
}

func TestAdvanceRejectsResizedEscapeHatch(t *testing.T) {
	b := mustBoard(t, "....", ".##.", ".##.", "....")
	grid := b.Grid()
	grid[2] = grid[2][:2]

	if _, err := b.AdvanceGeneration(); !errors.Is(err, ErrJaggedGrid) {
		t.Fatalf("AdvanceGeneration on jagged grid: got %v", err)
	}
	if b.Generation() != 0 {
		t.Fatal("failed advance changed the generation")
	}
}

func TestReadersSeeWholeGenerations(t *testing.T) {
	b := mustBoard(t,
		".....",
		".....",
		".###.",
		".....",
		".....",
	)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			if got := strings.Count(b.String(), glyphAlive); got != 3 {
				t.Errorf("reader saw %d live cells mid-step", got)
				return
			}
		}
	}()

	for range 200 {
		mustAdvance(t, b)
	}
	close(stop)
	wg.Wait()
}
