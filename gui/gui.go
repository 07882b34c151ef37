//go:build ebiten

// Package gui draws a board in a window, one filled square per live cell.
package gui

import (
	"context"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/torus-life/model"
	"github.com/sheikhrachel/torus-life/runner"
	"github.com/sheikhrachel/torus-life/utils"
)

// Available reports whether this binary was built with the window renderer
const Available = true

// Game adapts a board and its runner to the ebiten.Game interface.
type Game struct {
	board    *model.Board
	runner   *runner.Runner
	pacer    *pacer
	logger   *log.Logger
	cellSize int

	img  *ebiten.Image
	buf  []byte
	w, h int

	onColor  color.Color
	offColor color.Color
}

// New constructs a Game. The runner must have been built without a renderer;
// the window draws on its own schedule. The window closes when ctx ends.
func New(ctx context.Context, board *model.Board, r *runner.Runner, config utils.Config, logger *log.Logger) (*Game, int) {
	p, tps := newPacer(ctx, config.Tick.Duration)
	return &Game{
		board:    board,
		runner:   r,
		pacer:    p,
		logger:   logger,
		cellSize: config.CellSize,
		onColor:  color.Black,
		offColor: color.White,
	}, tps
}

// Update advances one generation per configured tick.
func (g *Game) Update() error {
	if g.pacer.stopped() {
		g.logger.Printf("interrupted after %d generations", g.runner.Generation())
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if !g.pacer.due() {
		return nil
	}
	done, reason, err := g.runner.Tick()
	if err != nil {
		return err
	}
	if done {
		g.logger.Printf("stopped (%s) after %d generations", reason, g.runner.Generation())
		return ebiten.Termination
	}
	return nil
}

// Draw renders the current generation.
func (g *Game) Draw(screen *ebiten.Image) {
	grid := g.board.Grid()
	w, h := g.board.Width(), g.board.Height()
	if g.img == nil || w != g.w || h != g.h {
		g.w, g.h = w, h
		g.img = ebiten.NewImage(w, h)
		g.buf = make([]byte, 4*w*h)
	}
	fillCellsRGBA(g.buf, grid, g.onColor, g.offColor)
	g.img.WritePixels(g.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.cellSize), float64(g.cellSize))
	screen.DrawImage(g.img, op)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.board.Width() * g.cellSize, g.board.Height() * g.cellSize
}

// Run opens a window and blocks until it is closed, ctx ends or the runner
// stops.
func Run(ctx context.Context, board *model.Board, config utils.Config, logger *log.Logger) error {
	r := runner.New(board, nil, config, logger)
	game, tps := New(ctx, board, r, config, logger)

	ebiten.SetWindowTitle("Game of Life")
	ebiten.SetTPS(tps)
	ebiten.SetWindowSize(board.Width()*config.CellSize, board.Height()*config.CellSize)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "[Run] window closed with error")
	}
	return nil
}
