package model

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// ansiClear moves the cursor home and clears the screen
const ansiClear = "\033[H\033[2J"

// TerminalRenderer writes boards to a terminal using the cell glyphs
type TerminalRenderer struct {
	out io.Writer
}

// NewTerminalRenderer returns a renderer writing to out, or to stdout if out is nil
func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	if out == nil {
		out = os.Stdout
	}
	return &TerminalRenderer{out: out}
}

// Display renders the board to the terminal
func (r *TerminalRenderer) Display(b *Board) error {
	if _, err := io.WriteString(r.out, b.String()); err != nil {
		return errors.Wrap(err, "[Display] failed to write board")
	}
	return nil
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() error {
	if _, err := io.WriteString(r.out, ansiClear); err != nil {
		return errors.Wrap(err, "[Clear] failed to clear terminal")
	}
	return nil
}
