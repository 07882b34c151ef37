//go:build !ebiten

package gui

import (
	"context"
	"log"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/torus-life/model"
	"github.com/sheikhrachel/torus-life/utils"
)

// Available reports whether this binary was built with the window renderer
const Available = false

var ErrUnavailable = errors.New("the gui renderer requires the ebiten build tag; rebuild with `go build -tags ebiten`")

// Run always fails without the ebiten build tag.
func Run(_ context.Context, _ *model.Board, _ utils.Config, _ *log.Logger) error {
	return errors.WithStack(ErrUnavailable)
}
