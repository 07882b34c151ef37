package model

import "github.com/pkg/errors"

// MinDimension is the smallest width or height a board accepts. Below three
// cells a wrapped neighborhood would count the same cell more than once.
const MinDimension = 3

var (
	ErrInvalidDimensions = errors.New("board dimensions must be positive")
	ErrBoardTooSmall     = errors.New("board dimensions must be at least 3x3")
	ErrEmptyGrid         = errors.New("grid is nil or empty")
	ErrJaggedGrid        = errors.New("grid rows have unequal length")
	ErrOutOfBounds       = errors.New("coordinate out of bounds")
)

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrInvalidDimensions, "[checkDimensions] got %dx%d", width, height)
	}
	if width < MinDimension || height < MinDimension {
		return errors.Wrapf(ErrBoardTooSmall, "[checkDimensions] got %dx%d", width, height)
	}
	return nil
}
