package game

import "github.com/pkg/errors"

var (
	ErrEmptyHistory  = errors.New("no moves to undo")
	ErrInvalidConfig = errors.New("invalid game configuration")
)
