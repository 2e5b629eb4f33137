package message

import "errors"

var (
	ErrNoContainers     = errors.New("message: at least one container is required")
	ErrEmptyContainer   = errors.New("message: container requires at least one block")
	ErrUnknownCategory  = errors.New("message: unknown category")
	ErrAccentOffPalette = errors.New("message: accent tone is not part of the fixed palette")
	ErrTextRequired     = errors.New("message: text block content is required")
	ErrMediaURLRequired = errors.New("message: media block requires a url")
)
