package templates

import (
	"errors"
	"fmt"
)

var (
	ErrSlugRequired     = errors.New("templates: slug is required")
	ErrTemplateNotFound = errors.New("templates: template not found")
	ErrBodyEmpty        = errors.New("templates: body has no renderable blocks")
	ErrUnknownAccent    = errors.New("templates: unknown accent name")
	ErrMetadataInvalid  = errors.New("templates: frontmatter metadata invalid")
)

// NotFoundError wraps ErrTemplateNotFound with the missing slug.
type NotFoundError struct {
	Slug string
}

func (e *NotFoundError) Error() string {
	if e == nil || e.Slug == "" {
		return ErrTemplateNotFound.Error()
	}
	return fmt.Sprintf("%s: %s", ErrTemplateNotFound.Error(), e.Slug)
}

func (e *NotFoundError) Unwrap() error {
	return ErrTemplateNotFound
}
