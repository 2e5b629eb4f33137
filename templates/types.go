// Package templates defines the contract for authored message templates:
// markdown documents with YAML frontmatter that render into structured
// container messages.
package templates

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-chatkit/message"
	"github.com/goliatone/go-chatkit/styles"
)

// Definition is a registered message template. Blocks hold the display
// blocks split from the markdown body; the category heading is applied at
// render time.
type Definition struct {
	ID        uuid.UUID       `json:"id"`
	Slug      string          `json:"slug"`
	Title     string          `json:"title"`
	Category  styles.Category `json:"category,omitempty"`
	Ephemeral bool            `json:"ephemeral"`
	Silent    bool            `json:"silent"`
	Accent    *styles.Tone    `json:"accent,omitempty"`
	Blocks    []message.Block `json:"-"`
	Source    string          `json:"source,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RegisterInput captures template attributes for creation or upsert.
type RegisterInput struct {
	Slug      string
	Title     string
	Category  styles.Category
	Ephemeral bool
	Silent    bool
	Accent    *styles.Tone
	Blocks    []message.Block
	Source    string
}

// RenderInput selects a template and the substitution variables applied to
// its text blocks.
type RenderInput struct {
	Slug string
	// Vars replaces {{name}} placeholders inside text block content.
	Vars map[string]string
	// Ephemeral overrides the template's ephemeral setting.
	Ephemeral *bool
}

// Service exposes template registration, lookup, and rendering.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*Definition, error)
	Get(ctx context.Context, slug string) (*Definition, error)
	List(ctx context.Context) ([]*Definition, error)
	LoadDirectory(ctx context.Context, dir string) (int, error)
	Render(ctx context.Context, input RenderInput) (*message.Message, error)
}

// Repository persists template definitions.
type Repository interface {
	Upsert(ctx context.Context, definition *Definition) (*Definition, error)
	GetBySlug(ctx context.Context, slug string) (*Definition, error)
	List(ctx context.Context) ([]*Definition, error)
}
