// Package templates implements the message template subsystem: parsing
// markdown documents into display blocks, registering them, and rendering
// them into conformant messages.
package templates

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-chatkit/internal/identity"
	"github.com/goliatone/go-chatkit/internal/logging"
	"github.com/goliatone/go-chatkit/message"
	"github.com/goliatone/go-chatkit/pkg/interfaces"
	"github.com/goliatone/go-chatkit/templates"
)

type service struct {
	repo   templates.Repository
	logger interfaces.Logger
	clock  func() time.Time
}

// Option customises the template service.
type Option func(*service)

// WithLogger attaches a logger to the service.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewService constructs the template service backed by the provided repository.
func NewService(repo templates.Repository, opts ...Option) templates.Service {
	svc := &service{
		repo:   repo,
		logger: logging.NoOp(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	if svc.repo == nil {
		svc.repo = NewMemoryRepository()
	}
	return svc
}

func (s *service) Register(ctx context.Context, input templates.RegisterInput) (*templates.Definition, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	normalized, err := slug.Normalize(input.Slug)
	if err != nil || normalized == "" {
		return nil, templates.ErrSlugRequired
	}

	definition := &templates.Definition{
		ID:        identity.TemplateUUID(normalized),
		Slug:      normalized,
		Title:     strings.TrimSpace(input.Title),
		Category:  input.Category,
		Ephemeral: input.Ephemeral,
		Silent:    input.Silent,
		Accent:    input.Accent,
		Blocks:    append([]message.Block(nil), input.Blocks...),
		Source:    input.Source,
		UpdatedAt: s.clock(),
	}

	stored, err := s.repo.Upsert(ctx, definition)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("template registered", "slug", stored.Slug, "category", string(stored.Category))
	return stored, nil
}

func (s *service) Get(ctx context.Context, slugValue string) (*templates.Definition, error) {
	normalized, err := slug.Normalize(slugValue)
	if err != nil || normalized == "" {
		return nil, templates.ErrSlugRequired
	}
	return s.repo.GetBySlug(ctx, normalized)
}

func (s *service) List(ctx context.Context) ([]*templates.Definition, error) {
	return s.repo.List(ctx)
}

func (s *service) LoadDirectory(ctx context.Context, dir string) (int, error) {
	if strings.TrimSpace(dir) == "" {
		return 0, fmt.Errorf("templates: directory is required")
	}

	loaded := 0
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("templates: read %s: %w", path, err)
		}
		input, err := ParseDocument(path, source)
		if err != nil {
			return err
		}
		if _, err := s.Register(ctx, input); err != nil {
			return fmt.Errorf("templates: register %s: %w", path, err)
		}
		loaded++
		return nil
	})
	if err != nil {
		return loaded, err
	}
	s.logger.Info("template directory loaded", "dir", dir, "count", loaded)
	return loaded, nil
}

func (s *service) Render(ctx context.Context, input templates.RenderInput) (*message.Message, error) {
	definition, err := s.Get(ctx, input.Slug)
	if err != nil {
		return nil, err
	}

	var builder *message.Builder
	if definition.Category != "" {
		builder = message.NewCategory(definition.Category, substitute(definition.Title, input.Vars))
	} else {
		builder = message.New()
	}

	for _, block := range definition.Blocks {
		if text, ok := block.(message.TextBlock); ok {
			builder.Text(substitute(text.Content, input.Vars))
			continue
		}
		builder.Block(block)
	}

	if definition.Accent != nil {
		builder.Accent(*definition.Accent)
	}
	ephemeral := definition.Ephemeral
	if input.Ephemeral != nil {
		ephemeral = *input.Ephemeral
	}
	if ephemeral {
		builder.Ephemeral()
	}
	if definition.Silent {
		builder.Silent()
	}
	return builder.Build()
}

func validateRegisterInput(input templates.RegisterInput) error {
	return validation.ValidateStruct(&input,
		validation.Field(&input.Slug, validation.Required.Error(templates.ErrSlugRequired.Error())),
		validation.Field(&input.Category, validation.By(func(any) error {
			if input.Category != "" && !input.Category.Valid() {
				return validation.NewError("chatkit.templates.category_invalid", fmt.Sprintf("unknown category %q", input.Category))
			}
			return nil
		})),
		validation.Field(&input.Blocks, validation.By(func(any) error {
			if len(input.Blocks) == 0 {
				return validation.NewError("chatkit.templates.body_empty", templates.ErrBodyEmpty.Error())
			}
			return nil
		})),
	)
}

// substitute replaces {{name}} placeholders with the provided variables.
// Unknown placeholders are left untouched so missing data stays visible.
func substitute(content string, vars map[string]string) string {
	if len(vars) == 0 || !strings.Contains(content, "{{") {
		return content
	}
	for key, value := range vars {
		content = strings.ReplaceAll(content, "{{"+key+"}}", value)
	}
	return content
}
