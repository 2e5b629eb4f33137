package templates

import (
	"context"
	"sort"
	"sync"

	"github.com/goliatone/go-chatkit/message"
	"github.com/goliatone/go-chatkit/templates"
)

// NewMemoryRepository constructs an "in memory" template repository.
func NewMemoryRepository() templates.Repository {
	return &memoryRepository{
		bySlug: make(map[string]*templates.Definition),
	}
}

type memoryRepository struct {
	mu     sync.RWMutex
	bySlug map[string]*templates.Definition
}

func (m *memoryRepository) Upsert(_ context.Context, definition *templates.Definition) (*templates.Definition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneDefinition(definition)
	m.bySlug[cloned.Slug] = cloned
	return cloneDefinition(cloned), nil
}

func (m *memoryRepository) GetBySlug(_ context.Context, slug string) (*templates.Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.bySlug[slug]
	if !ok {
		return nil, &templates.NotFoundError{Slug: slug}
	}
	return cloneDefinition(record), nil
}

func (m *memoryRepository) List(_ context.Context) ([]*templates.Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	defs := make([]*templates.Definition, 0, len(m.bySlug))
	for _, def := range m.bySlug {
		defs = append(defs, cloneDefinition(def))
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Slug < defs[j].Slug })
	return defs, nil
}

func cloneDefinition(definition *templates.Definition) *templates.Definition {
	if definition == nil {
		return nil
	}
	cloned := *definition
	if definition.Accent != nil {
		accent := *definition.Accent
		cloned.Accent = &accent
	}
	cloned.Blocks = append([]message.Block(nil), definition.Blocks...)
	return &cloned
}
