package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-chatkit/audit"
	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"
)

// BunRepository implements audit.Repository on a bun database with
// optional read caching.
type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*audit.Record]
}

// NewBunRepository creates an audit repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache creates an audit repository with caching support.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	base := NewRecordRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunRepository{db: db, repo: base}
}

var _ audit.Repository = (*BunRepository)(nil)

func (r *BunRepository) Create(ctx context.Context, record *audit.Record) (*audit.Record, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, record.MessageID)
	}
	return created, nil
}

func (r *BunRepository) List(ctx context.Context, input audit.ListInput) ([]*audit.Record, error) {
	criteria := []repository.SelectCriteria{
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.created_at DESC")
		}),
	}
	if input.Kind != "" {
		kind := input.Kind
		criteria = append(criteria, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.kind = ?", kind)
		}))
	}
	if input.Category != "" {
		category := input.Category
		criteria = append(criteria, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.category = ?", category)
		}))
	}
	if input.Limit > 0 {
		criteria = append(criteria, repository.SelectPaginate(input.Limit, 0))
	}

	records, _, err := r.repo.List(ctx, criteria...)
	if err != nil {
		return nil, mapRepositoryError(err, input.Kind)
	}
	return records, nil
}

func (r *BunRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := r.db.NewDelete().
		Model((*audit.Record)(nil)).
		Where("created_at < ?", cutoff).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("audit cleanup failed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("audit cleanup row count: %w", err)
	}
	return int(affected), nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &audit.NotFoundError{Key: key}
	}
	return fmt.Errorf("audit repository error: %w", err)
}
