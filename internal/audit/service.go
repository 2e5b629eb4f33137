package audit

import (
	"context"
	"time"

	"github.com/goliatone/go-chatkit/audit"
	"github.com/goliatone/go-chatkit/internal/logging"
	"github.com/goliatone/go-chatkit/pkg/interfaces"
	"github.com/google/uuid"
)

// IDGenerator mints identifiers for new audit records.
type IDGenerator func() uuid.UUID

type service struct {
	repo  audit.Repository
	log   interfaces.Logger
	clock func() time.Time
	newID IDGenerator
}

// Option configures the audit service.
type Option func(*service)

// WithLogger attaches a logger provider to the service.
func WithLogger(provider interfaces.LoggerProvider) Option {
	return func(s *service) {
		if provider != nil {
			s.log = logging.AuditLogger(provider)
		}
	}
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(s *service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithIDGenerator overrides the record id source.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewService builds the audit trail service on a repository.
func NewService(repo audit.Repository, opts ...Option) (audit.Service, error) {
	if repo == nil {
		return nil, audit.ErrRepositoryRequired
	}

	svc := &service{
		repo:  repo,
		log:   logging.NoOp(),
		clock: time.Now,
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

var validKinds = map[string]struct{}{
	audit.KindSend:     {},
	audit.KindEdit:     {},
	audit.KindReply:    {},
	audit.KindFollowUp: {},
}

func (s *service) Record(ctx context.Context, input audit.RecordInput) (*audit.Record, error) {
	if _, ok := validKinds[input.Kind]; !ok {
		return nil, audit.ErrKindInvalid
	}

	record := &audit.Record{
		ID:         s.newID(),
		Kind:       input.Kind,
		ChannelID:  input.ChannelID,
		MessageID:  input.MessageID,
		Category:   input.Category,
		Flags:      input.Flags,
		Ephemeral:  input.Ephemeral,
		Conformant: input.Conformant,
		Violations: input.Violations,
		Payload:    input.Payload,
		CreatedAt:  s.clock().UTC(),
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.log.Debug("recorded delivery",
		"kind", created.Kind, "channel_id", created.ChannelID, "conformant", created.Conformant)
	return created, nil
}

func (s *service) List(ctx context.Context, input audit.ListInput) ([]*audit.Record, error) {
	if input.Kind != "" {
		if _, ok := validKinds[input.Kind]; !ok {
			return nil, audit.ErrKindInvalid
		}
	}
	return s.repo.List(ctx, input)
}

func (s *service) Cleanup(ctx context.Context, retention time.Duration) (int, error) {
	if retention <= 0 {
		return 0, audit.ErrRetentionInvalid
	}

	cutoff := s.clock().UTC().Add(-retention)
	removed, err := s.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.log.Info("audit cleanup removed records", "count", removed, "cutoff", cutoff)
	}
	return removed, nil
}
