// Package audit defines the delivery audit trail: every dispatch attempt is
// recorded with its category, flags, and conformance outcome so operators can
// review what the bot actually sent.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/goliatone/go-chatkit/conform"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Dispatch kinds recorded on audit entries.
const (
	KindSend     = "send"
	KindEdit     = "edit"
	KindReply    = "reply"
	KindFollowUp = "follow_up"
)

// Record is a persisted delivery audit entry.
type Record struct {
	bun.BaseModel `bun:"table:chatkit_deliveries,alias:cd"`

	ID         uuid.UUID           `bun:",pk,type:uuid" json:"id"`
	Kind       string              `bun:"kind,notnull" json:"kind"`
	ChannelID  string              `bun:"channel_id" json:"channel_id,omitempty"`
	MessageID  string              `bun:"message_id" json:"message_id,omitempty"`
	Category   string              `bun:"category" json:"category,omitempty"`
	Flags      int                 `bun:"flags,notnull,default:0" json:"flags"`
	Ephemeral  bool                `bun:"ephemeral,notnull,default:false" json:"ephemeral"`
	Conformant bool                `bun:"conformant,notnull,default:true" json:"conformant"`
	Violations []conform.Violation `bun:"violations,type:jsonb" json:"violations,omitempty"`
	Payload    json.RawMessage     `bun:"payload,type:jsonb" json:"payload,omitempty"`
	CreatedAt  time.Time           `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// RecordInput captures one dispatch attempt.
type RecordInput struct {
	Kind       string
	ChannelID  string
	MessageID  string
	Category   string
	Flags      int
	Ephemeral  bool
	Conformant bool
	Violations []conform.Violation
	Payload    json.RawMessage
}

// ListInput filters the audit trail.
type ListInput struct {
	Kind     string
	Category string
	Limit    int
}

// Repository persists audit records.
type Repository interface {
	Create(ctx context.Context, record *Record) (*Record, error)
	List(ctx context.Context, input ListInput) ([]*Record, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// Service exposes the audit trail operations.
type Service interface {
	Record(ctx context.Context, input RecordInput) (*Record, error)
	List(ctx context.Context, input ListInput) ([]*Record, error)
	Cleanup(ctx context.Context, retention time.Duration) (int, error)
}
