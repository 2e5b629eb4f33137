package audit

import (
	"github.com/goliatone/go-chatkit/audit"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewRecordRepository creates a bun repository for delivery audit records.
func NewRecordRepository(db *bun.DB) repository.Repository[*audit.Record] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*audit.Record]{
		NewRecord:          func() *audit.Record { return &audit.Record{} },
		GetID:              func(record *audit.Record) uuid.UUID { return record.ID },
		SetID:              func(record *audit.Record, id uuid.UUID) { record.ID = id },
		GetIdentifier:      func() string { return "message_id" },
		GetIdentifierValue: func(record *audit.Record) string { return record.MessageID },
	})
}
