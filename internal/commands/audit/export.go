package auditcmd

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-chatkit/audit"
	"github.com/goliatone/go-chatkit/internal/commands"
	"github.com/goliatone/go-chatkit/internal/logging"
	"github.com/goliatone/go-chatkit/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const exportAuditMessageType = "chatkit.audit.export"

// AuditLog exposes read operations for the recorded delivery trail.
type AuditLog interface {
	List(ctx context.Context, input audit.ListInput) ([]*audit.Record, error)
}

// ExportAuditCommand retrieves delivery records and emits them through the logger.
type ExportAuditCommand struct {
	Kind       string `json:"kind,omitempty"`
	MaxRecords *int   `json:"max_records,omitempty"`
}

// Type implements command.Message.
func (ExportAuditCommand) Type() string { return exportAuditMessageType }

// Validate ensures the command payload is well-formed.
func (m ExportAuditCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Kind, validation.In(audit.KindSend, audit.KindEdit, audit.KindReply, audit.KindFollowUp)),
		validation.Field(&m.MaxRecords, validation.By(func(value any) error {
			if m.MaxRecords == nil {
				return nil
			}
			if *m.MaxRecords < 0 {
				return validation.NewError("chatkit.audit.export.max_records_invalid", "max_records must be zero or positive")
			}
			return nil
		})),
	)
}

// ExportAuditHandler logs recorded deliveries up to the provided limit.
type ExportAuditHandler struct {
	log     AuditLog
	logger  interfaces.Logger
	timeout time.Duration
}

// ExportHandlerOption customises the export handler.
type ExportHandlerOption func(*ExportAuditHandler)

// ExportWithTimeout overrides the default execution timeout.
func ExportWithTimeout(timeout time.Duration) ExportHandlerOption {
	return func(h *ExportAuditHandler) {
		h.timeout = timeout
	}
}

// NewExportAuditHandler constructs a handler wired to the provided audit log.
func NewExportAuditHandler(log AuditLog, logger interfaces.Logger, opts ...ExportHandlerOption) *ExportAuditHandler {
	handler := &ExportAuditHandler{
		log:     log,
		logger:  commands.EnsureLogger(logger),
		timeout: commands.DefaultCommandTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(handler)
		}
	}
	return handler
}

// Execute satisfies command.Commander[ExportAuditCommand].
func (h *ExportAuditHandler) Execute(ctx context.Context, msg ExportAuditCommand) error {
	if err := commands.WrapValidationError(command.ValidateMessage(msg)); err != nil {
		return err
	}
	ctx = commands.EnsureContext(ctx)
	ctx, cancel := commands.WithCommandTimeout(ctx, h.timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return commands.WrapContextError(err)
	}

	input := audit.ListInput{Kind: msg.Kind}
	if msg.MaxRecords != nil && *msg.MaxRecords > 0 {
		input.Limit = *msg.MaxRecords
	}
	records, err := h.log.List(ctx, input)
	if err != nil {
		return commands.WrapExecuteError(err)
	}

	baseLogger := logging.WithFields(h.logger, map[string]any{
		"operation": "audit.export",
	})

	for idx, record := range records {
		logging.WithFields(baseLogger, map[string]any{
			"index":      idx,
			"kind":       record.Kind,
			"channel_id": record.ChannelID,
			"message_id": record.MessageID,
			"category":   record.Category,
			"conformant": record.Conformant,
			"created_at": record.CreatedAt.Format(time.RFC3339),
		}).Debug("audit.command.export.record")
	}

	logging.WithFields(baseLogger, map[string]any{
		"exported": len(records),
	}).Info("audit.command.export.completed")
	return nil
}

// CLIHandler exposes the export handler to CLI integrations.
func (h *ExportAuditHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for audit export.
func (h *ExportAuditHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"audit", "export"},
		Group:       "audit",
		Description: "Emit recorded deliveries through the logger",
	}
}
