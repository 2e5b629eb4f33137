package conformcmd

import (
	"context"
	"encoding/json"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-chatkit/audit"
	"github.com/goliatone/go-chatkit/conform"
	"github.com/goliatone/go-chatkit/internal/commands"
	"github.com/goliatone/go-chatkit/internal/logging"
	"github.com/goliatone/go-chatkit/message"
	"github.com/goliatone/go-chatkit/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const checkDeliveriesMessageType = "chatkit.conform.check_deliveries"

// DeliveryLog exposes the recorded delivery payloads to re-check.
type DeliveryLog interface {
	List(ctx context.Context, input audit.ListInput) ([]*audit.Record, error)
}

// CheckDeliveriesCommand re-runs the conformance rules over recorded
// delivery payloads, surfacing drift after rule changes.
type CheckDeliveriesCommand struct {
	Kind       string `json:"kind,omitempty"`
	MaxRecords *int   `json:"max_records,omitempty"`
}

// Type implements command.Message.
func (CheckDeliveriesCommand) Type() string { return checkDeliveriesMessageType }

// Validate ensures the command payload is well-formed.
func (m CheckDeliveriesCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Kind, validation.In(audit.KindSend, audit.KindEdit, audit.KindReply, audit.KindFollowUp)),
		validation.Field(&m.MaxRecords, validation.By(func(value any) error {
			if m.MaxRecords == nil {
				return nil
			}
			if *m.MaxRecords < 0 {
				return validation.NewError("chatkit.conform.check.max_records_invalid", "max_records must be zero or positive")
			}
			return nil
		})),
	)
}

// CheckDeliveriesHandler replays recorded payloads through the checker.
type CheckDeliveriesHandler struct {
	log     DeliveryLog
	checker *conform.Checker
	logger  interfaces.Logger
	timeout time.Duration
}

// CheckHandlerOption customises the check handler.
type CheckHandlerOption func(*CheckDeliveriesHandler)

// CheckWithTimeout overrides the default execution timeout.
func CheckWithTimeout(timeout time.Duration) CheckHandlerOption {
	return func(h *CheckDeliveriesHandler) {
		h.timeout = timeout
	}
}

// CheckWithChecker replaces the default rule set.
func CheckWithChecker(checker *conform.Checker) CheckHandlerOption {
	return func(h *CheckDeliveriesHandler) {
		if checker != nil {
			h.checker = checker
		}
	}
}

// NewCheckDeliveriesHandler constructs a handler over the recorded deliveries.
func NewCheckDeliveriesHandler(log DeliveryLog, logger interfaces.Logger, opts ...CheckHandlerOption) *CheckDeliveriesHandler {
	handler := &CheckDeliveriesHandler{
		log:     log,
		checker: conform.MustNew(conform.Options{}),
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

// Execute satisfies command.Commander[CheckDeliveriesCommand].
func (h *CheckDeliveriesHandler) Execute(ctx context.Context, msg CheckDeliveriesCommand) error {
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
		"operation": "conform.check_deliveries",
	})

	checked, drifted, skipped := 0, 0, 0
	for _, record := range records {
		if len(record.Payload) == 0 {
			skipped++
			continue
		}
		var payload message.Message
		if err := json.Unmarshal(record.Payload, &payload); err != nil {
			skipped++
			logging.WithFields(baseLogger, map[string]any{
				"record_id": record.ID.String(),
			}).Warn("conform.command.check.payload_unreadable", "error", err)
			continue
		}

		checked++
		report := h.checker.Check(ctx, &payload)
		if report.OK() {
			continue
		}
		drifted++
		for _, violation := range report.Violations {
			logging.WithFields(baseLogger, map[string]any{
				"record_id": record.ID.String(),
				"kind":      record.Kind,
				"rule":      violation.Rule,
				"path":      violation.Path,
			}).Warn("conform.command.check.violation", "detail", violation.Message)
		}
	}

	logging.WithFields(baseLogger, map[string]any{
		"checked": checked,
		"drifted": drifted,
		"skipped": skipped,
	}).Info("conform.command.check.completed")
	return nil
}

// CLIHandler exposes the check handler to CLI integrations.
func (h *CheckDeliveriesHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for the conformance re-check.
func (h *CheckDeliveriesHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"conform", "check"},
		Group:       "conform",
		Description: "Re-run conformance rules over recorded deliveries",
	}
}
