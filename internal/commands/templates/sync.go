package templatescmd

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-chatkit/internal/commands"
	"github.com/goliatone/go-chatkit/internal/logging"
	"github.com/goliatone/go-chatkit/pkg/interfaces"
	"github.com/goliatone/go-chatkit/templates"
	command "github.com/goliatone/go-command"
)

const syncDirectoryMessageType = "chatkit.templates.sync_directory"

// SyncDirectoryCommand loads every markdown template under Dir into the
// template registry, upserting by slug.
type SyncDirectoryCommand struct {
	Dir string `json:"dir"`
}

// Type implements command.Message.
func (SyncDirectoryCommand) Type() string { return syncDirectoryMessageType }

// Validate ensures the command payload is well-formed.
func (m SyncDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Dir, validation.Required),
	)
}

// SyncDirectoryHandler loads template definitions from disk.
type SyncDirectoryHandler struct {
	service    templates.Service
	logger     interfaces.Logger
	defaultDir string
	timeout    time.Duration
}

// SyncHandlerOption customises the sync handler.
type SyncHandlerOption func(*SyncDirectoryHandler)

// SyncWithDefaultDir sets the directory used when the command omits one.
func SyncWithDefaultDir(dir string) SyncHandlerOption {
	return func(h *SyncDirectoryHandler) {
		if trimmed := strings.TrimSpace(dir); trimmed != "" {
			h.defaultDir = trimmed
		}
	}
}

// SyncWithTimeout overrides the default execution timeout.
func SyncWithTimeout(timeout time.Duration) SyncHandlerOption {
	return func(h *SyncDirectoryHandler) {
		h.timeout = timeout
	}
}

// NewSyncDirectoryHandler constructs a handler over the template service.
func NewSyncDirectoryHandler(service templates.Service, logger interfaces.Logger, opts ...SyncHandlerOption) *SyncDirectoryHandler {
	handler := &SyncDirectoryHandler{
		service: service,
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

// Execute satisfies command.Commander[SyncDirectoryCommand].
func (h *SyncDirectoryHandler) Execute(ctx context.Context, msg SyncDirectoryCommand) error {
	if strings.TrimSpace(msg.Dir) == "" && h.defaultDir != "" {
		msg.Dir = h.defaultDir
	}
	if err := commands.WrapValidationError(command.ValidateMessage(msg)); err != nil {
		return err
	}
	ctx = commands.EnsureContext(ctx)
	ctx, cancel := commands.WithCommandTimeout(ctx, h.timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return commands.WrapContextError(err)
	}

	count, err := h.service.LoadDirectory(ctx, msg.Dir)
	if err != nil {
		return commands.WrapExecuteError(err)
	}

	logging.WithFields(h.logger, map[string]any{
		"operation": "templates.sync_directory",
		"dir":       msg.Dir,
		"loaded":    count,
	}).Info("templates.command.sync.completed")
	return nil
}

// CLIHandler exposes the sync handler to CLI integrations.
func (h *SyncDirectoryHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for the template sync.
func (h *SyncDirectoryHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"templates", "sync"},
		Group:       "templates",
		Description: "Load markdown template definitions from a directory",
	}
}
