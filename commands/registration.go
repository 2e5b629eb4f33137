// Package commands exposes the command handlers built from a container so
// host applications can register them with CLI, dispatcher, or cron
// integrations.
package commands

import (
	"errors"
	"strings"

	internalcommands "github.com/goliatone/go-chatkit/internal/commands"
	auditcmd "github.com/goliatone/go-chatkit/internal/commands/audit"
	conformcmd "github.com/goliatone/go-chatkit/internal/commands/conform"
	templatescmd "github.com/goliatone/go-chatkit/internal/commands/templates"
	"github.com/goliatone/go-chatkit/internal/di"
	"github.com/goliatone/go-chatkit/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// CronRegistrar registers command handlers with a cron scheduler.
type CronRegistrar func(command.HandlerConfig, any) error

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	CronRegistrar  CronRegistrar
	LoggerProvider interfaces.LoggerProvider
	// CleanupCron overrides the cron expression applied to the audit
	// cleanup handler.
	CleanupCron string
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// RegisterContainerCommands builds the command handlers exposed by the
// provided container and optionally registers them with registry,
// dispatcher, and cron integrations.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	cfg := container.Config

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.LoggerProvider()
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}

		if opts.CronRegistrar != nil {
			if cronCmd, ok := handler.(command.CronCommand); ok {
				if err := opts.CronRegistrar(cronCmd.CronOptions(), cronCmd.CronHandler()); err != nil {
					errs = errors.Join(errs, err)
				}
			}
		}
	}

	loggerFor := func(module string) interfaces.Logger {
		return internalcommands.CommandLogger(provider, module)
	}

	// Audit commands.
	if service := container.AuditService(); service != nil {
		auditLogger := loggerFor("audit")
		register(auditcmd.NewExportAuditHandler(service, auditLogger))

		cleanupOpts := []auditcmd.CleanupHandlerOption{}
		if cfg.Audit.Retention > 0 {
			cleanupOpts = append(cleanupOpts, auditcmd.CleanupWithRetention(cfg.Audit.Retention))
		}
		if expr := strings.TrimSpace(cfg.Commands.CleanupCron); expr != "" {
			cleanupOpts = append(cleanupOpts, auditcmd.CleanupWithCronExpression(expr))
		}
		register(auditcmd.NewCleanupAuditHandler(service, auditLogger, cleanupOpts...))

		register(conformcmd.NewCheckDeliveriesHandler(service, loggerFor("conform"),
			conformcmd.CheckWithChecker(container.Checker())))
	}

	// Template commands.
	if service := container.TemplateService(); service != nil {
		syncOpts := []templatescmd.SyncHandlerOption{}
		if dir := strings.TrimSpace(cfg.Templates.Dir); dir != "" {
			syncOpts = append(syncOpts, templatescmd.SyncWithDefaultDir(dir))
		}
		register(templatescmd.NewSyncDirectoryHandler(service, loggerFor("templates"), syncOpts...))
	}

	if errs != nil && len(result.Handlers) == 0 {
		return result, errs
	}

	if len(result.Handlers) == 0 {
		return result, errors.New("no command handlers registered; ensure services are configured and required features enabled")
	}

	return result, errs
}
