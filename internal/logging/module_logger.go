package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-chatkit/pkg/interfaces"
)

const (
	rootModule      = "chatkit"
	deliveryModule  = "chatkit.delivery"
	conformModule   = "chatkit.conform"
	templatesModule = "chatkit.templates"
	auditModule     = "chatkit.audit"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// DeliveryLogger returns the logger namespace reserved for the delivery facade.
func DeliveryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, deliveryModule)
}

// ConformLogger returns the logger namespace reserved for conformance checks.
func ConformLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, conformModule)
}

// TemplatesLogger returns the logger namespace reserved for template workflows.
func TemplatesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, templatesModule)
}

// AuditLogger returns the logger namespace reserved for the delivery audit log.
func AuditLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, auditModule)
}

// WithDeliveryContext enriches the provided logger with common delivery
// fields such as channel, kind, and category. Empty values are ignored.
func WithDeliveryContext(logger interfaces.Logger, channelID, kind, category string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(channelID); trimmed != "" {
		fields["channel_id"] = trimmed
	}
	if trimmed := strings.TrimSpace(kind); trimmed != "" {
		fields["delivery_kind"] = trimmed
	}
	if trimmed := strings.TrimSpace(category); trimmed != "" {
		fields["category"] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

// NoOpProvider returns a provider whose loggers drop every entry.
func NoOpProvider() interfaces.LoggerProvider {
	return noopProvider{}
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
