package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-chatkit/conform"
)

// ErrLoggingProviderRequired indicates the logging feature was enabled without a provider.
var ErrLoggingProviderRequired = errors.New("chatkit config: logging provider is required when logging feature is enabled")

// ErrLoggingProviderUnknown indicates an unsupported logging provider name.
var ErrLoggingProviderUnknown = errors.New("chatkit config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("chatkit config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("chatkit config: logging format is invalid")
var ErrTemplatesDirRequired = errors.New("chatkit config: templates directory is required when templates are enabled")
var ErrAuditRetentionInvalid = errors.New("chatkit config: audit retention must be zero or positive")
var ErrAuditFeatureRequired = errors.New("chatkit config: audit retention requires the audit feature to be enabled")
var ErrCleanupCronRequiresAudit = errors.New("chatkit config: cleanup cron registration requires the audit feature to be enabled")
var ErrConformRuleUnknown = errors.New("chatkit config: disabled conformance rule is unknown")

// Logging provider identifiers accepted by the DI container.
const (
	LoggingProviderConsole  = "console"
	LoggingProviderGoLogger = "gologger"
	LoggingProviderNoop     = "noop"
)

// Config aggregates feature flags and adapter bindings for the chatkit module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled   bool
	Delivery  DeliveryConfig
	Conform   ConformConfig
	Templates TemplatesConfig
	Audit     AuditConfig
	Features  Features
	Commands  CommandsConfig
	Logging   LoggingConfig
}

// DeliveryConfig controls how the delivery facade treats violations.
type DeliveryConfig struct {
	// Strict refuses dispatch when the conformance checker reports
	// error-level violations. When false violations are logged and the
	// message is dispatched anyway.
	Strict bool
	// DefaultSilent suppresses notifications on every message unless the
	// caller opts out.
	DefaultSilent bool
}

// ConformConfig tunes the convention checker.
type ConformConfig struct {
	// Disabled lists rule codes excluded from evaluation.
	Disabled []string
}

// TemplatesConfig locates authored message templates.
type TemplatesConfig struct {
	// Dir is the directory scanned for markdown template files.
	Dir string
}

// AuditConfig controls the outgoing delivery log.
type AuditConfig struct {
	// Retention bounds how long delivery records are kept. Zero disables
	// time-based cleanup.
	Retention time.Duration
}

// Features toggles module functionality.
type Features struct {
	Templates bool
	Audit     bool
	Commands  bool
	Logger    bool
}

// CommandsConfig controls automatic command handler registration.
type CommandsConfig struct {
	AutoRegister bool
	// CleanupCron overrides the schedule applied to the audit cleanup
	// handler when cron registration is available.
	CleanupCron string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the baseline configuration: module enabled, strict
// delivery, auditing on, console logging.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Delivery: DeliveryConfig{
			Strict: true,
		},
		Features: Features{
			Audit:  true,
			Logger: true,
		},
		Logging: LoggingConfig{
			Provider: LoggingProviderConsole,
			Level:    "info",
		},
	}
}

// Validate enforces cross-field configuration invariants.
func (c Config) Validate() error {
	if c.Features.Templates && strings.TrimSpace(c.Templates.Dir) == "" {
		return ErrTemplatesDirRequired
	}

	if c.Audit.Retention < 0 {
		return ErrAuditRetentionInvalid
	}
	if c.Audit.Retention > 0 && !c.Features.Audit {
		return ErrAuditFeatureRequired
	}
	if strings.TrimSpace(c.Commands.CleanupCron) != "" && !c.Features.Audit {
		return ErrCleanupCronRequiresAudit
	}

	if err := c.validateConform(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c Config) validateConform() error {
	if len(c.Conform.Disabled) == 0 {
		return nil
	}
	known := map[string]struct{}{}
	for _, rule := range conform.BuiltinRules() {
		known[rule.Code()] = struct{}{}
	}
	for _, code := range c.Conform.Disabled {
		if _, ok := known[strings.TrimSpace(code)]; !ok {
			return fmt.Errorf("%w: %q", ErrConformRuleUnknown, code)
		}
	}
	return nil
}

func (c Config) validateLogging() error {
	if !c.Features.Logger {
		return nil
	}

	provider := strings.ToLower(strings.TrimSpace(c.Logging.Provider))
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	switch provider {
	case LoggingProviderConsole, LoggingProviderGoLogger, LoggingProviderNoop:
	default:
		return fmt.Errorf("%w: %q", ErrLoggingProviderUnknown, c.Logging.Provider)
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("%w: %q", ErrLoggingLevelInvalid, c.Logging.Level)
	}

	if provider == LoggingProviderGoLogger {
		switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
		case "", "json", "console", "pretty":
		default:
			return fmt.Errorf("%w: %q", ErrLoggingFormatInvalid, c.Logging.Format)
		}
	}
	return nil
}
