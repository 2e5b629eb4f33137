package chatkit

import "github.com/goliatone/go-chatkit/internal/runtimeconfig"

var (
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
	ErrTemplatesDirRequired     = runtimeconfig.ErrTemplatesDirRequired
	ErrAuditRetentionInvalid    = runtimeconfig.ErrAuditRetentionInvalid
	ErrAuditFeatureRequired     = runtimeconfig.ErrAuditFeatureRequired
	ErrCleanupCronRequiresAudit = runtimeconfig.ErrCleanupCronRequiresAudit
	ErrConformRuleUnknown       = runtimeconfig.ErrConformRuleUnknown
)

type (
	Config          = runtimeconfig.Config
	DeliveryConfig  = runtimeconfig.DeliveryConfig
	ConformConfig   = runtimeconfig.ConformConfig
	TemplatesConfig = runtimeconfig.TemplatesConfig
	AuditConfig     = runtimeconfig.AuditConfig
	Features        = runtimeconfig.Features
	CommandsConfig  = runtimeconfig.CommandsConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
