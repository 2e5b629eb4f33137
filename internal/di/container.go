package di

import (
	"github.com/goliatone/go-chatkit/audit"
	"github.com/goliatone/go-chatkit/conform"
	"github.com/goliatone/go-chatkit/delivery"
	internalaudit "github.com/goliatone/go-chatkit/internal/audit"
	internaldelivery "github.com/goliatone/go-chatkit/internal/delivery"
	"github.com/goliatone/go-chatkit/internal/logging"
	"github.com/goliatone/go-chatkit/internal/logging/console"
	"github.com/goliatone/go-chatkit/internal/logging/gologger"
	"github.com/goliatone/go-chatkit/internal/runtimeconfig"
	internaltemplates "github.com/goliatone/go-chatkit/internal/templates"
	"github.com/goliatone/go-chatkit/pkg/interfaces"
	"github.com/goliatone/go-chatkit/templates"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// Container wires module dependencies. Hosts normally construct it through
// the root facade and override individual bindings with options.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	transport delivery.Transport
	checker   *conform.Checker

	bunDB         *bun.DB
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	auditRepo    audit.Repository
	templateRepo templates.Repository

	auditSvc    audit.Service
	templateSvc templates.Service
	deliverySvc delivery.Service
}

// Option mutates the container before services are finalised.
type Option func(*Container)

// WithTransport binds the chat-platform transport.
func WithTransport(transport delivery.Transport) Option {
	return func(c *Container) {
		if transport != nil {
			c.transport = transport
		}
	}
}

// WithLoggerProvider overrides the provider selected from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithChecker overrides the conformance checker built from configuration.
func WithChecker(checker *conform.Checker) Option {
	return func(c *Container) {
		if checker != nil {
			c.checker = checker
		}
	}
}

// WithBunDB binds a database; the audit trail is stored there instead of
// in memory.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache enables read caching on database-backed repositories.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithAuditRepository overrides the default audit repository binding.
func WithAuditRepository(repo audit.Repository) Option {
	return func(c *Container) {
		c.auditRepo = repo
	}
}

// WithTemplateRepository overrides the default template repository binding.
func WithTemplateRepository(repo templates.Repository) Option {
	return func(c *Container) {
		c.templateRepo = repo
	}
}

// WithAuditService overrides the default audit service binding.
func WithAuditService(svc audit.Service) Option {
	return func(c *Container) {
		c.auditSvc = svc
	}
}

// WithTemplateService overrides the default template service binding.
func WithTemplateService(svc templates.Service) Option {
	return func(c *Container) {
		c.templateSvc = svc
	}
}

// WithDeliveryService overrides the default delivery service binding.
func WithDeliveryService(svc delivery.Service) Option {
	return func(c *Container) {
		c.deliverySvc = svc
	}
}

// NewContainer creates a container from the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:    cfg,
		transport: delivery.NewMemoryTransport(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.loggerProvider == nil {
		provider, err := buildLoggerProvider(cfg)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	if c.checker == nil {
		checker, err := conform.New(conform.Options{Disabled: cfg.Conform.Disabled})
		if err != nil {
			return nil, err
		}
		c.checker = checker
	}

	if err := c.configureAudit(); err != nil {
		return nil, err
	}
	if err := c.configureTemplates(); err != nil {
		return nil, err
	}
	if err := c.configureDelivery(); err != nil {
		return nil, err
	}

	return c, nil
}

func buildLoggerProvider(cfg runtimeconfig.Config) (interfaces.LoggerProvider, error) {
	if !cfg.Features.Logger {
		return logging.NoOpProvider(), nil
	}

	switch cfg.Logging.Provider {
	case runtimeconfig.LoggingProviderGoLogger:
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	case runtimeconfig.LoggingProviderNoop:
		return logging.NoOpProvider(), nil
	default:
		level := console.ParseLevel(cfg.Logging.Level)
		return console.NewProvider(console.Options{MinLevel: &level}), nil
	}
}

func (c *Container) configureAudit() error {
	if !c.Config.Features.Audit {
		return nil
	}

	if c.auditRepo == nil {
		if c.bunDB != nil {
			c.auditRepo = internalaudit.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		} else {
			c.auditRepo = internalaudit.NewMemoryRepository()
		}
	}

	if c.auditSvc == nil {
		svc, err := internalaudit.NewService(c.auditRepo,
			internalaudit.WithLogger(c.loggerProvider))
		if err != nil {
			return err
		}
		c.auditSvc = svc
	}
	return nil
}

func (c *Container) configureTemplates() error {
	if !c.Config.Features.Templates {
		return nil
	}

	if c.templateRepo == nil {
		c.templateRepo = internaltemplates.NewMemoryRepository()
	}

	if c.templateSvc == nil {
		c.templateSvc = internaltemplates.NewService(c.templateRepo,
			internaltemplates.WithLogger(logging.TemplatesLogger(c.loggerProvider)))
	}
	return nil
}

func (c *Container) configureDelivery() error {
	if c.deliverySvc != nil {
		return nil
	}

	opts := []internaldelivery.Option{
		internaldelivery.WithChecker(c.checker),
		internaldelivery.WithLogger(c.loggerProvider),
		internaldelivery.WithStrict(c.Config.Delivery.Strict),
		internaldelivery.WithDefaultSilent(c.Config.Delivery.DefaultSilent),
	}
	if c.auditSvc != nil {
		opts = append(opts, internaldelivery.WithRecorder(c.auditSvc))
	}

	svc, err := internaldelivery.NewService(c.transport, opts...)
	if err != nil {
		return err
	}
	c.deliverySvc = svc
	return nil
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Transport exposes the bound chat-platform transport.
func (c *Container) Transport() delivery.Transport {
	return c.transport
}

// Checker exposes the conformance checker.
func (c *Container) Checker() *conform.Checker {
	return c.checker
}

// DeliveryService exposes the delivery facade.
func (c *Container) DeliveryService() delivery.Service {
	return c.deliverySvc
}

// AuditService exposes the delivery audit trail, nil when auditing is disabled.
func (c *Container) AuditService() audit.Service {
	return c.auditSvc
}

// AuditRepository exposes the audit repository, nil when auditing is disabled.
func (c *Container) AuditRepository() audit.Repository {
	return c.auditRepo
}

// TemplateService exposes the template registry, nil when templates are disabled.
func (c *Container) TemplateService() templates.Service {
	return c.templateSvc
}
