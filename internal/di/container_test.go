package di_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-chatkit/audit"
	"github.com/goliatone/go-chatkit/delivery"
	"github.com/goliatone/go-chatkit/internal/di"
	"github.com/goliatone/go-chatkit/internal/logging/gologger"
	"github.com/goliatone/go-chatkit/internal/runtimeconfig"
	"github.com/goliatone/go-chatkit/message"
	"github.com/goliatone/go-chatkit/pkg/interfaces"
	"github.com/goliatone/go-chatkit/styles"
)

func TestNewContainerDefaults(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	if container.DeliveryService() == nil {
		t.Fatal("expected a delivery service")
	}
	if container.AuditService() == nil {
		t.Fatal("expected an audit service when auditing is enabled")
	}
	if container.TemplateService() != nil {
		t.Fatal("templates are disabled by default")
	}
	if container.Checker() == nil {
		t.Fatal("expected a conformance checker")
	}
	if container.LoggerProvider() == nil {
		t.Fatal("expected a logger provider")
	}
}

func TestNewContainerValidatesConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Templates = true

	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrTemplatesDirRequired) {
		t.Fatalf("expected ErrTemplatesDirRequired, got %v", err)
	}
}

func TestNewContainerGoLoggerProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = runtimeconfig.LoggingProviderGoLogger
	cfg.Logging.Format = "json"

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if _, ok := container.LoggerProvider().(*gologger.Provider); !ok {
		t.Fatalf("expected gologger provider, got %T", container.LoggerProvider())
	}
}

type singleLoggerProvider struct {
	logger interfaces.Logger
}

func (p *singleLoggerProvider) GetLogger(string) interfaces.Logger {
	return p.logger
}

func TestNewContainerLoggerProviderOverride(t *testing.T) {
	provider := &singleLoggerProvider{}
	container, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithLoggerProvider(provider))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if container.LoggerProvider() != interfaces.LoggerProvider(provider) {
		t.Fatal("expected provider override to stick")
	}
}

func TestNewContainerTemplatesEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Templates = true
	cfg.Templates.Dir = t.TempDir()

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if container.TemplateService() == nil {
		t.Fatal("expected a template service")
	}
}

func TestContainerDispatchRecordsAudit(t *testing.T) {
	transport := delivery.NewMemoryTransport()
	container, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithTransport(transport))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	msg, err := message.NewCategory(styles.CategorySuccess, "Backup finished").
		Text("Snapshot uploaded.").
		Build()
	if err != nil {
		t.Fatalf("build message: %v", err)
	}

	if _, err := container.DeliveryService().Send(context.Background(), delivery.SendInput{
		ChannelID: "chan-1",
		Message:   msg,
	}); err != nil {
		t.Fatalf("send: %v", err)
	}

	records, err := container.AuditService().List(context.Background(), audit.ListInput{})
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one audit record, got %d", len(records))
	}
}
