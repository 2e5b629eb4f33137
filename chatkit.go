// Package chatkit assembles the structured message toolkit: styled
// containers, conformance checking, template rendering, delivery, and the
// audit trail behind a single runtime facade.
package chatkit

import (
	"github.com/goliatone/go-chatkit/audit"
	"github.com/goliatone/go-chatkit/conform"
	"github.com/goliatone/go-chatkit/delivery"
	"github.com/goliatone/go-chatkit/internal/di"
	"github.com/goliatone/go-chatkit/templates"
)

// DeliveryService exports the delivery facade contract.
type DeliveryService = delivery.Service

// AuditService exports the delivery audit trail contract.
type AuditService = audit.Service

// TemplateService exports the template registry contract.
type TemplateService = templates.Service

// Transport exports the chat-platform transport contract hosts implement.
type Transport = delivery.Transport

// Checker exports the conformance checker.
type Checker = conform.Checker

// Module is the top level chatkit runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a chatkit module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Delivery returns the configured delivery service.
func (m *Module) Delivery() DeliveryService {
	return m.container.DeliveryService()
}

// Audit returns the delivery audit trail, nil when auditing is disabled.
func (m *Module) Audit() AuditService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.AuditService()
}

// Templates returns the template registry, nil when templates are disabled.
func (m *Module) Templates() TemplateService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.TemplateService()
}

// Conform returns the conformance checker applied before dispatch.
func (m *Module) Conform() *Checker {
	return m.container.Checker()
}
