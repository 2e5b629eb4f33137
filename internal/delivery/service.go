package delivery

import (
	"context"
	"encoding/json"

	"github.com/goliatone/go-chatkit/audit"
	"github.com/goliatone/go-chatkit/conform"
	"github.com/goliatone/go-chatkit/delivery"
	"github.com/goliatone/go-chatkit/internal/logging"
	"github.com/goliatone/go-chatkit/message"
	"github.com/goliatone/go-chatkit/pkg/interfaces"
)

// AuditRecorder receives one entry per dispatch attempt. Recorder failures
// never fail the dispatch itself.
type AuditRecorder interface {
	Record(ctx context.Context, input audit.RecordInput) (*audit.Record, error)
}

type service struct {
	transport     delivery.Transport
	checker       *conform.Checker
	recorder      AuditRecorder
	logger        interfaces.Logger
	strict        bool
	defaultSilent bool
}

// Option configures the delivery service.
type Option func(*service)

// WithChecker replaces the conformance checker used before dispatch.
func WithChecker(checker *conform.Checker) Option {
	return func(s *service) {
		if checker != nil {
			s.checker = checker
		}
	}
}

// WithLogger attaches a logger provider to the service.
func WithLogger(provider interfaces.LoggerProvider) Option {
	return func(s *service) {
		if provider != nil {
			s.logger = logging.DeliveryLogger(provider)
		}
	}
}

// WithRecorder attaches the audit trail recorder.
func WithRecorder(recorder AuditRecorder) Option {
	return func(s *service) {
		s.recorder = recorder
	}
}

// WithStrict controls whether non-conformant messages are rejected (true)
// or logged and dispatched anyway (false).
func WithStrict(strict bool) Option {
	return func(s *service) {
		s.strict = strict
	}
}

// WithDefaultSilent suppresses push notifications on every dispatched
// message unless the message already carries explicit flags.
func WithDefaultSilent(silent bool) Option {
	return func(s *service) {
		s.defaultSilent = silent
	}
}

// NewService builds the delivery service around a transport.
func NewService(transport delivery.Transport, opts ...Option) (delivery.Service, error) {
	if transport == nil {
		return nil, delivery.ErrTransportRequired
	}

	svc := &service{
		transport: transport,
		checker:   conform.MustNew(conform.Options{}),
		logger:    logging.NoOp(),
		strict:    true,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

func (s *service) Send(ctx context.Context, input delivery.SendInput) (delivery.MessageRef, error) {
	if input.ChannelID == "" {
		return delivery.MessageRef{}, delivery.ErrChannelRequired
	}

	msg, err := s.prepare(input.Message, input.Builder, false)
	if err != nil {
		return delivery.MessageRef{}, err
	}
	report, err := s.enforce(ctx, audit.KindSend, input.ChannelID, msg)
	if err != nil {
		return delivery.MessageRef{}, err
	}

	ref, err := s.transport.SendMessage(ctx, input.ChannelID, msg)
	s.record(ctx, audit.KindSend, ref, msg, report, err)
	return ref, err
}

func (s *service) Edit(ctx context.Context, input delivery.EditInput) (delivery.MessageRef, error) {
	if input.Ref.ChannelID == "" || input.Ref.MessageID == "" {
		return delivery.MessageRef{}, delivery.ErrMessageRefRequired
	}

	msg, err := s.prepare(input.Message, input.Builder, false)
	if err != nil {
		return delivery.MessageRef{}, err
	}
	report, err := s.enforce(ctx, audit.KindEdit, input.Ref.ChannelID, msg)
	if err != nil {
		return delivery.MessageRef{}, err
	}

	ref, err := s.transport.EditMessage(ctx, input.Ref, msg)
	s.record(ctx, audit.KindEdit, ref, msg, report, err)
	return ref, err
}

func (s *service) Reply(ctx context.Context, input delivery.ReplyInput) error {
	if input.Interaction.ID == "" || input.Interaction.Token == "" {
		return delivery.ErrInteractionRequired
	}

	msg, err := s.prepare(input.Message, input.Builder, input.Ephemeral)
	if err != nil {
		return err
	}
	report, err := s.enforce(ctx, audit.KindReply, "", msg)
	if err != nil {
		return err
	}

	err = s.transport.RespondInteraction(ctx, input.Interaction, msg)
	s.record(ctx, audit.KindReply, delivery.MessageRef{}, msg, report, err)
	return err
}

func (s *service) FollowUp(ctx context.Context, input delivery.FollowUpInput) (delivery.MessageRef, error) {
	if input.Interaction.ID == "" || input.Interaction.Token == "" {
		return delivery.MessageRef{}, delivery.ErrInteractionRequired
	}

	msg, err := s.prepare(input.Message, input.Builder, input.Ephemeral)
	if err != nil {
		return delivery.MessageRef{}, err
	}
	report, err := s.enforce(ctx, audit.KindFollowUp, "", msg)
	if err != nil {
		return delivery.MessageRef{}, err
	}

	ref, err := s.transport.FollowUpInteraction(ctx, input.Interaction, msg)
	s.record(ctx, audit.KindFollowUp, ref, msg, report, err)
	return ref, err
}

// prepare resolves the message-or-builder pair into a normalized message the
// service owns, applying the ephemeral flag pair when requested.
func (s *service) prepare(msg *message.Message, builder *message.Builder, ephemeral bool) (*message.Message, error) {
	switch {
	case msg != nil && builder != nil:
		return nil, delivery.ErrMessageAmbiguous
	case builder != nil:
		built, err := builder.Build()
		if err != nil {
			return nil, err
		}
		msg = built
	case msg != nil:
		msg = msg.Clone()
	default:
		return nil, delivery.ErrMessageRequired
	}

	msg.Normalize()
	if ephemeral {
		msg.Flags = msg.Flags.With(message.EphemeralFlags())
	}
	if s.defaultSilent {
		msg.Flags = msg.Flags.With(message.FlagSuppressNotifications)
	}
	return msg, nil
}

func (s *service) enforce(ctx context.Context, kind, channelID string, msg *message.Message) (conform.Report, error) {
	report := s.checker.Check(ctx, msg)
	if report.OK() {
		return report, nil
	}

	logger := logging.WithDeliveryContext(s.logger, channelID, kind, string(msg.Category))
	if s.strict {
		logger.Error("rejecting non-conformant message",
			"violations", len(report.Violations))
		s.recordRejected(ctx, kind, channelID, msg, report)
		return report, report.Err()
	}
	for _, violation := range report.Violations {
		logger.Warn("dispatching despite violation",
			"rule", violation.Rule, "path", violation.Path, "detail", violation.Message)
	}
	return report, nil
}

// record writes the audit entry for a dispatched message. Lenient dispatches
// keep their violation report so the trail shows what actually went out.
func (s *service) record(ctx context.Context, kind string, ref delivery.MessageRef, msg *message.Message, report conform.Report, dispatchErr error) {
	if s.recorder == nil || dispatchErr != nil {
		return
	}
	s.write(ctx, audit.RecordInput{
		Kind:       kind,
		ChannelID:  ref.ChannelID,
		MessageID:  ref.MessageID,
		Category:   string(msg.Category),
		Flags:      int(msg.Flags),
		Ephemeral:  msg.Ephemeral(),
		Conformant: report.OK(),
		Violations: report.Violations,
	}, msg)
}

func (s *service) recordRejected(ctx context.Context, kind, channelID string, msg *message.Message, report conform.Report) {
	if s.recorder == nil {
		return
	}
	s.write(ctx, audit.RecordInput{
		Kind:       kind,
		ChannelID:  channelID,
		Category:   string(msg.Category),
		Flags:      int(msg.Flags),
		Ephemeral:  msg.Ephemeral(),
		Conformant: false,
		Violations: report.Violations,
	}, msg)
}

func (s *service) write(ctx context.Context, input audit.RecordInput, msg *message.Message) {
	if payload, err := json.Marshal(msg); err == nil {
		input.Payload = payload
	}
	if _, err := s.recorder.Record(ctx, input); err != nil {
		s.logger.Error("audit record failed", "kind", input.Kind, "error", err)
	}
}
