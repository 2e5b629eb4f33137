package delivery_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-chatkit/audit"
	"github.com/goliatone/go-chatkit/conform"
	"github.com/goliatone/go-chatkit/delivery"
	internaldelivery "github.com/goliatone/go-chatkit/internal/delivery"
	"github.com/goliatone/go-chatkit/message"
	"github.com/goliatone/go-chatkit/styles"
)

type capturedRecord struct {
	input audit.RecordInput
}

type fakeRecorder struct {
	records []capturedRecord
	err     error
}

func (f *fakeRecorder) Record(_ context.Context, input audit.RecordInput) (*audit.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.records = append(f.records, capturedRecord{input: input})
	return &audit.Record{Kind: input.Kind}, nil
}

func successMessage(t *testing.T) *message.Message {
	t.Helper()
	msg, err := message.NewCategory(styles.CategorySuccess, "Deployment complete").
		Text("All services restarted.").
		Build()
	if err != nil {
		t.Fatalf("build message: %v", err)
	}
	return msg
}

func TestServiceSend(t *testing.T) {
	transport := delivery.NewMemoryTransport()
	recorder := &fakeRecorder{}
	svc, err := internaldelivery.NewService(transport, internaldelivery.WithRecorder(recorder))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	ref, err := svc.Send(context.Background(), delivery.SendInput{
		ChannelID: "chan-1",
		Message:   successMessage(t),
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if ref.ChannelID != "chan-1" || ref.MessageID == "" {
		t.Fatalf("unexpected ref %#v", ref)
	}

	last, ok := transport.Last()
	if !ok {
		t.Fatal("expected a dispatch")
	}
	if last.Kind != "send" {
		t.Fatalf("expected send dispatch, got %q", last.Kind)
	}
	if !last.Message.Structured() {
		t.Fatal("dispatched message must carry the structured flag")
	}
	if !last.Message.AllowedMentions.Suppressed() {
		t.Fatal("dispatched message must suppress mention parsing")
	}

	if len(recorder.records) != 1 {
		t.Fatalf("expected one audit record, got %d", len(recorder.records))
	}
	rec := recorder.records[0].input
	if rec.Kind != audit.KindSend || !rec.Conformant {
		t.Fatalf("unexpected audit record %#v", rec)
	}
	if rec.Category != string(styles.CategorySuccess) {
		t.Fatalf("expected category recorded, got %q", rec.Category)
	}
	if len(rec.Payload) == 0 {
		t.Fatal("expected message payload on audit record")
	}
}

func TestServiceSendValidation(t *testing.T) {
	svc, err := internaldelivery.NewService(delivery.NewMemoryTransport())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.Send(context.Background(), delivery.SendInput{Message: successMessage(t)}); !errors.Is(err, delivery.ErrChannelRequired) {
		t.Fatalf("expected ErrChannelRequired, got %v", err)
	}
	if _, err := svc.Send(context.Background(), delivery.SendInput{ChannelID: "chan-1"}); !errors.Is(err, delivery.ErrMessageRequired) {
		t.Fatalf("expected ErrMessageRequired, got %v", err)
	}
}

func TestServiceRequiresTransport(t *testing.T) {
	if _, err := internaldelivery.NewService(nil); !errors.Is(err, delivery.ErrTransportRequired) {
		t.Fatalf("expected ErrTransportRequired, got %v", err)
	}
}

func TestServiceStrictRejectsNonConformant(t *testing.T) {
	transport := delivery.NewMemoryTransport()
	recorder := &fakeRecorder{}
	svc, err := internaldelivery.NewService(transport, internaldelivery.WithRecorder(recorder))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	// No containers: the container-content rule fires.
	bad := &message.Message{Category: styles.CategoryInfo}
	_, err = svc.Send(context.Background(), delivery.SendInput{ChannelID: "chan-1", Message: bad})
	if !errors.Is(err, conform.ErrNotConformant) {
		t.Fatalf("expected ErrNotConformant, got %v", err)
	}
	if _, ok := transport.Last(); ok {
		t.Fatal("non-conformant message must not reach the transport")
	}

	if len(recorder.records) != 1 {
		t.Fatalf("expected rejection recorded, got %d records", len(recorder.records))
	}
	if recorder.records[0].input.Conformant {
		t.Fatal("rejection record must be marked non-conformant")
	}
	if len(recorder.records[0].input.Violations) == 0 {
		t.Fatal("rejection record must carry violations")
	}
}

func TestServiceLenientDispatchesAnyway(t *testing.T) {
	transport := delivery.NewMemoryTransport()
	svc, err := internaldelivery.NewService(transport, internaldelivery.WithStrict(false))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	bad := &message.Message{Category: styles.CategoryInfo}
	if _, err := svc.Send(context.Background(), delivery.SendInput{ChannelID: "chan-1", Message: bad}); err != nil {
		t.Fatalf("lenient send: %v", err)
	}
	if _, ok := transport.Last(); !ok {
		t.Fatal("lenient mode must still dispatch")
	}
}

func TestServiceLenientAuditKeepsViolations(t *testing.T) {
	transport := delivery.NewMemoryTransport()
	recorder := &fakeRecorder{}
	svc, err := internaldelivery.NewService(transport,
		internaldelivery.WithStrict(false),
		internaldelivery.WithRecorder(recorder))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	bad := successMessage(t)
	bad.Embeds = []message.LegacyEmbed{{Title: "legacy"}}
	if _, err := svc.Send(context.Background(), delivery.SendInput{ChannelID: "chan-1", Message: bad}); err != nil {
		t.Fatalf("lenient send: %v", err)
	}

	if len(recorder.records) != 1 {
		t.Fatalf("expected one audit record, got %d", len(recorder.records))
	}
	rec := recorder.records[0].input
	if rec.Conformant {
		t.Fatal("lenient dispatch with violations must be audited as non-conformant")
	}
	if len(rec.Violations) == 0 {
		t.Fatal("expected violations on the audit record")
	}
	found := false
	for _, violation := range rec.Violations {
		if violation.Rule == conform.RuleLegacyEmbed {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a legacy-embed violation, got %#v", rec.Violations)
	}
}

func TestServiceRejectsAmbiguousInput(t *testing.T) {
	svc, err := internaldelivery.NewService(delivery.NewMemoryTransport())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	input := delivery.SendInput{
		ChannelID: "chan-1",
		Message:   successMessage(t),
		Builder:   message.NewCategory(styles.CategoryInfo, "Status"),
	}
	if _, err := svc.Send(context.Background(), input); !errors.Is(err, delivery.ErrMessageAmbiguous) {
		t.Fatalf("expected ErrMessageAmbiguous, got %v", err)
	}
}

func TestServiceReplyEphemeral(t *testing.T) {
	transport := delivery.NewMemoryTransport()
	svc, err := internaldelivery.NewService(transport)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	err = svc.Reply(context.Background(), delivery.ReplyInput{
		Interaction: delivery.InteractionRef{ID: "int-1", Token: "tok"},
		Builder:     message.NewCategory(styles.CategoryError, "Permission denied").Text("You cannot run this command."),
		Ephemeral:   true,
	})
	if err != nil {
		t.Fatalf("reply: %v", err)
	}

	last, ok := transport.Last()
	if !ok {
		t.Fatal("expected a dispatch")
	}
	if !last.Message.Ephemeral() {
		t.Fatal("ephemeral reply must carry the ephemeral flag")
	}
	if !last.Message.Structured() {
		t.Fatal("ephemeral reply must still carry the structured flag")
	}
}

func TestServiceReplyRequiresInteraction(t *testing.T) {
	svc, err := internaldelivery.NewService(delivery.NewMemoryTransport())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	err = svc.Reply(context.Background(), delivery.ReplyInput{Message: successMessage(t)})
	if !errors.Is(err, delivery.ErrInteractionRequired) {
		t.Fatalf("expected ErrInteractionRequired, got %v", err)
	}
}

func TestServiceFollowUpAndEdit(t *testing.T) {
	transport := delivery.NewMemoryTransport()
	recorder := &fakeRecorder{}
	svc, err := internaldelivery.NewService(transport, internaldelivery.WithRecorder(recorder))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	ref, err := svc.FollowUp(context.Background(), delivery.FollowUpInput{
		Interaction: delivery.InteractionRef{ID: "int-1", Token: "tok"},
		Message:     successMessage(t),
	})
	if err != nil {
		t.Fatalf("follow up: %v", err)
	}
	if ref.MessageID == "" {
		t.Fatal("expected a follow-up message id")
	}

	if _, err := svc.Edit(context.Background(), delivery.EditInput{
		Ref:     delivery.MessageRef{ChannelID: "chan-1", MessageID: ref.MessageID},
		Message: successMessage(t),
	}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if _, err := svc.Edit(context.Background(), delivery.EditInput{Message: successMessage(t)}); !errors.Is(err, delivery.ErrMessageRefRequired) {
		t.Fatalf("expected ErrMessageRefRequired, got %v", err)
	}

	kinds := make([]string, 0, 2)
	for _, rec := range recorder.records {
		kinds = append(kinds, rec.input.Kind)
	}
	if len(kinds) != 2 || kinds[0] != audit.KindFollowUp || kinds[1] != audit.KindEdit {
		t.Fatalf("unexpected audit kinds %v", kinds)
	}
}

func TestServiceTransportErrorSkipsAudit(t *testing.T) {
	transport := delivery.NewMemoryTransport()
	transport.Err = errors.New("gateway down")
	recorder := &fakeRecorder{}
	svc, err := internaldelivery.NewService(transport, internaldelivery.WithRecorder(recorder))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.Send(context.Background(), delivery.SendInput{ChannelID: "chan-1", Message: successMessage(t)}); err == nil {
		t.Fatal("expected transport error")
	}
	if len(recorder.records) != 0 {
		t.Fatalf("failed dispatch must not be recorded, got %d records", len(recorder.records))
	}
}

func TestServiceDefaultSilent(t *testing.T) {
	transport := delivery.NewMemoryTransport()
	svc, err := internaldelivery.NewService(transport, internaldelivery.WithDefaultSilent(true))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.Send(context.Background(), delivery.SendInput{ChannelID: "chan-1", Message: successMessage(t)}); err != nil {
		t.Fatalf("send: %v", err)
	}
	last, _ := transport.Last()
	if !last.Message.Flags.Has(message.FlagSuppressNotifications) {
		t.Fatal("default silent must set the notification suppression flag")
	}
}
