// Package delivery defines the outgoing message facade: a Transport
// interface the host binds to its chat-platform connection, and a Service
// that normalizes, checks, and dispatches structured messages through it.
package delivery

import (
	"context"

	"github.com/goliatone/go-chatkit/message"
)

// MessageRef identifies a delivered message on the platform.
type MessageRef struct {
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
}

// InteractionRef identifies an interactive request/response exchange.
type InteractionRef struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// Transport is the external chat-platform connection. Host applications
// implement it against their client library; chatkit never talks to the
// network itself.
type Transport interface {
	SendMessage(ctx context.Context, channelID string, msg *message.Message) (MessageRef, error)
	EditMessage(ctx context.Context, ref MessageRef, msg *message.Message) (MessageRef, error)
	RespondInteraction(ctx context.Context, interaction InteractionRef, msg *message.Message) error
	FollowUpInteraction(ctx context.Context, interaction InteractionRef, msg *message.Message) (MessageRef, error)
}

// SendInput posts a new message to a channel.
type SendInput struct {
	ChannelID string
	// Message is dispatched as-is after normalization. Exactly one of
	// Message or Builder must be set.
	Message *message.Message
	Builder *message.Builder
}

// EditInput replaces the content of a previously delivered message.
type EditInput struct {
	Ref     MessageRef
	Message *message.Message
	Builder *message.Builder
}

// ReplyInput answers an interaction. Ephemeral delivery uses the required
// two-flag combination.
type ReplyInput struct {
	Interaction InteractionRef
	Message     *message.Message
	Builder     *message.Builder
	Ephemeral   bool
}

// FollowUpInput posts an additional message on an interaction exchange.
type FollowUpInput struct {
	Interaction InteractionRef
	Message     *message.Message
	Builder     *message.Builder
	Ephemeral   bool
}

// Service dispatches outgoing messages while enforcing the formatting
// conventions.
type Service interface {
	Send(ctx context.Context, input SendInput) (MessageRef, error)
	Edit(ctx context.Context, input EditInput) (MessageRef, error)
	Reply(ctx context.Context, input ReplyInput) error
	FollowUp(ctx context.Context, input FollowUpInput) (MessageRef, error)
}
