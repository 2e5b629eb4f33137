package delivery

import (
	"context"
	"strconv"
	"sync"

	"github.com/goliatone/go-chatkit/message"
)

// Dispatch captures one transport invocation recorded by MemoryTransport.
type Dispatch struct {
	Kind        string
	ChannelID   string
	Ref         MessageRef
	Interaction InteractionRef
	Message     *message.Message
}

// MemoryTransport is an "in memory" Transport used by tests and the example
// binary. It records every dispatch and mints sequential message ids.
type MemoryTransport struct {
	mu         sync.Mutex
	next       int
	dispatches []Dispatch

	// Err, when set, is returned by every transport call.
	Err error
}

// NewMemoryTransport constructs an empty recording transport.
func NewMemoryTransport() *MemoryTransport {
	return &MemoryTransport{}
}

var _ Transport = (*MemoryTransport)(nil)

// SendMessage implements Transport.
func (m *MemoryTransport) SendMessage(_ context.Context, channelID string, msg *message.Message) (MessageRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return MessageRef{}, m.Err
	}
	ref := MessageRef{ChannelID: channelID, MessageID: m.nextID()}
	m.dispatches = append(m.dispatches, Dispatch{Kind: "send", ChannelID: channelID, Ref: ref, Message: msg.Clone()})
	return ref, nil
}

// EditMessage implements Transport.
func (m *MemoryTransport) EditMessage(_ context.Context, ref MessageRef, msg *message.Message) (MessageRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return MessageRef{}, m.Err
	}
	m.dispatches = append(m.dispatches, Dispatch{Kind: "edit", ChannelID: ref.ChannelID, Ref: ref, Message: msg.Clone()})
	return ref, nil
}

// RespondInteraction implements Transport.
func (m *MemoryTransport) RespondInteraction(_ context.Context, interaction InteractionRef, msg *message.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.dispatches = append(m.dispatches, Dispatch{Kind: "reply", Interaction: interaction, Message: msg.Clone()})
	return nil
}

// FollowUpInteraction implements Transport.
func (m *MemoryTransport) FollowUpInteraction(_ context.Context, interaction InteractionRef, msg *message.Message) (MessageRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return MessageRef{}, m.Err
	}
	ref := MessageRef{MessageID: m.nextID()}
	m.dispatches = append(m.dispatches, Dispatch{Kind: "follow_up", Interaction: interaction, Ref: ref, Message: msg.Clone()})
	return ref, nil
}

// Dispatches returns a copy of the recorded transport invocations.
func (m *MemoryTransport) Dispatches() []Dispatch {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Dispatch(nil), m.dispatches...)
}

// Last returns the most recent dispatch, if any.
func (m *MemoryTransport) Last() (Dispatch, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.dispatches) == 0 {
		return Dispatch{}, false
	}
	return m.dispatches[len(m.dispatches)-1], true
}

func (m *MemoryTransport) nextID() string {
	m.next++
	return strconv.Itoa(m.next)
}
