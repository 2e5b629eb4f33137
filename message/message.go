package message

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-chatkit/styles"
)

// LegacyEmbed is the legacy rich-content payload. It exists only so the
// conformance checker can detect and reject messages that mix the legacy
// format with structured containers.
type LegacyEmbed struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Color       int    `json:"color,omitempty"`
}

// Message is the outgoing envelope: structured containers plus the flag and
// mention-parsing state the delivery conventions require.
type Message struct {
	Category        styles.Category  `json:"category,omitempty"`
	Containers      []Container      `json:"containers"`
	Flags           Flags            `json:"flags"`
	AllowedMentions *AllowedMentions `json:"allowed_mentions,omitempty"`

	// Content and Embeds carry legacy payloads. Conformant messages leave
	// both empty.
	Content string        `json:"content,omitempty"`
	Embeds  []LegacyEmbed `json:"embeds,omitempty"`
}

// Normalize applies the invariants every outgoing message must satisfy:
// the structured-container flag is set and mention parsing is suppressed.
// It never touches legacy fields; the conformance checker reports those.
func (m *Message) Normalize() {
	if m == nil {
		return
	}
	m.Flags = m.Flags.With(FlagStructured)
	if !m.AllowedMentions.Suppressed() {
		m.AllowedMentions = SuppressedMentions()
	}
}

// Ephemeral reports whether the message carries the two-flag ephemeral
// combination.
func (m *Message) Ephemeral() bool {
	return m != nil && m.Flags.Has(EphemeralFlags())
}

// Structured reports whether the structured-container flag is present.
func (m *Message) Structured() bool {
	return m != nil && m.Flags.Has(FlagStructured)
}

// Clone returns a deep copy of the message.
func (m *Message) Clone() *Message {
	if m == nil {
		return nil
	}
	cloned := *m
	cloned.Containers = make([]Container, len(m.Containers))
	for i, container := range m.Containers {
		copied := container
		if container.Accent != nil {
			accent := *container.Accent
			copied.Accent = &accent
		}
		copied.Blocks = make([]Block, len(container.Blocks))
		for j, block := range container.Blocks {
			if gallery, ok := block.(MediaGalleryBlock); ok {
				block = MediaGalleryBlock{Items: append([]MediaItem(nil), gallery.Items...)}
			}
			copied.Blocks[j] = block
		}
		cloned.Containers[i] = copied
	}
	if m.AllowedMentions != nil {
		cloned.AllowedMentions = &AllowedMentions{Parse: append([]string(nil), m.AllowedMentions.Parse...)}
	}
	cloned.Embeds = append([]LegacyEmbed(nil), m.Embeds...)
	return &cloned
}

type blockEnvelope struct {
	Type BlockType       `json:"type"`
	Data json.RawMessage `json:"data"`
}

type containerJSON struct {
	Accent *styles.Tone    `json:"accent,omitempty"`
	Blocks []blockEnvelope `json:"blocks"`
}

// MarshalJSON encodes blocks with a type discriminator so audit payloads can
// round-trip through storage.
func (c Container) MarshalJSON() ([]byte, error) {
	payload := containerJSON{Accent: c.Accent, Blocks: make([]blockEnvelope, 0, len(c.Blocks))}
	for _, block := range c.Blocks {
		data, err := json.Marshal(block)
		if err != nil {
			return nil, fmt.Errorf("message: encode %s block: %w", block.BlockType(), err)
		}
		payload.Blocks = append(payload.Blocks, blockEnvelope{Type: block.BlockType(), Data: data})
	}
	return json.Marshal(payload)
}

// UnmarshalJSON decodes the discriminated block encoding.
func (c *Container) UnmarshalJSON(data []byte) error {
	var payload containerJSON
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	c.Accent = payload.Accent
	c.Blocks = make([]Block, 0, len(payload.Blocks))
	for _, envelope := range payload.Blocks {
		block, err := decodeBlock(envelope)
		if err != nil {
			return err
		}
		c.Blocks = append(c.Blocks, block)
	}
	return nil
}

func decodeBlock(envelope blockEnvelope) (Block, error) {
	switch envelope.Type {
	case BlockTypeText:
		var block TextBlock
		if err := json.Unmarshal(envelope.Data, &block); err != nil {
			return nil, err
		}
		return block, nil
	case BlockTypeSeparator:
		var block SeparatorBlock
		if err := json.Unmarshal(envelope.Data, &block); err != nil {
			return nil, err
		}
		return block, nil
	case BlockTypeThumbnail:
		var block ThumbnailBlock
		if err := json.Unmarshal(envelope.Data, &block); err != nil {
			return nil, err
		}
		return block, nil
	case BlockTypeMediaGallery:
		var block MediaGalleryBlock
		if err := json.Unmarshal(envelope.Data, &block); err != nil {
			return nil, err
		}
		return block, nil
	default:
		return nil, fmt.Errorf("message: unknown block type %q", envelope.Type)
	}
}
