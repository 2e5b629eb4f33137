package message

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-chatkit/styles"
)

// Builder assembles a conformant message. Calls chain; Build validates the
// assembled envelope and applies the convention invariants (structured flag,
// mention suppression, category accent and heading).
type Builder struct {
	category styles.Category
	title    string
	accent   *styles.Tone
	flags    Flags

	containers [][]Block
	current    []Block
}

// New starts an empty builder.
func New() *Builder {
	return &Builder{}
}

// NewCategory starts a builder for a category-labeled message. Build will
// apply the category accent tone and prepend the symbol-prefixed heading.
func NewCategory(category styles.Category, title string) *Builder {
	return &Builder{category: category, title: title}
}

// Text appends a markdown text block to the current container.
func (b *Builder) Text(content string) *Builder {
	b.current = append(b.current, TextBlock{Content: content})
	return b
}

// Textf appends a formatted text block.
func (b *Builder) Textf(format string, args ...any) *Builder {
	return b.Text(fmt.Sprintf(format, args...))
}

// Separator appends spacing without a divider line.
func (b *Builder) Separator() *Builder {
	b.current = append(b.current, SeparatorBlock{Spacing: SeparatorSpacingSmall})
	return b
}

// Divider appends a separator with a visible divider line.
func (b *Builder) Divider() *Builder {
	b.current = append(b.current, SeparatorBlock{Divider: true, Spacing: SeparatorSpacingSmall})
	return b
}

// Thumbnail appends a thumbnail block.
func (b *Builder) Thumbnail(url, description string) *Builder {
	b.current = append(b.current, ThumbnailBlock{URL: url, Description: description})
	return b
}

// Gallery appends a media gallery block.
func (b *Builder) Gallery(items ...MediaItem) *Builder {
	b.current = append(b.current, MediaGalleryBlock{Items: items})
	return b
}

// Block appends a prebuilt block.
func (b *Builder) Block(block Block) *Builder {
	if block != nil {
		b.current = append(b.current, block)
	}
	return b
}

// Container closes the current container and starts a new one.
func (b *Builder) Container() *Builder {
	if len(b.current) > 0 {
		b.containers = append(b.containers, b.current)
		b.current = nil
	}
	return b
}

// Accent overrides the container accent tone. The tone must belong to the
// fixed palette.
func (b *Builder) Accent(tone styles.Tone) *Builder {
	b.accent = &tone
	return b
}

// Ephemeral requests sender-only visible delivery using the required
// two-flag combination.
func (b *Builder) Ephemeral() *Builder {
	b.flags = b.flags.With(EphemeralFlags())
	return b
}

// Silent suppresses delivery notifications.
func (b *Builder) Silent() *Builder {
	b.flags = b.flags.With(FlagSuppressNotifications)
	return b
}

// Build assembles, normalizes, and validates the message.
func (b *Builder) Build() (*Message, error) {
	if b.category != "" && !b.category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, b.category)
	}

	containers := append([][]Block(nil), b.containers...)
	if len(b.current) > 0 {
		containers = append(containers, b.current)
	}
	if b.category != "" {
		heading := TextBlock{Content: styles.MarkdownHeading(b.category, b.title)}
		if len(containers) == 0 {
			containers = [][]Block{{heading}}
		} else {
			containers[0] = append([]Block{heading}, containers[0]...)
		}
	}
	if len(containers) == 0 {
		return nil, ErrNoContainers
	}

	accent := b.accent
	if accent != nil && !styles.InPalette(*accent) {
		return nil, fmt.Errorf("%w: %#x", ErrAccentOffPalette, *accent)
	}
	if accent == nil && b.category != "" {
		tone := styles.MustLookup(b.category).Tone
		accent = &tone
	}

	msg := &Message{
		Category:   b.category,
		Containers: make([]Container, 0, len(containers)),
		Flags:      b.flags,
	}
	for i, blocks := range containers {
		container := Container{Blocks: blocks}
		if i == 0 && accent != nil {
			tone := *accent
			container.Accent = &tone
		}
		msg.Containers = append(msg.Containers, container)
	}
	msg.Normalize()

	if err := validateBlocks(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// MustBuild panics on build failure. Intended for static messages known to
// be valid at compile time.
func (b *Builder) MustBuild() *Message {
	msg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return msg
}

func validateBlocks(msg *Message) error {
	issues := validation.Errors{}
	for ci, container := range msg.Containers {
		if len(container.Blocks) == 0 {
			return ErrEmptyContainer
		}
		for bi, block := range container.Blocks {
			key := fmt.Sprintf("containers.%d.blocks.%d", ci, bi)
			switch typed := block.(type) {
			case TextBlock:
				if strings.TrimSpace(typed.Content) == "" {
					issues[key] = ErrTextRequired
				}
			case ThumbnailBlock:
				if err := validation.Validate(typed.URL, validation.Required); err != nil {
					issues[key] = ErrMediaURLRequired
				}
			case MediaGalleryBlock:
				if len(typed.Items) == 0 {
					issues[key] = ErrMediaURLRequired
					continue
				}
				for _, item := range typed.Items {
					if strings.TrimSpace(item.URL) == "" {
						issues[key] = ErrMediaURLRequired
						break
					}
				}
			}
		}
	}
	if len(issues) > 0 {
		return issues
	}
	return nil
}
