package templates

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-chatkit/message"
	"github.com/goliatone/go-chatkit/styles"
	"github.com/goliatone/go-chatkit/templates"
)

// accentTones maps frontmatter accent names onto the fixed palette.
var accentTones = map[string]styles.Tone{
	"error":   styles.ToneError,
	"success": styles.ToneSuccess,
	"warning": styles.ToneWarning,
	"primary": styles.TonePrimary,
}

// ParseDocument turns a markdown template file into a register input. The
// path supplies the default slug (file name without extension); frontmatter
// can only narrow behaviour, never escape the convention invariants.
func ParseDocument(path string, source []byte) (templates.RegisterInput, error) {
	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return templates.RegisterInput{}, fmt.Errorf("templates: parse frontmatter %s: %w", path, err)
	}
	if err := validateMetadata(meta); err != nil {
		return templates.RegisterInput{}, fmt.Errorf("%w (%s)", err, path)
	}

	input := templates.RegisterInput{
		Slug:      slugFromPath(path),
		Title:     stringField(meta, "title"),
		Ephemeral: boolField(meta, "ephemeral"),
		Silent:    boolField(meta, "silent"),
		Source:    path,
	}

	if raw := stringField(meta, "category"); raw != "" {
		category, err := styles.ParseCategory(raw)
		if err != nil {
			return templates.RegisterInput{}, fmt.Errorf("templates: %s: %w", path, err)
		}
		input.Category = category
	}

	if raw := stringField(meta, "accent"); raw != "" {
		tone, ok := accentTones[strings.ToLower(strings.TrimSpace(raw))]
		if !ok {
			return templates.RegisterInput{}, fmt.Errorf("%w: %q (%s)", templates.ErrUnknownAccent, raw, path)
		}
		input.Accent = &tone
	}

	input.Blocks = blocksFromMarkdown(body)
	if thumb := thumbnailField(meta); thumb != nil {
		input.Blocks = append(input.Blocks, *thumb)
	}
	if len(input.Blocks) == 0 {
		return templates.RegisterInput{}, fmt.Errorf("%w (%s)", templates.ErrBodyEmpty, path)
	}
	return input, nil
}

func slugFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	normalized, err := slug.Normalize(base)
	if err != nil || normalized == "" {
		return strings.ToLower(base)
	}
	return normalized
}

func stringField(meta map[string]any, key string) string {
	value, ok := meta[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func boolField(meta map[string]any, key string) bool {
	value, ok := meta[key].(bool)
	return ok && value
}

func thumbnailField(meta map[string]any) *message.ThumbnailBlock {
	raw, ok := meta["thumbnail"].(map[string]any)
	if !ok {
		return nil
	}
	url, _ := raw["url"].(string)
	if strings.TrimSpace(url) == "" {
		return nil
	}
	description, _ := raw["description"].(string)
	return &message.ThumbnailBlock{URL: strings.TrimSpace(url), Description: strings.TrimSpace(description)}
}
