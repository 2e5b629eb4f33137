// Package message models the structured-container format every outgoing bot
// message must use: an ordered list of display blocks grouped in accent
// colored containers, plus the flag and mention-parsing envelope required by
// the delivery conventions.
package message

import (
	"github.com/goliatone/go-chatkit/styles"
)

// BlockType discriminates display block variants.
type BlockType string

const (
	BlockTypeText         BlockType = "text"
	BlockTypeSeparator    BlockType = "separator"
	BlockTypeThumbnail    BlockType = "thumbnail"
	BlockTypeMediaGallery BlockType = "media_gallery"
)

// SeparatorSpacing controls the vertical padding around a separator block.
type SeparatorSpacing string

const (
	SeparatorSpacingSmall SeparatorSpacing = "small"
	SeparatorSpacingLarge SeparatorSpacing = "large"
)

// Block is a single display element inside a container.
type Block interface {
	BlockType() BlockType
}

// TextBlock renders a markdown text display.
type TextBlock struct {
	Content string `json:"content"`
}

// BlockType implements Block.
func (TextBlock) BlockType() BlockType { return BlockTypeText }

// SeparatorBlock renders vertical spacing with an optional divider line.
type SeparatorBlock struct {
	Divider bool             `json:"divider"`
	Spacing SeparatorSpacing `json:"spacing,omitempty"`
}

// BlockType implements Block.
func (SeparatorBlock) BlockType() BlockType { return BlockTypeSeparator }

// ThumbnailBlock renders a small media preview next to container content.
type ThumbnailBlock struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Spoiler     bool   `json:"spoiler,omitempty"`
}

// BlockType implements Block.
func (ThumbnailBlock) BlockType() BlockType { return BlockTypeThumbnail }

// MediaItem is a single entry in a media gallery.
type MediaItem struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Spoiler     bool   `json:"spoiler,omitempty"`
}

// MediaGalleryBlock renders an image/video grid.
type MediaGalleryBlock struct {
	Items []MediaItem `json:"items"`
}

// BlockType implements Block.
func (MediaGalleryBlock) BlockType() BlockType { return BlockTypeMediaGallery }

// Container groups ordered display blocks behind an optional accent tone.
type Container struct {
	Accent *styles.Tone `json:"accent,omitempty"`
	Blocks []Block      `json:"blocks"`
}

// Accented returns a copy of the container with the accent tone applied.
func (c Container) Accented(tone styles.Tone) Container {
	c.Accent = &tone
	return c
}

// FirstText returns the content of the first text block, if any.
func (c Container) FirstText() (string, bool) {
	for _, block := range c.Blocks {
		if text, ok := block.(TextBlock); ok {
			return text.Content, true
		}
	}
	return "", false
}
