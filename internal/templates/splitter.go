package templates

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"

	"github.com/goliatone/go-chatkit/message"
)

// blocksFromMarkdown splits a markdown body into ordered display blocks.
// Thematic breaks become divider separators, image-only paragraphs become
// media galleries, and everything else accumulates into text blocks.
func blocksFromMarkdown(source []byte) []message.Block {
	engine := goldmark.New()
	document := engine.Parser().Parse(gtext.NewReader(source))

	var blocks []message.Block
	var text strings.Builder

	flushText := func() {
		content := strings.TrimSpace(text.String())
		text.Reset()
		if content != "" {
			blocks = append(blocks, message.TextBlock{Content: content})
		}
	}

	for node := document.FirstChild(); node != nil; node = node.NextSibling() {
		switch typed := node.(type) {
		case *ast.ThematicBreak:
			flushText()
			blocks = append(blocks, message.SeparatorBlock{Divider: true, Spacing: message.SeparatorSpacingSmall})
		case *ast.Paragraph:
			if items, ok := galleryItems(typed, source); ok {
				flushText()
				blocks = append(blocks, message.MediaGalleryBlock{Items: items})
				continue
			}
			appendSourceText(&text, typed, source)
		case *ast.Heading:
			appendHeading(&text, typed, source)
		case *ast.FencedCodeBlock:
			appendFencedCode(&text, typed, source)
		default:
			appendRawSpan(&text, node, source)
		}
	}
	flushText()
	return blocks
}

// galleryItems reports whether the paragraph consists solely of images and
// returns them as media items.
func galleryItems(paragraph *ast.Paragraph, source []byte) ([]message.MediaItem, bool) {
	var items []message.MediaItem
	for child := paragraph.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Image:
			items = append(items, message.MediaItem{
				URL:         string(typed.Destination),
				Description: string(typed.Text(source)),
			})
		case *ast.Text:
			if strings.TrimSpace(string(typed.Segment.Value(source))) != "" {
				return nil, false
			}
		default:
			return nil, false
		}
	}
	return items, len(items) > 0
}

// appendRawSpan emits the raw source covered by a node. Container nodes
// (lists, blockquotes) have no Lines of their own, so the span is collected
// from their leaf children and widened to the start of the first line to keep
// list markers and quote prefixes.
func appendRawSpan(sb *strings.Builder, node ast.Node, source []byte) {
	start, stop, ok := sourceSpan(node)
	if !ok {
		return
	}
	for start > 0 && source[start-1] != '\n' {
		start--
	}
	if stop > len(source) {
		stop = len(source)
	}
	raw := strings.TrimRight(string(source[start:stop]), "\n")
	if strings.TrimSpace(raw) == "" {
		return
	}
	if sb.Len() > 0 {
		sb.WriteString("\n\n")
	}
	sb.WriteString(raw)
}

// sourceSpan returns the smallest [start, stop) range of source bytes that
// covers the node's own lines and all of its descendants.
func sourceSpan(node ast.Node) (int, int, bool) {
	start, stop := -1, -1
	if lines := node.Lines(); lines != nil && lines.Len() > 0 {
		start = lines.At(0).Start
		stop = lines.At(lines.Len()-1).Stop
	}
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		childStart, childStop, ok := sourceSpan(child)
		if !ok {
			continue
		}
		if start == -1 || childStart < start {
			start = childStart
		}
		if childStop > stop {
			stop = childStop
		}
	}
	return start, stop, start != -1
}

func appendSourceText(sb *strings.Builder, node ast.Node, source []byte) {
	lines := node.Lines()
	if lines == nil || lines.Len() == 0 {
		return
	}
	if sb.Len() > 0 {
		sb.WriteString("\n\n")
	}
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		sb.WriteString(strings.TrimRight(string(segment.Value(source)), "\n"))
		if i < lines.Len()-1 {
			sb.WriteString("\n")
		}
	}
}

func appendHeading(sb *strings.Builder, heading *ast.Heading, source []byte) {
	if sb.Len() > 0 {
		sb.WriteString("\n\n")
	}
	sb.WriteString(strings.Repeat("#", heading.Level))
	sb.WriteString(" ")
	sb.WriteString(strings.TrimSpace(string(heading.Text(source))))
}

func appendFencedCode(sb *strings.Builder, code *ast.FencedCodeBlock, source []byte) {
	if sb.Len() > 0 {
		sb.WriteString("\n\n")
	}
	language := ""
	if code.Info != nil {
		language = strings.TrimSpace(string(code.Info.Segment.Value(source)))
	}
	sb.WriteString("```")
	sb.WriteString(language)
	sb.WriteString("\n")
	lines := code.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		sb.WriteString(strings.TrimRight(string(segment.Value(source)), "\n"))
		sb.WriteString("\n")
	}
	sb.WriteString("```")
}
