// Package styles defines the fixed visual vocabulary applied to outgoing
// bot messages: a category enumeration, the accent tone palette, and the
// symbol prefixes used for container headings. The table is a constant;
// lookups return copies so callers cannot mutate the shared mapping.
package styles

import (
	"fmt"
	"sort"
	"strings"
)

// Category labels the intent of an outgoing message.
type Category string

const (
	CategoryError            Category = "error"
	CategorySuccess          Category = "success"
	CategoryWarning          Category = "warning"
	CategoryInfo             Category = "info"
	CategoryPermissionDenied Category = "permission_denied"
	CategoryUsage            Category = "usage"
	CategoryNoData           Category = "no_data"
)

// Tone is a 24-bit RGB accent color applied to a container border.
type Tone int

const (
	// ToneError marks failure, permission, and usage messages.
	ToneError Tone = 0xED4245
	// ToneSuccess marks completed operations.
	ToneSuccess Tone = 0x57F287
	// ToneWarning marks recoverable or cautionary notices.
	ToneWarning Tone = 0xFEE75C
	// TonePrimary marks informational and empty-result messages.
	TonePrimary Tone = 0x5865F2
)

// Symbol constants used as heading prefixes.
const (
	SymbolCross   = "❌"
	SymbolCheck   = "✅"
	SymbolWarning = "⚠️"
	SymbolInfo    = "📋"
	SymbolChart   = "📊"
)

// Style binds a category to its accent tone and heading symbol.
type Style struct {
	Category Category
	Tone     Tone
	Symbol   string
	Label    string
}

// table is the single source of truth for category display attributes.
// Each category maps to exactly one tone and one symbol.
var table = map[Category]Style{
	CategoryError:            {Category: CategoryError, Tone: ToneError, Symbol: SymbolCross, Label: "Error"},
	CategorySuccess:          {Category: CategorySuccess, Tone: ToneSuccess, Symbol: SymbolCheck, Label: "Success"},
	CategoryWarning:          {Category: CategoryWarning, Tone: ToneWarning, Symbol: SymbolWarning, Label: "Warning"},
	CategoryInfo:             {Category: CategoryInfo, Tone: TonePrimary, Symbol: SymbolInfo, Label: "Info"},
	CategoryPermissionDenied: {Category: CategoryPermissionDenied, Tone: ToneError, Symbol: SymbolCross, Label: "Permission Denied"},
	CategoryUsage:            {Category: CategoryUsage, Tone: ToneError, Symbol: SymbolCross, Label: "Usage"},
	CategoryNoData:           {Category: CategoryNoData, Tone: TonePrimary, Symbol: SymbolChart, Label: "No Data"},
}

// Valid reports whether the category is part of the fixed table.
func (c Category) Valid() bool {
	_, ok := table[c]
	return ok
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// ParseCategory normalizes and validates a category identifier.
func ParseCategory(value string) (Category, error) {
	normalized := Category(strings.ToLower(strings.TrimSpace(value)))
	if !normalized.Valid() {
		return "", fmt.Errorf("styles: unknown category %q", value)
	}
	return normalized, nil
}

// Lookup returns the style bound to the provided category.
func Lookup(category Category) (Style, bool) {
	style, ok := table[category]
	return style, ok
}

// MustLookup returns the style for a category known to be valid.
// It panics when the category is not part of the table.
func MustLookup(category Category) Style {
	style, ok := table[category]
	if !ok {
		panic(fmt.Sprintf("styles: unknown category %q", category))
	}
	return style
}

// Categories returns every known category in stable order.
func Categories() []Category {
	out := make([]Category, 0, len(table))
	for category := range table {
		out = append(out, category)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Palette returns the distinct accent tones used by the table, sorted.
func Palette() []Tone {
	seen := map[Tone]struct{}{}
	out := make([]Tone, 0, len(table))
	for _, style := range table {
		if _, ok := seen[style.Tone]; ok {
			continue
		}
		seen[style.Tone] = struct{}{}
		out = append(out, style.Tone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// InPalette reports whether the tone belongs to the fixed accent palette.
func InPalette(tone Tone) bool {
	for _, style := range table {
		if style.Tone == tone {
			return true
		}
	}
	return false
}

// Heading renders the symbol-prefixed heading text for a category.
func Heading(category Category, title string) string {
	style, ok := table[category]
	if !ok {
		return strings.TrimSpace(title)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = style.Label
	}
	return style.Symbol + " " + title
}

// MarkdownHeading renders the level-three markdown heading used at the top
// of category containers.
func MarkdownHeading(category Category, title string) string {
	return "### " + Heading(category, title)
}
