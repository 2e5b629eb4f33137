package styles

import (
	"strings"
	"testing"
)

func TestTableMapsEveryCategoryOnce(t *testing.T) {
	cases := []struct {
		category Category
		tone     Tone
		symbol   string
	}{
		{CategoryError, ToneError, SymbolCross},
		{CategorySuccess, ToneSuccess, SymbolCheck},
		{CategoryWarning, ToneWarning, SymbolWarning},
		{CategoryInfo, TonePrimary, SymbolInfo},
		{CategoryPermissionDenied, ToneError, SymbolCross},
		{CategoryUsage, ToneError, SymbolCross},
		{CategoryNoData, TonePrimary, SymbolChart},
	}

	if got, want := len(Categories()), len(cases); got != want {
		t.Fatalf("expected %d categories, got %d", want, got)
	}

	for _, tc := range cases {
		style, ok := Lookup(tc.category)
		if !ok {
			t.Fatalf("expected style for %q", tc.category)
		}
		if style.Tone != tc.tone {
			t.Fatalf("category %q: expected tone %#x got %#x", tc.category, tc.tone, style.Tone)
		}
		if style.Symbol != tc.symbol {
			t.Fatalf("category %q: expected symbol %q got %q", tc.category, tc.symbol, style.Symbol)
		}
	}
}

func TestParseCategory(t *testing.T) {
	category, err := ParseCategory("  Permission_Denied ")
	if err != nil {
		t.Fatalf("parse category: %v", err)
	}
	if category != CategoryPermissionDenied {
		t.Fatalf("expected %q got %q", CategoryPermissionDenied, category)
	}

	if _, err := ParseCategory("fatal"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestLookupReturnsCopies(t *testing.T) {
	first := MustLookup(CategoryError)
	first.Symbol = "mutated"

	second := MustLookup(CategoryError)
	if second.Symbol != SymbolCross {
		t.Fatalf("expected table to stay immutable, got symbol %q", second.Symbol)
	}
}

func TestHeadingUsesSymbolPrefix(t *testing.T) {
	heading := Heading(CategorySuccess, "Deployment complete")
	if heading != SymbolCheck+" Deployment complete" {
		t.Fatalf("unexpected heading %q", heading)
	}

	fallback := Heading(CategoryNoData, "  ")
	if fallback != SymbolChart+" No Data" {
		t.Fatalf("expected label fallback, got %q", fallback)
	}

	markdown := MarkdownHeading(CategoryError, "Command failed")
	if !strings.HasPrefix(markdown, "### "+SymbolCross+" ") {
		t.Fatalf("unexpected markdown heading %q", markdown)
	}
}

func TestPaletteIsDeduplicated(t *testing.T) {
	palette := Palette()
	if len(palette) != 4 {
		t.Fatalf("expected 4 distinct tones, got %d", len(palette))
	}
	seen := map[Tone]bool{}
	for _, tone := range palette {
		if seen[tone] {
			t.Fatalf("tone %#x listed twice", tone)
		}
		seen[tone] = true
		if !InPalette(tone) {
			t.Fatalf("tone %#x missing from palette membership check", tone)
		}
	}
	if InPalette(Tone(0x123456)) {
		t.Fatalf("arbitrary tone should not be part of the palette")
	}
}
