package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsDeterministic(t *testing.T) {
	first := TemplateUUID("deploy-failed")
	second := TemplateUUID(" Deploy-Failed ")

	if first == uuid.Nil {
		t.Fatalf("expected non-nil uuid")
	}
	if first != second {
		t.Fatalf("expected normalization to produce stable ids: %s != %s", first, second)
	}
}

func TestUUIDKeysAreScoped(t *testing.T) {
	if TemplateUUID("structured-flag") == RuleUUID("structured-flag") {
		t.Fatalf("expected domain prefixes to prevent collisions")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if UUID("   ") != uuid.Nil {
		t.Fatalf("expected nil uuid for empty key")
	}
}
