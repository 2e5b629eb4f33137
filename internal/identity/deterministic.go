package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions
// (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// TemplateUUID derives the identifier for a message template slug.
func TemplateUUID(slug string) uuid.UUID {
	return UUID("go-chatkit:template:" + strings.ToLower(strings.TrimSpace(slug)))
}

// RuleUUID derives the identifier for a conformance rule code.
func RuleUUID(code string) uuid.UUID {
	return UUID("go-chatkit:rule:" + strings.ToLower(strings.TrimSpace(code)))
}
