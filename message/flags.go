package message

// Flags is the bitfield carried on every outgoing message envelope.
type Flags int

const (
	// FlagEphemeral makes an interaction response visible only to the
	// invoking user. It is never valid on its own; see EphemeralFlags.
	FlagEphemeral Flags = 1 << 6
	// FlagSuppressNotifications delivers the message without triggering
	// push or desktop notifications.
	FlagSuppressNotifications Flags = 1 << 12
	// FlagStructured marks the message as using the structured-container
	// format instead of legacy content/embed fields.
	FlagStructured Flags = 1 << 15
)

// EphemeralFlags returns the required two-flag combination for sender-only
// visible delivery. The legacy single-flag form is intentionally not exposed.
func EphemeralFlags() Flags {
	return FlagStructured | FlagEphemeral
}

// Has reports whether every bit in flag is set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// With returns the flags with the provided bits set.
func (f Flags) With(flag Flags) Flags {
	return f | flag
}

// Without returns the flags with the provided bits cleared.
func (f Flags) Without(flag Flags) Flags {
	return f &^ flag
}

// AllowedMentions controls automatic mention parsing on delivery. An empty
// Parse list disables all mention expansion.
type AllowedMentions struct {
	Parse []string `json:"parse"`
}

// SuppressedMentions returns the empty-but-non-nil allowed mentions payload
// that disables automatic mention parsing. Omitting the field entirely would
// leave platform defaults in effect, which the conventions forbid.
func SuppressedMentions() *AllowedMentions {
	return &AllowedMentions{Parse: []string{}}
}

// Suppressed reports whether mention parsing is fully disabled.
func (a *AllowedMentions) Suppressed() bool {
	return a != nil && len(a.Parse) == 0
}
