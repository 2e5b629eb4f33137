package conform

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-chatkit/message"
	"github.com/goliatone/go-chatkit/styles"
)

// Rule codes are stable identifiers usable in configuration and reports.
const (
	RuleStructuredFlag     = "structured-flag"
	RuleMentionSuppression = "mention-suppression"
	RuleLegacyEmbed        = "legacy-embed"
	RuleEphemeralPair      = "ephemeral-pair"
	RuleCategoryStyle      = "category-style"
	RuleContainerContent   = "container-content"

	// RuleCheckInterrupted marks a report cut short by context
	// cancellation. It is a report marker, not a configurable rule.
	RuleCheckInterrupted = "check-interrupted"
)

// Rule checks one convention against a message.
type Rule interface {
	Code() string
	Describe() string
	Check(msg *message.Message) []Violation
}

// BuiltinRules returns the full rule set in evaluation order.
func BuiltinRules() []Rule {
	return []Rule{
		structuredFlagRule{},
		mentionSuppressionRule{},
		legacyEmbedRule{},
		ephemeralPairRule{},
		categoryStyleRule{},
		containerContentRule{},
	}
}

type structuredFlagRule struct{}

func (structuredFlagRule) Code() string { return RuleStructuredFlag }
func (structuredFlagRule) Describe() string {
	return "every outgoing message sets the structured-container flag"
}

func (r structuredFlagRule) Check(msg *message.Message) []Violation {
	if msg.Structured() {
		return nil
	}
	return []Violation{{
		Rule:     r.Code(),
		Severity: SeverityError,
		Path:     "flags",
		Message:  "structured-container flag is missing",
	}}
}

type mentionSuppressionRule struct{}

func (mentionSuppressionRule) Code() string { return RuleMentionSuppression }
func (mentionSuppressionRule) Describe() string {
	return "automatic mention parsing is suppressed on every message"
}

func (r mentionSuppressionRule) Check(msg *message.Message) []Violation {
	if msg.AllowedMentions.Suppressed() {
		return nil
	}
	detail := "allowed_mentions is not set"
	if msg.AllowedMentions != nil {
		detail = fmt.Sprintf("allowed_mentions parses %v", msg.AllowedMentions.Parse)
	}
	return []Violation{{
		Rule:     r.Code(),
		Severity: SeverityError,
		Path:     "allowed_mentions",
		Message:  detail,
	}}
}

type legacyEmbedRule struct{}

func (legacyEmbedRule) Code() string { return RuleLegacyEmbed }
func (legacyEmbedRule) Describe() string {
	return "structured containers are never combined with legacy content or embeds"
}

func (r legacyEmbedRule) Check(msg *message.Message) []Violation {
	var violations []Violation
	if len(msg.Embeds) > 0 {
		violations = append(violations, Violation{
			Rule:     r.Code(),
			Severity: SeverityError,
			Path:     "embeds",
			Message:  fmt.Sprintf("%d legacy embed(s) present on a structured message", len(msg.Embeds)),
		})
	}
	if strings.TrimSpace(msg.Content) != "" {
		violations = append(violations, Violation{
			Rule:     r.Code(),
			Severity: SeverityError,
			Path:     "content",
			Message:  "legacy raw content present on a structured message",
		})
	}
	return violations
}

type ephemeralPairRule struct{}

func (ephemeralPairRule) Code() string { return RuleEphemeralPair }
func (ephemeralPairRule) Describe() string {
	return "ephemeral delivery combines the structured and ephemeral flags"
}

func (r ephemeralPairRule) Check(msg *message.Message) []Violation {
	if !msg.Flags.Has(message.FlagEphemeral) {
		return nil
	}
	if msg.Flags.Has(message.FlagStructured) {
		return nil
	}
	return []Violation{{
		Rule:     r.Code(),
		Severity: SeverityError,
		Path:     "flags",
		Message:  "ephemeral flag set without the structured-container flag",
	}}
}

type categoryStyleRule struct{}

func (categoryStyleRule) Code() string { return RuleCategoryStyle }
func (categoryStyleRule) Describe() string {
	return "category-labeled messages use the tone and symbol from the fixed table"
}

func (r categoryStyleRule) Check(msg *message.Message) []Violation {
	if msg.Category == "" {
		return nil
	}
	style, ok := styles.Lookup(msg.Category)
	if !ok {
		return []Violation{{
			Rule:     r.Code(),
			Severity: SeverityError,
			Path:     "category",
			Message:  fmt.Sprintf("unknown category %q", msg.Category),
		}}
	}
	if len(msg.Containers) == 0 {
		return nil
	}

	var violations []Violation
	container := msg.Containers[0]
	if container.Accent == nil || *container.Accent != style.Tone {
		got := "unset"
		if container.Accent != nil {
			got = fmt.Sprintf("%#x", int(*container.Accent))
		}
		violations = append(violations, Violation{
			Rule:     r.Code(),
			Severity: SeverityError,
			Path:     "containers.0.accent",
			Message:  fmt.Sprintf("category %q requires accent %#x, got %s", msg.Category, int(style.Tone), got),
		})
	}
	heading, ok := container.FirstText()
	if !ok || !headingHasSymbol(heading, style.Symbol) {
		violations = append(violations, Violation{
			Rule:     r.Code(),
			Severity: SeverityError,
			Path:     "containers.0.blocks",
			Message:  fmt.Sprintf("category %q requires a heading prefixed with %s", msg.Category, style.Symbol),
		})
	}
	return violations
}

func headingHasSymbol(heading, symbol string) bool {
	trimmed := strings.TrimSpace(heading)
	trimmed = strings.TrimLeft(trimmed, "# ")
	return strings.HasPrefix(trimmed, symbol)
}

type containerContentRule struct{}

func (containerContentRule) Code() string { return RuleContainerContent }
func (containerContentRule) Describe() string {
	return "every container carries at least one display block"
}

func (r containerContentRule) Check(msg *message.Message) []Violation {
	var violations []Violation
	if len(msg.Containers) == 0 {
		violations = append(violations, Violation{
			Rule:     r.Code(),
			Severity: SeverityError,
			Path:     "containers",
			Message:  "message has no containers",
		})
	}
	for i, container := range msg.Containers {
		if len(container.Blocks) == 0 {
			violations = append(violations, Violation{
				Rule:     r.Code(),
				Severity: SeverityError,
				Path:     fmt.Sprintf("containers.%d", i),
				Message:  "container has no blocks",
			})
		}
	}
	return violations
}
