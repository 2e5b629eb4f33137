package conform

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-chatkit/message"
)

// ErrUnknownRule indicates a configured rule code that no rule implements.
var ErrUnknownRule = errors.New("conform: unknown rule code")

// Options configures a checker.
type Options struct {
	// Disabled lists rule codes excluded from evaluation.
	Disabled []string
	// Extra appends host supplied rules after the builtin set.
	Extra []Rule
}

// Checker evaluates messages against the convention rule set.
type Checker struct {
	rules []Rule
}

// New builds a checker from the builtin rules plus any options. Disabling a
// rule code that does not exist is a configuration error.
func New(opts Options) (*Checker, error) {
	available := append(BuiltinRules(), opts.Extra...)

	known := map[string]struct{}{}
	for _, rule := range available {
		known[rule.Code()] = struct{}{}
	}
	disabled := map[string]struct{}{}
	for _, code := range opts.Disabled {
		if _, ok := known[code]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRule, code)
		}
		disabled[code] = struct{}{}
	}

	rules := make([]Rule, 0, len(available))
	for _, rule := range available {
		if _, ok := disabled[rule.Code()]; ok {
			continue
		}
		rules = append(rules, rule)
	}
	return &Checker{rules: rules}, nil
}

// MustNew panics when the options are invalid.
func MustNew(opts Options) *Checker {
	checker, err := New(opts)
	if err != nil {
		panic(err)
	}
	return checker
}

// Rules returns the active rule set.
func (c *Checker) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// Check evaluates a single message.
func (c *Checker) Check(ctx context.Context, msg *message.Message) Report {
	report := Report{}
	if msg == nil {
		report.Violations = append(report.Violations, Violation{
			Rule:     RuleContainerContent,
			Severity: SeverityError,
			Message:  "message is nil",
		})
		return report
	}
	for _, rule := range c.rules {
		if err := ctx.Err(); err != nil {
			// A partial report must never read as clean: callers treat an
			// empty violation list as a pass.
			report.Violations = append(report.Violations, Violation{
				Rule:     RuleCheckInterrupted,
				Severity: SeverityError,
				Message:  fmt.Sprintf("check interrupted before rule %q: %v", rule.Code(), err),
			})
			return report
		}
		report.Violations = append(report.Violations, rule.Check(msg)...)
	}
	return report
}

// CheckAll evaluates a batch of messages, prefixing violation paths with the
// message index.
func (c *Checker) CheckAll(ctx context.Context, msgs []*message.Message) Report {
	report := Report{}
	for i, msg := range msgs {
		partial := c.Check(ctx, msg)
		for _, violation := range partial.Violations {
			if violation.Path == "" {
				violation.Path = fmt.Sprintf("%d", i)
			} else {
				violation.Path = fmt.Sprintf("%d.%s", i, violation.Path)
			}
			report.Violations = append(report.Violations, violation)
		}
	}
	return report
}
