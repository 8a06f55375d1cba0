package policy

import (
	"slices"

	"github.com/poiesic/sanctum/core"
)

// Rule is one named governance check. It returns a decision and true when it
// claims the document; returning false passes evaluation to the next rule.
// Rules must be pure: identical inputs always yield identical outputs.
type Rule func(findings []core.PIIEntity, meta core.DocumentMetadata) (core.PolicyDecision, bool)

// Engine evaluates ordered governance rules over PII findings and document
// metadata. The first blocking rule wins; the built-in PII check runs after
// every configured rule has passed. Engines are immutable after construction
// and safe for concurrent use.
type Engine struct {
	strictPublic bool
	rules        []namedRule
}

type namedRule struct {
	name string
	rule Rule
}

// Option configures an Engine.
type Option func(*Engine)

// WithStrictPublic blocks any document with PII findings whose visibility is
// Public, instead of masking it.
func WithStrictPublic() Option {
	return func(e *Engine) {
		e.strictPublic = true
	}
}

// WithRule appends a named rule, evaluated before the PII check in
// registration order.
func WithRule(name string, rule Rule) Option {
	return func(e *Engine) {
		e.rules = append(e.rules, namedRule{name: name, rule: rule})
	}
}

// WithClassificationAllowList blocks documents whose classification is not in
// allowed.
func WithClassificationAllowList(allowed ...core.Classification) Option {
	return WithRule("classification_allowed", func(findings []core.PIIEntity, meta core.DocumentMetadata) (core.PolicyDecision, bool) {
		if slices.Contains(allowed, meta.Classification) {
			return core.PolicyDecision{}, false
		}
		return core.PolicyDecision{
			Rule:     "classification_allowed",
			Decision: core.DecisionBlock,
			Reason:   "classification_not_allowed",
			Context:  contextFor(findings, meta),
		}, true
	})
}

// WithRequireOwner blocks documents without an owner user ID.
func WithRequireOwner() Option {
	return WithRule("require_owner", func(findings []core.PIIEntity, meta core.DocumentMetadata) (core.PolicyDecision, bool) {
		if meta.OwnerUserID != "" {
			return core.PolicyDecision{}, false
		}
		return core.PolicyDecision{
			Rule:     "require_owner",
			Decision: core.DecisionBlock,
			Reason:   "missing_owner",
			Context:  contextFor(findings, meta),
		}, true
	})
}

// NewEngine creates a policy engine with the given options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Decide evaluates the configured rules and then the PII check. It is a
// total function with no side effects; acting on the decision (aborting,
// masking, logging) is the caller's responsibility.
func (e *Engine) Decide(findings []core.PIIEntity, meta core.DocumentMetadata) core.PolicyDecision {
	for _, nr := range e.rules {
		if decision, claimed := nr.rule(findings, meta); claimed {
			return decision
		}
	}

	ctx := contextFor(findings, meta)

	if len(findings) == 0 {
		return core.PolicyDecision{
			Rule:     "pii_check",
			Decision: core.DecisionAllow,
			Reason:   "no_pii",
			Context:  ctx,
		}
	}

	if e.strictPublic && meta.Visibility == core.VisibilityPublic {
		return core.PolicyDecision{
			Rule:     "block_public_with_pii",
			Decision: core.DecisionBlock,
			Reason:   "pii_found_in_public",
			Context:  ctx,
		}
	}

	return core.PolicyDecision{
		Rule:     "mask_pii",
		Decision: core.DecisionMask,
		Reason:   "pii_masked",
		Context:  ctx,
	}
}

func contextFor(findings []core.PIIEntity, meta core.DocumentMetadata) core.PolicyContext {
	return core.PolicyContext{
		Visibility:     meta.Visibility,
		Classification: meta.Classification,
		PIISummary:     core.Summarize(findings),
	}
}
