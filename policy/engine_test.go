package policy

import (
	"testing"

	"github.com/poiesic/sanctum/core"
	"github.com/stretchr/testify/assert"
)

var testFindings = []core.PIIEntity{
	{Type: core.PIITypeEmail, Value: "jane@co.com", Start: 8, End: 19},
	{Type: core.PIITypePhone, Value: "555-123-4567", Start: 23, End: 35},
}

func TestDecide_NoFindings(t *testing.T) {
	e := NewEngine(WithStrictPublic())

	meta := core.DocumentMetadata{
		TenantID: "acme", ProjectID: "p1",
		Visibility: core.VisibilityPublic,
	}
	decision := e.Decide(nil, meta)

	assert.Equal(t, core.DecisionAllow, decision.Decision)
	assert.Equal(t, "no_pii", decision.Reason)
	assert.False(t, decision.Blocked())
}

func TestDecide_SharedWithPII_Masks(t *testing.T) {
	e := NewEngine(WithStrictPublic())

	meta := core.DocumentMetadata{
		TenantID: "acme", ProjectID: "p1",
		Visibility: core.VisibilityShared,
	}
	decision := e.Decide(testFindings, meta)

	assert.Equal(t, core.DecisionMask, decision.Decision)
	assert.Equal(t, "pii_masked", decision.Reason)
	assert.Equal(t, 1, decision.Context.PIISummary[core.PIITypeEmail])
	assert.Equal(t, 1, decision.Context.PIISummary[core.PIITypePhone])
}

func TestDecide_PublicWithPII_StrictBlocks(t *testing.T) {
	e := NewEngine(WithStrictPublic())

	meta := core.DocumentMetadata{
		TenantID: "acme", ProjectID: "p1",
		Visibility: core.VisibilityPublic,
	}
	decision := e.Decide(testFindings, meta)

	assert.Equal(t, core.DecisionBlock, decision.Decision)
	assert.Equal(t, "pii_found_in_public", decision.Reason)
	assert.True(t, decision.Blocked())
}

func TestDecide_PublicWithPII_LenientMasks(t *testing.T) {
	e := NewEngine()

	meta := core.DocumentMetadata{
		TenantID: "acme", ProjectID: "p1",
		Visibility: core.VisibilityPublic,
	}
	decision := e.Decide(testFindings, meta)

	assert.Equal(t, core.DecisionMask, decision.Decision)
}

func TestDecide_Deterministic(t *testing.T) {
	e := NewEngine(WithStrictPublic(), WithRequireOwner())

	meta := core.DocumentMetadata{
		TenantID: "acme", ProjectID: "p1",
		Visibility:  core.VisibilityShared,
		OwnerUserID: "u1",
	}

	first := e.Decide(testFindings, meta)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.Decide(testFindings, meta))
	}
}

func TestDecide_ClassificationAllowList(t *testing.T) {
	e := NewEngine(
		WithClassificationAllowList(core.ClassificationPublic, core.ClassificationInternal),
		WithStrictPublic(),
	)

	meta := core.DocumentMetadata{
		TenantID: "acme", ProjectID: "p1",
		Classification: core.ClassificationConfidential,
		Visibility:     core.VisibilityShared,
	}
	decision := e.Decide(nil, meta)

	assert.Equal(t, core.DecisionBlock, decision.Decision)
	assert.Equal(t, "classification_not_allowed", decision.Reason)
	assert.Equal(t, "classification_allowed", decision.Rule)
}

func TestDecide_RequireOwner_RunsBeforePIICheck(t *testing.T) {
	e := NewEngine(WithRequireOwner())

	meta := core.DocumentMetadata{
		TenantID: "acme", ProjectID: "p1",
		Visibility: core.VisibilityShared,
	}
	decision := e.Decide(testFindings, meta)

	// The ownership rule claims the document before the PII check can mask.
	assert.Equal(t, core.DecisionBlock, decision.Decision)
	assert.Equal(t, "missing_owner", decision.Reason)
}

func TestDecide_FirstBlockingRuleWins(t *testing.T) {
	e := NewEngine(
		WithClassificationAllowList(core.ClassificationInternal),
		WithRequireOwner(),
	)

	meta := core.DocumentMetadata{
		TenantID: "acme", ProjectID: "p1",
		Classification: core.ClassificationConfidential,
		Visibility:     core.VisibilityShared,
	}
	decision := e.Decide(nil, meta)

	assert.Equal(t, "classification_allowed", decision.Rule)
}
