package pii

import (
	"regexp"
	"sort"

	"github.com/poiesic/sanctum/core"
)

// Detector scans raw text and returns typed entity spans.
// Implementations must return entities in a stable order (ascending start)
// and must resolve overlapping matches before returning.
type Detector interface {
	Detect(text string) []core.PIIEntity
}

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	ssnPattern   = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)
	cardPattern  = regexp.MustCompile(`\b(?:\d{4}[ -]){3}\d{4}\b`)
	ipPattern    = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
	phonePattern = regexp.MustCompile(`(?:\+\d{1,3}[-.\s]?)?(?:\d{2,4}[-.\s]?){2,4}\d{2,4}`)
)

// patternOrder fixes the precedence used for overlap resolution. Patterns
// earlier in the list claim their spans first; later patterns matching an
// already-claimed region are dropped.
var patternOrder = []struct {
	piiType core.PIIType
	pattern *regexp.Regexp
}{
	{core.PIITypeEmail, emailPattern},
	{core.PIITypeSSN, ssnPattern},
	{core.PIITypeCreditCard, cardPattern},
	{core.PIITypeIP, ipPattern},
	{core.PIITypePhone, phonePattern},
}

// RegexDetector is the baseline pattern-based detector. It is stateless and
// safe for concurrent use.
type RegexDetector struct{}

var _ Detector = (*RegexDetector)(nil)

// NewRegexDetector creates the baseline pattern-based detector.
func NewRegexDetector() *RegexDetector {
	return &RegexDetector{}
}

// Detect returns all entities found in text, ascending by start offset.
// Adjacent matches of different types are both retained; overlapping
// matches are resolved by the fixed type precedence.
func (d *RegexDetector) Detect(text string) []core.PIIEntity {
	var entities []core.PIIEntity

	for _, p := range patternOrder {
		for _, loc := range p.pattern.FindAllStringIndex(text, -1) {
			candidate := core.PIIEntity{
				Type:  p.piiType,
				Value: text[loc[0]:loc[1]],
				Start: loc[0],
				End:   loc[1],
			}
			if overlapsAny(entities, candidate) {
				continue
			}
			entities = append(entities, candidate)
		}
	}

	sort.SliceStable(entities, func(i, j int) bool {
		if entities[i].Start != entities[j].Start {
			return entities[i].Start < entities[j].Start
		}
		return entities[i].End < entities[j].End
	})

	return entities
}

// overlapsAny reports whether candidate intersects any already-claimed span.
// Half-open spans: touching endpoints do not overlap.
func overlapsAny(claimed []core.PIIEntity, candidate core.PIIEntity) bool {
	for _, e := range claimed {
		if candidate.Start < e.End && e.Start < candidate.End {
			return true
		}
	}
	return false
}
