package core

import (
	"encoding/base64"
	"fmt"
	"slices"

	"github.com/go-crypt/x/blake2b"
)

// PIIType classifies a detected piece of personally identifiable information.
type PIIType string

const (
	PIITypeEmail      PIIType = "email"
	PIITypePhone      PIIType = "phone"
	PIITypeSSN        PIIType = "ssn"
	PIITypeCreditCard PIIType = "credit_card"
	PIITypeIP         PIIType = "ip"
	PIITypeName       PIIType = "name"
)

// PIIEntity is a single detected entity within one text.
// Start and End are half-open byte offsets into that text.
// Entities returned by one detector pass never overlap.
type PIIEntity struct {
	Type  PIIType
	Value string
	Start int
	End   int
}

// PIISummary counts detected entities by type.
// It is attached to policy decisions and ingestion results for audit logging.
type PIISummary map[PIIType]int

// Summarize builds a PIISummary from a set of findings.
func Summarize(entities []PIIEntity) PIISummary {
	summary := make(PIISummary, len(entities))
	for _, e := range entities {
		summary[e.Type]++
	}
	return summary
}

// TokenRecord maps one redacted entity back to its original value.
// CipherText is the authenticated encryption of RawValue and is independently
// decryptable; Token is the opaque placeholder embedded in the masked text.
// A TokenRecord must be persisted before ingestion is considered durable:
// losing it makes the redaction permanently irreversible.
type TokenRecord struct {
	Type       PIIType
	RawValue   string
	CipherText string
	Token      string
}

// Decision is the outcome class of a policy evaluation.
type Decision string

const (
	DecisionAllow Decision = "allow"
	DecisionMask  Decision = "mask"
	DecisionBlock Decision = "block"
)

// PolicyContext carries the inputs that produced a decision, for replay and audit.
type PolicyContext struct {
	Visibility     Visibility
	Classification Classification
	PIISummary     PIISummary
}

// PolicyDecision is the derived outcome of evaluating tenant policy against
// PII findings and document metadata. It is a pure function of its inputs:
// identical findings and metadata always produce an identical decision.
type PolicyDecision struct {
	Rule     string
	Decision Decision
	Reason   string
	Context  PolicyContext
}

// Blocked reports whether the decision rejects the document outright.
func (d PolicyDecision) Blocked() bool {
	return d.Decision == DecisionBlock
}

// Classification is the sensitivity tier of a document.
type Classification string

const (
	ClassificationPublic       Classification = "Public"
	ClassificationInternal     Classification = "Internal"
	ClassificationConfidential Classification = "Confidential"
)

// Visibility is the access tier of a document and every chunk derived from it.
type Visibility string

const (
	VisibilityPublic  Visibility = "Public"
	VisibilityShared  Visibility = "Shared"
	VisibilityPrivate Visibility = "Private"
)

// DocumentMetadata describes ownership and access scope of one document.
// It is copied onto every chunk persisted to the vector index; the index
// record alone must be sufficient to reconstruct the access filter that
// permitted retrieving it.
type DocumentMetadata struct {
	TenantID       string
	ProjectID      string
	Department     string
	Source         string
	Classification Classification
	Visibility     Visibility
	OwnerUserID    string
	GroupIDs       []string
}

// DocKey returns the tenant-scoped key under which a document's token
// records are vaulted.
func (m DocumentMetadata) DocKey() string {
	return m.TenantID + "-" + m.ProjectID
}

// Chunk is one bounded segment of a document's (possibly redacted) text.
// Chunks are transient: they are embedded and indexed immediately and not
// retained by the orchestrator afterwards.
type Chunk struct {
	Text     string
	Ordinal  int
	Metadata DocumentMetadata
}

// IndexRecord is the wire-level record written to and read from the vector
// index. Access-control fields are denormalized onto every record.
type IndexRecord struct {
	ID             string
	Content        string
	Source         string
	Tenant         string
	Department     string
	ProjectID      string
	Classification Classification
	Visibility     Visibility
	OwnerUserID    string
	GroupIDs       []string
	Vector         []float32
}

// SearchHit is one retrieved record with its relevance score.
// Hits are ordered by descending score.
type SearchHit struct {
	Record *IndexRecord
	Score  float32
}

// AccessFilter is the query-time eligibility predicate pushed down into the
// vector index. A record is eligible iff it belongs to the caller's tenant
// and project and the caller clears its visibility tier.
type AccessFilter struct {
	Tenant    string
	ProjectID string
	UserID    string
	GroupIDs  []string
}

// Matches reports whether the record is visible to the filter's caller.
func (f AccessFilter) Matches(r *IndexRecord) bool {
	if r == nil || r.Tenant != f.Tenant || r.ProjectID != f.ProjectID {
		return false
	}
	switch r.Visibility {
	case VisibilityPublic:
		return true
	case VisibilityShared:
		for _, g := range f.GroupIDs {
			if slices.Contains(r.GroupIDs, g) {
				return true
			}
		}
		return false
	case VisibilityPrivate:
		return r.OwnerUserID != "" && r.OwnerUserID == f.UserID
	default:
		return false
	}
}

// ShortID derives a deterministic, collision-resistant short identifier from
// raw content using BLAKE2b hashing. The same input always produces the same
// ID, which makes re-ingestion overwrite rather than duplicate.
func ShortID(raw string) string {
	h, _ := blake2b.New(12, nil)
	h.Write([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// ChunkID derives the index record ID for one chunk. The content hash keeps
// IDs from colliding across documents sharing a doc key, while re-ingesting
// the same document overwrites its previous records.
func ChunkID(docKey string, ordinal int, content string) string {
	return ShortID(fmt.Sprintf("%s-%d-%s", docKey, ordinal, content))
}
