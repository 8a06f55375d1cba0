package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/sanctum/ai"
	"github.com/poiesic/sanctum/chunk"
	"github.com/poiesic/sanctum/core"
	"github.com/poiesic/sanctum/pii"
	"github.com/poiesic/sanctum/policy"
	"github.com/poiesic/sanctum/rerank"
	"github.com/poiesic/sanctum/storage"
)

// NoRelevantContent is the fixed answer returned when retrieval finds no
// eligible records. Callers can rely on this exact string; the synthesizer
// is never invoked for it.
const NoRelevantContent = "No relevant content found."

// answerContextLimit caps how many retrieved chunks are handed to the
// synthesizer as context. Citations in the answer index into this window.
const answerContextLimit = 5

const answerSystemPrompt = "You are an enterprise assistant. " +
	"Use ONLY the provided context. If not present, say you don't know. " +
	"Cite sources like [1],[2]."

// Pseudonymizer is the slice of the pseudo package the runtime needs:
// masking on ingestion and decryption on reveal.
type Pseudonymizer interface {
	Tokenize(text string, entities []core.PIIEntity) (string, []core.TokenRecord, error)
	Decrypt(cipherText string) (string, error)
}

// IngestResult reports the outcome of a single document ingestion. A blocked
// document and an empty document both index zero chunks; Decision tells them
// apart.
type IngestResult struct {
	ChunksIndexed int
	Decision      core.PolicyDecision
}

// Blocked reports whether governance refused the document.
func (r *IngestResult) Blocked() bool {
	return r.Decision.Blocked()
}

// AnswerResult carries a synthesized answer and the retrieved chunks it was
// grounded on, in the order the citation numbers refer to.
type AnswerResult struct {
	Answer  string
	Sources []core.SearchHit
}

// Runtime orchestrates the two pipelines: detect -> govern -> mask -> chunk
// -> embed -> index on ingestion, and embed -> filtered search -> rerank ->
// synthesize on answering.
type Runtime struct {
	index    storage.VectorIndex
	vault    storage.TokenVault
	provider ai.Provider
	pseudo   Pseudonymizer
	detector pii.Detector
	engine   *policy.Engine
	chunker  chunk.Strategy
	reranker rerank.Reranker
	config   Config

	maxRetries     int
	retryBaseDelay time.Duration
	logger         *slog.Logger
}

// Option configures a Runtime.
type Option func(*Runtime) error

// WithConfig sets the pipeline configuration.
// Zero-valued fields are filled with defaults.
func WithConfig(config Config) Option {
	return func(r *Runtime) error {
		config.Normalize()
		r.config = config
		return nil
	}
}

// WithDetector sets a custom PII detector.
// Default is the regex detector.
func WithDetector(detector pii.Detector) Option {
	return func(r *Runtime) error {
		if detector != nil {
			r.detector = detector
		}
		return nil
	}
}

// WithEngine sets a custom governance engine.
// Default is an engine with no extra rules and lenient public handling.
func WithEngine(engine *policy.Engine) Option {
	return func(r *Runtime) error {
		if engine != nil {
			r.engine = engine
		}
		return nil
	}
}

// WithRetry sets the retry policy for embedding and synthesis calls.
// Default is 3 attempts with a 500ms base delay.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(r *Runtime) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		r.maxRetries = maxAttempts
		r.retryBaseDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRuntime creates a new pipeline runtime. The chunker and reranker are
// resolved from the configuration after all options are applied.
func NewRuntime(
	index storage.VectorIndex,
	vault storage.TokenVault,
	provider ai.Provider,
	pseudonymizer Pseudonymizer,
	opts ...Option,
) (*Runtime, error) {
	if index == nil {
		return nil, ErrVectorIndexRequired
	}
	if vault == nil {
		return nil, ErrTokenVaultRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}
	if pseudonymizer == nil {
		return nil, ErrPseudonymizerRequired
	}

	r := &Runtime{
		index:          index,
		vault:          vault,
		provider:       provider,
		pseudo:         pseudonymizer,
		detector:       pii.NewRegexDetector(),
		engine:         policy.NewEngine(),
		config:         DefaultConfig(),
		maxRetries:     3,
		retryBaseDelay: 500 * time.Millisecond,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	chunker, err := resolveChunker(r.config.Chunker, provider.Embedder())
	if err != nil {
		return nil, err
	}
	r.chunker = chunker
	r.reranker = resolveReranker(r.config.Reranker)

	return r, nil
}

// Ingest runs one document through detection, governance, masking, chunking,
// embedding and indexing. A blocked document returns a result with zero
// chunks and the blocking decision; it is not an error. Empty or
// whitespace-only text is ErrEmptyDocument, not a zero-chunk result: a
// caller submitting nothing has a bug upstream. Token records are
// vaulted before any chunk reaches the index, so a crash between the two
// writes never strands irreversible tokens.
func (r *Runtime) Ingest(ctx context.Context, text string, meta core.DocumentMetadata) (*IngestResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}
	meta = core.Normalize(meta)
	if err := core.ValidateMetadata(meta); err != nil {
		return nil, err
	}

	findings := r.detector.Detect(text)
	decision := r.engine.Decide(findings, meta)
	result := &IngestResult{Decision: decision}

	if decision.Blocked() {
		r.logger.Info("ingestion blocked by policy",
			"tenant", meta.TenantID, "project", meta.ProjectID,
			"rule", decision.Rule, "reason", decision.Reason)
		return result, nil
	}

	masked := text
	if decision.Decision == core.DecisionMask {
		var records []core.TokenRecord
		var err error
		masked, records, err = r.pseudo.Tokenize(text, findings)
		if err != nil {
			return nil, err
		}
		// Vault before indexing so every token in the index is reversible.
		if err := r.vault.PutTokenRecords(ctx, meta.DocKey(), records); err != nil {
			return nil, err
		}
		r.logger.Info("pii masked",
			"tenant", meta.TenantID, "project", meta.ProjectID,
			"tokens", len(records), "summary", decision.Context.PIISummary)
	}

	chunks, err := r.chunker.Chunk(ctx, masked, r.config.ChunkSize, r.config.ChunkOverlap)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		r.logger.Info("document produced no chunks",
			"tenant", meta.TenantID, "project", meta.ProjectID)
		return result, nil
	}

	var vectors [][]float32
	err = RetryWithBackoff(ctx, r.logger, func() error {
		var embedErr error
		vectors, embedErr = r.provider.Embedder().EmbedTexts(ctx, chunks)
		return embedErr
	}, r.maxRetries, r.retryBaseDelay)
	if err != nil {
		return nil, fmt.Errorf("embedding chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: %d chunks, %d vectors", storage.ErrLengthMismatch, len(chunks), len(vectors))
	}

	docKey := meta.DocKey()
	records := make([]core.IndexRecord, len(chunks))
	for i, content := range chunks {
		records[i] = core.IndexRecord{
			ID:             core.ChunkID(docKey, i, content),
			Content:        content,
			Source:         meta.Source,
			Tenant:         meta.TenantID,
			Department:     meta.Department,
			ProjectID:      meta.ProjectID,
			Classification: meta.Classification,
			Visibility:     meta.Visibility,
			OwnerUserID:    meta.OwnerUserID,
			GroupIDs:       meta.GroupIDs,
			Vector:         vectors[i],
		}
	}

	if err := r.index.AddEmbeddings(ctx, records); err != nil {
		return nil, err
	}

	result.ChunksIndexed = len(records)
	r.logger.Info("ingestion complete",
		"tenant", meta.TenantID, "project", meta.ProjectID, "chunks", len(records))
	return result, nil
}

// Answer embeds the query, retrieves eligible chunks under the caller's
// access filter, reranks them and synthesizes an answer with numbered
// citations. Zero eligible chunks yields the fixed NoRelevantContent answer
// without calling the synthesizer.
func (r *Runtime) Answer(ctx context.Context, query string, filter core.AccessFilter) (*AnswerResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	var queryVector []float32
	err := RetryWithBackoff(ctx, r.logger, func() error {
		var embedErr error
		queryVector, embedErr = r.provider.Embedder().EmbedText(ctx, query)
		return embedErr
	}, r.maxRetries, r.retryBaseDelay)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	hits, err := r.index.Search(ctx, queryVector, r.config.TopK, filter)
	if err != nil {
		return nil, err
	}
	r.logger.Info("vector search complete", "hits", len(hits),
		"tenant", filter.Tenant, "project", filter.ProjectID)

	if len(hits) == 0 {
		return &AnswerResult{Answer: NoRelevantContent, Sources: []core.SearchHit{}}, nil
	}

	hits = r.reranker.Rerank(queryVector, hits)

	top := hits
	if len(top) > answerContextLimit {
		top = top[:answerContextLimit]
	}

	var sb strings.Builder
	for i, hit := range top {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "[%d] %s", i+1, hit.Record.Content)
	}
	userPrompt := fmt.Sprintf("Context:\n%s\n\nQuestion: %s\nAnswer concisely with citations.", sb.String(), query)

	var answer string
	err = RetryWithBackoff(ctx, r.logger, func() error {
		var genErr error
		answer, genErr = r.provider.Synthesizer().Generate(ctx, answerSystemPrompt, userPrompt)
		return genErr
	}, r.maxRetries, r.retryBaseDelay)
	if err != nil {
		return nil, fmt.Errorf("synthesizing answer: %w", err)
	}

	return &AnswerResult{Answer: answer, Sources: top}, nil
}

// Reveal restores the pseudonymized values in masked text using the token
// records vaulted for the document. Tokens with no vaulted record are left
// in place.
func (r *Runtime) Reveal(ctx context.Context, docKey, maskedText string) (string, error) {
	records, err := r.vault.ListTokenRecords(ctx, docKey)
	if err != nil {
		return "", err
	}

	out := maskedText
	for i := range records {
		record := &records[i]
		if !strings.Contains(out, record.Token) {
			continue
		}
		raw, err := r.pseudo.Decrypt(record.CipherText)
		if err != nil {
			return "", err
		}
		out = strings.ReplaceAll(out, record.Token, raw)
	}
	return out, nil
}
