package pipeline

// Stage names accepted by the config. Unknown names fall back to the stage
// default rather than failing, so a stale project config still produces a
// working pipeline.
const (
	ChunkerParagraph = "paragraph"
	ChunkerRecursive = "recursive"
	ChunkerSemantic  = "semantic"

	RerankerCosine = "cosine"
	RerankerNone   = "none"
)

// Config selects the strategy for each pipeline stage and carries the
// chunking parameters. The zero value of every field means "use the default".
type Config struct {
	Chunker       string `yaml:"chunker"`
	Embedder      string `yaml:"embedder"`
	VectorStore   string `yaml:"vector_store"`
	PIIDetector   string `yaml:"pii_detector"`
	Pseudonymizer string `yaml:"pseudonymizer"`
	Governance    string `yaml:"governance"`
	Reranker      string `yaml:"reranker"`
	LLM           string `yaml:"llm"`

	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
	TopK         int `yaml:"top_k"`
}

// Defaults for chunking and retrieval.
const (
	DefaultChunkSize    = 800
	DefaultChunkOverlap = 100
	DefaultTopK         = 5
)

// DefaultConfig returns the configuration used when a project selects
// nothing: paragraph chunking, cosine reranking, 800-token chunks with a
// 100-token overlap.
func DefaultConfig() Config {
	return Config{
		Chunker:      ChunkerParagraph,
		Reranker:     RerankerCosine,
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
		TopK:         DefaultTopK,
	}
}

// Normalize fills zero-valued fields with their defaults.
func (c *Config) Normalize() {
	if c.Chunker == "" {
		c.Chunker = ChunkerParagraph
	}
	if c.Reranker == "" {
		c.Reranker = RerankerCosine
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.ChunkOverlap <= 0 {
		c.ChunkOverlap = DefaultChunkOverlap
	}
	if c.TopK <= 0 {
		c.TopK = DefaultTopK
	}
}
