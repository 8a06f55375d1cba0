// Package mock provides test double implementations of AI service interfaces.
//
// The mocks allow tests to run without external AI services and enable
// controlled, deterministic behavior: the default embedder derives a stable
// unit vector from an FNV hash of the input text, and the default
// synthesizer returns a canned answer while recording the prompts it was
// given.
//
//	mockProvider := mock.NewMockProvider()
//	vec, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	embedder := mock.NewMockEmbedder()
//	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
//	    return nil, errors.New("provider down")
//	}
package mock
