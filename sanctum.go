// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package sanctum

import (
	"log/slog"

	"github.com/poiesic/sanctum/ai"
	"github.com/poiesic/sanctum/ai/openai"
	"github.com/poiesic/sanctum/pipeline"
	"github.com/poiesic/sanctum/pseudo"
	"github.com/poiesic/sanctum/storage"
	"github.com/poiesic/sanctum/storage/badger"
)

// KnowledgeBase bundles the storage backend, AI provider and cipher behind
// one handle. It is the embedding-friendly entry point; the CLI wires the
// same pieces by hand.
type KnowledgeBase struct {
	backend  *badger.Backend
	index    storage.VectorIndex
	vault    storage.TokenVault
	provider ai.Provider
	cipher   *pseudo.Cipher
	logger   *slog.Logger
}

// Option configures a KnowledgeBase.
type Option func(*kbOptions)

type kbOptions struct {
	aiConfig *ai.Config
	inMemory bool
}

// WithAIConfig sets the AI provider configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) Option {
	return func(o *kbOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithInMemory opens the backing store in memory, discarding everything on
// Close. Intended for tests and demos.
func WithInMemory() Option {
	return func(o *kbOptions) {
		o.inMemory = true
	}
}

// Open opens (or creates) a knowledge base at filePath. The secret derives
// the key that encrypts pseudonymized values; opening with a different
// secret makes previously vaulted values undecryptable but does not corrupt
// them.
func Open(filePath, secret string, opts ...Option) (*KnowledgeBase, error) {
	options := &kbOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	cipher, err := pseudo.NewCipher(secret)
	if err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &KnowledgeBase{
		backend:  backend,
		index:    badger.NewVectorIndex(backend),
		vault:    badger.NewTokenVault(backend),
		provider: provider,
		cipher:   cipher,
		logger:   slog.Default(),
	}, nil
}

// Close releases the AI provider and the storage backend.
func (kb *KnowledgeBase) Close() error {
	if err := kb.provider.Close(); err != nil {
		kb.logger.Error("error closing AI provider", "err", err)
	}
	if err := kb.backend.Close(); err != nil {
		kb.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// VectorIndex returns the chunk index.
func (kb *KnowledgeBase) VectorIndex() storage.VectorIndex {
	return kb.index
}

// TokenVault returns the pseudonymization token vault.
func (kb *KnowledgeBase) TokenVault() storage.TokenVault {
	return kb.vault
}

// Cipher returns the pseudonymization cipher.
func (kb *KnowledgeBase) Cipher() *pseudo.Cipher {
	return kb.cipher
}

// NewRuntime creates a pipeline runtime over this knowledge base.
func (kb *KnowledgeBase) NewRuntime(opts ...pipeline.Option) (*pipeline.Runtime, error) {
	return pipeline.NewRuntime(kb.index, kb.vault, kb.provider, kb.cipher, opts...)
}

// NewBatchIngestor creates a concurrent ingestor over this knowledge base.
func (kb *KnowledgeBase) NewBatchIngestor(poolSize int, opts ...pipeline.Option) (*pipeline.BatchIngestor, error) {
	rt, err := kb.NewRuntime(opts...)
	if err != nil {
		return nil, err
	}
	return pipeline.NewBatchIngestor(rt, poolSize)
}
