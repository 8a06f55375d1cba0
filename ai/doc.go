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


// Package ai provides abstractions for the AI services used by the pipeline.
//
// This package defines capability interfaces for text embedding and answer
// synthesis. The orchestrator depends only on these interfaces, never on a
// concrete provider, which keeps the core fully testable with fake adapters.
//
//   - Embedder: generates vector embeddings from text
//   - Synthesizer: produces a natural-language answer from prompts
//   - Provider: aggregates both for convenient initialization
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external dependencies
//
// Public constructors in ai/openai return interface types to enforce
// abstraction; mock constructors return concrete types so tests can inject
// behavior and make assertions.
//
// Adapters never retry internally and each call is bounded by the caller's
// context; retry policy belongs to the orchestrator or its caller.
package ai
