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


package pipeline

import "errors"

var (
	// ErrVectorIndexRequired is returned when no vector index is provided.
	ErrVectorIndexRequired = errors.New("vector index is required")

	// ErrTokenVaultRequired is returned when no token vault is provided.
	ErrTokenVaultRequired = errors.New("token vault is required")

	// ErrProviderRequired is returned when no AI provider is provided.
	ErrProviderRequired = errors.New("ai provider is required")

	// ErrPseudonymizerRequired is returned when no pseudonymizer is provided.
	ErrPseudonymizerRequired = errors.New("pseudonymizer is required")

	// ErrRuntimeRequired is returned when no runtime is provided.
	ErrRuntimeRequired = errors.New("runtime is required")

	// ErrEmptyDocument is returned when an empty document is submitted for ingestion.
	ErrEmptyDocument = errors.New("document text is empty")

	// ErrEmptyQuery is returned when an empty query is submitted for answering.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrInvalidMaxAttempts is returned when retry is configured with a
	// non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than zero")
)
