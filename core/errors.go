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


package core

import "errors"

// Pipeline error taxonomy. Note that an empty retrieval result is not an
// error: the query pipeline returns a degraded "no relevant content" answer
// instead of surfacing an exception.
var (
	// ErrPolicyBlocked indicates a document was rejected by governance policy.
	// This is a designed outcome, not a bug; it must reach the caller
	// distinguishably and never be silently downgraded.
	ErrPolicyBlocked = errors.New("document blocked by policy")

	// ErrUpstreamUnavailable indicates an external provider (embedding,
	// search, synthesis) failed or timed out. Transient: retrying the whole
	// invocation is safe.
	ErrUpstreamUnavailable = errors.New("upstream provider unavailable")

	// ErrEncryptionFailure indicates the pseudonymizer could not encrypt a
	// detected value. Fatal for that document's ingestion: raw PII is never
	// passed through.
	ErrEncryptionFailure = errors.New("encryption failure")

	// ErrInvalidMetadata indicates document metadata failed validation.
	ErrInvalidMetadata = errors.New("invalid document metadata")

	// ErrEmptyTenant indicates the tenant identifier is missing.
	ErrEmptyTenant = errors.New("tenant id cannot be empty")

	// ErrEmptyProject indicates the project identifier is missing.
	ErrEmptyProject = errors.New("project id cannot be empty")

	// ErrReservedIDCharacter indicates a tenant or project identifier
	// contains ':', which is reserved as the storage key separator.
	ErrReservedIDCharacter = errors.New("id cannot contain ':'")

	// ErrInvalidClassification indicates an unrecognized classification value.
	ErrInvalidClassification = errors.New("invalid classification")

	// ErrInvalidVisibility indicates an unrecognized visibility value.
	ErrInvalidVisibility = errors.New("invalid visibility")
)
