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


// Package pseudo implements reversible pseudonymization of detected PII.
//
// Detected entity spans are replaced with short opaque tokens; the original
// values are AES-256-GCM encrypted under a key derived from an operator
// secret by a one-way BLAKE2b hash. The ciphertext is retained in a
// TokenRecord, which is the only path back to the original value. The token
// itself embeds the entity type and a truncated ciphertext prefix for
// brevity; truncation is a readability trade-off, not a security boundary.
//
// Encryption failure aborts the whole tokenize call. Raw PII is never
// allowed to pass through on a cipher error.
package pseudo
