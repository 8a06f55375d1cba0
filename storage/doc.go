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


// Package storage defines the persistence interfaces of the pipeline and
// the binary serialization of stored records.
//
// Two capabilities are defined:
//
//   - VectorIndex: embedded chunks with access-filtered nearest-neighbor
//     search (the filter is evaluated inside the store, never by client-side
//     post-filtering)
//   - TokenVault: durable token records, the only path back from a redaction
//     token to its original value
//
// Records are serialized with the MUS format. The storage/badger subpackage
// provides a BadgerDB-backed implementation of both capabilities; remote
// vector stores plug in behind the same interfaces.
package storage
