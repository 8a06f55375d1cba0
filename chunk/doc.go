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


// Package chunk splits document text into bounded, overlapping segments for
// embedding and indexing.
//
// Three strategies are provided, increasing in cost and quality:
//
//   - Paragraph: packs blank-line-separated paragraphs up to the size limit
//   - Recursive: splits headings, then paragraphs, then sentences, and packs
//     sentences greedily; the overlap carry resets at heading boundaries
//   - Semantic: embeds paragraphs and merges adjacent ones while they stay
//     similar enough and small enough; requires an Embedder
//
// Sizes and overlaps are measured in whitespace-delimited tokens. Overlap is
// a percentage of the emitted chunk's trailing tokens repeated at the start
// of the next chunk to preserve context across boundaries.
package chunk
