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


// Package policy decides how documents with detected PII are treated before
// any data is persisted or indexed.
//
// An Engine composes ordered named rules (classification allow-lists,
// ownership requirements, tenant-specific checks) with a built-in PII rule:
// no findings allow the document, findings on a Public document under a
// strict-public policy block it, and all other findings mask it through the
// pseudonymizer. Evaluation is first-blocking-rule-wins and fully
// deterministic, so decisions can be replayed for audit.
package policy
