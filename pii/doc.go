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


// Package pii detects personally identifiable information in free text.
//
// The package defines the Detector capability interface and a baseline
// pattern-based implementation. Detection is a pure function of the input
// text; the baseline detector makes no network calls, though the interface
// permits ML-backed implementations that do.
//
// # Overlap resolution
//
// A single detector pass never returns overlapping spans. When patterns of
// different types match overlapping regions (an email address contains
// phone-like digit runs, an SSN looks like a phone fragment), the detector
// resolves precedence locally: email > ssn > credit_card > ip > phone.
// The earlier, higher-precedence match wins and the overlapped match is
// dropped. Zero-length and adjacent matches of different types are both
// retained.
package pii
