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

import (
	"fmt"
	"strings"
)

// ValidateMetadata validates DocumentMetadata according to domain rules.
//
// Validation rules:
//   - TenantID and ProjectID must not be empty and must not contain ':'
//     (the storage key separator; an unescaped ':' would fragment the
//     scoped key range)
//   - Classification must be one of the known tiers
//   - Visibility must be one of the known tiers
//
// NOT validated (caller-supplied, optional):
//   - Department, Source (free-form)
//   - OwnerUserID, GroupIDs (ownership rules are policy, not validation)
func ValidateMetadata(m DocumentMetadata) error {
	if m.TenantID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMetadata, ErrEmptyTenant)
	}
	if m.ProjectID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMetadata, ErrEmptyProject)
	}
	if strings.Contains(m.TenantID, ":") {
		return fmt.Errorf("%w: tenant %w", ErrInvalidMetadata, ErrReservedIDCharacter)
	}
	if strings.Contains(m.ProjectID, ":") {
		return fmt.Errorf("%w: project %w", ErrInvalidMetadata, ErrReservedIDCharacter)
	}
	if _, err := ParseClassification(string(m.Classification)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMetadata, err)
	}
	if _, err := ParseVisibility(string(m.Visibility)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMetadata, err)
	}
	return nil
}

// ParseClassification parses a classification string. The empty string
// defaults to Internal.
func ParseClassification(s string) (Classification, error) {
	switch Classification(s) {
	case ClassificationPublic, ClassificationInternal, ClassificationConfidential:
		return Classification(s), nil
	case "":
		return ClassificationInternal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidClassification, s)
	}
}

// ParseVisibility parses a visibility string. The empty string defaults
// to Shared.
func ParseVisibility(s string) (Visibility, error) {
	switch Visibility(s) {
	case VisibilityPublic, VisibilityShared, VisibilityPrivate:
		return Visibility(s), nil
	case "":
		return VisibilityShared, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidVisibility, s)
	}
}

// Normalize fills defaulted metadata fields in place and returns the result.
// Unknown classification or visibility values are left for ValidateMetadata
// to reject.
func Normalize(m DocumentMetadata) DocumentMetadata {
	if m.Classification == "" {
		m.Classification = ClassificationInternal
	}
	if m.Visibility == "" {
		m.Visibility = VisibilityShared
	}
	if m.Source == "" {
		m.Source = "Upload"
	}
	return m
}
