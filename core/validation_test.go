package core

import (
	"errors"
	"testing"
)

func TestValidateMetadata(t *testing.T) {
	tests := []struct {
		name    string
		meta    DocumentMetadata
		wantErr error
	}{
		{
			name: "valid metadata",
			meta: DocumentMetadata{
				TenantID:       "acme",
				ProjectID:      "proj1",
				Classification: ClassificationInternal,
				Visibility:     VisibilityShared,
				OwnerUserID:    "u1",
			},
			wantErr: nil,
		},
		{
			name: "valid metadata with empty tiers defaults",
			meta: DocumentMetadata{
				TenantID:  "acme",
				ProjectID: "proj1",
			},
			wantErr: nil,
		},
		{
			name: "missing tenant",
			meta: DocumentMetadata{
				ProjectID: "proj1",
			},
			wantErr: ErrEmptyTenant,
		},
		{
			name: "missing project",
			meta: DocumentMetadata{
				TenantID: "acme",
			},
			wantErr: ErrEmptyProject,
		},
		{
			name: "tenant with key separator",
			meta: DocumentMetadata{
				TenantID:  "acme:corp",
				ProjectID: "proj1",
			},
			wantErr: ErrReservedIDCharacter,
		},
		{
			name: "project with key separator",
			meta: DocumentMetadata{
				TenantID:  "acme",
				ProjectID: "proj:1",
			},
			wantErr: ErrReservedIDCharacter,
		},
		{
			name: "unknown classification",
			meta: DocumentMetadata{
				TenantID:       "acme",
				ProjectID:      "proj1",
				Classification: "TopSecret",
			},
			wantErr: ErrInvalidClassification,
		},
		{
			name: "unknown visibility",
			meta: DocumentMetadata{
				TenantID:   "acme",
				ProjectID:  "proj1",
				Visibility: "Hidden",
			},
			wantErr: ErrInvalidVisibility,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMetadata(tt.meta)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateMetadata() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateMetadata() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidMetadata) {
				t.Errorf("ValidateMetadata() error = %v, not wrapped in ErrInvalidMetadata", err)
			}
		})
	}
}

func TestParseVisibility(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Visibility
		wantErr bool
	}{
		{name: "public", input: "Public", want: VisibilityPublic},
		{name: "shared", input: "Shared", want: VisibilityShared},
		{name: "private", input: "Private", want: VisibilityPrivate},
		{name: "empty defaults to shared", input: "", want: VisibilityShared},
		{name: "unknown", input: "hidden", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVisibility(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseVisibility(%q) error = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("ParseVisibility(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseVisibility(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseClassification(t *testing.T) {
	if _, err := ParseClassification("Confidential"); err != nil {
		t.Errorf("ParseClassification(Confidential) error = %v", err)
	}
	if got, err := ParseClassification(""); err != nil || got != ClassificationInternal {
		t.Errorf("ParseClassification(\"\") = %v, %v; want Internal, nil", got, err)
	}
	if _, err := ParseClassification("Secret"); !errors.Is(err, ErrInvalidClassification) {
		t.Errorf("ParseClassification(Secret) error = %v, want ErrInvalidClassification", err)
	}
}

func TestNormalize(t *testing.T) {
	m := Normalize(DocumentMetadata{TenantID: "acme", ProjectID: "proj1"})
	if m.Classification != ClassificationInternal {
		t.Errorf("Normalize() classification = %v, want Internal", m.Classification)
	}
	if m.Visibility != VisibilityShared {
		t.Errorf("Normalize() visibility = %v, want Shared", m.Visibility)
	}
	if m.Source != "Upload" {
		t.Errorf("Normalize() source = %v, want Upload", m.Source)
	}
}
