package storage

import (
	"bytes"
	"testing"

	"github.com/poiesic/sanctum/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalIndexRecord(t *testing.T) {
	tests := []struct {
		name   string
		record *core.IndexRecord
	}{
		{
			name: "minimal record",
			record: &core.IndexRecord{
				ID:      "r1",
				Content: "hello",
				Tenant:  "acme",
			},
		},
		{
			name: "record with vector and groups",
			record: &core.IndexRecord{
				ID:             "r2",
				Content:        "quarterly forecast",
				Source:         "Wiki",
				Tenant:         "acme",
				Department:     "finance",
				ProjectID:      "kb",
				Classification: core.ClassificationConfidential,
				Visibility:     core.VisibilityShared,
				OwnerUserID:    "u1",
				GroupIDs:       []string{"finance", "leadership"},
				Vector:         []float32{0.1, 0.2, 0.3, 0.4, 0.5},
			},
		},
		{
			name: "unicode content",
			record: &core.IndexRecord{
				ID:      "r3",
				Content: "Hello 世界 🌍 émojis",
				Tenant:  "acme",
			},
		},
		{
			name: "embedding-sized vector",
			record: &core.IndexRecord{
				ID:      "r4",
				Content: "long vector",
				Tenant:  "acme",
				Vector:  make([]float32, 1536),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalIndexRecord(tt.record)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalIndexRecord(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			assert.Equal(t, tt.record.ID, decoded.ID)
			assert.Equal(t, tt.record.Content, decoded.Content)
			assert.Equal(t, tt.record.Source, decoded.Source)
			assert.Equal(t, tt.record.Tenant, decoded.Tenant)
			assert.Equal(t, tt.record.Department, decoded.Department)
			assert.Equal(t, tt.record.ProjectID, decoded.ProjectID)
			assert.Equal(t, tt.record.Classification, decoded.Classification)
			assert.Equal(t, tt.record.Visibility, decoded.Visibility)
			assert.Equal(t, tt.record.OwnerUserID, decoded.OwnerUserID)
			// nil vs empty slice
			if len(tt.record.GroupIDs) == 0 {
				assert.Empty(t, decoded.GroupIDs)
			} else {
				assert.Equal(t, tt.record.GroupIDs, decoded.GroupIDs)
			}
			if len(tt.record.Vector) == 0 {
				assert.Empty(t, decoded.Vector)
			} else {
				assert.Equal(t, tt.record.Vector, decoded.Vector)
			}
		})
	}
}

func TestUnmarshalIndexRecord_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"invalid data", []byte{0xFF, 0xFF, 0xFF}},
		{"partial data", []byte{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalIndexRecord(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestMarshalUnmarshalTokenRecord(t *testing.T) {
	tests := []struct {
		name   string
		record *core.TokenRecord
	}{
		{
			name: "email token",
			record: &core.TokenRecord{
				Type:       core.PIITypeEmail,
				CipherText: "b64ciphertext==",
				Token:      "[[P:email:b64cipherte]]",
			},
		},
		{
			name: "phone token",
			record: &core.TokenRecord{
				Type:       core.PIITypePhone,
				CipherText: "anothercipher",
				Token:      "[[P:phone:anothercip]]",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalTokenRecord(tt.record)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalTokenRecord(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			assert.Equal(t, tt.record.Type, decoded.Type)
			assert.Equal(t, tt.record.CipherText, decoded.CipherText)
			assert.Equal(t, tt.record.Token, decoded.Token)
			assert.Empty(t, decoded.RawValue)
		})
	}
}

// The raw value must never appear in the encoded bytes, even when the
// in-memory record still carries it.
func TestMarshalTokenRecordOmitsRawValue(t *testing.T) {
	record := &core.TokenRecord{
		Type:       core.PIITypeEmail,
		RawValue:   "jane.doe@acme.example",
		CipherText: "ciphertextonly",
		Token:      "[[P:email:ciphertext]]",
	}

	data := MarshalTokenRecord(record)
	require.NotEmpty(t, data)
	assert.False(t, bytes.Contains(data, []byte(record.RawValue)))

	decoded, err := UnmarshalTokenRecord(data)
	require.NoError(t, err)
	assert.Empty(t, decoded.RawValue)
	assert.Equal(t, record.CipherText, decoded.CipherText)
}

func TestUnmarshalTokenRecord_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"invalid data", []byte{0xFF, 0xFF, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalTokenRecord(tt.data)
			assert.Error(t, err)
		})
	}
}
