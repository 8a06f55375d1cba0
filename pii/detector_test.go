package pii

import (
	"sort"
	"testing"

	"github.com/poiesic/sanctum/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexDetector_EmailAndPhone(t *testing.T) {
	d := NewRegexDetector()

	text := "Contact jane@co.com or 555-123-4567"
	entities := d.Detect(text)

	require.Len(t, entities, 2)

	assert.Equal(t, core.PIITypeEmail, entities[0].Type)
	assert.Equal(t, "jane@co.com", entities[0].Value)
	assert.Equal(t, "jane@co.com", text[entities[0].Start:entities[0].End])

	assert.Equal(t, core.PIITypePhone, entities[1].Type)
	assert.Equal(t, "555-123-4567", entities[1].Value)
	assert.Equal(t, "555-123-4567", text[entities[1].Start:entities[1].End])
}

func TestRegexDetector_NoFindings(t *testing.T) {
	d := NewRegexDetector()

	entities := d.Detect("Nothing sensitive in this sentence.")
	assert.Empty(t, entities)
}

func TestRegexDetector_SSNAndCreditCard(t *testing.T) {
	d := NewRegexDetector()

	entities := d.Detect("SSN 123-45-6789 and card 4111 1111 1111 1111 on file.")

	require.Len(t, entities, 2)
	assert.Equal(t, core.PIITypeSSN, entities[0].Type)
	assert.Equal(t, "123-45-6789", entities[0].Value)
	assert.Equal(t, core.PIITypeCreditCard, entities[1].Type)
	assert.Equal(t, "4111 1111 1111 1111", entities[1].Value)
}

func TestRegexDetector_IPAddress(t *testing.T) {
	d := NewRegexDetector()

	entities := d.Detect("Request came from 192.168.0.12 last night.")

	require.Len(t, entities, 1)
	assert.Equal(t, core.PIITypeIP, entities[0].Type)
	assert.Equal(t, "192.168.0.12", entities[0].Value)
}

func TestRegexDetector_OverlapPrecedence(t *testing.T) {
	d := NewRegexDetector()

	// The digits in the mailbox part are phone-like; the email claim must win
	// and no phone entity may overlap it.
	text := "mail 5551234567@example.com please"
	entities := d.Detect(text)

	require.NotEmpty(t, entities)
	assert.Equal(t, core.PIITypeEmail, entities[0].Type)
	for i, a := range entities {
		for _, b := range entities[i+1:] {
			assert.False(t, a.Start < b.End && b.Start < a.End,
				"entities %v and %v overlap", a, b)
		}
	}
}

func TestRegexDetector_StableOrder(t *testing.T) {
	d := NewRegexDetector()

	text := "a@b.com then 10.0.0.1 then c@d.org then 555-123-4567"
	entities := d.Detect(text)

	require.Len(t, entities, 4)
	assert.True(t, sort.SliceIsSorted(entities, func(i, j int) bool {
		return entities[i].Start < entities[j].Start
	}))

	// A second pass over the same text returns the identical result.
	again := d.Detect(text)
	assert.Equal(t, entities, again)
}
