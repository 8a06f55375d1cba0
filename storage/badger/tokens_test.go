package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/sanctum/core"
	"github.com/poiesic/sanctum/storage"
)

func TestTokenVaultBasics(t *testing.T) {
	_, vault, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()

	records := []core.TokenRecord{
		{Type: core.PIITypeEmail, RawValue: "jane@co.com", CipherText: "abc123", Token: "[[P:email:abc123def456]]"},
		{Type: core.PIITypePhone, RawValue: "555-123-4567", CipherText: "xyz789", Token: "[[P:phone:xyz789ghi012]]"},
	}

	if err := vault.PutTokenRecords(ctx, "acme-kb", records); err != nil {
		t.Fatalf("Failed to put token records: %v", err)
	}

	got, err := vault.GetTokenRecord(ctx, "acme-kb", "[[P:email:abc123def456]]")
	if err != nil {
		t.Fatalf("Failed to get token record: %v", err)
	}
	if got.Type != core.PIITypeEmail {
		t.Fatalf("Expected email type, got %s", got.Type)
	}
	if got.CipherText != "abc123" {
		t.Fatalf("Expected ciphertext preserved, got %q", got.CipherText)
	}
	// Raw values must not survive storage
	if got.RawValue != "" {
		t.Fatalf("Raw value leaked into storage: %q", got.RawValue)
	}
}

func TestTokenVaultNotFound(t *testing.T) {
	_, vault, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer backend.Close()

	_, err = vault.GetTokenRecord(context.Background(), "acme-kb", "[[P:email:missing]]")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestTokenVaultListScoped(t *testing.T) {
	_, vault, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()

	err = vault.PutTokenRecords(ctx, "acme-kb", []core.TokenRecord{
		{Type: core.PIITypeEmail, CipherText: "c1", Token: "[[P:email:tok1]]"},
		{Type: core.PIITypePhone, CipherText: "c2", Token: "[[P:phone:tok2]]"},
	})
	if err != nil {
		t.Fatalf("Failed to put token records: %v", err)
	}
	err = vault.PutTokenRecords(ctx, "globex-kb", []core.TokenRecord{
		{Type: core.PIITypeEmail, CipherText: "c3", Token: "[[P:email:tok3]]"},
	})
	if err != nil {
		t.Fatalf("Failed to put token records: %v", err)
	}

	records, err := vault.ListTokenRecords(ctx, "acme-kb")
	if err != nil {
		t.Fatalf("Failed to list token records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records for acme-kb, got %d", len(records))
	}
	for _, r := range records {
		if r.Token == "[[P:email:tok3]]" {
			t.Fatal("Record from another document leaked into listing")
		}
	}
}

func TestTokenVaultEmptyPut(t *testing.T) {
	_, vault, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer backend.Close()

	if err := vault.PutTokenRecords(context.Background(), "acme-kb", nil); err != nil {
		t.Fatalf("Putting no records should succeed: %v", err)
	}
}
