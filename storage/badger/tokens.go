package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/sanctum/core"
	"github.com/poiesic/sanctum/storage"
)

// TokenVault implements storage.TokenVault for BadgerDB.
//
// Token records are keyed by document key plus token string. Raw values never
// reach this layer: the serializer persists only the ciphertext.
type TokenVault struct {
	backend *Backend
}

var _ storage.TokenVault = (*TokenVault)(nil)

// NewTokenVault creates a new TokenVault on the given backend.
func NewTokenVault(backend *Backend) *TokenVault {
	return &TokenVault{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (t *TokenVault) Close() error {
	return nil
}

// PutTokenRecords stores the token records for a document in one transaction.
func (t *TokenVault) PutTokenRecords(ctx context.Context, docKey string, records []core.TokenRecord) error {
	if len(records) == 0 {
		return nil
	}
	if t.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return t.backend.WithTx(func(tx *badger.Txn) error {
		for i := range records {
			record := &records[i]
			key := makeTokenRecordKey(docKey, record.Token)
			value := storage.MarshalTokenRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetTokenRecord retrieves a single token record by document key and token.
// Returns storage.ErrNotFound if no record exists.
func (t *TokenVault) GetTokenRecord(ctx context.Context, docKey, token string) (*core.TokenRecord, error) {
	if t.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var record *core.TokenRecord

	err := t.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeTokenRecordKey(docKey, token))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			record, err = storage.UnmarshalTokenRecord(val)
			return err
		})
	}, false)

	if err != nil {
		return nil, err
	}

	return record, nil
}

// ListTokenRecords returns all token records stored for a document.
func (t *TokenVault) ListTokenRecords(ctx context.Context, docKey string) ([]core.TokenRecord, error) {
	if t.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var records []core.TokenRecord

	err := t.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeTokenScopePrefix(docKey)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				record, err := storage.UnmarshalTokenRecord(val)
				if err != nil {
					return err
				}
				records = append(records, *record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	return records, nil
}
