package pseudo

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"

	"github.com/go-crypt/x/blake2b"
	"github.com/poiesic/sanctum/core"
)

const (
	nonceSize = 12
	// tokenPrefixLen is the number of ciphertext characters embedded in the
	// placeholder token. The prefix covers the random nonce, so two tokens
	// for identical values still differ. The full ciphertext lives only in
	// the TokenRecord.
	tokenPrefixLen = 12
)

// Pseudonymizer converts entity spans into reversible opaque tokens and
// exposes the underlying encryption primitive for standalone use.
type Pseudonymizer interface {
	// Tokenize replaces every entity span in text with an opaque token and
	// returns the masked text plus one TokenRecord per entity, in ascending
	// start order. If entities is empty, text is returned unchanged with no
	// records and no encryption overhead.
	Tokenize(text string, entities []core.PIIEntity) (string, []core.TokenRecord, error)

	// Encrypt encrypts a single value with the same primitive used by
	// Tokenize, for values that need independent encryption (audit-log PII
	// summaries and the like).
	Encrypt(value string) (string, error)
}

// Cipher is the AES-256-GCM backed Pseudonymizer. The key is derived from an
// operator secret by a one-way BLAKE2b hash; the secret itself is never
// retained. Cipher is immutable after construction and safe for concurrent
// use.
type Cipher struct {
	aead cipher.AEAD
}

var _ Pseudonymizer = (*Cipher)(nil)

// NewCipher derives the process-wide symmetric key from secret and prepares
// the AEAD. An empty secret is refused.
func NewCipher(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	h, err := blake2b.New(32, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrEncryptionFailure, err)
	}
	h.Write([]byte(secret))
	key := h.Sum(nil)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrEncryptionFailure, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrEncryptionFailure, err)
	}

	return &Cipher{aead: aead}, nil
}

// Tokenize implements Pseudonymizer. Substitution runs highest-start-first
// so earlier offsets stay valid while later spans are replaced; the returned
// records are re-sorted into ascending start order for stable audit logging.
func (c *Cipher) Tokenize(text string, entities []core.PIIEntity) (string, []core.TokenRecord, error) {
	if len(entities) == 0 {
		return text, []core.TokenRecord{}, nil
	}

	ordered := make([]core.PIIEntity, len(entities))
	copy(ordered, entities)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start > ordered[j].Start
	})

	masked := text
	records := make([]core.TokenRecord, 0, len(ordered))
	for _, e := range ordered {
		cipherText, err := c.Encrypt(e.Value)
		if err != nil {
			return "", nil, err
		}

		token := formatToken(e.Type, cipherText)
		masked = masked[:e.Start] + token + masked[e.End:]

		records = append(records, core.TokenRecord{
			Type:       e.Type,
			RawValue:   e.Value,
			CipherText: cipherText,
			Token:      token,
		})
	}

	// Substitution order was descending; report ascending.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	return masked, records, nil
}

// Encrypt implements Pseudonymizer. The result is base64(nonce‖ciphertext)
// with a fresh random nonce per call.
func (c *Cipher) Encrypt(value string) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrEncryptionFailure, err)
	}

	sealed := c.aead.Seal(nil, nonce, []byte(value), nil)
	return base64.RawURLEncoding.EncodeToString(append(nonce, sealed...)), nil
}

// Decrypt reverses Encrypt. It fails if the ciphertext was not produced
// under this cipher's key or has been tampered with.
func (c *Cipher) Decrypt(cipherText string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cipherText)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedCipherText, err)
	}
	if len(raw) < nonceSize {
		return "", ErrMalformedCipherText
	}

	plain, err := c.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrEncryptionFailure, err)
	}
	return string(plain), nil
}

// Detokenize replaces each record's token in masked text with its decrypted
// original value, reconstructing the pre-redaction text.
func (c *Cipher) Detokenize(masked string, records []core.TokenRecord) (string, error) {
	restored := masked
	for _, r := range records {
		value, err := c.Decrypt(r.CipherText)
		if err != nil {
			return "", err
		}
		if !strings.Contains(restored, r.Token) {
			return "", fmt.Errorf("%w: %s", ErrTokenNotFound, r.Token)
		}
		restored = strings.Replace(restored, r.Token, value, 1)
	}
	return restored, nil
}

// formatToken builds the human-inert placeholder embedded in masked text.
func formatToken(piiType core.PIIType, cipherText string) string {
	prefix := cipherText
	if len(prefix) > tokenPrefixLen {
		prefix = prefix[:tokenPrefixLen]
	}
	return fmt.Sprintf("[[P:%s:%s]]", piiType, prefix)
}
