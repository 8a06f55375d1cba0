package pseudo

import "errors"

var (
	// ErrEmptySecret is returned when a cipher is constructed without an
	// operator secret.
	ErrEmptySecret = errors.New("pseudonymizer secret required")

	// ErrMalformedCipherText indicates a ciphertext that cannot be decoded.
	ErrMalformedCipherText = errors.New("malformed ciphertext")

	// ErrTokenNotFound indicates a token record whose token does not appear
	// in the masked text being restored.
	ErrTokenNotFound = errors.New("token not found in masked text")
)
