package credstore

import "errors"

var (
	// ErrInvalidKey indicates the encryption key is not 32 bytes.
	ErrInvalidKey = errors.New("credstore.invalid_encryption_key")

	// ErrEncryptionFailed indicates the credential could not be sealed.
	ErrEncryptionFailed = errors.New("credstore.encryption_failed")

	// ErrDecryptionFailed indicates the stored credential could not be
	// opened, usually because the file was tampered with or the key changed.
	ErrDecryptionFailed = errors.New("credstore.decryption_failed")

	// ErrUnavailable indicates the backing store could not be reached.
	ErrUnavailable = errors.New("credstore.unavailable")
)
