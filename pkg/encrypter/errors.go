package encrypter

import "errors"

var (
	ErrInvalidKeyLength    = errors.New("encrypter: key must be 16, 24 or 32 bytes")
	ErrMalformedCiphertext = errors.New("encrypter: ciphertext is not base64")
	ErrCiphertextTooShort  = errors.New("encrypter: ciphertext too short")
	ErrDecryptionFailed    = errors.New("encrypter: decryption failed")
)
