// Package encrypter seals short secrets with AES-GCM and hashes service keys
// with bcrypt.
package encrypter

// Encrypter is safe for concurrent use. The service itself only calls
// Decrypt and CheckPasswordHash; Encrypt and HashPassword produce the
// X-Service-Key value and the configured hash for a calling service.
type Encrypter interface {
	// Encrypt returns base64(nonce || ciphertext).
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
	HashPassword(password string) (string, error)
	CheckPasswordHash(password, hash string) bool
}

// New builds the AES-GCM cipher for key, which must be 16, 24 or 32 bytes.
func New(key string) (Encrypter, error) {
	aead, err := newAEAD([]byte(key))
	if err != nil {
		return nil, err
	}
	return &implEncrypter{aead: aead, cost: bcryptCost}, nil
}
