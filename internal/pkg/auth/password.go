package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Supported password schemes
const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

// BcryptCost is used when the bcrypt scheme is selected
const BcryptCost = 12

// PasswordHasher produces and checks stored password hashes
type PasswordHasher struct {
	scheme string
}

// NewPasswordHasher returns a hasher for the given scheme; empty means sha256
func NewPasswordHasher(scheme string) (*PasswordHasher, error) {
	scheme = strings.ToLower(strings.TrimSpace(scheme))
	switch scheme {
	case "":
		scheme = SchemeSHA256
	case SchemeSHA256, SchemeBcrypt:
	default:
		return nil, fmt.Errorf("unsupported password scheme %q", scheme)
	}
	return &PasswordHasher{scheme: scheme}, nil
}

// Scheme returns the scheme used for new hashes
func (h *PasswordHasher) Scheme() string {
	return h.scheme
}

// Hash hashes a plain password with the configured scheme
func (h *PasswordHasher) Hash(password string) (string, error) {
	if h.scheme == SchemeBcrypt {
		bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
		if err != nil {
			return "", fmt.Errorf("bcrypt hash: %w", err)
		}
		return string(bytes), nil
	}
	return SHA256Hex(password), nil
}

// Verify checks a plain password against a stored hash of either scheme.
// The scheme is detected from the stored value, not from the configuration.
func (h *PasswordHasher) Verify(storedHash, password string) bool {
	if isBcryptHash(storedHash) {
		return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
	}
	computed := SHA256Hex(password)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(computed)) == 1
}

// SHA256Hex is the deterministic digest stored by the sha256 scheme
func SHA256Hex(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func isBcryptHash(value string) bool {
	return strings.HasPrefix(value, "$2a$") ||
		strings.HasPrefix(value, "$2b$") ||
		strings.HasPrefix(value, "$2y$")
}
