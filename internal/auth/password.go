package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt truncates inputs at 72 bytes; enforce it so a longer secret fails
// loudly instead of silently matching on a prefix.
const bcryptMaxSecretBytes = 72

// HashSecret hashes the shared admin secret for storage in
// ADMIN_SECRET_HASH. Exposed for the CLI's hash subcommand.
func HashSecret(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("secret required")
	}
	if len(plain) > bcryptMaxSecretBytes {
		return "", fmt.Errorf("secret too long: bcrypt only supports up to %d bytes", bcryptMaxSecretBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CompareSecretHash verifies a presented secret against the configured hash.
func CompareSecretHash(hash string, plain string) error {
	if plain == "" {
		return fmt.Errorf("secret required")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
