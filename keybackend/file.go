package keybackend

import (
	"fmt"
	"os"
	"strings"
)

// LoadSecretFromFile reads the shared secret from a file.
// Surrounding whitespace, including the trailing newline most editors add,
// is removed. An empty file is an error.
func LoadSecretFromFile(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is from trusted config file
	if err != nil {
		return "", fmt.Errorf("read secret file: %w", err)
	}

	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return "", fmt.Errorf("read secret file %s: %w", path, ErrEmptySecret)
	}

	return secret, nil
}
