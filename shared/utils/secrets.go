package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SecretsDir - стандартный путь Docker Secrets.
var SecretsDir = "/run/secrets"

// ReadSecret reads a Docker secret file. Empty files are an error.
func ReadSecret(secretName string) (string, error) {
	filePath := filepath.Join(SecretsDir, secretName)
	secretBytes, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file %s: %w", filePath, err)
	}
	secret := strings.TrimSpace(string(secretBytes))
	if secret == "" {
		return "", fmt.Errorf("secret file %s is empty", filePath)
	}
	return secret, nil
}

// LookupSecret prefers the secret file and falls back to the environment
// variable envKey. ok is false when neither is set.
func LookupSecret(secretName, envKey string) (value string, ok bool) {
	if secret, err := ReadSecret(secretName); err == nil {
		return secret, true
	}
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v, true
	}
	return "", false
}
