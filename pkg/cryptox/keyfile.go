package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var (
	// Pepper is loaded from a file on first use, or generated and saved
	// if the file does not exist yet.
	pepper     string
	pepperFile string
)

func SetPepperPath(file string) {
	pepperFile = file
	pepper = ""
}

func GetPepper() string {
	if pepper != "" {
		return pepper
	}

	var err error
	pepper, err = loadOrCreateKeyFile(pepperFile)
	if err != nil {
		slog.Error("failed to load or generate pepper", slog.Any("err", err))
		os.Exit(1)
	}
	return pepper
}

// LoadOrCreateSecret returns the raw key material stored (base64url) at
// path, generating and persisting a fresh key when the file is missing.
// Used for the session token signing key.
func LoadOrCreateSecret(path string) ([]byte, error) {
	encoded, err := loadOrCreateKeyFile(path)
	if err != nil {
		return nil, err
	}
	key, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("key file %s is not base64url: %w", path, err)
	}
	return key, nil
}

func loadOrCreateKeyFile(path string) (string, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		raw := make([]byte, keyLength)
		if _, err := rand.Read(raw); err != nil {
			return "", err
		}
		encoded := base64.RawURLEncoding.EncodeToString(raw)

		if err := os.WriteFile(path, []byte(encoded), 0600); err != nil {
			return "", err
		}
		return encoded, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
