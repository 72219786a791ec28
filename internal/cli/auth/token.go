// Package auth keeps the CLI's facilitator credentials on disk: the session
// cookie issued by the LoreKeeper server and the login it belongs to. Both
// live under the per-user config directory so every command in a shell
// session shares the same signed-in facilitator.
package auth

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// configDir resolves (and creates if needed) the LoreKeeper directory under
// the platform config root.
func configDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "LoreKeeper")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// AuthTokenPath returns where the server-issued auth token is stored.
func AuthTokenPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "auth_token"), nil
}

// SaveToken persists the token from a successful login or register.
func SaveToken(token string) error {
	p, err := AuthTokenPath()
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(token), 0o600)
}

// LoadToken reads the stored token. An empty or missing file means the
// facilitator has to log in again.
func LoadToken() (string, error) {
	p, err := AuthTokenPath()
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", errors.New("empty token file")
	}
	return token, nil
}
