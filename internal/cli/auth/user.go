package auth

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// lastLoginPath returns where the most recent facilitator login is remembered.
func lastLoginPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "last_login"), nil
}

// SaveLastLogin remembers which facilitator signed in, so status and the
// prompt can show it without another round trip.
func SaveLastLogin(login string) error {
	if login == "" {
		return errors.New("empty login")
	}
	p, err := lastLoginPath()
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(login), 0o600)
}

// LoadLastLogin returns the remembered facilitator login.
func LoadLastLogin() (string, error) {
	p, err := lastLoginPath()
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	login := strings.TrimSpace(string(b))
	if login == "" {
		return "", errors.New("no stored login")
	}
	return login, nil
}
