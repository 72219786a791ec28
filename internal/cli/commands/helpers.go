package commands

import (
	"fmt"
	"net/http"
	"strings"

	"LoreKeeper/internal/cli/auth"
	"LoreKeeper/internal/config"
)

// endpoint joins the server URL with an API path.
func endpoint(cfg *config.Config, format string, args ...any) string {
	return strings.TrimRight(cfg.ServerURL, "/") + fmt.Sprintf(format, args...)
}

// token returns the stored auth token, or empty when not logged in.
func token() string {
	t, _ := auth.LoadToken()
	return t
}

// checkStatus converts a non-2xx response into a readable error.
func checkStatus(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	msg := strings.TrimSpace(string(body))
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("not logged in (run 'lkcli login' first): %s", msg)
	case http.StatusNotFound:
		return fmt.Errorf("not found: %s", msg)
	case http.StatusConflict:
		return fmt.Errorf("rejected: %s", msg)
	default:
		return fmt.Errorf("server status %d: %s", resp.StatusCode, msg)
	}
}
