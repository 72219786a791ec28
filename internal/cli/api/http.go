// Package api holds the thin JSON HTTP helpers the CLI commands share.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"LoreKeeper/internal/cli/auth"
)

// do sends a request with an optional JSON payload. If token is non-empty,
// it is passed as the auth cookie.
func do(method, url string, payload any, token string) (*http.Response, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Cookie", "auth_token="+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	return resp, respBody, nil
}

// GetJSON sends a GET request.
func GetJSON(url, token string) (*http.Response, []byte, error) {
	return do(http.MethodGet, url, nil, token)
}

// PostJSON sends a JSON POST request.
func PostJSON(url string, payload any, token string) (*http.Response, []byte, error) {
	return do(http.MethodPost, url, payload, token)
}

// PutJSON sends a JSON PUT request.
func PutJSON(url string, payload any, token string) (*http.Response, []byte, error) {
	return do(http.MethodPut, url, payload, token)
}

// DeleteJSON sends a DELETE request.
func DeleteJSON(url, token string) (*http.Response, []byte, error) {
	return do(http.MethodDelete, url, nil, token)
}

// PersistAuthFromResponse extracts the auth cookie from a login/register
// response and stores it for subsequent commands.
func PersistAuthFromResponse(resp *http.Response) error {
	for _, c := range resp.Cookies() {
		if c.Name == "auth_token" && c.Value != "" {
			return auth.SaveToken(c.Value)
		}
	}
	return fmt.Errorf("no auth cookie in response")
}
