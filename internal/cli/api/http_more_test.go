package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// PostJSON without a token must not set the Cookie header.
func TestPostJSON_NoToken_NoCookieHeader(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c := r.Header.Get("Cookie"); c != "" {
			t.Fatalf("Cookie must be empty when token not provided, got: %q", c)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	resp, body, err := PostJSON(ts.URL, map[string]any{"x": 1}, "")
	if err != nil {
		t.Fatalf("PostJSON err: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	_ = body
}

// auth_token may not be the first cookie; empty values are rejected.
func TestPersistAuthFromResponse_MultipleCookies_And_EmptyValueError(t *testing.T) {
	setTempCfg(t)
	{
		resp := &http.Response{Header: http.Header{}}
		resp.Header.Add("Set-Cookie", (&http.Cookie{Name: "other", Value: "abc"}).String())
		resp.Header.Add("Set-Cookie", (&http.Cookie{Name: "auth_token", Value: "tok-2"}).String())
		if err := PersistAuthFromResponse(resp); err != nil {
			t.Fatalf("persist second cookie: %v", err)
		}
	}
	{
		resp := &http.Response{Header: http.Header{}}
		resp.Header.Add("Set-Cookie", (&http.Cookie{Name: "auth_token", Value: ""}).String())
		if err := PersistAuthFromResponse(resp); err == nil {
			t.Fatalf("expected error for empty auth_token cookie value")
		}
	}
}
