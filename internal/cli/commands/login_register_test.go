package commands

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"LoreKeeper/internal/config"
)

func TestLogin_Run_SuccessAndErrors(t *testing.T) {
	withTempConfig(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/api/user/login") {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "tok-123"})
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	cfg := &config.Config{ServerURL: ts.URL}
	cmd := loginCmd{}
	out := withStdoutCapture(t, func() {
		if err := cmd.Run(context.Background(), cfg, []string{"alice", "secret"}); err != nil {
			t.Fatalf("login should succeed: %v", err)
		}
	})
	if !strings.Contains(out, "Logged in") {
		t.Fatalf("login confirmation expected, got: %s", out)
	}

	// token must be persisted under the config dir
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		t.Fatalf("user config dir: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(cfgDir, "LoreKeeper", "auth_token"))
	if err != nil || string(b) != "tok-123" {
		t.Fatalf("auth token not saved: %q err=%v", b, err)
	}
	if b, err = os.ReadFile(filepath.Join(cfgDir, "LoreKeeper", "last_login")); err != nil || string(b) != "alice" {
		t.Fatalf("last login not saved: %q err=%v", b, err)
	}

	// 401 Unauthorized
	ts401 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer ts401.Close()
	if err := cmd.Run(context.Background(), &config.Config{ServerURL: ts401.URL}, []string{"alice", "bad"}); err == nil {
		t.Fatalf("expected error for 401")
	}

	// too few arguments
	if err := cmd.Run(context.Background(), cfg, []string{"onlyLogin"}); err != ErrUsage {
		t.Fatalf("expected ErrUsage, got %v", err)
	}

	// server 500
	ts500 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts500.Close()
	if err := cmd.Run(context.Background(), &config.Config{ServerURL: ts500.URL}, []string{"a", "b"}); err == nil {
		t.Fatalf("expected error for 500")
	}
}

func TestRegister_Run_SuccessAndErrors(t *testing.T) {
	withTempConfig(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/api/user/register") {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "tok-xyz"})
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	cfg := &config.Config{ServerURL: ts.URL}
	cmd := registerCmd{}
	_ = withStdoutCapture(t, func() {
		if err := cmd.Run(context.Background(), cfg, []string{"bob", "pwd"}); err != nil {
			t.Fatalf("register should succeed: %v", err)
		}
	})

	cfgDir, _ := os.UserConfigDir()
	if _, err := os.Stat(filepath.Join(cfgDir, "LoreKeeper", "last_login")); err != nil {
		t.Fatalf("last_login not saved: %v", err)
	}

	// 409 Conflict (login taken)
	ts409 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer ts409.Close()
	if err := cmd.Run(context.Background(), &config.Config{ServerURL: ts409.URL}, []string{"bob", "pwd"}); err == nil {
		t.Fatalf("expected conflict error")
	}

	// too few arguments
	if err := cmd.Run(context.Background(), cfg, []string{"onlyLogin"}); err != ErrUsage {
		t.Fatalf("expected ErrUsage on short args")
	}

	// 500
	ts500 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts500.Close()
	if err := cmd.Run(context.Background(), &config.Config{ServerURL: ts500.URL}, []string{"bob", "pwd"}); err == nil {
		t.Fatalf("expected server error")
	}
}
