package commands

import (
	"runtime"
	"testing"
)

// withTempConfig points the user config directory at a temp dir so that
// test runs never touch the real token/login files.
func withTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
	return dir
}
