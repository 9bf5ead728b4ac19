package app

import (
	"os"
	"path/filepath"
	"testing"
)

// LoadEnvFiles reads KEY=VALUE pairs and populates os.Environ.
func TestLoadEnvFiles_LoadsKeyValues(t *testing.T) {
	t.Setenv("FOO", "")
	t.Setenv("BAR", "")

	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env.test")
	content := "\n# sample dotenv file\nFOO=alpha\nexport BAR='beta'\n"
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	if err := LoadEnvFiles(envPath); err != nil {
		t.Fatalf("LoadEnvFiles error: %v", err)
	}

	if got := os.Getenv("FOO"); got != "alpha" {
		t.Fatalf("FOO=%q, want alpha", got)
	}
	if got := os.Getenv("BAR"); got != "beta" {
		t.Fatalf("BAR=%q, want beta", got)
	}
}

// Later files override earlier ones when loading multiple dotenv files.
func TestLoadEnvFiles_OverrideOrder(t *testing.T) {
	t.Setenv("K", "")
	dir := t.TempDir()
	a := filepath.Join(dir, ".env.a")
	b := filepath.Join(dir, ".env.b")
	if err := os.WriteFile(a, []byte("K=first\n"), 0o600); err != nil {
		t.Fatalf("write a: %v", err)
	}
	if err := os.WriteFile(b, []byte("K=second\n"), 0o600); err != nil {
		t.Fatalf("write b: %v", err)
	}

	if err := LoadEnvFiles(a, b); err != nil {
		t.Fatalf("LoadEnvFiles error: %v", err)
	}
	if got := os.Getenv("K"); got != "second" {
		t.Fatalf("override order failed: got %q, want second", got)
	}
}

func TestLoadEnvFiles_ProcessEnvWins(t *testing.T) {
	t.Setenv("GOPAGES_WORKERS", "3")
	p := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(p, []byte("GOPAGES_WORKERS=7\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := LoadEnvFiles(p); err != nil {
		t.Fatalf("LoadEnvFiles error: %v", err)
	}
	if got := os.Getenv("GOPAGES_WORKERS"); got != "3" {
		t.Fatalf("GOPAGES_WORKERS=%q, want process value 3", got)
	}
}

func TestLoadEnvFiles_MissingFileIgnored(t *testing.T) {
	if err := LoadEnvFiles(filepath.Join(t.TempDir(), "nope.env"), ""); err != nil {
		t.Fatalf("missing file should be ignored: %v", err)
	}
}
