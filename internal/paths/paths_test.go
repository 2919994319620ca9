package paths

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestResolveConfigDirPrecedence(t *testing.T) {
	// Flag wins over everything.
	t.Setenv(EnvConfigDir, "/env/config")
	got, err := ResolveConfigDir("/flag/config")
	if err != nil {
		t.Fatalf("ResolveConfigDir() error = %v", err)
	}
	if got != "/flag/config" {
		t.Errorf("ResolveConfigDir() = %q, want flag value", got)
	}

	// Env wins over the CWD default.
	got, err = ResolveConfigDir("")
	if err != nil {
		t.Fatalf("ResolveConfigDir() error = %v", err)
	}
	if got != "/env/config" {
		t.Errorf("ResolveConfigDir() = %q, want env value", got)
	}

	// Platform default.
	t.Setenv(EnvConfigDir, "")
	want, err := DefaultConfigDir()
	if err != nil {
		t.Fatalf("DefaultConfigDir() error = %v", err)
	}
	got, err = ResolveConfigDir("")
	if err != nil {
		t.Fatalf("ResolveConfigDir() error = %v", err)
	}
	if got != want {
		t.Errorf("ResolveConfigDir() = %q, want platform default %q", got, want)
	}
}

func TestResolveDataDirPrecedence(t *testing.T) {
	t.Setenv(EnvDataDir, "/env/data")

	// Flag wins over config value and env.
	got, err := ResolveDataDir("/flag/data", "/config/data")
	if err != nil {
		t.Fatalf("ResolveDataDir() error = %v", err)
	}
	if got != "/flag/data" {
		t.Errorf("ResolveDataDir() = %q, want flag value", got)
	}

	// Config value wins over env.
	got, err = ResolveDataDir("", "/config/data")
	if err != nil {
		t.Fatalf("ResolveDataDir() error = %v", err)
	}
	if got != "/config/data" {
		t.Errorf("ResolveDataDir() = %q, want config value", got)
	}

	// Env wins over the CWD default.
	got, err = ResolveDataDir("", "")
	if err != nil {
		t.Fatalf("ResolveDataDir() error = %v", err)
	}
	if got != "/env/data" {
		t.Errorf("ResolveDataDir() = %q, want env value", got)
	}

	// CWD-relative default.
	t.Setenv(EnvDataDir, "")
	got, err = ResolveDataDir("", "")
	if err != nil {
		t.Fatalf("ResolveDataDir() error = %v", err)
	}
	if filepath.Base(got) != DefaultDataDirName {
		t.Errorf("ResolveDataDir() = %q, want CWD default", got)
	}
}

func TestDefaultConfigDirLinuxUsesXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG resolution is linux-only")
	}
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")

	got, err := DefaultConfigDir()
	if err != nil {
		t.Fatalf("DefaultConfigDir() error = %v", err)
	}
	if got != filepath.Join("/xdg/config", "vellum") {
		t.Errorf("DefaultConfigDir() = %q", got)
	}
}

func TestDefaultConfigDirLinuxFallsBackToHome(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG resolution is linux-only")
	}
	t.Setenv("XDG_CONFIG_HOME", "")

	orig := platformDir.homeDir
	platformDir.homeDir = func() (string, error) { return "/home/tester", nil }
	defer func() { platformDir.homeDir = orig }()

	got, err := DefaultConfigDir()
	if err != nil {
		t.Fatalf("DefaultConfigDir() error = %v", err)
	}
	if got != filepath.Join("/home/tester", ".config", "vellum") {
		t.Errorf("DefaultConfigDir() = %q", got)
	}
}
