package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	URL     string        `split_words:"true" default:"http://localhost:3000/api"`
	Timeout time.Duration `split_words:"true" default:"5s"`
	Token   string        `split_words:"true"`
}

func TestExportEnvironmentKeepsProcessValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "CFGTEST_FROM_FILE=file-value\nCFGTEST_PRESET=file-value\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	t.Setenv("CFGTEST_PRESET", "process-value")
	t.Setenv("CFGTEST_FROM_FILE", "")
	if err := os.Unsetenv("CFGTEST_FROM_FILE"); err != nil {
		t.Fatalf("unset: %v", err)
	}

	if err := exportEnvironment(path); err != nil {
		t.Fatalf("exportEnvironment() error = %v", err)
	}

	if got := os.Getenv("CFGTEST_FROM_FILE"); got != "file-value" {
		t.Fatalf("CFGTEST_FROM_FILE = %q, want %q", got, "file-value")
	}
	if got := os.Getenv("CFGTEST_PRESET"); got != "process-value" {
		t.Fatalf("CFGTEST_PRESET = %q, want %q", got, "process-value")
	}
}

func TestExportEnvironmentIfExistsMissingFile(t *testing.T) {
	t.Parallel()

	if err := exportEnvironmentIfExists(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("exportEnvironmentIfExists() error = %v", err)
	}
}

func TestNewAppliesDefaultsAndPrefix(t *testing.T) {
	t.Setenv("CFGTEST_TOKEN", "secret")
	t.Setenv("CFGTEST_TIMEOUT", "2s")

	conf, err := New[testConfig]("CFGTEST")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if conf.URL != "http://localhost:3000/api" {
		t.Fatalf("URL = %q, want default", conf.URL)
	}
	if conf.Timeout != 2*time.Second {
		t.Fatalf("Timeout = %v, want 2s", conf.Timeout)
	}
	if conf.Token != "secret" {
		t.Fatalf("Token = %q, want %q", conf.Token, "secret")
	}
}
