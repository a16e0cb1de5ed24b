package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Export.PageSize != 100 {
		t.Errorf("Export.PageSize: got %d, want 100", cfg.Export.PageSize)
	}
	if cfg.Export.Workers != 16 {
		t.Errorf("Export.Workers: got %d, want 16", cfg.Export.Workers)
	}
	if cfg.Export.MaxChars != 5000 {
		t.Errorf("Export.MaxChars: got %d, want 5000", cfg.Export.MaxChars)
	}
	if cfg.Output.Path != "export.csv" {
		t.Errorf("Output.Path: got %q, want %q", cfg.Output.Path, "export.csv")
	}
	if cfg.Output.RotateBytes != 52428800 {
		t.Errorf("Output.RotateBytes: got %d, want %d", cfg.Output.RotateBytes, 52428800)
	}
	if !cfg.Redact.Enabled {
		t.Error("Redact.Enabled: got false, want true")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestLoad_FileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
export:
  query: "after:2025/01/01"
  labels: [INBOX, IMPORTANT]
  max: 500
  workers: 4
output:
  path: out/mail.csv
  rotate_bytes: 1048576
redact:
  enabled: true
  enable: [email_addresses]
  disable: [ages, phone_numbers]
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Export.Query != "after:2025/01/01" {
		t.Errorf("Export.Query: got %q", cfg.Export.Query)
	}
	if len(cfg.Export.Labels) != 2 || cfg.Export.Labels[0] != "INBOX" {
		t.Errorf("Export.Labels: got %v", cfg.Export.Labels)
	}
	if cfg.Export.Max != 500 {
		t.Errorf("Export.Max: got %d, want 500", cfg.Export.Max)
	}
	if cfg.Export.Workers != 4 {
		t.Errorf("Export.Workers: got %d, want 4", cfg.Export.Workers)
	}
	// Untouched fields keep their defaults.
	if cfg.Export.PageSize != 100 {
		t.Errorf("Export.PageSize: got %d, want 100", cfg.Export.PageSize)
	}
	if cfg.Output.Path != "out/mail.csv" {
		t.Errorf("Output.Path: got %q", cfg.Output.Path)
	}
	if cfg.Output.RotateBytes != 1048576 {
		t.Errorf("Output.RotateBytes: got %d", cfg.Output.RotateBytes)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level: got %q", cfg.Logging.Level)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_UnknownCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "redact:\n  enabled: true\n  disable: [not_a_category]\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestRedactionConfig(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.Redact.Enable = []string{"email_addresses"}
	cfg.Redact.Disable = []string{"phone_numbers"}

	rc := cfg.RedactionConfig()
	if !rc.Enabled {
		t.Error("expected redaction enabled")
	}
	if !rc.Categories["email_addresses"] {
		t.Error("email_addresses should be enabled by the enable list")
	}
	if rc.Categories["phone_numbers"] {
		t.Error("phone_numbers should be disabled by the disable list")
	}
	if !rc.Categories["tax_ids"] {
		t.Error("tax_ids should keep its enabled default")
	}
}

func TestRedactionConfig_Disabled(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.Redact.Enabled = false

	rc := cfg.RedactionConfig()
	if rc.Enabled {
		t.Error("expected redaction disabled")
	}
}
