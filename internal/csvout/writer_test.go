package csvout

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mailsift/internal/model"
)

func readRecords(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return records
}

func TestWriteRowColumnsAndHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	w, err := NewWriter(path, 0)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	row := model.Row{
		"message_id": "abc123",
		"from_email": "alice@example.com",
		"subject":    "hello, world",
	}
	if err := w.WriteRow(row); err != nil {
		t.Fatalf("WriteRow: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	records := readRecords(t, path)
	if len(records) != 2 {
		t.Fatalf("expected header + 1 record, got %d", len(records))
	}
	if len(records[0]) != len(model.Columns) {
		t.Fatalf("header has %d fields, want %d", len(records[0]), len(model.Columns))
	}
	if records[0][0] != "date" || records[0][1] != "message_id" {
		t.Fatalf("unexpected header start: %v", records[0][:2])
	}
	if records[1][1] != "abc123" {
		t.Fatalf("message_id = %q", records[1][1])
	}
	if records[1][13] != "hello, world" {
		t.Fatalf("subject = %q", records[1][13])
	}
	// Unset columns come out as empty strings, not missing fields.
	if records[1][20] != "" {
		t.Fatalf("body_html = %q, want empty", records[1][20])
	}
}

func TestWriteRowFlattensNewlines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	w, err := NewWriter(path, 0)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	if err := w.WriteRow(model.Row{"body_text": "line one\nline two\r\nline three"}); err != nil {
		t.Fatalf("WriteRow: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	records := readRecords(t, path)
	body := records[1][19]
	if strings.ContainsAny(body, "\r\n") {
		t.Fatalf("body still contains line breaks: %q", body)
	}
	if body != "line one line two line three" {
		t.Fatalf("body = %q", body)
	}
}

func TestRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.csv")

	// Tiny limit so every row after the first forces a new file.
	w, err := NewWriter(path, 100)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	big := strings.Repeat("x", 200)
	for i := 0; i < 3; i++ {
		if err := w.WriteRow(model.Row{"body_text": big}); err != nil {
			t.Fatalf("WriteRow %d: %v", i, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	files := w.Files()
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d: %v", len(files), files)
	}
	if filepath.Base(files[1]) != "export-002.csv" {
		t.Fatalf("second file named %q", filepath.Base(files[1]))
	}
	if filepath.Base(files[2]) != "export-003.csv" {
		t.Fatalf("third file named %q", filepath.Base(files[2]))
	}

	// Every file carries its own header.
	for _, f := range files {
		records := readRecords(t, f)
		if len(records) != 2 {
			t.Fatalf("%s: expected header + 1 record, got %d rows", f, len(records))
		}
		if records[0][0] != "date" {
			t.Fatalf("%s: missing header row", f)
		}
	}
}

func TestNoRotationWhenDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	w, err := NewWriter(path, 0)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	big := strings.Repeat("x", 500)
	for i := 0; i < 5; i++ {
		if err := w.WriteRow(model.Row{"body_text": big}); err != nil {
			t.Fatalf("WriteRow %d: %v", i, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if got := w.FileCount(); got != 1 {
		t.Fatalf("expected 1 file, got %d", got)
	}
	records := readRecords(t, path)
	if len(records) != 6 {
		t.Fatalf("expected header + 5 records, got %d", len(records))
	}
}
