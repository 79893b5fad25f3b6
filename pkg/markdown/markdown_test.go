package markdown

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	got := Format("The summary body.", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", "Never Gonna Give You Up")

	for _, want := range []string{
		"# Video Summary: Never Gonna Give You Up",
		"The summary body.",
		"- Original URL: https://youtu.be/dQw4w9WgXcQ",
		"- Video ID: dQw4w9WgXcQ",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Format output missing %q:\n%s", want, got)
		}
	}
}

func TestFormatDefaultTitle(t *testing.T) {
	got := Format("body", "https://youtu.be/abc12345678", "abc12345678", "")
	if !strings.Contains(got, "# Video Summary: YouTube Video abc12345678") {
		t.Fatalf("Format output missing default title:\n%s", got)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	defer os.Chdir(cwd)

	path, err := Save("# content", "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if filepath.Base(path) != "dQw4w9WgXcQ_summary.md" {
		t.Fatalf("Save path = %q, want <id>_summary.md", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "# content" {
		t.Fatalf("saved content = %q", string(data))
	}
}

func TestSaveMissingInput(t *testing.T) {
	if _, err := Save("", "id"); err == nil {
		t.Fatal("Save with empty content returned nil error")
	}
	if _, err := Save("content", ""); err == nil {
		t.Fatal("Save with empty video ID returned nil error")
	}
}
