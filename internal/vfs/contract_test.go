package vfs

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"testing"
)

// contractCase exercises the Filesystem interface identically whether it is
// backed by the real filesystem or MemFilesystem.
func runContract(t *testing.T, fs Filesystem, root string, seed func(rel, content string)) {
	t.Helper()

	seed("a.md", "hello")
	seed("inner/b.md", "world")

	if !fs.IsFile(filepath.Join(root, "a.md")) {
		t.Error("expected a.md to be a file")
	}
	if fs.IsFile(filepath.Join(root, "missing.md")) {
		t.Error("missing.md should not be a file")
	}

	got, err := fs.Scan(root, DefaultScanPattern)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	sort.Strings(got)
	want := []string{"a.md", "inner/b.md"}
	if len(got) != len(want) {
		t.Fatalf("Scan returned %v, want %v", got, want)
	}
	for i := range want {
		if filepath.ToSlash(got[i]) != want[i] {
			t.Errorf("Scan()[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	mdOnly, err := fs.Scan(root, regexp.MustCompile(`\.md$`))
	if err != nil {
		t.Fatalf("Scan with pattern: %v", err)
	}
	if len(mdOnly) != 2 {
		t.Errorf("expected 2 markdown files, got %d", len(mdOnly))
	}

	dst := filepath.Join(root, "copied.md")
	if err := fs.Copy(filepath.Join(root, "a.md"), dst); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	content, err := fs.ReadString(dst)
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if content != "hello" {
		t.Errorf("ReadString(copied.md) = %q, want %q", content, "hello")
	}

	if err := fs.Delete(dst); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if fs.IsFile(dst) {
		t.Error("expected copied.md to be gone after Delete")
	}
}

func TestMemFilesystemContract(t *testing.T) {
	fs := NewMemFilesystem(nil)
	root := "/tmp/root"
	runContract(t, fs, root, func(rel, content string) {
		fs.Files[filepath.Join(root, rel)] = content
	})
}

func TestOSFilesystemContract(t *testing.T) {
	root := t.TempDir()
	fs := NewOSFilesystem()
	runContract(t, fs, root, func(rel, content string) {
		full := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("seed mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatalf("seed write: %v", err)
		}
	})
}
