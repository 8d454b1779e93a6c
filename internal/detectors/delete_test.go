package detectors

import (
	"testing"

	"github.com/harrison/techdocs/internal/index"
	"github.com/harrison/techdocs/internal/ops"
	"github.com/harrison/techdocs/internal/vfs"
)

func TestDeleteDetectorFlagsMissingFiles(t *testing.T) {
	fs := vfs.NewMemFilesystem(nil)
	ix := index.New([]index.Item{
		{File: "guides/old.md", Repo: "svc"},
	})
	d := NewDeleteDetector("svc", ix, "/repo", "/docs")
	previous := []ops.Operation{&ops.Copy{SourceAbs: "/repo/new.md", DestinationAbs: "/docs/guides/new.md"}}
	result, err := d.Detect(fs, previous)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 operations (copy + delete), got %d", len(result))
	}
	found := false
	for _, op := range result {
		if del, ok := op.(*ops.Delete); ok && del.DestinationAbs == "/docs/guides/old.md" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a delete operation for the removed file")
	}
}

func TestDeleteDetectorDoesNotTouchOtherRepos(t *testing.T) {
	fs := vfs.NewMemFilesystem(nil)
	ix := index.New([]index.Item{
		{File: "guides/other.md", Repo: "other-repo"},
	})
	d := NewDeleteDetector("svc", ix, "/repo", "/docs")
	result, err := d.Detect(fs, nil)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(result) != 0 {
		t.Fatalf("expected no operations, got %d", len(result))
	}
}

func TestDeleteDetectorAddsProducedFilesToIndex(t *testing.T) {
	fs := vfs.NewMemFilesystem(nil)
	ix := index.New(nil)
	d := NewDeleteDetector("svc", ix, "/repo", "/docs")
	previous := []ops.Operation{&ops.Copy{SourceAbs: "/repo/new.md", DestinationAbs: "/docs/guides/new.md"}}
	if _, err := d.Detect(fs, previous); err != nil {
		t.Fatalf("Detect: %v", err)
	}
	items := ix.Items()
	if len(items) != 1 || items[0].File != "guides/new.md" {
		t.Fatalf("expected produced file added to index as a destination-relative path, got %v", items)
	}
}
