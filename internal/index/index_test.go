package index

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/harrison/techdocs/internal/vfs"
)

func TestAddNoOpForSameFileSameRepo(t *testing.T) {
	ix := New([]Item{{File: "a.md", Repo: "promil"}})
	if err := ix.Add(Item{File: "a.md", Repo: "promil"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(ix.Items()) != 1 {
		t.Errorf("expected no duplicate item, got %d", len(ix.Items()))
	}
}

func TestAddCollisionAcrossRepos(t *testing.T) {
	ix := New([]Item{{File: "a.md", Repo: "promil"}})
	err := ix.Add(Item{File: "a.md", Repo: "other"})
	if err == nil {
		t.Fatal("expected a collision error")
	}
	if _, ok := err.(*Error); !ok {
		t.Errorf("expected *Error, got %T", err)
	}
}

func TestRemoveMovesItemToRemoved(t *testing.T) {
	ix := New([]Item{{File: "a.md", Repo: "promil"}, {File: "b.md", Repo: "promil"}})
	ix.Remove(Item{File: "a.md", Repo: "promil"})

	items := ix.Items()
	if len(items) != 1 || items[0].File != "b.md" {
		t.Errorf("unexpected remaining items: %v", items)
	}
	removed := ix.Removed()
	if len(removed) != 1 || removed[0].File != "a.md" {
		t.Errorf("unexpected removed items: %v", removed)
	}
}

func TestLoadAndSaveRoundTrip(t *testing.T) {
	fs := vfs.NewMemFilesystem(nil)
	ix := New([]Item{
		{File: "heheszek", Repo: "Promil-platform-foo"},
		{File: "foo/bar", Repo: "Promil-platform-foo"},
		{File: "baz/huehue", Repo: "Promil-platform-bar"},
	})

	if err := Save(ix, "/foo/index", fs); err != nil {
		t.Fatalf("Save: %v", err)
	}

	files, err := fs.Scan("/foo/index", vfs.DefaultScanPattern)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	sort.Strings(files)
	want := []string{
		"Promil-platform-bar/" + Hash("baz/huehue"),
		"Promil-platform-foo/" + Hash("foo/bar"),
		"Promil-platform-foo/" + Hash("heheszek"),
	}
	sort.Strings(want)
	if len(files) != len(want) {
		t.Fatalf("Scan returned %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %s, want %s", i, files[i], want[i])
		}
	}

	loaded, err := Load("/foo/index", fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	loadedItems := loaded.Items()
	if len(loadedItems) != 3 {
		t.Fatalf("expected 3 loaded items, got %d", len(loadedItems))
	}
}

func TestSaveWritesJSONShape(t *testing.T) {
	fs := vfs.NewMemFilesystem(nil)
	ix := New([]Item{{File: "heheszek", Repo: "Promil-platform-foo"}})
	if err := Save(ix, "/foo/index", fs); err != nil {
		t.Fatalf("Save: %v", err)
	}
	content, err := fs.ReadString("/foo/index/Promil-platform-foo/" + Hash("heheszek"))
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	var decoded map[string]string
	if err := json.Unmarshal([]byte(content), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["file"] != "heheszek" || decoded["repo"] != "Promil-platform-foo" {
		t.Errorf("unexpected decoded content: %v", decoded)
	}
}

func TestSaveDeletesRemovedItems(t *testing.T) {
	fs := vfs.NewMemFilesystem(map[string]string{
		"/foo/index/promil/" + Hash("gone.md"): `{"file":"gone.md","repo":"promil"}`,
	})
	ix := New([]Item{{File: "gone.md", Repo: "promil"}})
	ix.Remove(Item{File: "gone.md", Repo: "promil"})

	if err := Save(ix, "/foo/index", fs); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if fs.IsFile("/foo/index/promil/" + Hash("gone.md")) {
		t.Error("expected the removed item's backing file to be deleted")
	}
}

func TestLoadedSkipsSaveOnError(t *testing.T) {
	fs := vfs.NewMemFilesystem(nil)
	boom := &Error{Message: "boom"}
	err := Loaded("/foo/index", fs, func(ix *Index) error {
		if err := ix.Add(Item{File: "a.md", Repo: "promil"}); err != nil {
			return err
		}
		return boom
	})
	if err != boom {
		t.Fatalf("expected the sentinel error to propagate, got %v", err)
	}
	files, _ := fs.Scan("/foo/index", vfs.DefaultScanPattern)
	if len(files) != 0 {
		t.Errorf("expected no persisted items after a failed run, got %v", files)
	}
}
