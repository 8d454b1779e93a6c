// Package index maintains the durable per-repo file index: the record of
// which destination files a given source repo currently owns, used by the
// delete detector to scope deletions to files that repo actually produced.
package index

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/harrison/techdocs/internal/hashutil"
	"github.com/harrison/techdocs/internal/vfs"
)

// Item is one indexed (file, repo) pair. File is relative to the
// destination root.
type Item struct {
	File string `json:"file"`
	Repo string `json:"repo"`
}

// Error reports an index-level invariant violation: the same destination
// file claimed by two different repos.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// Index holds the current and removed-this-run item sets.
type Index struct {
	items   []Item
	removed []Item
}

// New builds an Index from a pre-loaded item set.
func New(items []Item) *Index {
	return &Index{items: append([]Item(nil), items...)}
}

// Items returns a snapshot of the currently indexed items.
func (ix *Index) Items() []Item {
	return append([]Item(nil), ix.items...)
}

// Removed returns a snapshot of the items removed so far this run.
func (ix *Index) Removed() []Item {
	return append([]Item(nil), ix.removed...)
}

// Add records item. If the same file is already indexed under the same
// repo, Add is a no-op. If it is indexed under a different repo, Add
// returns an Error: two repos must never claim the same destination file.
func (ix *Index) Add(item Item) error {
	for _, existing := range ix.items {
		if existing.File != item.File {
			continue
		}
		if existing.Repo == item.Repo {
			return nil
		}
		return &Error{Message: fmt.Sprintf("the file %s is already indexed from repository %s", item.File, existing.Repo)}
	}
	ix.items = append(ix.items, item)
	return nil
}

// Remove moves every item indexed under File (there is at most one, since
// Add enforces a single owning repo per file) from items to removed.
func (ix *Index) Remove(item Item) {
	var kept []Item
	for _, existing := range ix.items {
		if existing.File == item.File {
			ix.removed = append(ix.removed, existing)
			continue
		}
		kept = append(kept, existing)
	}
	ix.items = kept
}

// Hash returns the content-addressed key used to persist an item: the
// SHA-256 hex digest of its File field.
func Hash(file string) string {
	return hashutil.String(file)
}

// Load reads every indexed item below fspath. Each item is stored at
// <fspath>/<repo>/<hash(file)>.
func Load(fspath string, fs vfs.Filesystem) (*Index, error) {
	files, err := fs.Scan(fspath, vfs.DefaultScanPattern)
	if err != nil {
		return nil, fmt.Errorf("scan index directory %s: %w", fspath, err)
	}
	var items []Item
	for _, file := range files {
		if filepath.Dir(file) == "." {
			// Files directly under fspath (such as a repo's lock file) are
			// not items.
			continue
		}
		content, err := fs.ReadString(filepath.Join(fspath, file))
		if err != nil {
			return nil, fmt.Errorf("read index item %s: %w", file, err)
		}
		var decoded Item
		if err := json.Unmarshal([]byte(content), &decoded); err != nil {
			return nil, fmt.Errorf("parse index item %s: %w", file, err)
		}
		items = append(items, decoded)
	}
	return New(items), nil
}

// Save persists ix below fspath: one file per current item, and deletes the
// file backing every item removed this run.
func Save(ix *Index, fspath string, fs vfs.Filesystem) error {
	for _, item := range ix.items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("encode index item %s: %w", item.File, err)
		}
		target := filepath.Join(fspath, item.Repo, Hash(item.File))
		if err := fs.WriteString(target, string(data)); err != nil {
			return fmt.Errorf("write index item %s: %w", target, err)
		}
	}
	for _, item := range ix.removed {
		target := filepath.Join(fspath, item.Repo, Hash(item.File))
		if err := fs.Delete(target); err != nil {
			return fmt.Errorf("delete index item %s: %w", item.File, err)
		}
	}
	return nil
}

// Loaded loads the index below fspath, runs fn against it, and saves the
// result back unless fn returns an error — mirroring the original
// load/use/save scope helper, with save skipped on the failure path.
func Loaded(fspath string, fs vfs.Filesystem, fn func(*Index) error) error {
	ix, err := Load(fspath, fs)
	if err != nil {
		return err
	}
	if err := fn(ix); err != nil {
		return err
	}
	return Save(ix, fspath, fs)
}
