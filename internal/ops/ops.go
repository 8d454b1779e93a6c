// Package ops defines the filesystem operations a sync run can produce:
// copy, frontmatter-enriched copy, delete, PlantUML render, and OpenAPI
// bundle. Each is a small, independent implementation of the Operation
// interface; detectors and the copier depend only on that interface.
package ops

import (
	"path/filepath"

	"github.com/harrison/techdocs/internal/hashutil"
	"github.com/harrison/techdocs/internal/vfs"
)

// Operation is one unit of work the copier can execute against a
// filesystem: move, render, or remove a single destination file.
type Operation interface {
	// Name identifies the kind of operation, e.g. "copy", "delete",
	// "plantuml", "openapi" — used both for the chain's own bookkeeping
	// and for the copier's per-operation summary tag.
	Name() string

	// Execute performs the operation against fs.
	Execute(fs vfs.Filesystem) error

	// HasChanges reports whether executing this operation would actually
	// change the destination, so the filter detector can drop no-op work.
	HasChanges(fs vfs.Filesystem) (bool, error)

	// SourceFiles lists every source-side file this operation reads from,
	// used by later detectors (e.g. the PlantUML/OpenAPI split) to find
	// operations of interest by their source extension or content.
	SourceFiles() []string

	// DestinationFiles lists every destination-side file this operation
	// writes to or removes, used by the delete detector to compute which
	// indexed files are still produced by this run.
	DestinationFiles() []string

	// Format renders a one-line human description of this operation using
	// formatter to shorten paths.
	Format(formatter PathFormatter) string
}

// PathFormatter shortens an absolute path for display, e.g. relative to a
// run's source or destination root.
type PathFormatter interface {
	Format(path string) string
}

// PathFormatterFunc adapts a function to PathFormatter.
type PathFormatterFunc func(string) string

func (f PathFormatterFunc) Format(path string) string { return f(path) }

// Copy copies SourceAbs to DestinationAbs verbatim.
type Copy struct {
	SourceAbs      string
	DestinationAbs string
}

func (c *Copy) Name() string { return "copy" }

func (c *Copy) Execute(fs vfs.Filesystem) error {
	return fs.Copy(c.SourceAbs, c.DestinationAbs)
}

func (c *Copy) HasChanges(fs vfs.Filesystem) (bool, error) {
	return contentDiffers(fs, c.SourceAbs, c.DestinationAbs)
}

func (c *Copy) SourceFiles() []string      { return []string{c.SourceAbs} }
func (c *Copy) DestinationFiles() []string { return []string{c.DestinationAbs} }

func (c *Copy) Format(formatter PathFormatter) string {
	return "Copy " + formatter.Format(c.SourceAbs) + " to " + formatter.Format(c.DestinationAbs)
}

// Delete removes DestinationAbs. It has no source counterpart.
type Delete struct {
	DestinationAbs string
}

func (d *Delete) Name() string { return "delete" }

func (d *Delete) Execute(fs vfs.Filesystem) error {
	return fs.Delete(d.DestinationAbs)
}

func (d *Delete) HasChanges(fs vfs.Filesystem) (bool, error) {
	return true, nil
}

func (d *Delete) SourceFiles() []string      { return nil }
func (d *Delete) DestinationFiles() []string { return []string{d.DestinationAbs} }

func (d *Delete) Format(formatter PathFormatter) string {
	return "Delete " + formatter.Format(d.DestinationAbs)
}

// contentDiffers reports whether destination is missing or its content
// hashes differently from source.
func contentDiffers(fs vfs.Filesystem, source, destination string) (bool, error) {
	if !fs.IsFile(destination) {
		return true, nil
	}
	srcContent, err := fs.ReadString(source)
	if err != nil {
		return false, err
	}
	dstContent, err := fs.ReadString(destination)
	if err != nil {
		return false, err
	}
	return hashutil.String(srcContent) != hashutil.String(dstContent), nil
}

// swapExtension returns p with its extension replaced by newExtension
// (without a leading dot).
func swapExtension(p, newExtension string) string {
	base := p[:len(p)-len(filepath.Ext(p))]
	return base + "." + newExtension
}
