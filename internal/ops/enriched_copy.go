package ops

import (
	"path/filepath"
	"strings"

	"github.com/harrison/techdocs/internal/frontmatter"
	"github.com/harrison/techdocs/internal/hashutil"
	"github.com/harrison/techdocs/internal/vfs"
)

// EnrichedCopy copies a Markdown document while injecting edit-URL,
// last-update, source-hash, enrichment-marker, and auto-title frontmatter
// attributes.
type EnrichedCopy struct {
	SourceAbs      string
	DestinationAbs string
	FromAbs        string // the source repo root, used to compute SourceRel
	Repo           string
	Author         string
	Branch         string
}

func (c *EnrichedCopy) Name() string { return "copy" }

// SourceRel is the source file's path relative to the repo root, used in
// the custom_edit_url attribute.
func (c *EnrichedCopy) SourceRel() string {
	rel, err := filepath.Rel(c.FromAbs, c.SourceAbs)
	if err != nil {
		return c.SourceAbs
	}
	return filepath.ToSlash(rel)
}

func (c *EnrichedCopy) Execute(fs vfs.Filesystem) error {
	source, err := fs.ReadString(c.SourceAbs)
	if err != nil {
		return err
	}
	enricher := frontmatter.New(source)
	out := enricher.Enrich(
		frontmatter.CustomEditURL(c.Repo, c.SourceRel(), c.Branch),
		frontmatter.LastUpdate(c.Author),
		frontmatter.SourceFrontmatterHash(source),
		frontmatter.EnrichedMarker(),
		frontmatter.AutoTitle(bodyOf(source)),
	)
	return fs.WriteString(c.DestinationAbs, out)
}

// bodyOf returns source with any frontmatter block stripped, for
// AutoTitle's heading search.
func bodyOf(source string) string {
	if !strings.HasPrefix(source, "---") {
		return source
	}
	return frontmatter.New(source).Strip()
}

func (c *EnrichedCopy) HasChanges(fs vfs.Filesystem) (bool, error) {
	if !fs.IsFile(c.DestinationAbs) {
		return true, nil
	}
	dest, err := fs.ReadString(c.DestinationAbs)
	if err != nil {
		return false, err
	}
	if !strings.Contains(dest, "x_tech_docs_enriched") {
		return true, nil
	}
	source, err := fs.ReadString(c.SourceAbs)
	if err != nil {
		return false, err
	}
	if strings.HasPrefix(source, "---") {
		sourceParts := strings.SplitN(source, "---\n", 3)
		if len(sourceParts) >= 2 {
			wantHash := hashutil.String(sourceParts[1])
			if frontmatter.StoredSourceHash(dest) != wantHash {
				return true, nil
			}
		}
	}
	wantBodyHash := hashutil.String(bodyOf(source))
	gotBodyHash := hashutil.String(bodyOf(dest))
	return wantBodyHash != gotBodyHash, nil
}

func (c *EnrichedCopy) SourceFiles() []string      { return []string{c.SourceAbs} }
func (c *EnrichedCopy) DestinationFiles() []string { return []string{c.DestinationAbs} }

func (c *EnrichedCopy) Format(formatter PathFormatter) string {
	return "Copy " + formatter.Format(c.SourceAbs) + " to " + formatter.Format(c.DestinationAbs)
}
