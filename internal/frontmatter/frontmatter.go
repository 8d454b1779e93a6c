// Package frontmatter performs the minimal text-level manipulation of
// `---`-delimited frontmatter blocks that EnrichedCopy needs: it never
// parses the block as structured YAML, it only appends raw attribute text,
// mirroring the deliberately narrow approach of the tool this was adapted
// from.
package frontmatter

import (
	"regexp"
	"strings"
	"time"

	"github.com/harrison/techdocs/internal/hashutil"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const delimiter = "---\n"

// Attribute produces a raw text fragment to append to the frontmatter
// block, given the block's current raw content. Returning "" means this
// attribute has nothing to add (usually because it is already present).
type Attribute func(currentFrontmatter string) string

// Enricher wraps a document's content, splitting it into a frontmatter
// block and a body on first use.
type Enricher struct {
	original string
	content  string
}

// New wraps content for enrichment. If content does not already begin with
// a frontmatter block, an empty one is synthesized.
func New(content string) *Enricher {
	wrapped := content
	if !strings.HasPrefix(content, "---") {
		wrapped = "---\n---\n" + content
	}
	return &Enricher{original: content, content: wrapped}
}

// Enrich appends the output of each attribute to the frontmatter block and
// returns the resulting document. If no attribute produced anything, the
// original, unwrapped content is returned unchanged.
func (e *Enricher) Enrich(attributes ...Attribute) string {
	parts := strings.SplitN(e.content, delimiter, 3)
	if len(parts) < 2 {
		return e.original
	}
	added := false
	for _, attribute := range attributes {
		extra := attribute(parts[1])
		if extra != "" {
			added = true
			parts[1] += extra
		}
	}
	if !added {
		return e.original
	}
	return strings.Join(parts, delimiter)
}

// Strip removes the frontmatter block, returning only the body.
func (e *Enricher) Strip() string {
	parts := strings.SplitN(e.content, delimiter, 3)
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}

// CustomEditURL produces the custom_edit_url attribute, pointing at the
// source file's location in repo on branch, unless already present.
func CustomEditURL(repo, fileRelToRepoRoot, branch string) Attribute {
	return func(current string) string {
		if strings.Contains(current, "custom_edit_url") {
			return ""
		}
		return "custom_edit_url: https://github.com/PiwikPRO/" + repo + "/edit/" + branch + "/" + fileRelToRepoRoot + "\n"
	}
}

// LastUpdate produces the last_update attribute (current date plus author),
// unless already present.
func LastUpdate(author string) Attribute {
	return func(current string) string {
		if strings.Contains(current, "last_update") {
			return ""
		}
		return "last_update:\n  date: " + time.Now().Format(time.RFC3339) + "\n  author: " + author + "\n"
	}
}

// SourceFrontmatterHash produces the x_source_frontmatter_hash attribute,
// the SHA-256 hash of the source document's own frontmatter block, so a
// later run can detect whether the source frontmatter changed. It produces
// nothing if the source document had no frontmatter block at all.
func SourceFrontmatterHash(sourceContent string) Attribute {
	return func(current string) string {
		if !strings.HasPrefix(sourceContent, "---") {
			return ""
		}
		parts := strings.SplitN(sourceContent, delimiter, 3)
		if len(parts) < 2 {
			return ""
		}
		return "x_source_frontmatter_hash: " + hashutil.String(parts[1]) + "\n"
	}
}

// EnrichedMarker produces the x_tech_docs_enriched attribute, the marker
// HasChanges uses to detect whether a destination file was ever enriched.
func EnrichedMarker() Attribute {
	return func(current string) string {
		if strings.Contains(current, "x_tech_docs_enriched") {
			return ""
		}
		return "x_tech_docs_enriched: true\n"
	}
}

// AutoTitle produces the title attribute by extracting the first
// level-1 Markdown heading from body, unless a title is already present.
// Unlike the other attributes, this reads structured content (via
// goldmark's AST) rather than raw text, but it never rewrites the body
// itself — only the returned fragment is appended to the frontmatter block.
func AutoTitle(body string) Attribute {
	return func(current string) string {
		if strings.Contains(current, "title:") {
			return ""
		}
		heading := firstH1(body)
		if heading == "" {
			return ""
		}
		return "title: " + heading + "\n"
	}
}

func firstH1(body string) string {
	source := []byte(body)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	var found string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || found != "" {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != 1 {
			return ast.WalkContinue, nil
		}
		found = headingPlainText(heading, source)
		return ast.WalkStop, nil
	})
	return found
}

// headingPlainText concatenates the raw text segments of a heading's inline
// children, skipping over any inline markup nodes (emphasis, links, etc).
func headingPlainText(heading *ast.Heading, source []byte) string {
	var b strings.Builder
	for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
		ast.Walk(child, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}
			if textNode, ok := n.(*ast.Text); ok {
				b.Write(textNode.Segment.Value(source))
			}
			return ast.WalkContinue, nil
		})
	}
	return b.String()
}

var sourceHashPattern = regexp.MustCompile(`(?s).*x_source_frontmatter_hash:\s([a-z0-9]+)\n.*`)

// StoredSourceHash extracts the x_source_frontmatter_hash value previously
// written into a destination document's frontmatter, or "" if absent.
func StoredSourceHash(destFrontmatter string) string {
	match := sourceHashPattern.FindStringSubmatch(destFrontmatter)
	if match == nil {
		return ""
	}
	return match[1]
}
