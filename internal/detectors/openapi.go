package detectors

import (
	"encoding/json"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/harrison/techdocs/internal/ops"
	"github.com/harrison/techdocs/internal/vfs"
)

// OpenAPIDetector replaces every copy operation whose source is a root
// OpenAPI document (JSON or YAML, carrying both "openapi" and "paths" top
// level keys) with an OpenAPI bundle operation, resolving $ref references
// transitively so the resulting operation knows every file it depends on.
type OpenAPIDetector struct {
	bundler ops.OpenAPIBundler
}

// NewOpenAPIDetector builds a detector bundling via bundler.
func NewOpenAPIDetector(bundler ops.OpenAPIBundler) *OpenAPIDetector {
	return &OpenAPIDetector{bundler: bundler}
}

func (d *OpenAPIDetector) Detect(fs vfs.Filesystem, previous []ops.Operation) ([]ops.Operation, error) {
	var result []ops.Operation
	for _, op := range previous {
		sourceAbs := firstOf(op.SourceFiles())
		if sourceAbs == "" || !looksLikeOpenAPIRoot(fs, sourceAbs) {
			result = append(result, op)
			continue
		}
		destAbs := firstOf(op.DestinationFiles())
		if strings.EqualFold(filepath.Ext(sourceAbs), ".yaml") || strings.EqualFold(filepath.Ext(sourceAbs), ".yml") {
			destAbs = swapExtToJSON(destAbs)
		}
		refs := resolveRefs(fs, sourceAbs, map[string]bool{sourceAbs: true})
		result = append(result, ops.NewOpenAPI(sourceAbs, destAbs, d.bundler, refs))
	}
	return result, nil
}

func swapExtToJSON(p string) string {
	base := p[:len(p)-len(filepath.Ext(p))]
	return base + ".json"
}

// looksLikeOpenAPIRoot reports whether file is a root OpenAPI document: it
// carries both a top-level "openapi" key and a top-level "paths" key. A
// file that only carries reusable components (no "paths") is a fragment,
// not a root spec, and is left as a plain copy.
func looksLikeOpenAPIRoot(fs vfs.Filesystem, file string) bool {
	content, err := fs.ReadString(file)
	if err != nil {
		return false
	}
	ext := strings.ToLower(filepath.Ext(file))
	switch ext {
	case ".json":
		var decoded map[string]interface{}
		if err := json.Unmarshal([]byte(content), &decoded); err != nil {
			return false
		}
		_, hasOpenAPI := decoded["openapi"]
		_, hasPaths := decoded["paths"]
		return hasOpenAPI && hasPaths
	case ".yaml", ".yml":
		return topLevelYAMLKeyPresent(content, "openapi") && topLevelYAMLKeyPresent(content, "paths")
	default:
		return false
	}
}

var topLevelKeyPattern = func(key string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(key) + `\s*:`)
}

func topLevelYAMLKeyPresent(content, key string) bool {
	return topLevelKeyPattern(key).MatchString(content)
}

// resolveRefs walks file's $ref references transitively, returning every
// distinct file (other than the root file itself) referenced, with a
// visited set guarding against reference cycles. Same-file refs ("#/...")
// resolve to the containing file and are therefore excluded.
func resolveRefs(fs vfs.Filesystem, file string, visited map[string]bool) []string {
	content, err := fs.ReadString(file)
	if err != nil {
		return nil
	}
	var refTargets []string
	ext := strings.ToLower(filepath.Ext(file))
	if ext == ".json" {
		refTargets = jsonRefTargets(content)
	} else {
		refTargets = yamlRefTargets(content)
	}

	var result []string
	for _, target := range refTargets {
		filePart, _, _ := strings.Cut(target, "#")
		if filePart == "" {
			// Same-file reference; nothing new to add.
			continue
		}
		refAbs := filepath.Clean(filepath.Join(filepath.Dir(file), filePart))
		if visited[refAbs] {
			continue
		}
		visited[refAbs] = true
		result = append(result, refAbs)
		result = append(result, resolveRefs(fs, refAbs, visited)...)
	}
	return result
}

func jsonRefTargets(content string) []string {
	var decoded interface{}
	if err := json.Unmarshal([]byte(content), &decoded); err != nil {
		return nil
	}
	var targets []string
	walkJSONRefs(decoded, &targets)
	return targets
}

func walkJSONRefs(node interface{}, targets *[]string) {
	switch v := node.(type) {
	case map[string]interface{}:
		for key, value := range v {
			if key == "$ref" {
				if s, ok := value.(string); ok {
					*targets = append(*targets, s)
				}
				continue
			}
			walkJSONRefs(value, targets)
		}
	case []interface{}:
		for _, item := range v {
			walkJSONRefs(item, targets)
		}
	}
}

var yamlRefLinePattern = regexp.MustCompile(`\$ref:\s*(\S*)`)

// yamlRefTargets scans content line by line for "$ref:" entries, mirroring
// the original tool's avoid-a-general-YAML-parser stance.
func yamlRefTargets(content string) []string {
	var targets []string
	for _, line := range strings.Split(content, "\n") {
		match := yamlRefLinePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		targets = append(targets, strings.TrimSpace(match[1]))
	}
	return targets
}
