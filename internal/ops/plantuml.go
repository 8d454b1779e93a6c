package ops

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/harrison/techdocs/internal/hashutil"
	"github.com/harrison/techdocs/internal/vfs"
)

// PlantUMLGenerator renders PlantUML source into an SVG (or other textual
// diagram) document.
type PlantUMLGenerator interface {
	Generate(ctx context.Context, pumlSource string) (string, error)
}

const plantUMLHashMarkerPrefix = "<!-- @tech-docs-hash="

// PlantUML renders a .puml source file to an SVG destination, injecting a
// content-hash marker so later runs can tell whether the fully-inlined
// PlantUML source (including !include directives) changed.
type PlantUML struct {
	SourceAbs      string
	DestinationAbs string
	Generator      PlantUMLGenerator
}

func (p *PlantUML) Name() string { return "plantuml" }

func (p *PlantUML) Execute(fs vfs.Filesystem) error {
	full, err := p.fullSource(fs)
	if err != nil {
		return err
	}
	rendered, err := p.Generator.Generate(context.Background(), full)
	if err != nil {
		return err
	}
	hash := hashutil.String(full)
	marker := plantUMLHashMarkerPrefix + hash + " -->"
	idx := strings.Index(rendered, "<svg ")
	var withMarker string
	if idx < 0 {
		withMarker = marker + rendered
	} else {
		withMarker = rendered[:idx] + marker + rendered[idx:]
	}
	return fs.WriteString(p.DestinationAbs, withMarker)
}

func (p *PlantUML) HasChanges(fs vfs.Filesystem) (bool, error) {
	if !fs.IsFile(p.DestinationAbs) {
		return true, nil
	}
	dest, err := fs.ReadString(p.DestinationAbs)
	if err != nil {
		return false, err
	}
	full, err := p.fullSource(fs)
	if err != nil {
		return false, err
	}
	marker := plantUMLHashMarkerPrefix + hashutil.String(full) + " -->"
	return !strings.Contains(dest, marker), nil
}

func (p *PlantUML) SourceFiles() []string      { return []string{p.SourceAbs} }
func (p *PlantUML) DestinationFiles() []string { return []string{p.DestinationAbs} }

func (p *PlantUML) Format(formatter PathFormatter) string {
	return "Render " + formatter.Format(p.SourceAbs) + " to " + formatter.Format(p.DestinationAbs)
}

// fullSource reads SourceAbs and recursively inlines any !include
// directives it finds, best-effort: a missing or cyclical include is left
// untouched rather than erroring.
func (p *PlantUML) fullSource(fs vfs.Filesystem) (string, error) {
	source, err := fs.ReadString(p.SourceAbs)
	if err != nil {
		return "", err
	}
	visited := map[string]bool{p.SourceAbs: true}
	return inlineIncludes(fs, source, filepath.Dir(p.SourceAbs), visited), nil
}

func inlineIncludes(fs vfs.Filesystem, content, baseDir string, visited map[string]bool) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "!include") {
			continue
		}
		includePath := strings.TrimSpace(strings.TrimPrefix(trimmed, "!include"))
		includePath = strings.Trim(includePath, "\"")
		abs := includePath
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(baseDir, includePath)
		}
		if visited[abs] || !fs.IsFile(abs) {
			// Missing include or cycle: leave the directive as-is.
			continue
		}
		visited[abs] = true
		includedContent, err := fs.ReadString(abs)
		if err != nil {
			continue
		}
		lines[i] = inlineIncludes(fs, includedContent, filepath.Dir(abs), visited)
	}
	return strings.Join(lines, "\n")
}

// SwapToSVG returns destAbs with its extension swapped to .svg, used by the
// PlantUML detector when promoting a generic copy into a render operation.
func SwapToSVG(destAbs string) string {
	return swapExtension(destAbs, "svg")
}
