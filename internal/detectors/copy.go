package detectors

import (
	"path/filepath"
	"strings"

	"github.com/harrison/techdocs/internal/config"
	"github.com/harrison/techdocs/internal/nodes"
	"github.com/harrison/techdocs/internal/ops"
	"github.com/harrison/techdocs/internal/vfs"
)

// markdownExtensions is the exact, case-sensitive set of extensions that
// route a matched file through EnrichedCopy instead of a plain Copy.
var markdownExtensions = map[string]bool{
	".md":  true,
	".MD":  true,
	".mdx": true,
	".MDX": true,
}

// CopyDetector is the first stage of the chain: it scans the source tree
// and, for every file matching a document rule, builds a Copy or
// EnrichedCopy operation.
type CopyDetector struct {
	fromPath string
	toPath   string
	author   string
	branch   string
	registry *config.ProjectRegistry
	rules    []rule
}

// NewCopyDetector builds a CopyDetector for the given run.
func NewCopyDetector(fromPath, toPath, author, branch string, registry *config.ProjectRegistry, cfg config.Config) *CopyDetector {
	return &CopyDetector{
		fromPath: fromPath,
		toPath:   toPath,
		author:   author,
		branch:   branch,
		registry: registry,
		rules:    rulesFor(cfg.Documents),
	}
}

// Detect scans fromPath and returns one operation per matched file.
func (d *CopyDetector) Detect(fs vfs.Filesystem, previous []ops.Operation) ([]ops.Operation, error) {
	files, err := fs.Scan(d.fromPath, vfs.DefaultScanPattern)
	if err != nil {
		return nil, err
	}
	var result []ops.Operation
	for _, file := range files {
		op, err := d.forFile(fs, file)
		if err != nil {
			return nil, err
		}
		if op != nil {
			result = append(result, op)
		}
	}
	return result, nil
}

func (d *CopyDetector) forFile(fs vfs.Filesystem, file string) (ops.Operation, error) {
	for _, r := range d.rules {
		if r.match(file) {
			return d.createOperation(fs, file, r)
		}
	}
	return nil, nil
}

func (d *CopyDetector) createOperation(fs vfs.Filesystem, file string, r rule) (ops.Operation, error) {
	source := r.entry.Source
	destination := r.entry.Destination

	var relativeSrc, relativeDst string
	switch {
	case nodes.LooksFileish(source) && nodes.LooksDirish(destination):
		relativeSrc = file
		if nodes.LooksGlobish(source) {
			prefix := source[:strings.Index(source, "**/*")]
			relativeDst = filepath.Join(destination, strings.TrimPrefix(file, prefix))
		} else {
			relativeDst = filepath.Join(destination, filepath.Base(file))
		}
	case nodes.LooksFileish(source) && nodes.LooksFileish(destination):
		relativeSrc = file
		relativeDst = destination
	case nodes.LooksDirish(source) && nodes.LooksDirish(destination):
		relativeSrc = file
		relativeDst = filepath.Join(destination, file[len(source)-1:])
	default:
		return nil, nil
	}

	var docPath string
	if d.registry != nil {
		path, err := d.registry.DocPath(r.entry.Project)
		if err != nil {
			return nil, err
		}
		docPath = path
	}

	sourceAbs, err := filepath.Abs(filepath.Join(d.fromPath, relativeSrc))
	if err != nil {
		return nil, err
	}
	destinationAbs, err := filepath.Abs(filepath.Join(d.toPath, docPath, relativeDst))
	if err != nil {
		return nil, err
	}

	if markdownExtensions[filepath.Ext(file)] {
		fromAbs, err := filepath.Abs(d.fromPath)
		if err != nil {
			return nil, err
		}
		return &ops.EnrichedCopy{
			SourceAbs:      sourceAbs,
			DestinationAbs: destinationAbs,
			FromAbs:        fromAbs,
			Repo:           filepath.Base(fromAbs),
			Author:         d.author,
			Branch:         d.branch,
		}, nil
	}
	return &ops.Copy{SourceAbs: sourceAbs, DestinationAbs: destinationAbs}, nil
}
