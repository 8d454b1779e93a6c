package detectors

import (
	"path/filepath"

	"github.com/harrison/techdocs/internal/index"
	"github.com/harrison/techdocs/internal/ops"
	"github.com/harrison/techdocs/internal/vfs"
)

// DeleteDetector compares the files a run is about to produce against the
// repo's index of previously produced files. Anything indexed but no
// longer produced gets a Delete operation; the index itself is updated in
// place (Add for files still produced, Remove for files now deleted) so a
// caller can persist it once the run completes.
type DeleteDetector struct {
	repo     string
	ix       *index.Index
	fromPath string
	toPath   string
}

// NewDeleteDetector builds a DeleteDetector scoped to repo's slice of ix.
func NewDeleteDetector(repo string, ix *index.Index, fromPath, toPath string) *DeleteDetector {
	return &DeleteDetector{repo: repo, ix: ix, fromPath: fromPath, toPath: toPath}
}

func (d *DeleteDetector) Detect(fs vfs.Filesystem, previous []ops.Operation) ([]ops.Operation, error) {
	produced := make(map[string]bool, len(previous))
	for _, op := range previous {
		for _, f := range op.DestinationFiles() {
			rel, err := filepath.Rel(d.toPath, f)
			if err != nil {
				return nil, err
			}
			produced[rel] = true
		}
	}

	result := make([]ops.Operation, 0, len(previous))
	result = append(result, previous...)

	for _, item := range d.ix.Items() {
		if item.Repo != d.repo {
			continue
		}
		if produced[item.File] {
			continue
		}
		result = append(result, &ops.Delete{DestinationAbs: filepath.Join(d.toPath, item.File)})
		d.ix.Remove(item)
	}

	for file := range produced {
		if err := d.ix.Add(index.Item{File: file, Repo: d.repo}); err != nil {
			return nil, err
		}
	}

	return result, nil
}
