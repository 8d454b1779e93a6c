package detectors

import (
	"github.com/harrison/techdocs/internal/ops"
	"github.com/harrison/techdocs/internal/vfs"
)

// FilterDetector is the final stage: it drops operations that would be a
// no-op against the current state of the destination tree. An OpenAPI
// bundle operation is also kept (even if its own source is unchanged) when
// any file it transitively references is the source of a non-delete
// operation anywhere in the list, since that reference's content may have
// changed the bundle's output.
type FilterDetector struct{}

// NewFilterDetector builds a FilterDetector.
func NewFilterDetector() *FilterDetector {
	return &FilterDetector{}
}

func (d *FilterDetector) Detect(fs vfs.Filesystem, previous []ops.Operation) ([]ops.Operation, error) {
	changedTargets := make(map[string]bool, len(previous))
	for _, op := range previous {
		if _, isDelete := op.(*ops.Delete); isDelete {
			continue
		}
		for _, f := range op.SourceFiles() {
			changedTargets[f] = true
		}
	}

	result := make([]ops.Operation, 0, len(previous))
	for _, op := range previous {
		has, err := op.HasChanges(fs)
		if err != nil {
			return nil, err
		}
		if has {
			result = append(result, op)
			continue
		}
		if openapiOp, ok := op.(*ops.OpenAPI); ok && refsChanged(openapiOp, changedTargets) {
			result = append(result, op)
		}
	}
	return result, nil
}

func refsChanged(op *ops.OpenAPI, changedTargets map[string]bool) bool {
	for _, ref := range op.RefFiles() {
		if changedTargets[ref] {
			return true
		}
	}
	return false
}
