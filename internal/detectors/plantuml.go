package detectors

import (
	"strings"

	"github.com/harrison/techdocs/internal/ops"
	"github.com/harrison/techdocs/internal/vfs"
)

// PlantUMLDetector replaces every copy operation whose source is a .puml
// file with a PlantUML render operation targeting the equivalent .svg
// destination.
type PlantUMLDetector struct {
	generator ops.PlantUMLGenerator
}

// NewPlantUMLDetector builds a detector rendering via generator.
func NewPlantUMLDetector(generator ops.PlantUMLGenerator) *PlantUMLDetector {
	return &PlantUMLDetector{generator: generator}
}

func (d *PlantUMLDetector) Detect(fs vfs.Filesystem, previous []ops.Operation) ([]ops.Operation, error) {
	var result []ops.Operation
	for _, op := range previous {
		if !isPumlOperation(op) {
			result = append(result, op)
			continue
		}
		result = append(result, &ops.PlantUML{
			SourceAbs:      firstOf(op.SourceFiles()),
			DestinationAbs: ops.SwapToSVG(firstOf(op.DestinationFiles())),
			Generator:      d.generator,
		})
	}
	return result, nil
}

func isPumlOperation(op ops.Operation) bool {
	for _, f := range op.SourceFiles() {
		if strings.HasSuffix(f, ".puml") {
			return true
		}
	}
	return false
}

func firstOf(files []string) string {
	if len(files) == 0 {
		return ""
	}
	return files[0]
}
