package detectors

import (
	"github.com/harrison/techdocs/internal/ops"
	"github.com/harrison/techdocs/internal/vfs"
)

// Detector is one stage of the chain: given the prior stage's operation
// list (nil for the first stage), it returns the next stage's list.
type Detector interface {
	Detect(fs vfs.Filesystem, previous []ops.Operation) ([]ops.Operation, error)
}

// Chain runs a fixed sequence of detectors, feeding each stage's output as
// the next stage's input.
type Chain struct {
	stages []Detector
}

// NewChain builds a chain running stages in the given order (the copy
// command uses copy, plantuml, openapi, delete, filter).
func NewChain(stages ...Detector) *Chain {
	return &Chain{stages: stages}
}

// Run executes every stage in order and returns the final operation list.
func (c *Chain) Run(fs vfs.Filesystem) ([]ops.Operation, error) {
	var current []ops.Operation
	for _, stage := range c.stages {
		next, err := stage.Detect(fs, current)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}
