// Package render wraps the two external blackbox collaborators techdocs
// delegates rendering to: a PlantUML diagram renderer invoked as a
// subprocess, and an OpenAPI spec bundler backed by a real parsing library.
package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

// SubprocessError wraps a failed PlantUML render invocation, carrying the
// renderer's captured stderr for diagnostics.
type SubprocessError struct {
	Command []string
	Stderr  string
	Err     error
}

func (e *SubprocessError) Error() string {
	return fmt.Sprintf("plantuml render failed (%v): %v: %s", e.Command, e.Err, e.Stderr)
}

func (e *SubprocessError) Unwrap() error { return e.Err }

// PlantUMLGenerator renders PlantUML source to SVG via an external
// renderer invoked as a subprocess, grounded in the same
// exec.CommandContext + separate stdout/stderr capture pattern used
// elsewhere in this codebase for external process invocation.
type PlantUMLGenerator struct {
	Command        []string
	TimeoutSeconds int
}

// NewPlantUMLGenerator builds a generator invoking command (argv form),
// bounding each invocation to timeoutSeconds (no bound if zero or
// negative).
func NewPlantUMLGenerator(command []string, timeoutSeconds int) *PlantUMLGenerator {
	return &PlantUMLGenerator{Command: command, TimeoutSeconds: timeoutSeconds}
}

// Generate renders pumlSource to its textual output (typically an SVG
// document), feeding it to the configured command's stdin.
func (g *PlantUMLGenerator) Generate(ctx context.Context, pumlSource string) (string, error) {
	if len(g.Command) == 0 {
		return "", fmt.Errorf("plantuml generator has no command configured")
	}

	if g.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(g.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, g.Command[0], g.Command[1:]...)
	cmd.Stdin = bytes.NewBufferString(pumlSource)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &SubprocessError{Command: g.Command, Stderr: stderr.String(), Err: err}
	}
	return stdout.String(), nil
}
