package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/harrison/techdocs/internal/vfs"
)

// ErrProjectDoesNotExist is returned by DocPath for a project absent from
// the destination's projects.json.
type ErrProjectDoesNotExist struct {
	Project string
}

func (e *ErrProjectDoesNotExist) Error() string {
	return fmt.Sprintf("Project %s does not exist", e.Project)
}

type projectRecord struct {
	Path string `json:"path"`
}

// ProjectRegistry lazily loads <directory>/projects.json and resolves a
// project id to its docs-root path relative to the destination.
type ProjectRegistry struct {
	directory string
	fs        vfs.Filesystem
	projects  map[string]projectRecord
	loaded    bool
}

// NewProjectRegistry returns a registry reading projects.json from directory.
func NewProjectRegistry(directory string, fs vfs.Filesystem) *ProjectRegistry {
	return &ProjectRegistry{directory: directory, fs: fs}
}

// DocPath returns the docs-root path registered for project.
func (r *ProjectRegistry) DocPath(project string) (string, error) {
	if err := r.ensureLoaded(); err != nil {
		return "", err
	}
	record, ok := r.projects[project]
	if !ok {
		return "", &ErrProjectDoesNotExist{Project: project}
	}
	return record.Path, nil
}

func (r *ProjectRegistry) ensureLoaded() error {
	if r.loaded {
		return nil
	}
	text, err := r.fs.ReadString(filepath.Join(r.directory, "projects.json"))
	if err != nil {
		return fmt.Errorf("read projects.json: %w", err)
	}
	var decoded map[string]projectRecord
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return fmt.Errorf("parse projects.json: %w", err)
	}
	r.projects = decoded
	r.loaded = true
	return nil
}
