// Package config loads and validates the JSON documents configuration that
// drives a sync run, plus the destination's projects.json registry and the
// ambient YAML settings file.
package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/harrison/techdocs/internal/nodes"
	"github.com/harrison/techdocs/internal/vfs"
)

// ConfigError is a fatal problem with the documents config itself: missing
// keys, malformed JSON, or an invalid document entry when skipping is
// disabled.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

// DocumentError is a problem with a single document entry. It becomes fatal
// (wrapped into a ConfigError) unless the loader was built with
// SkipInvalidDocuments, in which case the entry is dropped and reported via
// Load's warnings return value.
type DocumentError struct {
	Message string
}

func (e *DocumentError) Error() string { return e.Message }

// DocumentEntry is one validated rule from the documents config.
type DocumentEntry struct {
	Project     string
	Source      string
	Destination string
	Exclude     []string
}

// Config is the fully validated documents configuration.
type Config struct {
	Documents []DocumentEntry
}

// Loader loads and validates a documents config file against the validator
// chain: root-level documents-key checks, then the full per-entry chain
// (key presence, shape coherence, project existence, path relativity).
type Loader struct {
	fs                   vfs.Filesystem
	registry             *ProjectRegistry
	skipInvalidDocuments bool
}

// NewLoader builds a Loader whose document entries are checked against
// registry for project existence; Load takes the source root they are
// resolved against.
func NewLoader(fs vfs.Filesystem, registry *ProjectRegistry, opts ...LoaderOption) *Loader {
	l := &Loader{fs: fs, registry: registry}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// SkipInvalidDocuments downgrades per-entry validation failures to warnings
// instead of aborting the run. Root-level failures (missing/malformed
// documents key) remain fatal regardless.
func SkipInvalidDocuments() LoaderOption {
	return func(l *Loader) { l.skipInvalidDocuments = true }
}

// Load reads configPath, validates it, and returns the resulting Config.
// warnings carries one message per document entry dropped because
// SkipInvalidDocuments was set.
func (l *Loader) Load(configPath, fromPath string) (cfg Config, warnings []string, err error) {
	text, readErr := l.fs.ReadString(configPath)
	if readErr != nil {
		return Config{}, nil, &ConfigError{Message: fmt.Sprintf("Config file `%s` not found", configPath)}
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return Config{}, nil, &ConfigError{Message: fmt.Sprintf("Config file `%s` is not a valid JSON file", configPath)}
	}

	rawDocuments, ok := decoded["documents"]
	if !ok {
		return Config{}, nil, &ConfigError{Message: fmt.Sprintf("Config must contain a documents section under `documents` key. Offending config: %v", decoded)}
	}
	documentsList, ok := rawDocuments.([]interface{})
	if !ok {
		return Config{}, nil, &ConfigError{Message: fmt.Sprintf("Config's `documents` key must be a list. Offending config: %v", decoded)}
	}

	var entries []DocumentEntry
	for _, rawEntry := range documentsList {
		entryMap, ok := rawEntry.(map[string]interface{})
		if !ok {
			return Config{}, nil, &ConfigError{Message: fmt.Sprintf("Document entry must be an object. Offending entry: %v", rawEntry)}
		}
		entry, docErr := l.validateEntry(entryMap, fromPath)
		if docErr != nil {
			if !l.skipInvalidDocuments {
				return Config{}, nil, &ConfigError{Message: docErr.Error()}
			}
			warnings = append(warnings, "Warning: "+docErr.Error())
			continue
		}
		entries = append(entries, entry)
	}
	return Config{Documents: entries}, warnings, nil
}

func (l *Loader) validateEntry(entry map[string]interface{}, fromPath string) (DocumentEntry, *DocumentError) {
	project, hasProject := entry["project"].(string)
	if !hasProject {
		return DocumentEntry{}, &DocumentError{Message: fmt.Sprintf("Each document entry must contain a project name under `project` key. Offending config: %v", entry)}
	}
	source, hasSource := entry["source"].(string)
	if !hasSource {
		return DocumentEntry{}, &DocumentError{Message: fmt.Sprintf("Document rule must contain a source under `source` key. Offending config: %v", entry)}
	}
	if !nodes.LooksFileish(source) && !nodes.LooksWildcardish(source) {
		return DocumentEntry{}, &DocumentError{Message: fmt.Sprintf("Source: `%s`  must either contain a wildcard or be a file. Offending config: %v", source, entry)}
	}
	destination, hasDestination := entry["destination"].(string)
	if !hasDestination {
		return DocumentEntry{}, &DocumentError{Message: fmt.Sprintf("Document rule must contain a destination under `destination` key. Offending config: %v", entry)}
	}

	var exclude []string
	if rawExclude, present := entry["exclude"]; present {
		excludeList, ok := rawExclude.([]interface{})
		if !ok {
			return DocumentEntry{}, &DocumentError{Message: fmt.Sprintf("Document rule's `exclude` key must be a list. Offending config: %v", entry)}
		}
		for _, v := range excludeList {
			if s, ok := v.(string); ok {
				exclude = append(exclude, s)
			}
		}
	}

	if !nodes.LooksWildcardish(source) && nodes.LooksFileish(source) && !l.fs.IsFile(filepath.Join(fromPath, source)) {
		return DocumentEntry{}, &DocumentError{Message: fmt.Sprintf("Source file `%s` does not exist", source)}
	}

	if wildcardInMiddle(source) && !nodes.LooksDirish(destination) {
		return DocumentEntry{}, &DocumentError{Message: fmt.Sprintf("Putting wildcards in the middle of the pattern is only supported if the destination is a directory. Offending config: %v", entry)}
	}

	if nodes.LooksDirish(source) && !nodes.LooksDirish(destination) {
		return DocumentEntry{}, &DocumentError{Message: fmt.Sprintf("Source is a directory but destination is not. Did you forget to add a trailing slash to desination? Offending config: %v", entry)}
	}

	if filepath.IsAbs(source) {
		return DocumentEntry{}, &DocumentError{Message: fmt.Sprintf("Path `%s` must not be absolute. Offending config: %v", source, entry)}
	}
	if filepath.IsAbs(destination) {
		return DocumentEntry{}, &DocumentError{Message: fmt.Sprintf("Path `%s` must not be absolute. Offending config: %v", destination, entry)}
	}

	if l.registry != nil {
		if _, err := l.registry.DocPath(project); err != nil {
			return DocumentEntry{}, &DocumentError{Message: fmt.Sprintf("Project `%s` is not declared in target's projects.json. Offending config: %v", project, entry)}
		}
	}

	return DocumentEntry{Project: project, Source: source, Destination: destination, Exclude: exclude}, nil
}

// wildcardInMiddle reports whether source has a wildcard anywhere except
// possibly its last character (a trailing wildcard is the common "dir/*"
// shape and is handled by the dirish checks instead).
func wildcardInMiddle(source string) bool {
	if len(source) == 0 {
		return false
	}
	body := source[:len(source)-1]
	for _, r := range body {
		if r == '*' {
			return true
		}
	}
	return false
}
