package vfs

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// MemFilesystem is a dict-backed double for Filesystem, mirroring the
// original MockFilesystem fixture: a flat map keyed by absolute path.
type MemFilesystem struct {
	Files map[string]string
}

// NewMemFilesystem returns a MemFilesystem pre-populated with files.
// A nil map is treated as empty.
func NewMemFilesystem(files map[string]string) *MemFilesystem {
	if files == nil {
		files = map[string]string{}
	}
	return &MemFilesystem{Files: files}
}

func (m *MemFilesystem) IsFile(fspath string) bool {
	_, ok := m.Files[fspath]
	return ok
}

func (m *MemFilesystem) IsDir(fspath string) bool {
	for f := range m.Files {
		if strings.HasPrefix(f, fspath) {
			return true
		}
	}
	return false
}

func (m *MemFilesystem) Copy(source, destination string) error {
	content, ok := m.Files[source]
	if !ok {
		return fmt.Errorf("file %s not found", source)
	}
	m.Files[destination] = content
	return nil
}

func (m *MemFilesystem) WriteString(file, content string) error {
	m.Files[file] = content
	return nil
}

func (m *MemFilesystem) ReadString(file string) (string, error) {
	content, ok := m.Files[file]
	if !ok {
		return "", fmt.Errorf("file %s not found", file)
	}
	return content, nil
}

func (m *MemFilesystem) ReadBytes(file string) ([]byte, error) {
	content, err := m.ReadString(file)
	if err != nil {
		return nil, err
	}
	return []byte(content), nil
}

func (m *MemFilesystem) Delete(file string) error {
	if _, ok := m.Files[file]; !ok {
		return fmt.Errorf("file %s not found", file)
	}
	delete(m.Files, file)
	return nil
}

func (m *MemFilesystem) Scan(directory string, pattern *regexp.Regexp) ([]string, error) {
	if pattern == nil {
		pattern = DefaultScanPattern
	}
	var results []string
	for f := range m.Files {
		if !strings.HasPrefix(f, directory) {
			continue
		}
		trimLen := len(directory)
		if !strings.HasSuffix(directory, "/") {
			trimLen++
		}
		if trimLen > len(f) {
			continue
		}
		rel := f[trimLen:]
		if rel == "" {
			continue
		}
		if !pattern.MatchString(filepath.Base(rel)) {
			continue
		}
		results = append(results, rel)
	}
	sort.Strings(results)
	return results, nil
}
