package vfs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/harrison/techdocs/internal/filelock"
)

// OSFilesystem implements Filesystem against the real operating system
// filesystem: sorted output, absolute-safe walking, directories created
// on demand before any write.
type OSFilesystem struct{}

// NewOSFilesystem returns a Filesystem backed by the real filesystem.
func NewOSFilesystem() *OSFilesystem {
	return &OSFilesystem{}
}

func (OSFilesystem) IsFile(fspath string) bool {
	info, err := os.Stat(fspath)
	return err == nil && !info.IsDir()
}

func (OSFilesystem) IsDir(fspath string) bool {
	info, err := os.Stat(fspath)
	return err == nil && info.IsDir()
}

func (OSFilesystem) Copy(source, destination string) error {
	if err := os.MkdirAll(filepath.Dir(destination), 0755); err != nil {
		return fmt.Errorf("create destination directory for %s: %w", destination, err)
	}
	in, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("open source %s: %w", source, err)
	}
	defer in.Close()

	out, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("create destination %s: %w", destination, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s to %s: %w", source, destination, err)
	}
	return nil
}

// WriteString writes content to file atomically (temp file + rename in the
// same directory), so concurrent readers never observe a partial write.
func (OSFilesystem) WriteString(file, content string) error {
	if err := filelock.AtomicWrite(file, []byte(content)); err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}
	return nil
}

func (OSFilesystem) ReadString(file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", file, err)
	}
	return string(data), nil
}

func (OSFilesystem) ReadBytes(file string) ([]byte, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return data, nil
}

func (OSFilesystem) Delete(file string) error {
	if err := os.Remove(file); err != nil {
		return fmt.Errorf("delete %s: %w", file, err)
	}
	return nil
}

// Scan walks directory recursively and returns, sorted, every regular file
// whose base name matches pattern, as paths relative to directory.
func (OSFilesystem) Scan(directory string, pattern *regexp.Regexp) ([]string, error) {
	if pattern == nil {
		pattern = DefaultScanPattern
	}
	var results []string
	err := filepath.WalkDir(directory, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// Non-fatal per-entry errors are skipped, matching the
			// fileutil scanner's continue-on-error stance.
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !pattern.MatchString(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(directory, path)
		if err != nil {
			return nil
		}
		results = append(results, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", directory, err)
	}
	sort.Strings(results)
	return results, nil
}
