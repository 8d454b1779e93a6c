// Package vfs abstracts the filesystem operations techdocs needs so that
// the detector and operation logic can run identically against a real
// filesystem or an in-memory double in tests.
package vfs

import "regexp"

// Filesystem is the minimal surface every component in this module touches.
// Paths passed to Scan are directories; the returned paths are relative to
// that directory, never prefixed by it.
type Filesystem interface {
	IsFile(fspath string) bool
	IsDir(fspath string) bool
	Copy(source, destination string) error
	WriteString(file, content string) error
	ReadString(file string) (string, error)
	ReadBytes(file string) ([]byte, error)
	Delete(file string) error
	Scan(directory string, pattern *regexp.Regexp) ([]string, error)
}

// DefaultScanPattern matches any filename, mirroring the ".*" regex the
// original scan contract defaults to.
var DefaultScanPattern = regexp.MustCompile(".*")
