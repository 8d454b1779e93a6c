// Package nodes classifies document-rule path strings by shape. The
// classification is purely lexical: none of these functions touch the
// filesystem.
package nodes

import "strings"

// LooksDirish reports whether fspath denotes a directory by convention:
// it ends in a slash, ends in a wildcard, or is exactly the current-directory
// marker ".".
func LooksDirish(fspath string) bool {
	return strings.HasSuffix(fspath, "/") || strings.HasSuffix(fspath, "*") || fspath == "."
}

// LooksFileish reports whether fspath denotes a single file by convention,
// i.e. it does not look like a directory.
func LooksFileish(fspath string) bool {
	return !LooksDirish(fspath)
}

// LooksWildcardish reports whether fspath contains a wildcard anywhere.
func LooksWildcardish(fspath string) bool {
	return strings.Contains(fspath, "*")
}

// LooksGlobish reports whether fspath contains a recursive glob segment.
func LooksGlobish(fspath string) bool {
	return strings.Contains(fspath, "**/*")
}
