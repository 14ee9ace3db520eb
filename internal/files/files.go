// Package files implements generic file tools missing from the standard library.
package files

import (
	"os"
	"path/filepath"
	"strings"
)

// Exists returns true if file or directory exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Ext returns the lower-cased extension of path, without the leading dot.
func Ext(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
