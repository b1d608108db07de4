package pathutil

import (
	"os"
	"path/filepath"
)

// FileSystem is the minimal filesystem view needed for directory discovery.
type FileSystem interface {
	Stat(path string) (os.FileInfo, error)
}

// OSFileSystem implements FileSystem using the real OS.
type OSFileSystem struct{}

func (OSFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// FindConfigDirectory walks upward from path to the nearest existing directory.
// Relative paths and depot paths yield "".
func FindConfigDirectory(fs FileSystem, path string) string {
	if path == "" || IsDepotPath(path) || !filepath.IsAbs(path) {
		return ""
	}
	for dir := filepath.Clean(path); ; {
		if info, err := fs.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// DirExists reports whether path names an existing directory.
func DirExists(fs FileSystem, path string) bool {
	if path == "" {
		return false
	}
	info, err := fs.Stat(path)
	return err == nil && info.IsDir()
}
