package ports

import (
	"os"
	"path/filepath"
	"strings"
)

// FileSystem is the file access provisioning steps need. Paths are absolute;
// ReadDir returns entry names, files and directories alike.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	Exists(path string) bool
	IsDir(path string) bool
	MkdirAll(path string, perm os.FileMode) error
	CopyFile(src, dest string) error
	Remove(path string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
	ReadDir(path string) ([]string, error)
}

// ExpandHome replaces a leading "~" or "~/" with home. Other paths,
// including "~user/...", are returned unchanged.
func ExpandHome(path, home string) string {
	switch {
	case home == "":
		return path
	case path == "~":
		return home
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:])
	}
	return path
}
