package mocks

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/felixgeelhaar/axsetup/internal/ports"
)

// FileSystem is a thread-safe in-memory test double for ports.FileSystem.
type FileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool
}

// NewFileSystem creates a new FileSystem mock.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

// AddFile adds a file to the mock filesystem.
func (fs *FileSystem) AddFile(path string, content string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files[path] = []byte(content)
}

// AddDir adds a directory to the mock filesystem.
func (fs *FileSystem) AddDir(path string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.dirs[path] = true
}

// Content returns a file's content as a string, or "" if absent.
func (fs *FileSystem) Content(path string) string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return string(fs.files[path])
}

// ReadFile reads a file from the mock filesystem.
func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if content, ok := fs.files[path]; ok {
		return append([]byte(nil), content...), nil
	}
	return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
}

// WriteFile writes a file to the mock filesystem.
func (fs *FileSystem) WriteFile(path string, data []byte, _ os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files[path] = append([]byte(nil), data...)
	return nil
}

// Exists checks if a file or directory exists in the mock filesystem.
func (fs *FileSystem) Exists(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	_, fileExists := fs.files[path]
	return fileExists || fs.dirs[path]
}

// IsDir checks if a path is a directory in the mock filesystem.
func (fs *FileSystem) IsDir(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.dirs[path]
}

// MkdirAll creates a directory in the mock filesystem.
func (fs *FileSystem) MkdirAll(path string, _ os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.dirs[path] = true
	return nil
}

// CopyFile copies a file in the mock filesystem.
func (fs *FileSystem) CopyFile(src, dest string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	content, ok := fs.files[src]
	if !ok {
		return fmt.Errorf("open %s: %w", src, os.ErrNotExist)
	}
	fs.files[dest] = append([]byte(nil), content...)
	return nil
}

// Remove removes a file or directory from the mock filesystem.
func (fs *FileSystem) Remove(path string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	delete(fs.files, path)
	delete(fs.dirs, path)
	return nil
}

// RemoveAll removes path and every entry below it.
func (fs *FileSystem) RemoveAll(path string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for p := range fs.files {
		if within(p, path) {
			delete(fs.files, p)
		}
	}
	for p := range fs.dirs {
		if within(p, path) {
			delete(fs.dirs, p)
		}
	}
	return nil
}

// Rename moves oldpath and every entry below it to newpath.
func (fs *FileSystem) Rename(oldpath, newpath string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	_, isFile := fs.files[oldpath]
	if !isFile && !fs.dirs[oldpath] {
		return fmt.Errorf("rename %s %s: %w", oldpath, newpath, os.ErrNotExist)
	}
	if fs.dirs[newpath] {
		return fmt.Errorf("rename %s %s: %w", oldpath, newpath, os.ErrExist)
	}
	for p, content := range fs.files {
		if within(p, oldpath) {
			delete(fs.files, p)
			fs.files[newpath+strings.TrimPrefix(p, oldpath)] = content
		}
	}
	for p := range fs.dirs {
		if within(p, oldpath) {
			delete(fs.dirs, p)
			fs.dirs[newpath+strings.TrimPrefix(p, oldpath)] = true
		}
	}
	return nil
}

func within(p, root string) bool {
	return p == root || strings.HasPrefix(p, strings.TrimSuffix(root, "/")+"/")
}

// ReadDir returns the sorted names of direct children of path.
func (fs *FileSystem) ReadDir(path string) ([]string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if !fs.dirs[path] {
		return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}

	prefix := strings.TrimSuffix(path, "/") + "/"
	seen := make(map[string]bool)
	collect := func(p string) {
		if !strings.HasPrefix(p, prefix) {
			return
		}
		rest := strings.TrimPrefix(p, prefix)
		if rest == "" {
			return
		}
		seen[strings.SplitN(rest, string(filepath.Separator), 2)[0]] = true
	}
	for p := range fs.files {
		collect(p)
	}
	for p := range fs.dirs {
		collect(p)
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Ensure FileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*FileSystem)(nil)
