package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrSourceNotFound indicates no search path contains the named source.
var ErrSourceNotFound = errors.New("source not found")

// Extension is the conventional file extension for key character maps.
const Extension = ".kcm"

// FileSource resolves source names against a list of search directories
// and reads their contents from disk.
type FileSource struct {
	mu    sync.RWMutex
	paths []string
}

// NewFileSource creates a file source with the given search directories.
func NewFileSource(paths ...string) *FileSource {
	return &FileSource{paths: append([]string(nil), paths...)}
}

// AddSearchPath appends a directory to search for map files.
func (s *FileSource) AddSearchPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, path)
}

// Resolve returns the file path a source name refers to. Names carrying
// a path separator are used as-is; bare names are searched in order,
// with and without the .kcm extension.
func (s *FileSource) Resolve(name string) (string, error) {
	if filepath.Base(name) != name {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("%w: %q", ErrSourceNotFound, name)
		}
		return name, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, dir := range s.paths {
		for _, candidate := range []string{name, name + Extension} {
			path := filepath.Join(dir, candidate)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrSourceNotFound, name)
}

// ReadSource implements charmap.SourceReader.
func (s *FileSource) ReadSource(name string) (string, error) {
	path, err := s.Resolve(name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading map source %q: %w", name, err)
	}
	return string(data), nil
}

// MemSource serves map sources from memory, for embedding and tests.
type MemSource struct {
	mu      sync.RWMutex
	sources map[string]string
}

// NewMemSource creates an empty in-memory source.
func NewMemSource() *MemSource {
	return &MemSource{sources: make(map[string]string)}
}

// Add registers contents under a source name, replacing any previous
// contents.
func (s *MemSource) Add(name, contents string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources[name] = contents
}

// Remove deletes a source, making later reads fail.
func (s *MemSource) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sources, name)
}

// ReadSource implements charmap.SourceReader.
func (s *MemSource) ReadSource(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	contents, ok := s.sources[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrSourceNotFound, name)
	}
	return contents, nil
}
