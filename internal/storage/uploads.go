package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var audioExtensions = map[string]bool{
	".mp3": true, ".wav": true, ".m4a": true, ".ogg": true,
	".flac": true, ".aac": true, ".wma": true, ".opus": true,
}

// IsAudioFile reports whether name has a supported audio extension.
func IsAudioFile(name string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(name))]
}

// UploadStore persists uploaded audio files under a base directory,
// naming them by a generated id to avoid collisions.
type UploadStore struct {
	basePath string
}

func NewUploadStore(basePath string) (*UploadStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &UploadStore{basePath: basePath}, nil
}

// Save streams r to disk and returns the generated id, the stored path
// and the number of bytes written. Empty files are rejected.
func (s *UploadStore) Save(filename string, r io.Reader) (id, path string, size int64, err error) {
	if !IsAudioFile(filename) {
		return "", "", 0, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}

	id = uuid.New().String()
	path = filepath.Join(s.basePath, id+strings.ToLower(filepath.Ext(filename)))

	f, err := os.Create(path)
	if err != nil {
		return "", "", 0, fmt.Errorf("create upload file: %w", err)
	}

	size, err = io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", "", 0, fmt.Errorf("write upload: %w", err)
	}
	if size == 0 {
		os.Remove(path)
		return "", "", 0, fmt.Errorf("empty file")
	}

	return id, path, size, nil
}

// Remove deletes a stored file, refusing paths outside the base directory.
func (s *UploadStore) Remove(path string) error {
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(absPath, absBase+string(os.PathSeparator)) {
		return os.ErrPermission
	}
	return os.Remove(absPath)
}
