package scratch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store hands out request-scoped files under baseDir. Names carry a random
// UUID so concurrent requests never collide.
type Store struct {
	baseDir string
}

// New creates a scratch store rooted at baseDir. An empty baseDir means the
// OS temp directory.
func New(baseDir string) *Store {
	if strings.TrimSpace(baseDir) == "" {
		baseDir = os.TempDir()
	}
	return &Store{baseDir: baseDir}
}

// Dir returns the directory files are created in.
func (s *Store) Dir() string {
	return s.baseDir
}

// File is a transient artifact owned by a single request. Callers defer
// Remove right after acquiring it.
type File struct {
	Path string
}

// Reserve returns a unique path <prefix>_<uuid><ext> without creating it,
// for writers that insist on opening the path themselves.
func (s *Store) Reserve(prefix, ext string) (*File, error) {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return &File{Path: filepath.Join(s.baseDir, name(prefix, ext))}, nil
}

// Write copies r into a new unique file and returns it. On failure the
// partial file is already removed.
func (s *Store) Write(ctx context.Context, prefix, ext string, r io.Reader) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := s.Reserve(prefix, ext)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(file.Path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = file.Remove()
		return nil, fmt.Errorf("write body: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = file.Remove()
		return nil, fmt.Errorf("close file: %w", err)
	}
	return file, nil
}

// ReadAll reads the file back.
func (f *File) ReadAll() ([]byte, error) {
	return os.ReadFile(f.Path)
}

// Remove deletes the file. Removing a file that is already gone is not an error.
func (f *File) Remove() error {
	if f == nil || f.Path == "" {
		return nil
	}
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func name(prefix, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return fmt.Sprintf("%s_%s%s", prefix, uuid.NewString(), ext)
}
