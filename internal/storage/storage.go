// Package storage keeps uploaded blobs on a local filesystem path.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

var (
	ErrTooLarge    = errors.New("blob exceeds size limit")
	ErrOutsideRoot = errors.New("path is outside the storage root")
)

const maxNameLength = 128

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Object describes a stored blob.
type Object struct {
	Name string
	Path string
	Size int64
}

type Store struct {
	fs   afero.Fs
	root string
	now  func() time.Time
}

// NewLocalStore stores blobs under root on the OS filesystem, creating it if needed.
func NewLocalStore(root string) (*Store, error) {
	return New(afero.NewOsFs(), root)
}

func New(fs afero.Fs, root string) (*Store, error) {
	root = filepath.Clean(root)
	if err := fs.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root %s: %w", root, err)
	}
	return &Store{fs: fs, root: root, now: time.Now}, nil
}

func (s *Store) Root() string {
	return s.root
}

// GenerateName returns <unix-millis>-<random>-<sanitized original>, distinct for every call.
func (s *Store) GenerateName(original string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d-%s-%s", s.now().UnixMilli(), suffix, SanitizeName(original))
}

// SanitizeName keeps the base name of an upload and replaces anything outside [A-Za-z0-9._-].
func SanitizeName(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "file"
	}
	clean := strings.Trim(unsafeChars.ReplaceAllString(base, "_"), "._")
	if clean == "" {
		clean = "file"
	}
	if len(clean) > maxNameLength {
		ext := filepath.Ext(clean)
		if len(ext) > 16 {
			ext = ""
		}
		clean = clean[:maxNameLength-len(ext)] + ext
	}
	return clean
}

// Save writes r under a generated name. At most limit bytes are accepted (limit <= 0 means
// unlimited); a larger stream is discarded and ErrTooLarge returned.
func (s *Store) Save(original string, r io.Reader, limit int64) (Object, error) {
	name := s.GenerateName(original)
	path := filepath.Join(s.root, name)

	f, err := s.fs.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return Object{}, fmt.Errorf("create blob %s: %w", name, err)
	}

	src := r
	if limit > 0 {
		src = io.LimitReader(r, limit+1)
	}
	written, copyErr := io.Copy(f, src)
	closeErr := f.Close()

	switch {
	case copyErr != nil:
		_ = s.fs.Remove(path)
		return Object{}, fmt.Errorf("write blob %s: %w", name, copyErr)
	case closeErr != nil:
		_ = s.fs.Remove(path)
		return Object{}, fmt.Errorf("close blob %s: %w", name, closeErr)
	case limit > 0 && written > limit:
		_ = s.fs.Remove(path)
		return Object{}, ErrTooLarge
	}

	return Object{Name: name, Path: path, Size: written}, nil
}

func (s *Store) Open(path string) (afero.File, error) {
	if err := s.contains(path); err != nil {
		return nil, err
	}
	return s.fs.Open(path)
}

// Remove deletes the blob at path. A blob that is already gone is not an error.
func (s *Store) Remove(path string) error {
	if err := s.contains(path); err != nil {
		return err
	}
	if err := s.fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove blob %s: %w", path, err)
	}
	return nil
}

// List returns the paths of all blobs directly under the root.
func (s *Store) List() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.root, err)
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(s.root, e.Name()))
	}
	return paths, nil
}

func (s *Store) contains(path string) error {
	rel, err := filepath.Rel(s.root, filepath.Clean(path))
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return ErrOutsideRoot
	}
	return nil
}

// Prune removes every blob whose path is not in keep and returns the orphaned paths.
// With dryRun set nothing is removed.
func (s *Store) Prune(keep map[string]struct{}, dryRun bool) ([]string, error) {
	paths, err := s.List()
	if err != nil {
		return nil, err
	}

	var orphans []string
	for _, path := range paths {
		if _, ok := keep[filepath.Clean(path)]; ok {
			continue
		}
		orphans = append(orphans, path)
		if dryRun {
			continue
		}
		if err := s.Remove(path); err != nil {
			return orphans, err
		}
	}
	return orphans, nil
}
