// Package images keeps uploaded files in a single directory and serves them
// back read-only under a URL prefix.
package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"hotel_listings/internal/adapters/observability"
	"hotel_listings/internal/domain"
)

const (
	DefaultPrefix   = "/uploads"
	DefaultMaxBytes = 5 << 20
)

var (
	ErrTooLarge     = errors.New("file too large")
	ErrOutsideStore = errors.New("path is not inside the image store")
)

type Store struct {
	dir      string
	prefix   string
	maxBytes int64
	now      func() time.Time
}

// New returns a Store writing into dir. Stored paths look like
// prefix + "/" + name. A maxBytes <= 0 selects DefaultMaxBytes.
func New(dir, prefix string, maxBytes int64) *Store {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{
		dir:      dir,
		prefix:   "/" + strings.Trim(prefix, "/"),
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

func (s *Store) Dir() string     { return s.dir }
func (s *Store) Prefix() string  { return s.prefix }
func (s *Store) MaxBytes() int64 { return s.maxBytes }

// fileName is "<unix-millis>-<original base name>".
func (s *Store) fileName(original string) string {
	base := strings.TrimLeft(path.Base(strings.ReplaceAll(original, "\\", "/")), ".")
	if base == "" || base == "/" {
		base = "file"
	}
	return fmt.Sprintf("%d-%s", s.now().UnixMilli(), base)
}

// Save streams r into the store and returns the stored path. Nothing is
// visible under the final name until the whole part has been accepted.
func (s *Store) Save(ctx context.Context, original string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		observability.ObserveImage("save", "error")
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	name := s.fileName(original)

	tmp := filepath.Join(s.dir, "."+uuid.NewString()+".part")
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		observability.ObserveImage("save", "error")
		return "", fmt.Errorf("create temp file: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > s.maxBytes {
		err = ErrTooLarge
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		_ = os.Remove(tmp)
		if errors.Is(err, ErrTooLarge) {
			observability.ObserveImage("save", "too_large")
			return "", fmt.Errorf("%s: %w (limit %d bytes)", original, ErrTooLarge, s.maxBytes)
		}
		observability.ObserveImage("save", "error")
		return "", fmt.Errorf("write %s: %w", original, err)
	}

	if err := os.Rename(tmp, filepath.Join(s.dir, name)); err != nil {
		_ = os.Remove(tmp)
		observability.ObserveImage("save", "error")
		return "", fmt.Errorf("store %s: %w", original, err)
	}
	observability.ObserveImage("save", "ok")
	observability.ObserveImageBytes(n)
	return path.Join(s.prefix, name), nil
}

// resolve maps a stored path back to a file directly inside dir.
func (s *Store) resolve(p string) (string, error) {
	name, ok := strings.CutPrefix(p, s.prefix+"/")
	if !ok || name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%q: %w", p, ErrOutsideStore)
	}
	return filepath.Join(s.dir, name), nil
}

// Remove deletes the file behind a stored path.
func (s *Store) Remove(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.resolve(p)
	if err != nil {
		observability.ObserveImage("remove", "error")
		return err
	}
	if err := os.Remove(full); err != nil {
		observability.ObserveImage("remove", "error")
		return err
	}
	observability.ObserveImage("remove", "ok")
	return nil
}

// Files lists stored images. Temp files and subdirectories are skipped. A
// missing directory is an empty store.
func (s *Store) Files() ([]domain.StoredFile, error) {
	ents, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]domain.StoredFile, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue // removed meanwhile
		}
		out = append(out, domain.StoredFile{
			Path:    path.Join(s.prefix, e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return out, nil
}

// Handler serves stored files read-only. It is meant to be mounted at
// Prefix()+"/*"; directories and dotfiles answer 404.
func (s *Store) Handler() http.Handler {
	return http.StripPrefix(s.prefix, http.FileServer(filesOnly{http.Dir(s.dir)}))
}

type filesOnly struct{ root http.FileSystem }

func (f filesOnly) Open(name string) (http.File, error) {
	if strings.HasPrefix(path.Base(name), ".") {
		return nil, fs.ErrNotExist
	}
	file, err := f.root.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if st.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}
