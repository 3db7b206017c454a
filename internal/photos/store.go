// Package photos serves grave photos from a local directory or an S3
// bucket, and audits which referenced photos exist.
package photos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/ziadkadry99/gravemap/internal/location"
)

// ErrNotFound is returned when a photo does not exist.
var ErrNotFound = errors.New("photo not found")

// Info describes a stored photo.
type Info struct {
	Name        string
	Size        int64
	ContentType string
	ModTime     time.Time
}

// Store reads photos by slash-separated name, e.g. "images/A_II_3_1.jpg".
type Store interface {
	Open(ctx context.Context, name string) (io.ReadCloser, Info, error)
	List(ctx context.Context) ([]string, error)
}

// FSStore reads photos from a file system rooted at the site directory.
type FSStore struct {
	fsys fs.FS
}

// NewFSStore serves photos below dir.
func NewFSStore(dir string) *FSStore {
	return &FSStore{fsys: os.DirFS(dir)}
}

// NewFSStoreFromFS wraps an existing fs.FS.
func NewFSStoreFromFS(fsys fs.FS) *FSStore {
	return &FSStore{fsys: fsys}
}

// Open opens a photo. Names that escape the root are reported as not found.
func (s *FSStore) Open(_ context.Context, name string) (io.ReadCloser, Info, error) {
	name = strings.TrimPrefix(name, "/")
	if !fs.ValidPath(name) {
		return nil, Info{}, ErrNotFound
	}
	f, err := s.fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, Info{}, ErrNotFound
	}
	if err != nil {
		return nil, Info{}, fmt.Errorf("opening %s: %w", name, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, Info{}, fmt.Errorf("stat %s: %w", name, err)
	}
	if st.IsDir() {
		f.Close()
		return nil, Info{}, ErrNotFound
	}
	return f, Info{
		Name:        name,
		Size:        st.Size(),
		ContentType: contentType(name),
		ModTime:     st.ModTime(),
	}, nil
}

// List returns every file below the photo directory, sorted.
func (s *FSStore) List(_ context.Context) ([]string, error) {
	var names []string
	err := fs.WalkDir(s.fsys, location.PhotoDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == location.PhotoDir && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if !d.IsDir() {
			names = append(names, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing photos: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
