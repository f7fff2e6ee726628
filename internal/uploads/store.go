package uploads

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/irvandi/gotoko/pkg/common"
	"github.com/pkg/errors"
)

// Prefix is the public URL prefix uploaded files are served under.
const Prefix = "/uploads"

// Store persists uploaded payloads under a durable directory.
// Filenames are derived from snowflake identifiers, so two concurrent
// saves can never collide the way timestamp-based names can.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "uploads: create dir")
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory files are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes src to a uniquely named file preserving the original
// extension and returns the public reference path.
func (s *Store) Save(src io.Reader, originalName string) (string, error) {
	name := common.UUIDstr() + strings.ToLower(filepath.Ext(originalName))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", errors.Wrap(err, "uploads: create file")
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dst.Name())
		return "", errors.Wrap(err, "uploads: write file")
	}
	return Prefix + "/" + name, nil
}

// Remove deletes a stored file by its public reference.
func (s *Store) Remove(ref string) error {
	name := path.Base(ref)
	if name == "." || name == "/" {
		return errors.Errorf("uploads: invalid reference %q", ref)
	}
	return os.Remove(filepath.Join(s.dir, name))
}

// Open reads back a stored file by its public reference.
func (s *Store) Open(ref string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.dir, path.Base(ref)))
}
