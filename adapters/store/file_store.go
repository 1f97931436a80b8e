package store

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	domainErrors "github.com/cloudcopper/levelpanel/domain/errors"
	"github.com/cloudcopper/levelpanel/lib"
	"github.com/cloudcopper/levelpanel/ports"
	"github.com/spf13/afero"
)

// FileStore keeps every key as file of the directory.
// The value is written to temporary file and renamed,
// so readers never see partial value.
type FileStore struct {
	log ports.Logger
	fs  ports.FS
	dir string
}

func NewFileStore(log ports.Logger, fs ports.FS, dir string) (*FileStore, error) {
	log = log.With(slog.String("entity", "FileStore"), slog.String("dir", dir))
	if err := fs.MkdirAll(dir, 0o750); err != nil {
		return nil, err
	}
	s := &FileStore{
		log: log,
		fs:  fs,
		dir: dir,
	}
	log.Info("created")
	return s, nil
}

// Path returns file name of the key
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key)
}

func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) Get(key string) (string, bool, error) {
	if !lib.IsSecureFileName(key) {
		return "", false, domainErrors.ErrUnsecureKey
	}
	data, err := afero.ReadFile(s.fs, s.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

func (s *FileStore) Set(key, value string) error {
	if !lib.IsSecureFileName(key) {
		return domainErrors.ErrUnsecureKey
	}
	tmp := s.Path("." + key + ".tmp")
	if err := afero.WriteFile(s.fs, tmp, []byte(value), 0o640); err != nil {
		return err
	}
	if err := s.fs.Rename(tmp, s.Path(key)); err != nil {
		_ = s.fs.Remove(tmp)
		return err
	}
	s.log.Debug("set", slog.String("key", key), slog.Int("size", len(value)))
	return nil
}

func (s *FileStore) Delete(key string) error {
	if !lib.IsSecureFileName(key) {
		return domainErrors.ErrUnsecureKey
	}
	if lib.NoSuchFile(s.fs, s.Path(key)) {
		return nil
	}
	s.log.Debug("delete", slog.String("key", key))
	return s.fs.Remove(s.Path(key))
}

// Size returns size of stored value or zero
func (s *FileStore) Size(key string) int64 {
	return lib.FileSize(s.fs, s.Path(key))
}

// Keys returns stored keys sorted.
// Hidden files, like temporary ones, are not keys.
func (s *FileStore) Keys() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, err
	}
	keys := []string{}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		keys = append(keys, e.Name())
	}
	return keys, nil
}
