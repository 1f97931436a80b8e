package store

import (
	"log/slog"
	"testing"

	domainErrors "github.com/cloudcopper/levelpanel/domain/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	assert := require.New(t)
	fs := afero.NewMemMapFs()
	s, err := NewFileStore(slog.Default(), fs, "/var/lib/levelpanel")
	assert.NoError(err)

	// Missing key
	_, ok, err := s.Get("clpp_loggers")
	assert.NoError(err)
	assert.False(ok)
	assert.NoError(s.Delete("clpp_loggers"))

	// Set and overwrite
	assert.NoError(s.Set("clpp_loggers", `{"global":3}`))
	assert.NoError(s.Set("clpp_loggers", `{"global":4}`))
	v, ok, err := s.Get("clpp_loggers")
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(`{"global":4}`, v)
	assert.Equal(int64(len(v)), s.Size("clpp_loggers"))

	// No temporary files left behind
	entries, err := afero.ReadDir(fs, "/var/lib/levelpanel")
	assert.NoError(err)
	assert.Len(entries, 1)
	assert.NoError(afero.WriteFile(fs, "/var/lib/levelpanel/.clpp_loggers.tmp", []byte("{"), 0o640))
	keys, err := s.Keys()
	assert.NoError(err)
	assert.Equal([]string{"clpp_loggers"}, keys)
	assert.Equal("clpp_loggers", entries[0].Name())

	// Delete is idempotent
	assert.NoError(s.Delete("clpp_loggers"))
	assert.NoError(s.Delete("clpp_loggers"))
	_, ok, err = s.Get("clpp_loggers")
	assert.NoError(err)
	assert.False(ok)
	assert.Zero(s.Size("clpp_loggers"))
}

func TestFileStoreUnsecureKey(t *testing.T) {
	assert := require.New(t)
	s, err := NewFileStore(slog.Default(), afero.NewMemMapFs(), "/store")
	assert.NoError(err)

	for _, key := range []string{"../etc/passwd", "a/b", "", "c:x"} {
		assert.ErrorIs(s.Set(key, "x"), domainErrors.ErrUnsecureKey, key)
		_, _, err := s.Get(key)
		assert.ErrorIs(err, domainErrors.ErrUnsecureKey, key)
		assert.ErrorIs(s.Delete(key), domainErrors.ErrUnsecureKey, key)
	}
}
