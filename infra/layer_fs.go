package infra

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/cloudcopper/levelpanel/lib"
)

// LayerFileSystem is read only fs of ordered layers.
// The file is taken from the first layer having it,
// directories list union of all layers.
type LayerFileSystem struct {
	layers []fs.FS
}

const ErrWrongParamType = lib.Error("wrong param type")

// NewLayerFileSystem creates fs of layers, the first param is the top layer.
// The param might be:
//   - string - os directory, the "${NAME}" takes it from env, empty is skipped
//   - func() (string, error) - os directory, like os.Getwd
//   - fs.FS - like embed.FS or result of fs.Sub
//   - *LayerFileSystem - its layers are appended
func NewLayerFileSystem(params ...interface{}) (*LayerFileSystem, error) {
	var err error
	l := &LayerFileSystem{}
	for _, p := range params {
		l, err = l.Append(p)
		if err != nil {
			return l, err
		}
	}
	return l, nil
}

func (l *LayerFileSystem) Append(p interface{}) (*LayerFileSystem, error) {
	switch v := p.(type) {
	case func() (string, error):
		path, err := v()
		if err != nil {
			return l, err
		}
		l.appendDir(path)

	case string:
		v = strings.TrimSpace(v)
		if strings.HasPrefix(v, "${") && strings.HasSuffix(v, "}") {
			v = os.Getenv(v[2 : len(v)-1])
		}
		l.appendDir(v)

	case *LayerFileSystem:
		l.layers = append(l.layers, v.layers...)

	case fs.FS:
		l.layers = append(l.layers, v)

	default:
		return l, ErrWrongParamType
	}

	return l, nil
}

func (l *LayerFileSystem) appendDir(path string) {
	if path == "" {
		return
	}
	lib.Assert(!strings.Contains(path, ".."))
	l.layers = append(l.layers, os.DirFS(path))
}

func (l *LayerFileSystem) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	for _, layer := range l.layers {
		f, err := layer.Open(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}

		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, err
		}
		if !info.IsDir() {
			return f, nil
		}
		return &layerDir{File: f, fs: l, name: name}, nil
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

func (l *LayerFileSystem) ReadFile(name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	for _, layer := range l.layers {
		data, err := fs.ReadFile(layer, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return data, err
	}
	return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
}

// ReadDir returns entries of all layers sorted by name.
// The entry of upper layer hides same named entries below.
func (l *LayerFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}
	m, found := make(map[string]fs.DirEntry), false
	for _, layer := range l.layers {
		entries, err := fs.ReadDir(layer, name)
		if err != nil {
			continue
		}
		found = true
		for _, e := range entries {
			if _, exists := m[e.Name()]; exists {
				continue
			}
			m[e.Name()] = e
		}
	}
	if !found {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}

	entries := make([]fs.DirEntry, 0, len(m))
	for _, e := range m {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}

// layerDir is directory of the top layer listing entries of all layers
type layerDir struct {
	fs.File
	fs      *LayerFileSystem
	name    string
	entries []fs.DirEntry
	read    bool
}

func (d *layerDir) ReadDir(n int) ([]fs.DirEntry, error) {
	if !d.read {
		entries, err := d.fs.ReadDir(d.name)
		if err != nil {
			return nil, err
		}
		d.entries, d.read = entries, true
	}

	if n <= 0 {
		entries := d.entries
		d.entries = nil
		return entries, nil
	}
	if len(d.entries) == 0 {
		return nil, io.EOF
	}
	n = min(n, len(d.entries))
	entries := d.entries[:n]
	d.entries = d.entries[n:]
	return entries, nil
}
