package infra

import (
	"embed"
	"io"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

//
// Hand crafted basic test of layer fs
//

//go:embed testdata/layer_fs/test1/layer1.d/**
var testLayerFs1 embed.FS

func TestLayerFs1(t *testing.T) {
	assert := require.New(t)
	layer1, err := fs.Sub(testLayerFs1, "testdata/layer_fs/test1/layer1.d")
	assert.NoError(err)

	layerFS, err := NewLayerFileSystem("testdata/layer_fs/test1/layer3.d", "testdata/layer_fs/test1/layer2.d", layer1)
	assert.NoError(err)

	file, err := layerFS.Open(".")
	assert.NoError(err)

	info, err := file.Stat()
	assert.NoError(err)
	assert.True(info.IsDir())

	dir, ok := file.(fs.ReadDirFile)
	assert.True(ok)

	list, err := dir.ReadDir(-1)
	assert.NoError(err)

	files, content := []string{}, []string{}
	for _, l := range list {
		files = append(files, l.Name())

		b, err := layerFS.ReadFile(l.Name())
		assert.NoError(err)
		content = append(content, string(b))
	}

	expFiles := []string{"text0.txt", "text1.txt", "text2.txt", "text3.txt", "text4.txt", "text5.txt"}
	expContent := []string{
		"text0.txt from layer1.d",
		"text1.txt from layer2.d",
		"text2.txt from layer3.d",
		"text3.txt from layer3.d",
		"text4.txt from layer2.d",
		"text5.txt from layer3.d",
	}
	assert.Equal(expFiles, files)
	assert.Equal(expContent, content)
}

func TestLayerFsMapFS(t *testing.T) {
	assert := require.New(t)
	t.Setenv("TEST_LAYER_FS_ROOT", "testdata/layer_fs/test1/layer2.d")

	top := fstest.MapFS{
		"templates/panel.tmpl": {Data: []byte("top panel")},
		"text4.txt":            {Data: []byte("text4.txt from top")},
	}
	bottom := fstest.MapFS{
		"templates/panel.tmpl":      {Data: []byte("bottom panel")},
		"templates/errors/404.tmpl": {Data: []byte("bottom 404")},
	}
	layerFS, err := NewLayerFileSystem(top, "", "${TEST_LAYER_FS_ROOT}", bottom)
	assert.NoError(err)

	b, err := layerFS.ReadFile("templates/panel.tmpl")
	assert.NoError(err)
	assert.Equal("top panel", string(b))
	b, err = layerFS.ReadFile("templates/errors/404.tmpl")
	assert.NoError(err)
	assert.Equal("bottom 404", string(b))
	b, err = layerFS.ReadFile("text4.txt")
	assert.NoError(err)
	assert.Equal("text4.txt from top", string(b))
	b, err = layerFS.ReadFile("text1.txt")
	assert.NoError(err)
	assert.Equal("text1.txt from layer2.d", string(b))

	_, err = layerFS.ReadFile("nothing.txt")
	assert.ErrorIs(err, fs.ErrNotExist)
	_, err = layerFS.Open("../text1.txt")
	assert.ErrorIs(err, fs.ErrInvalid)

	// the walk sees union of all layers
	files := []string{}
	err = fs.WalkDir(layerFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	assert.NoError(err)
	assert.Equal([]string{"templates/errors/404.tmpl", "templates/panel.tmpl"}, files)

	// paged read of directory
	f, err := layerFS.Open(".")
	assert.NoError(err)
	dir, ok := f.(fs.ReadDirFile)
	assert.True(ok)
	names := []string{}
	for {
		list, err := dir.ReadDir(2)
		if err == io.EOF {
			break
		}
		assert.NoError(err)
		for _, e := range list {
			names = append(names, e.Name())
		}
	}
	assert.Equal([]string{"templates", "text1.txt", "text2.txt", "text4.txt"}, names)

	_, err = NewLayerFileSystem(42)
	assert.ErrorIs(err, ErrWrongParamType)
}
