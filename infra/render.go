package infra

import (
	"html/template"
	"io/fs"
	"os"

	"github.com/cloudcopper/levelpanel/domain/vo"
	"github.com/unrolled/render"
)

type Render = *render.Render

func NewRender(f fs.FS, layout string) Render {
	opts := render.Options{
		FileSystem: render.FS(f),
		Extensions: []string{".tmpl", ".html"},
		Layout:     layout,
		Funcs: []template.FuncMap{
			{
				"levels": vo.Levels,
			},
		},
		IsDevelopment: func() bool {
			return os.Getenv("GO_ENV") == "development"
		}(),
	}
	r := render.New(opts)
	return r
}
