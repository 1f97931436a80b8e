package models

import "github.com/cloudcopper/levelpanel/domain/vo"

// Snapshot is the panel state as seen by the view.
// The per tag levels are the levels applied in the host registry.
type Snapshot struct {
	Active  bool
	Persist bool
	All     vo.Level
	Global  vo.Level
	Rows    []Row
}

type Row struct {
	Tag   Tag
	Level vo.Level
}
