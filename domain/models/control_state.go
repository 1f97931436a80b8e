package models

import (
	"maps"

	"github.com/cloudcopper/levelpanel/domain/vo"
)

// Tag identifies one logger of the host.
// Tags are case sensitive and discovered, never created, by the panel.
type Tag = string

// ControlState is the full configuration surface of the panel.
//   - Global is the host wide default for tags without own level
//   - All forces every tag to its value, unless it is vo.LevelDefault
//   - Tags keeps explicit per tag levels touched by operator
type ControlState struct {
	Global vo.Level
	All    vo.Level
	Tags   map[Tag]vo.Level
}

func NewControlState(global vo.Level) *ControlState {
	return &ControlState{
		Global: global,
		All:    vo.LevelDefault,
		Tags:   make(map[Tag]vo.Level),
	}
}

func (s *ControlState) Clone() *ControlState {
	c := *s
	c.Tags = maps.Clone(s.Tags)
	if c.Tags == nil {
		c.Tags = make(map[Tag]vo.Level)
	}
	return &c
}
