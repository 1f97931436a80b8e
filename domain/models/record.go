package models

import (
	"github.com/cloudcopper/levelpanel/domain/errors"
	"github.com/cloudcopper/levelpanel/domain/vo"
)

// Record is externalized form of ControlState.
// Every key is optional, the missing key means "not configured"
// and shall not be treated as level NONE.
type Record struct {
	Loggers map[Tag]*vo.Level `json:"loggers,omitempty"`
	Global  *vo.Level         `json:"global,omitempty"`
	All     *vo.Level         `json:"all,omitempty"`
}

// NewLevels converts tag levels to the record form
func NewLevels(tags map[Tag]vo.Level) map[Tag]*vo.Level {
	levels := make(map[Tag]*vo.Level, len(tags))
	for tag, level := range tags {
		levels[tag] = &level
	}
	return levels
}

func NewRecord(state *ControlState) *Record {
	global, all := state.Global, state.All
	return &Record{
		Loggers: NewLevels(state.Tags),
		Global:  &global,
		All:     &all,
	}
}

// Validate checks every present level is within the scale.
// The null tag level has no meaning, so it is an error too.
func (r *Record) Validate() error {
	for _, l := range r.Loggers {
		if l == nil {
			return errors.ErrNullLevel
		}
		if !l.Valid() {
			return errors.ErrLevelOutOfRange
		}
	}
	if r.Global != nil && !r.Global.Valid() {
		return errors.ErrLevelOutOfRange
	}
	if r.All != nil && !r.All.Valid() {
		return errors.ErrLevelOutOfRange
	}
	return nil
}
