package models

import "github.com/cloudcopper/levelpanel/domain/vo"

// Host describes the tags and levels of the reference host registry.
// It is used by standalone binaries, which have no real host to inject into.
type Host struct {
	Base   vo.Level         `yaml:"base" validate:"gte=0,lte=4"`
	Global vo.Level         `yaml:"global" validate:"gte=-1,lte=4"`
	Tags   map[Tag]vo.Level `yaml:"tags" validate:"dive,keys,required,endkeys,gte=-1,lte=4"`
}
