package ports

import "github.com/cloudcopper/levelpanel/domain/vo"

// Registry is the host logging registry.
// The panel does not own it, it only reads tags and pushes levels.
type Registry interface {
	// ListTagsWithLevels returns every tag known to the host with its current level
	ListTagsWithLevels() map[string]vo.Level
	GlobalLevel() vo.Level
	SetGlobalLevel(vo.Level)
	// SetTagLevel must ignore tags unknown to the host
	SetTagLevel(tag string, level vo.Level)
}
