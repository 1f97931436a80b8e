package models

import "github.com/cloudcopper/levelpanel/lib/types"

const (
	StoreFile = "file"
	StoreDB   = "db"
)

// Panel holds the panel settings
type Panel struct {
	// Namespace is substring of tags rendered first
	Namespace      string         `yaml:"namespace"`
	StoreKey       string         `yaml:"storeKey" validate:"required,validid"`
	Store          string         `yaml:"store" validate:"required,oneof=file db"`
	StoreDir       string         `yaml:"storeDir" validate:"omitempty,abspath"`
	DBSource       string         `yaml:"dbSource"`
	Watch          bool           `yaml:"watch"`
	RequestTimeout types.Duration `yaml:"requestTimeout" validate:"min=0"`
}
