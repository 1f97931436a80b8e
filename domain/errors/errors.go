package errors

import (
	"errors"
	"fmt"

	"github.com/cloudcopper/levelpanel/lib"
)

const ErrMustBeAbsPath = lib.Error("must be absolute path")
const ErrLevelOutOfRange = lib.Error("level out of range")
const ErrUnknownControl = lib.Error("unknown control")
const ErrPanelInactive = lib.Error("panel is inactive")
const ErrUnsecureKey = lib.Error("unsecure store key")
const ErrUnknownStore = lib.Error("unknown store")
const ErrMissingLevel = lib.Error("missing level")
const ErrMissingEnabled = lib.Error("missing enabled")
const ErrNullLevel = lib.Error("null level")
const ErrRecordNotObject = lib.Error("record is not an object")

type ErrCorruptRecord struct {
	Key string
	Err error
}

func (e ErrCorruptRecord) Error() string {
	return fmt.Sprintf("corrupt record %v: %v", e.Key, e.Err)
}

func (e ErrCorruptRecord) Unwrap() error {
	return e.Err
}

var Is = errors.Is
