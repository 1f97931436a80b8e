package vo

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Level is a point on the ordered severity scale.
// The LevelDefault is not a verbosity but a sentinel
// meaning no explicit choice was made.
type Level int

const (
	LevelDefault Level = -1
	LevelNone    Level = 0
	LevelError   Level = 1
	LevelWarning Level = 2
	LevelInfo    Level = 3
	LevelDebug   Level = 4
)

var levelNames = map[Level]string{
	LevelDefault: "DEFAULT",
	LevelNone:    "NONE",
	LevelError:   "ERROR",
	LevelWarning: "WARNING",
	LevelInfo:    "INFO",
	LevelDebug:   "DEBUG",
}

// Levels returns all levels in ascending order
func Levels() []Level {
	return []Level{LevelDefault, LevelNone, LevelError, LevelWarning, LevelInfo, LevelDebug}
}

func (l Level) Valid() bool {
	return l >= LevelDefault && l <= LevelDebug
}

func (l Level) IsDefault() bool {
	return l == LevelDefault
}

func (l Level) Int() int {
	return int(l)
}

func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel accepts either level name (case insensitive)
// or its integer value.
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		l := Level(i)
		if !l.Valid() {
			return LevelDefault, fmt.Errorf("level out of range: %v", i)
		}
		return l, nil
	}

	name := strings.ToUpper(s)
	if name == "WARN" {
		name = "WARNING"
	}
	for l, n := range levelNames {
		if n == name {
			return l, nil
		}
	}
	return LevelDefault, fmt.Errorf("unknown level: %q", s)
}

func (l *Level) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	i, err := ParseLevel(s)
	if err != nil {
		return fmt.Errorf("invalid level: %v", err)
	}
	*l = i
	return nil
}

func (l Level) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}
