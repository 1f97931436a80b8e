package vo

// ControlKind tells which control of the panel was edited
type ControlKind int

const (
	ControlTag ControlKind = iota
	ControlGlobal
	ControlAll
)

func (k ControlKind) String() string {
	switch k {
	case ControlGlobal:
		return "GLOBAL"
	case ControlAll:
		return "ALL"
	default:
		return "TAG"
	}
}

// ParseControlKind accepts names returned by String
func ParseControlKind(s string) (ControlKind, bool) {
	switch s {
	case "TAG", "":
		return ControlTag, true
	case "GLOBAL":
		return ControlGlobal, true
	case "ALL":
		return ControlAll, true
	}
	return ControlTag, false
}
