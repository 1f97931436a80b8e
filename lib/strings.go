package lib

import (
	"regexp"
	"strings"
)

var reValidID = regexp.MustCompile("^[a-zA-Z0-9][a-zA-Z0-9-_.]*$")

func IsValidID(s string) bool {
	if !reValidID.MatchString(s) {
		return false
	}
	if strings.Contains(s, "..") {
		return false
	}
	return true
}
