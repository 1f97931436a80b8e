package lib

import "strings"

// IsSecureFileName checking the file name does not have some hacks in it
func IsSecureFileName(name string) bool {
	if name == "" || name == "." {
		return false
	}
	if strings.Contains(name, "..") || strings.Contains(name, "./") || strings.Contains(name, ":") {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return true
}
