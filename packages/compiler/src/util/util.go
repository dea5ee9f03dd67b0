package util

import "regexp"

var nonWordRegexp = regexp.MustCompile(`\W`)

// SanitizeIdentifier replaces every non-word character with an underscore
func SanitizeIdentifier(name string) string {
	return nonWordRegexp.ReplaceAllString(name, "_")
}
