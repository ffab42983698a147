package youtube

import "strings"

// Normalize joins segment texts with single spaces and collapses every
// whitespace run, trimming both ends. Segment order is preserved.
func Normalize(segments []string) string {
	return strings.Join(strings.Fields(strings.Join(segments, " ")), " ")
}
