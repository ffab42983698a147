package youtube

import "regexp"

// videoIDRe accepts the short-link form (youtu.be/<id>) and the query form (watch?v=<id>).
var videoIDRe = regexp.MustCompile(`(?:youtu\.be/|watch\?v=)([\w-]+)`)

// ExtractVideoID returns the identifier captured from url. The second result is
// false when neither accepted shape is present.
func ExtractVideoID(url string) (string, bool) {
	m := videoIDRe.FindStringSubmatch(url)
	if len(m) < 2 || m[1] == "" {
		return "", false
	}
	return m[1], true
}
