package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern maps a dynamic route to its metrics label.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns are evaluated in order, most specific first.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/movies/[^/]+/poster$`), Template: "/movies/:id/poster"},
	{Pattern: regexp.MustCompile(`^/movies/\d+$`), Template: "/movies/:id"},
	{Pattern: regexp.MustCompile(`^/swagger/.+$`), Template: "/swagger/*"},
}

// NormalizePath collapses ID-bearing paths into templates so that metrics
// labels stay bounded. Query strings and a trailing slash are stripped;
// static paths pass through unchanged.
//
//	NormalizePath("/movies/597/poster")  // "/movies/:id/poster"
//	NormalizePath("/recommendations")    // "/recommendations"
//	NormalizePath("/movies?x=1")         // "/movies"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	return path
}
