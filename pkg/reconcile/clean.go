package reconcile

import (
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// entities is the fixed set of named character entities the source lists
// actually use. Decoded in order; &amp; goes last so that already-decoded
// sequences are not decoded twice.
var entities = []struct {
	name  string
	value string
}{
	{"&nbsp;", " "},
	{"&quot;", `"`},
	{"&apos;", "'"},
	{"&#39;", "'"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&amp;", "&"},
}

// CleanText strips markup tags, decodes the fixed entity set, and collapses
// runs of whitespace into single spaces. Applied to the description and
// justification fields before storage.
func CleanText(s string) string {
	if s == "" {
		return ""
	}

	s = tagPattern.ReplaceAllString(s, " ")
	for _, e := range entities {
		s = strings.ReplaceAll(s, e.name, e.value)
	}
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
