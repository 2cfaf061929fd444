// Package html_parser converts raw article HTML into readable plain text.
package html_parser

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	scriptRe = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	styleRe  = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`)
	brRe     = regexp.MustCompile(`(?i)<br\s*/?\s*>`)
	closePRe = regexp.MustCompile(`(?i)</p\s*>`)
	runRe    = regexp.MustCompile(`[ \t]{2,}`)
)

// StripTags reduces markup to plain text. Script and style blocks are
// removed with their content, <br> becomes a newline, a closing </p> becomes
// a blank line, remaining tags are stripped, entities are unescaped, runs of
// spaces/tabs collapse to one space, and leading/trailing blank lines are
// trimmed. Stripping already-plain text returns it unchanged.
func StripTags(raw string) string {
	s := scriptRe.ReplaceAllString(raw, "")
	s = styleRe.ReplaceAllString(s, "")
	s = brRe.ReplaceAllString(s, "\n")
	s = closePRe.ReplaceAllString(s, "\n\n")
	s = bluemonday.StrictPolicy().Sanitize(s)
	s = html.UnescapeString(s)
	s = runRe.ReplaceAllString(s, " ")
	return trimBlankEdges(s)
}

// trimBlankEdges drops blank lines at the start and end, keeping interior
// paragraph breaks intact.
func trimBlankEdges(s string) string {
	lines := strings.Split(s, "\n")
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	for i := start; i < end; i++ {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return strings.Join(lines[start:end], "\n")
}
