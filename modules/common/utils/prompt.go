package utils

import (
	"regexp"
	"strings"

	"paprika-server/modules/common/config"
)

// whitespace-only lines, counting \v and Unicode spaces as whitespace
var multiLineBreaks = regexp.MustCompile(`\n[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]*\n`)

// RemoveLineBreaks - collapse blank lines into one break, then turn every break into a space.
// The order matters: blank-line runs must be collapsed before single breaks are replaced.
func RemoveLineBreaks(text string) string {
	text = multiLineBreaks.ReplaceAllString(text, "\n")
	return strings.ReplaceAll(text, "\n", " ")
}

// FormatPrompt - truncate to config.MaxPromptLength characters and remove line breaks
func FormatPrompt(text string) string {
	return RemoveLineBreaks(truncateRunes(text, config.MaxPromptLength))
}

func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
