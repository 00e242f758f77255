package extract

import (
	"strings"
)

// extractGeneral is the fallback rule set: document shape and feature flags
// without any type-specific interpretation.
func extractGeneral(text string, opts Options) Fields {
	lines := nonBlankLines(text)
	words := strings.Fields(text)

	var maxLen, totalLen int
	for _, l := range lines {
		totalLen += len(l)
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	avgLen := 0
	if len(lines) > 0 {
		avgLen = totalLen / len(lines)
	}

	f := Fields{
		"lineCount":  len(lines),
		"wordCount":  len(words),
		"charCount":  len(text),
		"hasNumbers": reLineNumber.MatchString(text),
		"hasEmail":   reEmail.MatchString(text),
		"hasPhone":   rePhone.MatchString(text),
		"hasDates":   len(findDates(text)) > 0,
		"hasURLs":    reURL.MatchString(text),
		"lineStats": Fields{
			"averageLength": avgLen,
			"maxLength":     maxLen,
		},
	}
	if opts.Enabled("detectLanguage") {
		f["language"] = detectLanguage(text)
	}
	return f
}
