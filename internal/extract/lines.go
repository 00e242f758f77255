package extract

import (
	"regexp"
	"strings"
)

var (
	reLineNumber   = regexp.MustCompile(`\d`)
	reLineCurrency = regexp.MustCompile(`[£$€¥]`)
	reLineEmail    = regexp.MustCompile(`\S+@\S+\.\S+`)
	reLinePhone    = regexp.MustCompile(`\d{3}[-.]?\d{3}[-.]?\d{4}`)
)

// AnalyzeLines splits text on newlines and classifies each line by its
// structural features. Deterministic and side-effect free.
func AnalyzeLines(text string) []Line {
	raw := strings.Split(text, "\n")
	lines := make([]Line, len(raw))
	for i, l := range raw {
		trimmed := strings.TrimSpace(l)
		lines[i] = Line{
			Index:       i,
			Text:        l,
			Trimmed:     trimmed,
			Length:      len(trimmed),
			IsBlank:     trimmed == "",
			HasNumbers:  reLineNumber.MatchString(l),
			HasCurrency: reLineCurrency.MatchString(l),
			HasEmail:    reLineEmail.MatchString(l),
			HasPhone:    reLinePhone.MatchString(l),
		}
	}
	return lines
}
