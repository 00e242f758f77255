package extract

import (
	"regexp"
	"strings"
)

// Character-confusion fixes for handwriting OCR. Best-effort substitution,
// not spellchecking: digits that land inside alphabetic words are almost
// always misread letters.
var ocrFixes = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`([a-z])0([a-z])`), `${1}o${2}`},
	{regexp.MustCompile(`([A-Z])0([A-Z])`), `${1}O${2}`},
	{regexp.MustCompile(`([a-z])1([a-z])`), `${1}l${2}`},
	{regexp.MustCompile(`([a-z])5([a-z])`), `${1}s${2}`},
	{regexp.MustCompile(`([A-Z])5([A-Z])`), `${1}S${2}`},
	{regexp.MustCompile(`\|`), `I`},
}

var (
	reBulletItem   = regexp.MustCompile(`^(?:[-*•·]|\d{1,2}[.)])\s+(.+)$`)
	reKeyPointLine = regexp.MustCompile(`^[A-Z].{0,60}[:!]$`)
)

// extractHandwriting cleans common OCR confusions, then pulls list items
// and classifies the remaining lines as paragraphs or key points.
func extractHandwriting(text string, opts Options) Fields {
	f := Fields{}

	cleaned := text
	if opts.Enabled("cleanupText") {
		for _, fix := range ocrFixes {
			cleaned = fix.re.ReplaceAllString(cleaned, fix.repl)
		}
	}
	f["cleanedText"] = cleaned

	var listItems, paragraphs, keyPoints []string
	for _, l := range nonBlankLines(cleaned) {
		if m := reBulletItem.FindStringSubmatch(l); m != nil {
			listItems = append(listItems, strings.TrimSpace(m[1]))
			continue
		}
		if reKeyPointLine.MatchString(l) || len(l) < 40 {
			keyPoints = append(keyPoints, l)
		} else {
			paragraphs = append(paragraphs, l)
		}
	}
	if opts.Enabled("extractLists") && len(listItems) > 0 {
		f["listItems"] = listItems
	}
	if len(paragraphs) > 0 {
		f["paragraphs"] = paragraphs
	}
	if len(keyPoints) > 0 {
		f["keyPoints"] = keyPoints
	}
	return f
}
