package extract

import (
	"regexp"
	"strings"
)

// Language detection is heuristic character-class matching, not a language
// model: count script/diacritic hits per language and take the max.
var languageHints = []struct {
	language string
	re       *regexp.Regexp
}{
	{"spanish", regexp.MustCompile(`[ñ¿¡]|á|é|í|ó|ú`)},
	{"french", regexp.MustCompile(`[àâçèêëîïôùûœ]`)},
	{"german", regexp.MustCompile(`[äöüß]`)},
	{"czech", regexp.MustCompile(`[ěščřžýůď]`)},
	{"chinese", regexp.MustCompile(`\p{Han}`)},
	{"japanese", regexp.MustCompile(`[\p{Hiragana}\p{Katakana}]`)},
}

func detectLanguage(text string) string {
	best := "english"
	bestCount := 0
	for _, h := range languageHints {
		if n := len(h.re.FindAllString(text, -1)); n > bestCount {
			best = h.language
			bestCount = n
		}
	}
	// Japanese text usually carries Han characters too; kana wins
	if best == "chinese" {
		if kana := languageHints[5].re.FindAllString(text, -1); len(kana) > 0 {
			best = "japanese"
		}
	}
	return best
}

// extractTranslation applies the translation rule set: language auto-detect
// plus basic stats.
func extractTranslation(text string, opts Options) Fields {
	f := Fields{}
	if opts.Enabled("detectLanguage") {
		f["detectedLanguage"] = detectLanguage(text)
	}
	f["stats"] = Fields{
		"lineCount": len(nonBlankLines(text)),
		"wordCount": len(strings.Fields(text)),
		"charCount": len([]rune(text)),
	}
	return f
}
