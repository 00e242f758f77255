package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Cross-type signal patterns. These are shared by the orchestrator and the
// confidence scorer; per-type extractors carry their own pattern sets.
var (
	reDateSlash = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
	reDateISO   = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	reDateDot   = regexp.MustCompile(`\b\d{1,2}\.\d{1,2}\.\d{2,4}\b`)
	reDateWord  = regexp.MustCompile(`(?i)\b(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}\b`)

	reMoney  = regexp.MustCompile(`[£$€¥]\s?\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?|\b\d{1,3}(?:,\d{3})*\.\d{2}\b`)
	reEmail  = regexp.MustCompile(`\S+@\S+\.\S+`)
	rePhone  = regexp.MustCompile(`\d{3}[-.]?\d{3}[-.]?\d{4}`)
	reURL    = regexp.MustCompile(`https?://[^\s)]+|\bwww\.[^\s)]+`)
	reTotals = regexp.MustCompile(`(?im)^.*\btotal\b[^\d-]*([£$€¥]?\s?\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?)`)
)

// findDates scans for date-shaped tokens. Dot-separated matches that also
// parse as a bare decimal ("5.0") are rejected; this is a known
// precision/recall trade-off that can drop legitimate short date formats.
func findDates(text string) []string {
	var out []string
	out = append(out, reDateSlash.FindAllString(text, -1)...)
	out = append(out, reDateISO.FindAllString(text, -1)...)
	for _, m := range reDateDot.FindAllString(text, -1) {
		if looksLikeBareDecimal(m) {
			continue
		}
		out = append(out, m)
	}
	out = append(out, reDateWord.FindAllString(text, -1)...)
	return dedupe(out)
}

func looksLikeBareDecimal(s string) bool {
	if strings.Count(s, ".") != 1 {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func findMoney(text string) []string {
	return dedupe(reMoney.FindAllString(text, -1))
}

func findEmails(text string) []string {
	return dedupe(reEmail.FindAllString(text, -1))
}

func findPhones(text string) []string {
	return dedupe(rePhone.FindAllString(text, -1))
}

func findURLs(text string) []string {
	return dedupe(reURL.FindAllString(text, -1))
}

// findTotals pulls amounts from any line mentioning "total", regardless of
// document type.
func findTotals(text string) []float64 {
	var out []float64
	for _, m := range reTotals.FindAllStringSubmatch(text, -1) {
		if v, ok := parseAmount(m[1]); ok {
			out = append(out, v)
		}
	}
	return out
}

// parseAmount strips currency symbols, spaces and thousands separators
// before parsing. Returns false on anything that is not a clean number.
func parseAmount(s string) (float64, bool) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '£', '$', '€', '¥', ',', ' ':
			return -1
		}
		return r
	}, s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
