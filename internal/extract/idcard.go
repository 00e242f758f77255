package extract

import (
	"regexp"
	"strings"
	"time"
)

var (
	reIDName        = regexp.MustCompile(`(?im)^(?:name|full\s+name|surname,?\s+given\s+names?)\s*[:\s]\s*(.+)$`)
	reIDNumber      = regexp.MustCompile(`(?i)\b(?:id|card|document|license|licence|passport)\s*(?:no\.?|number|#)\s*[:#]?\s*([A-Z0-9][A-Z0-9-]{3,})`)
	reIDDOB         = regexp.MustCompile(`(?i)\b(?:dob|date\s+of\s+birth|born|birth\s+date)\s*[:\s]\s*(.+)`)
	reIDExpiry      = regexp.MustCompile(`(?i)\b(?:exp\.?|expiry|expires?|expiration|valid\s+(?:until|thru))\s*(?:date)?\s*[:\s]\s*(.+)`)
	reIDNationality = regexp.MustCompile(`(?i)\b(?:nationality|citizenship|country)\s*[:\s]\s*([A-Za-z ]{2,})`)
)

// expiryFormats covers the date styles seen on identity documents.
var expiryFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"01/02/06",
	"2006/01/02",
	"02-01-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// extractIDCard applies the identity-document rule set and runs a post-hoc
// validation block over what was matched.
func extractIDCard(text string, opts Options) Fields {
	f := Fields{}

	if opts.Enabled("extractName") {
		setIfNotEmpty(f, "name", firstGroup(reIDName, text))
	}
	if opts.Enabled("extractIDNumber") {
		setIfNotEmpty(f, "idNumber", firstGroup(reIDNumber, text))
	}
	if opts.Enabled("extractDates") {
		if d := firstGroup(reIDDOB, text); d != "" {
			if dates := findDates(d); len(dates) > 0 {
				f["dateOfBirth"] = dates[0]
			}
		}
		if d := firstGroup(reIDExpiry, text); d != "" {
			if dates := findDates(d); len(dates) > 0 {
				f["expiryDate"] = dates[0]
			}
		}
	}
	if opts.Enabled("extractNationality") {
		setIfNotEmpty(f, "nationality", strings.TrimSpace(firstGroup(reIDNationality, text)))
	}

	// validation block: format plausibility plus expiry-past check
	if opts.Enabled("validate") {
		id, _ := f["idNumber"].(string)
		f["validFormat"] = id != "" && len(id) >= 4
		if exp, ok := f["expiryDate"].(string); ok {
			if t, ok := parseAnyDate(exp); ok {
				f["isExpired"] = t.Before(time.Now())
			}
		}
	}
	return f
}

func parseAnyDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range expiryFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
