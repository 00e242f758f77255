package extract

import (
	"regexp"
	"strings"
)

var (
	reCompanySuffix = regexp.MustCompile(`(?i)\b(?:inc|llc|corp|corporation|ltd|gmbh|co)\.?\b`)
	reJobTitle      = regexp.MustCompile(`(?i)\b(?:ceo|cto|cfo|coo|president|founder|co-founder|director|manager|engineer|developer|designer|consultant|analyst|vp|vice\s+president|partner|attorney|architect)\b`)
	reStreetAddress = regexp.MustCompile(`(?i)\b\d+\s+[A-Za-z][A-Za-z .]+\s(?:street|st|avenue|ave|road|rd|boulevard|blvd|drive|dr|lane|ln|suite|ste|way)\.?\b`)
)

// extractBusinessCard applies the business-card rule set.
func extractBusinessCard(text string, opts Options) Fields {
	f := Fields{}
	lines := nonBlankLines(text)

	if opts.Enabled("extractName") && len(lines) > 0 {
		f["name"] = lines[0]
	}
	if opts.Enabled("extractContact") {
		if emails := findEmails(text); len(emails) > 0 {
			f["email"] = emails[0]
		}
		if phones := findPhones(text); len(phones) > 0 {
			f["phone"] = phones[0]
		}
		if urls := findURLs(text); len(urls) > 0 {
			f["website"] = urls[0]
		}
	}
	if opts.Enabled("extractCompany") {
		for _, l := range lines {
			if reCompanySuffix.MatchString(l) {
				f["company"] = l
				break
			}
		}
	}
	if opts.Enabled("extractTitle") {
		for _, l := range lines[min(1, len(lines)):] {
			if reJobTitle.MatchString(l) {
				f["title"] = l
				break
			}
		}
	}
	if opts.Enabled("extractAddress") {
		setIfNotEmpty(f, "address", strings.TrimSpace(reStreetAddress.FindString(text)))
	}
	return f
}
