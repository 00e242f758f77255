package extract

import (
	"regexp"
	"strings"
)

// Carrier tracking formats, tried in priority order: the UPS "1Z" shape is
// unambiguous, USPS long numerics beat the shorter FedEx shapes.
var trackingPatterns = []struct {
	carrier string
	re      *regexp.Regexp
}{
	{"UPS", regexp.MustCompile(`\b1Z[0-9A-Z]{16}\b`)},
	{"USPS", regexp.MustCompile(`\b9[2-5]\d{20,24}\b`)},
	{"FedEx", regexp.MustCompile(`\b\d{15}\b`)},
	{"FedEx", regexp.MustCompile(`\b\d{12}\b`)},
}

var knownCarriers = []string{"UPS", "FedEx", "USPS", "DHL", "Amazon", "OnTrac", "Royal Mail"}

var (
	reWeight     = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s?(lbs?|kg|oz|g)\b`)
	reDimensions = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s?x\s?\d+(?:\.\d+)?\s?x\s?\d+(?:\.\d+)?\b`)
)

// extractShippingLabel applies the shipping-label/package rule set. Sender
// and recipient use a positional heuristic: the first name-like line in the
// first half of the document is the sender, the first in the second half the
// recipient. This assumes the roughly fixed layout of printed labels.
func extractShippingLabel(text string, opts Options) Fields {
	f := Fields{}
	lines := nonBlankLines(text)

	if opts.Enabled("extractTracking") {
		for _, tp := range trackingPatterns {
			if m := tp.re.FindString(text); m != "" {
				f["trackingNumber"] = m
				f["trackingCarrier"] = tp.carrier
				break
			}
		}
	}
	if opts.Enabled("detectCarrier") {
		for _, c := range knownCarriers {
			if strings.Contains(strings.ToLower(text), strings.ToLower(c)) {
				f["carrier"] = c
				break
			}
		}
	}
	if opts.Enabled("extractParties") {
		half := len(lines) / 2
		if i := nameLikeIndex(lines[:half]); i >= 0 {
			f["sender"] = lines[i]
			if addr := addressWindow(lines, i+1); len(addr) > 0 {
				f["senderAddress"] = addr
			}
		}
		if i := nameLikeIndex(lines[half:]); i >= 0 {
			f["recipient"] = lines[half+i]
			if addr := addressWindow(lines, half+i+1); len(addr) > 0 {
				f["recipientAddress"] = addr
			}
		}
	}
	if opts.Enabled("extractDimensions") {
		setIfNotEmpty(f, "weight", strings.TrimSpace(reWeight.FindString(text)))
		setIfNotEmpty(f, "dimensions", strings.TrimSpace(reDimensions.FindString(text)))
	}
	return f
}

func nameLikeIndex(lines []string) int {
	for i, l := range lines {
		if nameLike(l) {
			return i
		}
	}
	return -1
}

// addressWindow takes up to three lines following a name as that party's
// address block, stopping at the next name-like line.
func addressWindow(lines []string, start int) []string {
	var out []string
	for i := start; i < len(lines) && len(out) < 3; i++ {
		if nameLike(lines[i]) {
			break
		}
		out = append(out, lines[i])
	}
	return out
}
