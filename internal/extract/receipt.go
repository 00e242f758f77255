package extract

import (
	"regexp"
	"strings"
)

var (
	reReceiptTime     = regexp.MustCompile(`\b\d{1,2}:\d{2}(?::\d{2})?\s?(?:[AaPp][Mm])?\b`)
	reReceiptTotal    = regexp.MustCompile(`(?im)^.*\btotal\b[^\d-]*([£$€¥]?\s?\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?)`)
	reReceiptSubtotal = regexp.MustCompile(`(?im)^.*\bsub\s?-?total\b[^\d-]*([£$€¥]?\s?\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?)`)
	reReceiptTax      = regexp.MustCompile(`(?im)^.*\b(?:tax|vat|gst|hst)\b[^\d-]*([£$€¥]?\s?\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?)`)

	// item patterns, tried in fallback order
	reItemQtyNamePrice = regexp.MustCompile(`^(\d{1,3})\s+(.{2,}?)\s+[£$€¥]?(\d{1,4}\.\d{2})$`)
	reItemNamePrice    = regexp.MustCompile(`^(.{2,}?)\s{2,}[£$€¥]?(\d{1,4}\.\d{2})$`)
	reItemNameAtPrice  = regexp.MustCompile(`^(.{2,}?)\s+[£$€¥](\d{1,4}\.\d{2})$`)

	reCurrencySymbol = regexp.MustCompile(`[£$€¥]`)

	// lines that look like items but are summary rows
	reReceiptSummaryLine = regexp.MustCompile(`(?i)\b(total|subtotal|tax|vat|gst|hst|change|cash|card|tender|balance|due)\b`)

	receiptHeaderNoise = []string{"receipt", "invoice", "tel", "phone", "fax", "www", "http", "order", "register", "cashier"}
)

// extractReceipt applies the receipt rule set: merchant, date/time, line
// items, totals, and a currency sniff.
func extractReceipt(text string, opts Options) Fields {
	f := Fields{}
	lines := nonBlankLines(text)

	if opts.Enabled("extractMerchant") {
		setIfNotEmpty(f, "merchant", receiptMerchant(lines))
	}
	if opts.Enabled("extractDate") {
		if dates := findDates(text); len(dates) > 0 {
			f["date"] = dates[0]
		}
		setIfNotEmpty(f, "time", strings.TrimSpace(reReceiptTime.FindString(text)))
	}
	if opts.Enabled("extractItems") {
		if items := receiptItems(lines); len(items) > 0 {
			f["items"] = items
		}
	}
	if opts.Enabled("extractTotals") {
		if v, ok := amountGroup(reReceiptTotal, text); ok {
			f["total"] = v
		}
		if v, ok := amountGroup(reReceiptSubtotal, text); ok {
			f["subtotal"] = v
		}
		if v, ok := amountGroup(reReceiptTax, text); ok {
			f["tax"] = v
		}
	}
	if opts.Enabled("detectCurrency") {
		setIfNotEmpty(f, "currency", reCurrencySymbol.FindString(text))
	}
	return f
}

// receiptMerchant picks the first of the first five lines that is not
// obviously boilerplate.
func receiptMerchant(lines []string) string {
	limit := len(lines)
	if limit > 5 {
		limit = 5
	}
	for _, l := range lines[:limit] {
		lower := strings.ToLower(l)
		noisy := false
		for _, kw := range receiptHeaderNoise {
			if strings.Contains(lower, kw) {
				noisy = true
				break
			}
		}
		if noisy || l == "" || reCurrencySymbol.MatchString(l) {
			continue
		}
		return l
	}
	return ""
}

// receiptItems matches item lines against the three pattern variants in
// fallback order. Totals/tax/summary lines never count as items.
func receiptItems(lines []string) []Fields {
	var items []Fields
	for _, l := range lines {
		if reReceiptSummaryLine.MatchString(l) {
			continue
		}
		if m := reItemQtyNamePrice.FindStringSubmatch(l); m != nil {
			if price, ok := parseAmount(m[3]); ok {
				items = append(items, Fields{"quantity": m[1], "name": strings.TrimSpace(m[2]), "price": price})
			}
			continue
		}
		if m := reItemNamePrice.FindStringSubmatch(l); m != nil {
			if price, ok := parseAmount(m[2]); ok {
				items = append(items, Fields{"name": strings.TrimSpace(m[1]), "price": price})
			}
			continue
		}
		if m := reItemNameAtPrice.FindStringSubmatch(l); m != nil {
			if price, ok := parseAmount(m[2]); ok {
				items = append(items, Fields{"name": strings.TrimSpace(m[1]), "price": price})
			}
		}
	}
	return items
}

// amountGroup parses the first capture group of re as a money amount.
func amountGroup(re *regexp.Regexp, text string) (float64, bool) {
	g := firstGroup(re, text)
	if g == "" {
		return 0, false
	}
	return parseAmount(g)
}
