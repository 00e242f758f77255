package extract

import (
	"regexp"
	"strings"
)

var (
	reInvoiceNumber = regexp.MustCompile(`(?i)\binvoice\s*(?:no\.?|number|#)?\s*[:#]?\s*([A-Z0-9][A-Z0-9/-]{2,})`)
	rePONumber      = regexp.MustCompile(`(?i)\bp\.?o\.?\s*(?:no\.?|number|#)?\s*[:#]?\s*([A-Z0-9][A-Z0-9/-]{2,})`)
	reDueDate       = regexp.MustCompile(`(?i)\b(?:due|payment\s+due)(?:\s+date)?\s*[:\s]\s*(.+)`)
	reIssueDate     = regexp.MustCompile(`(?i)\b(?:issue|invoice)\s+date\s*[:\s]\s*(.+)`)
	reFromParty     = regexp.MustCompile(`(?im)^from\s*[:\s]\s*(.+)$`)
	reToParty       = regexp.MustCompile(`(?im)^(?:to|bill\s+to|billed\s+to)\s*[:\s]\s*(.+)$`)

	invoiceHeaderNoise = []string{"invoice", "bill", "statement", "date", "number", "page"}
)

// extractInvoice applies the invoice rule set. Every field is gated by its
// own options flag so callers can extract selectively.
func extractInvoice(text string, opts Options) Fields {
	f := Fields{}
	lines := nonBlankLines(text)

	if opts.Enabled("extractInvoiceNumber") {
		setIfNotEmpty(f, "invoiceNumber", firstGroup(reInvoiceNumber, text))
	}
	if opts.Enabled("extractVendor") {
		setIfNotEmpty(f, "vendor", invoiceVendor(lines))
	}
	if opts.Enabled("extractDates") {
		if d := firstGroup(reIssueDate, text); d != "" {
			if dates := findDates(d); len(dates) > 0 {
				f["issueDate"] = dates[0]
			}
		}
		if d := firstGroup(reDueDate, text); d != "" {
			if dates := findDates(d); len(dates) > 0 {
				f["dueDate"] = dates[0]
			}
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
	if opts.Enabled("extractPONumber") {
		setIfNotEmpty(f, "poNumber", firstGroup(rePONumber, text))
	}
	if opts.Enabled("extractParties") {
		setIfNotEmpty(f, "from", firstGroup(reFromParty, text))
		setIfNotEmpty(f, "to", firstGroup(reToParty, text))
	}
	return f
}

// invoiceVendor picks the first early line that is not invoice boilerplate.
func invoiceVendor(lines []string) string {
	limit := len(lines)
	if limit > 5 {
		limit = 5
	}
	for _, l := range lines[:limit] {
		lower := strings.ToLower(l)
		noisy := false
		for _, kw := range invoiceHeaderNoise {
			if strings.Contains(lower, kw) {
				noisy = true
				break
			}
		}
		if !noisy {
			return l
		}
	}
	return ""
}
