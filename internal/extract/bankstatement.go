package extract

import (
	"regexp"
	"strings"
)

var (
	reAccountNumber  = regexp.MustCompile(`(?i)\baccount\s*(?:no\.?|number|#)?\s*[:#]?\s*([\dXx*][\dXx*\s-]{3,})`)
	reStatementDate  = regexp.MustCompile(`(?i)\bstatement\s+(?:date|period)\s*[:\s]\s*(.+)`)
	reOpeningBalance = regexp.MustCompile(`(?i)\b(?:opening|beginning|previous)\s+balance\b[^\d-]*(-?[£$€¥]?\s?\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?)`)
	reClosingBalance = regexp.MustCompile(`(?i)\b(?:closing|ending|new)\s+balance\b[^\d-]*(-?[£$€¥]?\s?\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?)`)
	reBankName       = regexp.MustCompile(`(?im)^.*\b(?:bank|credit\s+union|building\s+society)\b.*$`)
)

// extractBankStatement applies the bank-statement rule set.
func extractBankStatement(text string, opts Options) Fields {
	f := Fields{}

	if opts.Enabled("extractAccountNumber") {
		if acct := firstGroup(reAccountNumber, text); acct != "" {
			f["accountNumber"] = strings.TrimRight(acct, " -")
		}
	}
	if opts.Enabled("extractDates") {
		if d := firstGroup(reStatementDate, text); d != "" {
			if dates := findDates(d); len(dates) > 0 {
				f["statementDate"] = dates[0]
			} else {
				f["statementDate"] = d
			}
		}
	}
	if opts.Enabled("extractBalances") {
		if v, ok := amountGroup(reOpeningBalance, text); ok {
			f["openingBalance"] = v
		}
		if v, ok := amountGroup(reClosingBalance, text); ok {
			f["closingBalance"] = v
		}
	}
	if opts.Enabled("extractBankName") {
		setIfNotEmpty(f, "bankName", strings.TrimSpace(reBankName.FindString(text)))
	}
	return f
}
