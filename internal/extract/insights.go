package extract

import (
	"fmt"
	"math"
	"strings"

	"github.com/docscanhq/docscan/constants"
)

// GenerateInsights derives human-readable observations from the extracted
// fields. Advisory strings in insertion order, never structured data. All
// derived arithmetic is NaN/Inf guarded: a malformed parse skips the insight
// rather than propagating garbage into output.
func GenerateInsights(text string, dt constants.DocumentType, fields Fields) []string {
	var out []string

	switch dt {
	case constants.DocTypeReceipt:
		total, hasTotal := fields["total"].(float64)
		tax, hasTax := fields["tax"].(float64)
		if hasTotal && hasTax && total > tax && tax > 0 {
			rate := tax / (total - tax) * 100
			if !math.IsNaN(rate) && !math.IsInf(rate, 0) {
				out = append(out, fmt.Sprintf("Effective tax rate: %.1f%%", rate))
			}
		}
		if items, ok := fields["items"].([]Fields); ok && len(items) > 0 {
			out = append(out, fmt.Sprintf("Contains %d line items", len(items)))
		}

	case constants.DocTypeBankStatement:
		amounts := statementAmounts(text)
		if len(amounts) >= 2 {
			lo, hi := amounts[0], amounts[0]
			for _, v := range amounts[1:] {
				if v < lo {
					lo = v
				}
				if v > hi {
					hi = v
				}
			}
			out = append(out, fmt.Sprintf("%d transactions ranging from %.2f to %.2f", len(amounts), lo, hi))
		}

	case constants.DocTypeMedicine, constants.DocTypePrescription:
		drug, _ := fields["drugName"].(string)
		exp, _ := fields["expiryDate"].(string)
		if drug != "" && exp != "" {
			out = append(out, fmt.Sprintf("%s expires %s", drug, exp))
		}

	case constants.DocTypeInvoice:
		if due, ok := fields["dueDate"].(string); ok && due != "" {
			out = append(out, fmt.Sprintf("Payment due by %s", due))
		}

	case constants.DocTypePriceTag:
		if d, ok := fields["discount"].(int); ok && d > 0 {
			out = append(out, fmt.Sprintf("Discounted %d%% from the original price", d))
		}
	}

	return out
}

// statementAmounts parses every money-shaped token in the text, skipping
// unparseable matches.
func statementAmounts(text string) []float64 {
	var out []float64
	for _, m := range findMoney(text) {
		if v, ok := parseAmount(m); ok {
			out = append(out, v)
		}
	}
	return out
}

// GenerateSuggestions flags missing sections the document type would be
// expected to have. Advisory only.
func GenerateSuggestions(text string, dt constants.DocumentType, lines []Line) []string {
	var out []string
	lower := strings.ToLower(text)

	nonBlank := 0
	for _, l := range lines {
		if !l.IsBlank {
			nonBlank++
		}
	}

	switch dt {
	case constants.DocTypeResume:
		if !strings.Contains(lower, "education") {
			out = append(out, "No education section found; consider adding one")
		}
		if !strings.Contains(lower, "experience") {
			out = append(out, "No experience section found")
		}

	case constants.DocTypeReceipt:
		if !strings.Contains(lower, "total") {
			out = append(out, "No total amount found; the scan may be cropped")
		}
		if len(findDates(text)) == 0 {
			out = append(out, "No purchase date found on this receipt")
		}

	case constants.DocTypeHandwriting:
		if nonBlank < 3 {
			out = append(out, "Very little text was recognized; try rescanning with better lighting")
		}

	case constants.DocTypeIDCard:
		if !strings.Contains(lower, "exp") {
			out = append(out, "No expiry date visible; capture both sides of the card")
		}
	}

	return out
}
