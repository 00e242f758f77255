package extract

import (
	"regexp"
	"strings"

	"github.com/docscanhq/docscan/constants"
)

// ExtractByType runs the rule extractor registered for documentType.
// Unrecognized types resolve to the general fallback; this is not an error.
func ExtractByType(text string, documentType string, opts Options) Fields {
	dt, _ := constants.CanonicalizeDocType(documentType)
	return extractByType(text, dt, opts)
}

func extractByType(text string, dt constants.DocumentType, opts Options) Fields {
	switch dt {
	case constants.DocTypeReceipt:
		return extractReceipt(text, opts)
	case constants.DocTypeInvoice:
		return extractInvoice(text, opts)
	case constants.DocTypeIDCard:
		return extractIDCard(text, opts)
	case constants.DocTypeShippingLabel, constants.DocTypePackage:
		return extractShippingLabel(text, opts)
	case constants.DocTypeMedicine, constants.DocTypePrescription:
		return extractMedicine(text, opts)
	case constants.DocTypeBankStatement:
		return extractBankStatement(text, opts)
	case constants.DocTypeResume:
		return extractResume(text, opts)
	case constants.DocTypeBusinessCard:
		return extractBusinessCard(text, opts)
	case constants.DocTypePriceTag:
		return extractPriceTag(text, opts)
	case constants.DocTypeHandwriting:
		return extractHandwriting(text, opts)
	case constants.DocTypeBook:
		return extractBook(text, opts)
	case constants.DocTypeTranslation:
		return extractTranslation(text, opts)
	case constants.DocTypeGeneral:
		return extractGeneral(text, opts)
	default:
		return extractGeneral(text, opts)
	}
}

// nonBlankLines returns the trimmed non-blank lines of text in order.
func nonBlankLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// firstGroup returns the first capture group of the first match, or "".
func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// setIfNotEmpty assigns key only when the value carries content.
func setIfNotEmpty(f Fields, key, value string) {
	if value != "" {
		f[key] = value
	}
}

var reNameLike = regexp.MustCompile(`^(?:[A-Z][a-z'.-]+\s){1,3}[A-Z][a-z'.-]+$`)

// nameLike reports whether a line looks like a person's name: two to four
// capitalized words, no digits.
func nameLike(s string) bool {
	return !strings.ContainsAny(s, "0123456789") && reNameLike.MatchString(s)
}
