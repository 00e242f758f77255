package extract

import (
	"github.com/docscanhq/docscan/constants"
)

// DocumentRule declares which fields a document type must yield for the
// extraction to count as complete.
type DocumentRule struct {
	Required []string
}

var documentRules = map[constants.DocumentType]DocumentRule{
	constants.DocTypeReceipt:       {Required: []string{"merchant", "total", "date"}},
	constants.DocTypeInvoice:       {Required: []string{"invoiceNumber", "total"}},
	constants.DocTypeIDCard:        {Required: []string{"name", "idNumber"}},
	constants.DocTypeShippingLabel: {Required: []string{"trackingNumber", "carrier"}},
	constants.DocTypePackage:       {Required: []string{"trackingNumber", "carrier"}},
	constants.DocTypeMedicine:      {Required: []string{"drugName", "dosage"}},
	constants.DocTypePrescription:  {Required: []string{"drugName", "dosage"}},
	constants.DocTypeBankStatement: {Required: []string{"accountNumber", "closingBalance"}},
	constants.DocTypeResume:        {Required: []string{"personalInfo", "experience"}},
	constants.DocTypeBusinessCard:  {Required: []string{"name", "email"}},
	constants.DocTypePriceTag:      {Required: []string{"price", "productName"}},
	constants.DocTypeHandwriting:   {Required: []string{"cleanedText"}},
	constants.DocTypeBook:          {Required: []string{"sections"}},
	constants.DocTypeTranslation:   {Required: []string{"detectedLanguage"}},
	constants.DocTypeGeneral:       {},
}

// RuleFor returns the document rule for a type; unknown types get the
// general (empty) rule.
func RuleFor(dt constants.DocumentType) DocumentRule {
	if r, ok := documentRules[dt]; ok {
		return r
	}
	return documentRules[constants.DocTypeGeneral]
}

// MaxConfidence is the hard ceiling on every reported confidence. The engine
// never reports full certainty: regex extraction over OCR noise is always a
// guess, even when every required field matched.
const MaxConfidence = 0.95

// scoreConfidence combines rule completeness with structural signals into a
// single confidence value, clamped to [0, MaxConfidence].
func scoreConfidence(text string, rule DocumentRule, fields Fields, lines []Line) float64 {
	score := 0.5

	if n := len(rule.Required); n > 0 {
		matched := 0
		for _, key := range rule.Required {
			if fieldPresent(fields[key]) {
				matched++
			}
		}
		score += 0.3 * float64(matched) / float64(n)
	}

	nonBlank := 0
	for _, l := range lines {
		if !l.IsBlank {
			nonBlank++
		}
	}
	if nonBlank > 5 {
		score += 0.1
	}
	if nonBlank > 10 {
		score += 0.05
	}

	if len(findDates(text)) > 0 {
		score += 0.05
	}
	if reMoney.MatchString(text) {
		score += 0.05
	}
	if reEmail.MatchString(text) {
		score += 0.05
	}

	if score < 0 {
		score = 0
	}
	if score > MaxConfidence {
		score = MaxConfidence
	}
	return score
}

// fieldPresent reports whether an extracted value carries content.
func fieldPresent(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case []string:
		return len(t) > 0
	case []Fields:
		return len(t) > 0
	case Fields:
		return len(t) > 0
	default:
		return true
	}
}
