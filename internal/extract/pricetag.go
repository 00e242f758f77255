package extract

import (
	"math"
	"regexp"
	"strings"
)

var (
	rePriceAmount   = regexp.MustCompile(`[£$€¥]\s?\d{1,5}(?:,\d{3})*(?:\.\d{1,2})?|\b\d{1,5}\.\d{2}\b`)
	reWasPrice      = regexp.MustCompile(`(?i)\b(?:was|orig(?:inal(?:ly)?)?|reg(?:ular)?|before)\b[^\d£$€¥]*([£$€¥]?\s?\d{1,5}(?:,\d{3})*(?:\.\d{1,2})?)`)
	reNowPrice      = regexp.MustCompile(`(?i)\b(?:now|sale|only|today)\b[^\d£$€¥]*([£$€¥]?\s?\d{1,5}(?:,\d{3})*(?:\.\d{1,2})?)`)
	reUnitInfo      = regexp.MustCompile(`(?i)\b(?:per\s+(?:lb|kg|oz|g|each|unit|item)|\d+\s?(?:ct|pk|pack|pcs))\b`)
	reBrandLine     = regexp.MustCompile(`(?i)\bbrand\s*[:\s]\s*(.+)`)
	rePromoLine     = regexp.MustCompile(`(?i)\b(?:sale|clearance|% ?off|bogo|buy\s+one|special|promo)\b`)
	reMostlyNumeric = regexp.MustCompile(`^[\d£$€¥.,%\s/-]+$`)
)

// extractPriceTag applies the price-tag rule set, including the discount
// computation when the original price is visible.
func extractPriceTag(text string, opts Options) Fields {
	f := Fields{}
	lines := nonBlankLines(text)

	var price, original float64
	var hasPrice, hasOriginal bool

	if opts.Enabled("extractPrice") {
		if v, ok := amountGroup(reNowPrice, text); ok {
			price, hasPrice = v, true
		}
		if v, ok := amountGroup(reWasPrice, text); ok {
			original, hasOriginal = v, true
		}
		if !hasPrice {
			// no "now" keyword: the first standalone amount is the price
			for _, m := range rePriceAmount.FindAllString(text, -1) {
				if v, ok := parseAmount(m); ok {
					if !hasPrice {
						price, hasPrice = v, true
					} else if !hasOriginal && v > price {
						original, hasOriginal = v, true
					}
				}
			}
		}
		if hasPrice {
			f["price"] = price
		}
		if hasOriginal {
			f["originalPrice"] = original
		}
		if hasPrice && hasOriginal && original > 0 && price <= original {
			f["discount"] = int(math.Round((1 - price/original) * 100))
		}
	}
	if opts.Enabled("detectCurrency") {
		setIfNotEmpty(f, "currency", reCurrencySymbol.FindString(text))
	}
	if opts.Enabled("extractProduct") {
		for _, l := range lines {
			if !reMostlyNumeric.MatchString(l) && !reWasPrice.MatchString(l) &&
				!reNowPrice.MatchString(l) && !rePromoLine.MatchString(l) {
				f["productName"] = l
				break
			}
		}
	}
	setIfNotEmpty(f, "brand", firstGroup(reBrandLine, text))
	setIfNotEmpty(f, "unitInfo", strings.TrimSpace(reUnitInfo.FindString(text)))

	var promos []string
	for _, l := range lines {
		if rePromoLine.MatchString(l) {
			promos = append(promos, l)
		}
	}
	if len(promos) > 0 {
		f["promotions"] = promos
	}
	return f
}
