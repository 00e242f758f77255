package constants

// DocumentType selects which extraction rule set applies to a scan.
type DocumentType string

const (
	DocTypeReceipt       DocumentType = "receipt"
	DocTypeInvoice       DocumentType = "invoice"
	DocTypeIDCard        DocumentType = "id_card"
	DocTypeShippingLabel DocumentType = "shipping_label"
	DocTypeMedicine      DocumentType = "medicine"
	DocTypeBankStatement DocumentType = "bank_statement"
	DocTypeResume        DocumentType = "resume"
	DocTypePrescription  DocumentType = "prescription"
	DocTypeBusinessCard  DocumentType = "business_card"
	DocTypePriceTag      DocumentType = "price_tag"
	DocTypePackage       DocumentType = "package"
	DocTypeHandwriting   DocumentType = "handwriting"
	DocTypeBook          DocumentType = "book"
	DocTypeTranslation   DocumentType = "translation"
	DocTypeGeneral       DocumentType = "general"
)

var allDocumentTypes = []DocumentType{
	DocTypeReceipt,
	DocTypeInvoice,
	DocTypeIDCard,
	DocTypeShippingLabel,
	DocTypeMedicine,
	DocTypeBankStatement,
	DocTypeResume,
	DocTypePrescription,
	DocTypeBusinessCard,
	DocTypePriceTag,
	DocTypePackage,
	DocTypeHandwriting,
	DocTypeBook,
	DocTypeTranslation,
	DocTypeGeneral,
}

func DocumentTypes() []string {
	result := make([]string, len(allDocumentTypes))
	for i, dt := range allDocumentTypes {
		result[i] = string(dt)
	}
	return result
}

// CanonicalizeDocType maps an input string to a known document type.
// Matching is exact and case-sensitive. The second return reports whether
// the input named a registered type; anything else resolves to the general
// fallback.
func CanonicalizeDocType(input string) (DocumentType, bool) {
	for _, dt := range allDocumentTypes {
		if input == string(dt) {
			return dt, true
		}
	}
	return DocTypeGeneral, false
}
