package extract

import (
	"regexp"
	"strings"
)

var (
	reDosage       = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s?(?:mg|mcg|ml|g|iu|units?)\b`)
	reIngredients  = regexp.MustCompile(`(?i)(?:active\s+)?ingredients?\s*[:\s]\s*(.+)`)
	reManufacturer = regexp.MustCompile(`(?i)\b(?:manufactured\s+by|mfg\.?(?:\s+by)?|manufacturer)\s*[:\s]\s*(.+)`)
	reMedExpiry    = regexp.MustCompile(`(?i)\b(?:exp\.?|expiry|expires?|use\s+by|best\s+before)\s*(?:date)?\s*[:\s]\s*(.+)`)
	reWarningLine  = regexp.MustCompile(`(?i)\b(?:warning|caution|do\s+not|keep\s+out|avoid|consult)\b`)
	reInstructLine = regexp.MustCompile(`(?i)\b(?:take|apply|dose|dosage|directions?|use|swallow|dissolve)\b`)
)

// extractMedicine applies the medicine/prescription rule set. Warnings and
// instructions are accumulated across every matching line, not overwritten.
func extractMedicine(text string, opts Options) Fields {
	f := Fields{}
	lines := nonBlankLines(text)

	if opts.Enabled("extractDrugName") {
		setIfNotEmpty(f, "drugName", medicineDrugName(lines))
	}
	if opts.Enabled("extractDosage") {
		setIfNotEmpty(f, "dosage", strings.TrimSpace(reDosage.FindString(text)))
	}
	if opts.Enabled("extractIngredients") {
		setIfNotEmpty(f, "activeIngredients", firstGroup(reIngredients, text))
	}
	if opts.Enabled("extractExpiry") {
		if d := firstGroup(reMedExpiry, text); d != "" {
			if dates := findDates(d); len(dates) > 0 {
				f["expiryDate"] = dates[0]
			} else {
				f["expiryDate"] = d
			}
		}
	}
	if opts.Enabled("extractManufacturer") {
		setIfNotEmpty(f, "manufacturer", firstGroup(reManufacturer, text))
	}

	var warnings, instructions []string
	for _, l := range lines {
		if reWarningLine.MatchString(l) {
			warnings = append(warnings, l)
		} else if reInstructLine.MatchString(l) {
			instructions = append(instructions, l)
		}
	}
	if opts.Enabled("extractWarnings") && len(warnings) > 0 {
		f["warnings"] = strings.Join(warnings, " ")
	}
	if opts.Enabled("extractInstructions") && len(instructions) > 0 {
		f["instructions"] = strings.Join(instructions, " ")
	}
	return f
}

// medicineDrugName prefers an early line that carries a dosage marker,
// falling back to the first line.
func medicineDrugName(lines []string) string {
	limit := len(lines)
	if limit > 5 {
		limit = 5
	}
	for _, l := range lines[:limit] {
		if reDosage.MatchString(l) {
			return strings.TrimSpace(reDosage.ReplaceAllString(l, ""))
		}
	}
	if len(lines) > 0 {
		return lines[0]
	}
	return ""
}
