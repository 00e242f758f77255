package extract

import (
	"regexp"
	"strings"
)

var (
	reLinkedIn  = regexp.MustCompile(`(?i)linkedin\.com/in/[A-Za-z0-9_-]+`)
	reGitHub    = regexp.MustCompile(`(?i)github\.com/[A-Za-z0-9_-]+`)
	reDateRange = regexp.MustCompile(`(?i)\b(?:19|20)\d{2}\s*[-–—]\s*(?:(?:19|20)\d{2}|present|current|now)\b`)
	reBullet    = regexp.MustCompile(`^[-*•·▪]\s*`)
)

// resumeSections maps header keywords to a section key for the scanning
// state machine.
var resumeSections = map[string]string{
	"summary":              "summary",
	"professional summary": "summary",
	"objective":            "summary",
	"profile":              "summary",
	"skills":               "skills",
	"technical skills":     "skills",
	"core competencies":    "skills",
	"experience":           "experience",
	"work experience":      "experience",
	"professional experience": "experience",
	"employment":           "experience",
	"employment history":   "experience",
	"education":            "education",
	"academic background":  "education",
}

// resumeScan is the fold accumulator: the current section plus everything
// collected so far. Transitions happen on section-header lines.
type resumeScan struct {
	section    string
	summary    []string
	skills     []string
	experience []Fields
	education  []Fields
}

// extractResume applies the resume rule set: a contact block from the top of
// the document, then a top-to-bottom section state machine.
func extractResume(text string, opts Options) Fields {
	f := Fields{}
	lines := nonBlankLines(text)

	if opts.Enabled("extractContact") {
		f["personalInfo"] = resumeContact(text, lines)
	}

	acc := resumeScan{}
	for _, l := range lines {
		if key, ok := resumeSections[strings.ToLower(strings.TrimRight(l, ":"))]; ok {
			acc.section = key
			continue
		}
		switch acc.section {
		case "summary":
			acc.summary = append(acc.summary, l)
		case "skills":
			acc.skills = append(acc.skills, splitSkills(l)...)
		case "experience":
			acc.experience = appendEntry(acc.experience, l)
		case "education":
			acc.education = appendEntry(acc.education, l)
		}
	}

	if opts.Enabled("extractSummary") && len(acc.summary) > 0 {
		f["summary"] = strings.Join(acc.summary, " ")
	}
	if opts.Enabled("extractSkills") && len(acc.skills) > 0 {
		f["skills"] = acc.skills
	}
	if opts.Enabled("extractExperience") && len(acc.experience) > 0 {
		f["experience"] = acc.experience
	}
	if opts.Enabled("extractEducation") && len(acc.education) > 0 {
		f["education"] = acc.education
	}
	return f
}

func resumeContact(text string, lines []string) Fields {
	contact := Fields{}
	if len(lines) > 0 && nameLike(lines[0]) {
		contact["name"] = lines[0]
	}
	if emails := findEmails(text); len(emails) > 0 {
		contact["email"] = emails[0]
	}
	if phones := findPhones(text); len(phones) > 0 {
		contact["phone"] = phones[0]
	}
	setIfNotEmpty(contact, "linkedin", reLinkedIn.FindString(text))
	setIfNotEmpty(contact, "github", reGitHub.FindString(text))
	return contact
}

// appendEntry starts a new experience/education entry on a line carrying a
// date range and attaches detail lines to the most recent entry.
func appendEntry(entries []Fields, line string) []Fields {
	if dr := reDateRange.FindString(line); dr != "" {
		title := strings.TrimSpace(reDateRange.ReplaceAllString(line, ""))
		title = strings.Trim(title, " -–—|,")
		return append(entries, Fields{"title": title, "period": dr, "details": []string{}})
	}
	if len(entries) == 0 {
		return append(entries, Fields{"title": line, "details": []string{}})
	}
	last := entries[len(entries)-1]
	if details, ok := last["details"].([]string); ok {
		last["details"] = append(details, strings.TrimSpace(reBullet.ReplaceAllString(line, "")))
	}
	return entries
}

func splitSkills(line string) []string {
	line = reBullet.ReplaceAllString(line, "")
	var out []string
	for _, s := range strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	}) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
