package extract

import (
	"regexp"
	"strings"
)

var (
	reChapterTitle = regexp.MustCompile(`(?i)^chapter\s+(?:\d+|[IVXLC]+)\b.*$`)
	reHeadingLine  = regexp.MustCompile(`^(?:\d+(?:\.\d+)*\s+\S.*|[A-Z][A-Z\s:&'-]{3,})$`)
	rePageNumber   = regexp.MustCompile(`(?i)^(?:page\s+)?(\d{1,4})$`)
	reFootnoteLine = regexp.MustCompile(`^(?:\[\d+\]|\*{1,3}|\d+\))\s+\S.*$`)
)

// bookScan accumulates the running section while scanning page text.
type bookScan struct {
	heading  string
	body     []string
	sections []Fields
}

func (b *bookScan) flush() {
	if b.heading == "" && len(b.body) == 0 {
		return
	}
	b.sections = append(b.sections, Fields{
		"heading": b.heading,
		"content": strings.Join(b.body, " "),
	})
	b.heading = ""
	b.body = nil
}

// extractBook applies the book-page rule set: chapter title, headings vs
// body, page numbers, footnotes. Sections flush on the next heading or EOF.
func extractBook(text string, opts Options) Fields {
	f := Fields{}
	lines := nonBlankLines(text)

	if opts.Enabled("extractChapter") {
		limit := len(lines)
		if limit > 5 {
			limit = 5
		}
		for _, l := range lines[:limit] {
			if reChapterTitle.MatchString(l) || (reHeadingLine.MatchString(l) && strings.ToUpper(l) == l) {
				f["chapterTitle"] = l
				break
			}
		}
	}

	var pageNumbers []string
	var footnotes []string
	acc := bookScan{}
	for _, l := range lines {
		if m := rePageNumber.FindStringSubmatch(l); m != nil {
			pageNumbers = append(pageNumbers, m[1])
			continue
		}
		if reFootnoteLine.MatchString(l) {
			footnotes = append(footnotes, l)
			continue
		}
		if reHeadingLine.MatchString(l) || reChapterTitle.MatchString(l) {
			acc.flush()
			acc.heading = l
			continue
		}
		acc.body = append(acc.body, l)
	}
	acc.flush()

	if opts.Enabled("extractSections") && len(acc.sections) > 0 {
		f["sections"] = acc.sections
	}
	if opts.Enabled("extractPageNumbers") && len(pageNumbers) > 0 {
		f["pageNumbers"] = pageNumbers
	}
	if opts.Enabled("extractFootnotes") && len(footnotes) > 0 {
		f["footnotes"] = footnotes
	}
	return f
}
