package homeaccess

import (
	"hacview-backend/lib/htmlutil"
	"strings"
)

// the header cells end in a fixed run of junk markup
const headerJunkLen = 4

// repairHeaderFragment turns a truncated `th...` header fragment into
// a parseable anchor: the opening tag name becomes a real `a`, the
// junk run at the end is dropped and a closing tag is appended.
func repairHeaderFragment(h string) string {
	h = strings.TrimSpace(h)
	if strings.HasPrefix(h, "<th") {
		h = "<a" + h[len("<th"):]
	}
	if len(h) > headerJunkLen {
		h = h[:len(h)-headerJunkLen]
	}
	return h + "</a>"
}

// ExtractTerms reads the grading period columns off the decoded header
// cells. Cells without a tooltip attribute are not selectable terms
// and emit nothing. Order is preserved and duplicates are kept.
func ExtractTerms(headerCells []Cell) ([]Term, error) {
	var terms []Term
	for _, cell := range headerCells {
		frag, err := htmlutil.ParseFragment(repairHeaderFragment(cell.HTML))
		if err != nil {
			return nil, err
		}
		anchor := frag.Find("a").First()
		code, ok := anchor.Attr("tooltip")
		if !ok {
			continue
		}
		terms = append(terms, Term{
			Code: code,
			Name: htmlutil.CleanText(anchor),
		})
	}
	return terms, nil
}
