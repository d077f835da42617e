package homeaccess

import (
	"fmt"
	"hacview-backend/lib/htmlutil"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const assignmentInfoId = "assignmentInfo"
const gradeInfoId = "gradeInfo"

// classifyCtx is the view a rule gets of the cell under test: the
// parsed fragment, its position in the row, the term columns and the
// original page for id lookups.
type classifyCtx struct {
	page  *goquery.Document
	terms []Term
	row   Row
	index int
	frag  *goquery.Document
}

func (c classifyCtx) cell() Cell {
	return c.row.Cells[c.index]
}

// A rule pairs a structural predicate with a builder. Rules are tried
// in order, the first match wins and the rest are never consulted for
// that cell. Builders report how many sibling cells they consumed so
// the scan can advance past look-ahead reads.
type rule struct {
	name  string
	match func(c classifyCtx) bool
	build func(c classifyCtx) (GridBox, int, error)
}

var classifyRules = []rule{
	{
		name: "assignment",
		match: func(c classifyCtx) bool {
			return c.frag.Find("#"+assignmentInfoId).Length() > 0
		},
		build: buildAssignment,
	},
	{
		name: "grade",
		match: func(c classifyCtx) bool {
			return c.frag.Find("#"+gradeInfoId).Length() > 0
		},
		build: buildGrade,
	},
	{
		name: "teacher",
		match: func(c classifyCtx) bool {
			return c.cell().CellID != ""
		},
		build: buildTeacher,
	},
	{
		name: "narrative",
		match: func(c classifyCtx) bool {
			return htmlutil.CleanText(c.frag.Selection) != ""
		},
		build: buildNarrative,
	},
}

// Classify walks the decoded body rows and turns each cell into a grid
// box, in source order. Cells matching no rule carry no information
// and are skipped. Consecutive assignment cells are collected into one
// AssignmentsListSmaller; any other emitted box closes the group.
func Classify(bodyRows []Row, terms []Term, rawHtml string) ([]GridBox, error) {
	page, err := htmlutil.ParseFragment(rawHtml)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedDocument, err)
	}

	var boxes []GridBox
	// the open assignment group, nil whenever the last emitted box
	// was not an assignment
	var group *AssignmentsListSmaller

	for _, row := range bodyRows {
		for i := 0; i < len(row.Cells); {
			frag, err := htmlutil.ParseFragment(row.Cells[i].HTML)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrMalformedDocument, err)
			}
			c := classifyCtx{
				page:  page,
				terms: terms,
				row:   row,
				index: i,
				frag:  frag,
			}

			matched := false
			for _, r := range classifyRules {
				if !r.match(c) {
					continue
				}
				matched = true

				box, consumed, err := r.build(c)
				if err != nil {
					return nil, err
				}
				switch b := box.(type) {
				case Assignment:
					if group == nil {
						group = &AssignmentsListSmaller{}
						boxes = append(boxes, group)
					}
					group.Assignments = append(group.Assignments, b)
				default:
					group = nil
					boxes = append(boxes, box)
				}

				i += 1 + consumed
				break
			}
			if !matched {
				// decoration cell, skipping it does not close
				// an open assignment group
				i++
			}
		}
	}

	return boxes, nil
}

// bracketed returns the text between the first `(` and the first `)`.
func bracketed(s string) string {
	open := strings.Index(s, "(")
	if open < 0 {
		return ""
	}
	closing := strings.Index(s, ")")
	if closing <= open {
		return ""
	}
	return s[open+1 : closing]
}

// buildAssignment consumes the rest of the row: the numeric grade is
// rendered in a later cell at a variable offset, so every remaining
// cell is scanned and the last parseable integer wins.
func buildAssignment(c classifyCtx) (GridBox, int, error) {
	info := c.frag.Find("#" + assignmentInfoId).First()
	assignment := Assignment{
		StudentID:      info.AttrOr("data-sid", ""),
		AssignmentID:   info.AttrOr("data-aid", ""),
		GbID:           info.AttrOr("data-gid", ""),
		AssignmentName: htmlutil.CleanText(c.frag.Find("a").First()),
	}

	term := bracketed(c.frag.Find("span").First().Text())
	assignment.Attributes.Set("term", term)

	grade := ""
	for j := c.index + 1; j < len(c.row.Cells); j++ {
		sibling, err := htmlutil.ParseFragment(c.row.Cells[j].HTML)
		if err != nil {
			continue
		}
		text := htmlutil.CleanText(sibling.Selection)
		if _, err := strconv.Atoi(text); err == nil {
			grade = text
		}
	}
	// a missing grade leaves the key unset rather than failing the
	// rest of the document
	if grade != "" {
		assignment.Attributes.Set("grade", grade)
	}

	consumed := len(c.row.Cells) - c.index - 1
	return assignment, consumed, nil
}

func buildGrade(c classifyCtx) (GridBox, int, error) {
	info := c.frag.Find("#" + gradeInfoId).First()
	return GradeBox{
		CourseNumber: info.AttrOr("data-cni", ""),
		Term: Term{
			Code: info.AttrOr("data-bkt", ""),
			Name: info.AttrOr("data-lit", ""),
		},
		Grade:     htmlutil.CleanText(info),
		StudentID: info.AttrOr("data-sid", ""),
	}, 0, nil
}

// buildTeacher resolves the row's cell id against the original page,
// the payload fragment alone does not carry the section header.
func buildTeacher(c classifyCtx) (GridBox, int, error) {
	id := c.cell().CellID
	container := c.page.Find("#" + id)
	if container.Length() == 0 {
		return nil, 0, fmt.Errorf("%w: cell id %q not in page", ErrMalformedDocument, id)
	}

	columns := container.Children().First().Find("tr").First().Find("td")
	return TeacherIDBox{
		TimePeriod:  htmlutil.CleanText(columns.Eq(1)),
		CourseName:  htmlutil.CleanText(columns.Eq(2)),
		TeacherName: htmlutil.CleanText(columns.Eq(3)),
	}, 0, nil
}

// buildNarrative pairs bare text with the term column one to the left,
// term columns are offset by one from grade columns in the row layout.
func buildNarrative(c classifyCtx) (GridBox, int, error) {
	if c.index == 0 {
		return nil, 0, fmt.Errorf("%w: narrative cell at the start of a row", ErrMalformedDocument)
	}
	if c.index-1 >= len(c.terms) {
		return nil, 0, fmt.Errorf("%w: narrative cell beyond the term columns", ErrMalformedDocument)
	}
	return LessInfoBox{
		Behavior: htmlutil.CleanText(c.frag.Selection),
		Term:     c.terms[c.index-1],
	}, 0, nil
}
