package homeaccess

import (
	"fmt"
	"hacview-backend/lib/telemetry"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mazen160/go-random"
	"github.com/stretchr/testify/require"
)

const emptyPage = `<html><body></body></html>`

func gradeCell(courseNumber, termName, termCode, grade, studentId string) Cell {
	return Cell{HTML: fmt.Sprintf(
		`<div id="gradeInfo" data-cni=%q data-lit=%q data-bkt=%q data-sid=%q>%s</div>`,
		courseNumber, termName, termCode, studentId, grade,
	)}
}

func assignmentCell(studentId, assignmentId, gbId, name, spanText string) Cell {
	return Cell{HTML: fmt.Sprintf(
		`<div id="assignmentInfo" data-sid=%q data-aid=%q data-gid=%q><a href="#">%s</a> <span>%s</span></div>`,
		studentId, assignmentId, gbId, name, spanText,
	)}
}

func textCell(text string) Cell {
	return Cell{HTML: fmt.Sprintf(`<div>%s</div>`, text)}
}

func TestClassifyGradeBox(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/homeaccess")
	defer cleanup()

	studentId, err := random.String(8)
	require.NoError(t, err)

	rows := []Row{
		{Cells: []Cell{gradeCell("MATH101", "Semester 1", "S1", "92", studentId)}},
	}
	boxes, err := Classify(rows, nil, emptyPage)
	require.NoError(t, err)

	require.Equal(t, []GridBox{
		GradeBox{
			CourseNumber: "MATH101",
			Term:         Term{Code: "S1", Name: "Semester 1"},
			Grade:        "92",
			StudentID:    studentId,
		},
	}, boxes)
	require.True(t, boxes[0].Clickable())
}

func TestClassifyAssignmentLookahead(t *testing.T) {
	rows := []Row{
		{Cells: []Cell{
			assignmentCell("1", "2", "3", "HW 1", "Homework (S1)"),
			textCell("--"),
			textCell("85"),
		}},
	}
	boxes, err := Classify(rows, nil, emptyPage)
	require.NoError(t, err)
	require.Len(t, boxes, 1)

	list, ok := boxes[0].(*AssignmentsListSmaller)
	require.True(t, ok)
	require.True(t, list.Clickable())

	expected := []Assignment{
		{
			StudentID:      "1",
			AssignmentID:   "2",
			GbID:           "3",
			AssignmentName: "HW 1",
			Attributes: Attributes{
				{Key: "term", Value: "S1"},
				{Key: "grade", Value: "85"},
			},
		},
	}
	require.Equal(t, expected, list.Assignments)
}

func TestClassifyAssignmentWithoutGrade(t *testing.T) {
	rows := []Row{
		{Cells: []Cell{
			assignmentCell("1", "2", "3", "Essay", "Writing (Q2)"),
			textCell("--"),
			textCell("excused"),
		}},
	}
	boxes, err := Classify(rows, nil, emptyPage)
	require.NoError(t, err)

	list := boxes[0].(*AssignmentsListSmaller)
	require.Len(t, list.Assignments, 1)

	term, ok := list.Assignments[0].Attributes.Get("term")
	require.True(t, ok)
	require.Equal(t, "Q2", term)

	_, ok = list.Assignments[0].Attributes.Get("grade")
	require.False(t, ok)
}

func TestAssignmentGrouping(t *testing.T) {
	// consecutive assignment rows collapse into one container
	rows := []Row{
		{Cells: []Cell{assignmentCell("1", "10", "3", "HW 1", "Homework (S1)"), textCell("80")}},
		{Cells: []Cell{assignmentCell("1", "11", "3", "HW 2", "Homework (S1)"), textCell("90")}},
	}
	boxes, err := Classify(rows, nil, emptyPage)
	require.NoError(t, err)
	require.Len(t, boxes, 1)

	list := boxes[0].(*AssignmentsListSmaller)
	require.Len(t, list.Assignments, 2)
	require.Equal(t, "HW 1", list.Assignments[0].AssignmentName)
	require.Equal(t, "HW 2", list.Assignments[1].AssignmentName)
}

func TestGroupClosedByOtherBox(t *testing.T) {
	terms := []Term{{Code: "S1", Name: "Sem 1"}}
	rows := []Row{
		{Cells: []Cell{assignmentCell("1", "10", "3", "HW 1", "Homework (S1)"), textCell("80")}},
		{Cells: []Cell{gradeCell("SCI200", "Sem 1", "S1", "95", "1")}},
		{Cells: []Cell{assignmentCell("1", "11", "3", "Lab 1", "Labs (S1)"), textCell("70")}},
	}
	boxes, err := Classify(rows, terms, emptyPage)
	require.NoError(t, err)
	require.Len(t, boxes, 3)

	_, first := boxes[0].(*AssignmentsListSmaller)
	_, second := boxes[1].(GradeBox)
	_, third := boxes[2].(*AssignmentsListSmaller)
	require.True(t, first)
	require.True(t, second)
	require.True(t, third)
}

func TestNarrativeFallback(t *testing.T) {
	terms := []Term{{Code: "S1", Name: "Sem 1"}}
	rows := []Row{
		{Cells: []Cell{
			gradeCell("MATH101", "Sem 1", "S1", "92", "1"),
			textCell("Excellent effort"),
		}},
	}
	boxes, err := Classify(rows, terms, emptyPage)
	require.NoError(t, err)
	require.Len(t, boxes, 2)

	expected := LessInfoBox{
		Behavior: "Excellent effort",
		Term:     Term{Code: "S1", Name: "Sem 1"},
	}
	require.Equal(t, expected, boxes[1])
	require.False(t, boxes[1].Clickable())
}

func TestNarrativeAtRowStart(t *testing.T) {
	rows := []Row{
		{Cells: []Cell{textCell("orphaned note")}},
	}
	_, err := Classify(rows, []Term{{Code: "S1"}}, emptyPage)
	require.ErrorIs(t, err, ErrMalformedDocument)
}

func TestSkipsDecorationCells(t *testing.T) {
	rows := []Row{
		{Cells: []Cell{
			{HTML: ""},
			{HTML: "<div>   </div>"},
			{HTML: "<img src='spacer.gif'/>"},
		}},
	}
	boxes, err := Classify(rows, nil, emptyPage)
	require.NoError(t, err)
	require.Empty(t, boxes)
}

func TestTeacherBoxLookup(t *testing.T) {
	page := `<html><body><div id="cid42"><div><table>
		<tr><td></td><td>P4</td><td>Biology</td><td>Okafor, N</td></tr>
	</table></div></div></body></html>`
	rows := []Row{
		{Cells: []Cell{{HTML: "", CellID: "cid42"}}},
	}
	boxes, err := Classify(rows, nil, page)
	require.NoError(t, err)

	expected := []GridBox{
		TeacherIDBox{
			TeacherName: "Okafor, N",
			CourseName:  "Biology",
			TimePeriod:  "P4",
		},
	}
	if diff := cmp.Diff(expected, boxes); diff != "" {
		t.Fatalf("boxes mismatch (-want +got):\n%s", diff)
	}
	require.False(t, boxes[0].Clickable())
}

func TestTeacherBoxMissingCellId(t *testing.T) {
	rows := []Row{
		{Cells: []Cell{{HTML: "", CellID: "nonexistent"}}},
	}
	_, err := Classify(rows, nil, emptyPage)
	require.ErrorIs(t, err, ErrMalformedDocument)
}
