package homeaccess

// Term is one grading period column of the gradebook (a semester or
// quarter). Two terms with the same code are the same term even when
// their display names differ.
type Term struct {
	Code string
	Name string
}

func (t Term) Same(other Term) bool {
	return t.Code == other.Code
}

type Attribute struct {
	Key   string
	Value string
}

// Attributes is a small name -> value mapping that keeps insertion
// order, since the portal's drill-down grid renders its columns in a
// meaningful order.
type Attributes []Attribute

func (a Attributes) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

func (a *Attributes) Set(key, value string) {
	for i, attr := range *a {
		if attr.Key == key {
			(*a)[i].Value = value
			return
		}
	}
	*a = append(*a, Attribute{Key: key, Value: value})
}

// GridBox is one classified unit extracted from a gradebook cell: a
// course header, a grade, a group of assignments or a narrative note.
type GridBox interface {
	Clickable() bool
	gridBox()
}

// GradeTextBox is a box that renders a grade's text for one term.
type GradeTextBox interface {
	GridBox
	GradeTerm() Term
}

// AssignmentsGridBox is a box extracted from the assignment drill-down
// grid, carrying the grid's raw column attributes.
type AssignmentsGridBox interface {
	GridBox
	Attrs() Attributes
}

// TeacherIDBox marks the start of a new course section.
type TeacherIDBox struct {
	TeacherName string
	CourseName  string
	TimePeriod  string
}

func (TeacherIDBox) Clickable() bool { return false }
func (TeacherIDBox) gridBox() {}

// LessInfoBox is a narrative or letter grade with no drill-down.
type LessInfoBox struct {
	Behavior string
	Term     Term
}

func (LessInfoBox) Clickable() bool { return false }
func (LessInfoBox) gridBox() {}
func (b LessInfoBox) GradeTerm() Term { return b.Term }

// GradeBox is a numeric grade the portal lets you click through to
// its assignment breakdown.
type GradeBox struct {
	CourseNumber string
	Term         Term
	Grade        string
	StudentID    string
}

func (GradeBox) Clickable() bool { return true }
func (GradeBox) gridBox() {}
func (b GradeBox) GradeTerm() Term { return b.Term }

// Assignment is one row of a grade's assignment breakdown. Attributes
// carries at least the "term" key, plus "grade" when a grade value
// could be recovered from the row.
type Assignment struct {
	StudentID      string
	AssignmentID   string
	GbID           string
	AssignmentName string
	Attributes     Attributes
}

func (Assignment) Clickable() bool { return false }
func (Assignment) gridBox() {}
func (a Assignment) Attrs() Attributes { return a.Attributes }

// CategoryHeader is a category row of the assignment breakdown. The
// observed payloads never carry category rows, so extraction never
// constructs one, but downstream consumers still handle it.
type CategoryHeader struct {
	CatName    string
	Weight     string
	Attributes Attributes
}

func (CategoryHeader) Clickable() bool { return false }
func (CategoryHeader) gridBox() {}
func (c CategoryHeader) Attrs() Attributes { return c.Attributes }

// AssignmentsListSmaller groups the consecutive assignment cells of
// one grade-detail block.
type AssignmentsListSmaller struct {
	Assignments []Assignment
}

func (*AssignmentsListSmaller) Clickable() bool { return true }
func (*AssignmentsListSmaller) gridBox() {}
