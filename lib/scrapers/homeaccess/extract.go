package homeaccess

import (
	"encoding/json"
	"fmt"
	"hacview-backend/lib/htmlutil"
	"strings"
)

var ErrSessionExpired = fmt.Errorf("home access session expired, log in again")
var ErrMalformedDocument = fmt.Errorf("malformed gradebook document")

// the logged-out page renders the login form, the gradebook never does
const sessionExpiredMarker = `Account/LogOn`

const payloadScriptId = "gridBoxData"
const payloadMarker = `RenderGridBox(`

// the wrapper's closing syntax: `);});`
const payloadCloseLen = 5

// Cell is one cell of the decoded gridbox payload. Its contents are an
// escaped html fragment that must be re-parsed on its own; cId, when
// present, references an element of the surrounding page by id.
type Cell struct {
	HTML   string `json:"h"`
	CellID string `json:"cId"`
}

type Row struct {
	Cells []Cell `json:"c"`
}

type gridData struct {
	Header struct {
		Rows []Row `json:"r"`
	} `json:"th"`
	Body struct {
		Rows []Row `json:"r"`
	} `json:"tb"`
}

// Payload is the decoded intermediate form of one gradebook page. The
// raw html travels along with the decoded rows because teacher boxes
// are resolved by looking an id up in the original page, not in the
// payload itself.
type Payload struct {
	HeaderCells []Cell
	BodyRows    []Row
	RawHTML     string
}

// IsSessionExpired reports whether the page is the portal's logged-out
// indicator rather than a gradebook.
func IsSessionExpired(rawHtml string) bool {
	return strings.Contains(rawHtml, sessionExpiredMarker)
}

// Extract validates the session, locates the gridbox script payload
// and decodes it. It fails with ErrSessionExpired or
// ErrMalformedDocument and produces no partial result.
func Extract(rawHtml string) (Payload, error) {
	if IsSessionExpired(rawHtml) {
		return Payload{}, ErrSessionExpired
	}

	doc, err := htmlutil.ParseFragment(rawHtml)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %s", ErrMalformedDocument, err)
	}

	script := doc.Find("script#" + payloadScriptId)
	if script.Length() == 0 {
		return Payload{}, fmt.Errorf("%w: no payload script element", ErrMalformedDocument)
	}

	body, err := unwrapPayload(script.Text())
	if err != nil {
		return Payload{}, err
	}

	var data gridData
	err = json.Unmarshal([]byte(body), &data)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: decode payload: %s", ErrMalformedDocument, err)
	}
	if len(data.Header.Rows) == 0 {
		return Payload{}, fmt.Errorf("%w: payload has no header row", ErrMalformedDocument)
	}

	return Payload{
		HeaderCells: data.Header.Rows[0].Cells,
		BodyRows:    data.Body.Rows,
		RawHTML:     rawHtml,
	}, nil
}

// unwrapPayload strips the hand-rolled script wrapper: everything up
// to the marker, the fixed closing syntax at the end, and the outer
// named key the portal's framework wraps the grid data in.
func unwrapPayload(text string) (string, error) {
	start := strings.Index(text, payloadMarker)
	if start < 0 {
		return "", fmt.Errorf("%w: payload marker not found", ErrMalformedDocument)
	}
	body := strings.TrimSpace(text[start+len(payloadMarker):])
	if len(body) <= payloadCloseLen {
		return "", fmt.Errorf("%w: payload body too short", ErrMalformedDocument)
	}
	body = body[:len(body)-payloadCloseLen]

	colon := strings.Index(body, ":")
	if colon < 0 {
		return "", fmt.Errorf("%w: payload has no outer key", ErrMalformedDocument)
	}
	return body[colon+1:], nil
}

// Gradebook is the fully classified form of one gradebook page.
type Gradebook struct {
	Terms []Term
	Boxes []GridBox
}

// ParseGradebook runs the whole extraction: session check, payload
// decode, term extraction, then cell classification. Terms come first
// because classification aligns narrative cells against the term
// columns.
func ParseGradebook(rawHtml string) (Gradebook, error) {
	payload, err := Extract(rawHtml)
	if err != nil {
		return Gradebook{}, err
	}
	terms, err := ExtractTerms(payload.HeaderCells)
	if err != nil {
		return Gradebook{}, err
	}
	boxes, err := Classify(payload.BodyRows, terms, payload.RawHTML)
	if err != nil {
		return Gradebook{}, err
	}
	return Gradebook{Terms: terms, Boxes: boxes}, nil
}
