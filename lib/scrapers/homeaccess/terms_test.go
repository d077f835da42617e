package homeaccess

import (
	"hacview-backend/lib/telemetry"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractTerms(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/homeaccess")
	defer cleanup()

	testCases := []struct {
		name     string
		cells    []Cell
		expected []Term
	}{
		{
			name:  "truncated header with tooltip",
			cells: []Cell{{HTML: `<th tooltip="2024-S1">Sem 1</th>XXXX`}},
			expected: []Term{
				{Code: "2024-S1", Name: "Sem 1"},
			},
		},
		{
			name:     "no tooltip means no selectable term",
			cells:    []Cell{{HTML: `<th>Course</th>XXXX`}},
			expected: nil,
		},
		{
			name: "order preserved, duplicates kept",
			cells: []Cell{
				{HTML: `<th>Course</th>XXXX`},
				{HTML: `<th tooltip="Q1">Qtr 1</th>XXXX`},
				{HTML: `<th tooltip="Q2">Qtr 2</th>XXXX`},
				{HTML: `<th tooltip="Q1">Quarter One</th>XXXX`},
			},
			expected: []Term{
				{Code: "Q1", Name: "Qtr 1"},
				{Code: "Q2", Name: "Qtr 2"},
				{Code: "Q1", Name: "Quarter One"},
			},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			terms, err := ExtractTerms(test.cells)
			require.NoError(t, err)
			require.Equal(t, test.expected, terms)
			require.LessOrEqual(t, len(terms), len(test.cells))
		})
	}
}

func TestTermIdentity(t *testing.T) {
	a := Term{Code: "Q1", Name: "Qtr 1"}
	b := Term{Code: "Q1", Name: "Quarter One"}
	c := Term{Code: "Q2", Name: "Qtr 2"}

	require.True(t, a.Same(b))
	require.False(t, a.Same(c))
}
