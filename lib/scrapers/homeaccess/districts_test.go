package homeaccess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRankDistricts(t *testing.T) {
	districts := []District{
		{Name: "Jefferson County Schools", Link: "https://hac.jefferson.example"},
		{Name: "Riverside Unified", Link: "https://hac.riverside.example"},
		{Name: "Riverside County Office", Link: "https://hac.rcoe.example"},
	}

	ranked := RankDistricts("Riverside Unified", districts)
	require.Equal(t, "Riverside Unified", ranked[0].Name)
	require.Len(t, ranked, 3)

	// input order is untouched
	require.Equal(t, "Jefferson County Schools", districts[0].Name)
}
