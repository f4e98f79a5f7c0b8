package ranking

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyzeNames(t *testing.T) {
	names := []string{
		"Phoenix Rising Academy",
		"State 48 FC Copper",
		"State 48 FC Copper", // duplicate display name
		"Tucson United",
		"Scottsdale SC",
		"Force 09", // "Force" must not match " FC"
		"Barcelona Residency academy",
	}

	rep := AnalyzeNames(names)
	require.Equal(t, 7, rep.Total)
	require.Equal(t, 6, rep.Distinct)

	counts := map[string]int{}
	for _, p := range rep.Patterns {
		counts[p.Pattern] = p.Count
	}
	require.Equal(t, 2, counts["Academy"]) // case-insensitive
	require.Equal(t, 2, counts["FC"])
	require.Equal(t, 1, counts["SC"])
	require.Equal(t, 1, counts["United"])
	require.Equal(t, 0, counts["Club"])
	require.Equal(t, 0, counts["Football"])
}

func TestAnalyzeNames_SampleLimit(t *testing.T) {
	names := make([]string, 8)
	for i := range names {
		names[i] = "Generic Academy"
	}
	rep := AnalyzeNames(names)
	for _, p := range rep.Patterns {
		if p.Pattern != "Academy" {
			continue
		}
		require.Equal(t, 8, p.Count)
		require.Len(t, p.Samples, patternSampleLimit)
	}
}

func TestAnalyzeNames_Empty(t *testing.T) {
	rep := AnalyzeNames(nil)
	require.Zero(t, rep.Total)
	require.Zero(t, rep.Distinct)
	require.Len(t, rep.Patterns, len(clubPatterns))
}
