package ranking

import "strings"

// clubPatterns are the club-indicator substrings the name-analysis scripts
// counted. Matching is case-insensitive; leading spaces distinguish " FC"
// from e.g. "Force".
var clubPatterns = []string{"Academy", " FC", " SC", "United", "Club", "Soccer", "Football"}

// PatternCount is one club-indicator pattern with its hit count and a few
// sample names.
type PatternCount struct {
	Pattern string   `json:"pattern"`
	Count   int      `json:"count"`
	Samples []string `json:"samples,omitempty"`
}

// NamePatternReport summarizes team-name shape across an index: how many
// names carry recognizable club markers, used when deciding whether club
// names can be extracted from team names.
type NamePatternReport struct {
	Total    int            `json:"total"`
	Distinct int            `json:"distinct"`
	Patterns []PatternCount `json:"patterns"`
}

const patternSampleLimit = 5

// AnalyzeNames builds the pattern report over team display names.
func AnalyzeNames(names []string) NamePatternReport {
	rep := NamePatternReport{Total: len(names)}

	distinct := make(map[string]struct{}, len(names))
	for _, n := range names {
		distinct[n] = struct{}{}
	}
	rep.Distinct = len(distinct)

	for _, pat := range clubPatterns {
		pc := PatternCount{Pattern: strings.TrimSpace(pat)}
		lowerPat := strings.ToLower(pat)
		for _, n := range names {
			if strings.Contains(strings.ToLower(n), lowerPat) {
				pc.Count++
				if len(pc.Samples) < patternSampleLimit {
					pc.Samples = append(pc.Samples, n)
				}
			}
		}
		rep.Patterns = append(rep.Patterns, pc)
	}
	return rep
}
