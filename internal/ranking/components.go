package ranking

import (
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Weights are the PowerScore blend weights. Defaults mirror the upstream
// pipeline: powerscore = 0.20*sao_norm + 0.20*sad_norm + 0.60*sos_norm.
type Weights struct {
	SAO float64 `yaml:"sao_weight" json:"sao_weight"`
	SAD float64 `yaml:"sad_weight" json:"sad_weight"`
	SOS float64 `yaml:"sos_weight" json:"sos_weight"`
}

func DefaultWeights() Weights { return Weights{SAO: 0.20, SAD: 0.20, SOS: 0.60} }

// LoadWeights reads blend weights from a YAML file in the same shape as the
// pipeline's ranking config. Missing file is not an error; defaults apply.
func LoadWeights(path string) (Weights, error) {
	w := DefaultWeights()
	if path == "" {
		return w, nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return w, nil
		}
		return Weights{}, err
	}
	var cfg struct {
		Weights Weights `yaml:"weights"`
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return Weights{}, fmt.Errorf("parse weights config: %w", err)
	}
	if cfg.Weights != (Weights{}) {
		w = cfg.Weights
	}
	if s := w.SAO + w.SAD + w.SOS; math.Abs(s-1.0) > 1e-9 {
		return Weights{}, fmt.Errorf("weights sum to %.6f, want 1.0", s)
	}
	return w, nil
}

// Blend recomputes a powerscore from normalized components.
func (w Weights) Blend(saoNorm, sadNorm, sosNorm float64) float64 {
	return w.SAO*saoNorm + w.SAD*sadNorm + w.SOS*sosNorm
}

// ComponentMismatch is a team whose stored powerscore is not the weighted
// blend of its stored components.
type ComponentMismatch struct {
	TeamID     string  `json:"team_id"`
	Team       string  `json:"team,omitempty"`
	Stored     float64 `json:"stored_powerscore"`
	Recomputed float64 `json:"recomputed_powerscore"`
	Delta      float64 `json:"delta"`
}

// VerifyComponents recomputes powerscore = w·(sao,sad,sos) for every team and
// returns those deviating from the stored value by more than tol.
func VerifyComponents(records []Team, w Weights, tol float64) []ComponentMismatch {
	var out []ComponentMismatch
	for _, rec := range records {
		got := w.Blend(rec.SAONorm, rec.SADNorm, rec.SOSNorm)
		if d := math.Abs(got - rec.PowerScore); d > tol {
			out = append(out, ComponentMismatch{
				TeamID:     rec.TeamID,
				Team:       rec.Name,
				Stored:     rec.PowerScore,
				Recomputed: got,
				Delta:      d,
			})
		}
	}
	return out
}

// FieldStats summarizes one numeric column across a snapshot.
type FieldStats struct {
	Unique int     `json:"unique"` // distinct values after rounding to 6 decimals
	Total  int     `json:"total"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Stddev float64 `json:"stddev"`
	P90    float64 `json:"p90"`
	P95    float64 `json:"p95"`
	P99    float64 `json:"p99"`
}

// UniquenessReport holds per-component distinct-value and distribution stats.
// Low uniqueness in a component is the scripts' sanity signal for a collapsed
// normalization stage.
type UniquenessReport struct {
	PowerScore FieldStats `json:"powerscore"`
	SAONorm    FieldStats `json:"sao_norm"`
	SADNorm    FieldStats `json:"sad_norm"`
	SOSNorm    FieldStats `json:"sos_norm"`
}

// Uniqueness computes distinct-value ratios and distribution statistics for
// powerscore and the three normalized components.
func Uniqueness(records []Team) UniquenessReport {
	pick := func(f func(Team) float64) []float64 {
		vals := make([]float64, len(records))
		for i, rec := range records {
			vals[i] = f(rec)
		}
		return vals
	}
	return UniquenessReport{
		PowerScore: statsOf(pick(func(t Team) float64 { return t.PowerScore })),
		SAONorm:    statsOf(pick(func(t Team) float64 { return t.SAONorm })),
		SADNorm:    statsOf(pick(func(t Team) float64 { return t.SADNorm })),
		SOSNorm:    statsOf(pick(func(t Team) float64 { return t.SOSNorm })),
	}
}

func statsOf(vals []float64) FieldStats {
	st := FieldStats{Total: len(vals)}
	if len(vals) == 0 {
		return st
	}

	distinct := make(map[float64]struct{}, len(vals))
	sum := 0.0
	st.Min, st.Max = vals[0], vals[0]
	for _, v := range vals {
		distinct[round6(v)] = struct{}{}
		sum += v
		if v < st.Min {
			st.Min = v
		}
		if v > st.Max {
			st.Max = v
		}
	}
	st.Unique = len(distinct)
	st.Mean = sum / float64(len(vals))

	var sq float64
	for _, v := range vals {
		d := v - st.Mean
		sq += d * d
	}
	st.Stddev = math.Sqrt(sq / float64(len(vals)))

	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	st.P90 = quantile(sorted, 0.90)
	st.P95 = quantile(sorted, 0.95)
	st.P99 = quantile(sorted, 0.99)
	return st
}

// quantile uses linear interpolation on a sorted slice, matching pandas'
// default so thresholds line up with the old reports.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }
