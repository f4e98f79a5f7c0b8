package ranking

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadWeights(t *testing.T) {
	dir := t.TempDir()

	t.Run("defaults when no path", func(t *testing.T) {
		w, err := LoadWeights("")
		require.NoError(t, err)
		require.Equal(t, DefaultWeights(), w)
	})

	t.Run("defaults when file missing", func(t *testing.T) {
		w, err := LoadWeights(filepath.Join(dir, "nope.yaml"))
		require.NoError(t, err)
		require.Equal(t, DefaultWeights(), w)
	})

	t.Run("reads pipeline-shaped config", func(t *testing.T) {
		path := filepath.Join(dir, "ranking_config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"weights:\n  sao_weight: 0.25\n  sad_weight: 0.25\n  sos_weight: 0.50\n"), 0o644))
		w, err := LoadWeights(path)
		require.NoError(t, err)
		require.Equal(t, Weights{SAO: 0.25, SAD: 0.25, SOS: 0.50}, w)
	})

	t.Run("rejects weights not summing to one", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"weights:\n  sao_weight: 0.5\n  sad_weight: 0.5\n  sos_weight: 0.5\n"), 0o644))
		_, err := LoadWeights(path)
		require.Error(t, err)
	})

	t.Run("rejects unparseable yaml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("weights: [not a map"), 0o644))
		_, err := LoadWeights(path)
		require.Error(t, err)
	})
}

func TestVerifyComponents(t *testing.T) {
	w := DefaultWeights()
	records := []Team{
		{TeamID: "ok", SAONorm: 0.8, SADNorm: 0.7, SOSNorm: 0.6,
			PowerScore: w.Blend(0.8, 0.7, 0.6)},
		{TeamID: "drift", Name: "Drifters SC", SAONorm: 0.5, SADNorm: 0.5, SOSNorm: 0.5,
			PowerScore: 0.9}, // blend would be 0.5
	}

	got := VerifyComponents(records, w, 1e-6)
	require.Len(t, got, 1)
	require.Equal(t, "drift", got[0].TeamID)
	require.InDelta(t, 0.5, got[0].Recomputed, 1e-9)
	require.InDelta(t, 0.4, got[0].Delta, 1e-9)

	require.Empty(t, VerifyComponents(records[:1], w, 1e-6))
}

func TestUniqueness(t *testing.T) {
	records := []Team{
		{PowerScore: 0.90, SAONorm: 0.5, SADNorm: 0.1, SOSNorm: 0.40},
		{PowerScore: 0.80, SAONorm: 0.5, SADNorm: 0.2, SOSNorm: 0.40},
		{PowerScore: 0.70, SAONorm: 0.5, SADNorm: 0.3, SOSNorm: 0.40},
		{PowerScore: 0.60, SAONorm: 0.5, SADNorm: 0.4, SOSNorm: 0.40},
	}

	rep := Uniqueness(records)
	require.Equal(t, 4, rep.PowerScore.Unique)
	require.Equal(t, 4, rep.PowerScore.Total)
	require.Equal(t, 1, rep.SAONorm.Unique) // collapsed component
	require.Equal(t, 1, rep.SOSNorm.Unique)
	require.Equal(t, 4, rep.SADNorm.Unique)

	require.InDelta(t, 0.60, rep.PowerScore.Min, 1e-9)
	require.InDelta(t, 0.90, rep.PowerScore.Max, 1e-9)
	require.InDelta(t, 0.75, rep.PowerScore.Mean, 1e-9)
}

func TestUniqueness_RoundsToSixDecimals(t *testing.T) {
	records := []Team{
		{PowerScore: 0.1234567},
		{PowerScore: 0.1234569}, // same value at 6 decimals
		{PowerScore: 0.1234580},
	}
	rep := Uniqueness(records)
	require.Equal(t, 2, rep.PowerScore.Unique)
}

func TestQuantileLinearInterpolation(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	// pandas default: pos = q*(n-1)
	require.InDelta(t, 9.1, quantile(sorted, 0.90), 1e-9)
	require.InDelta(t, 9.55, quantile(sorted, 0.95), 1e-9)
	require.InDelta(t, 5.5, quantile(sorted, 0.50), 1e-9)
	require.InDelta(t, 3.0, quantile([]float64{3}, 0.99), 1e-9)
}

func TestStatsOfEmpty(t *testing.T) {
	st := statsOf(nil)
	require.Zero(t, st.Total)
	require.Zero(t, st.Unique)
}
