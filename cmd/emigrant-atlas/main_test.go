package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"emigrant-atlas/internal/geo"
	"emigrant-atlas/internal/reconcile"
)

// run executes the CLI against the testdata files and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	a := &app{newLogger: func(bool) (*zap.Logger, error) { return zap.NewNop(), nil }}
	root := a.rootCmd()

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	base := []string{
		"--geojson", filepath.Join("testdata", "countries.geojson"),
		"--data", filepath.Join("testdata", "destinations.json"),
		"--tables", filepath.Join("testdata", "tables.yaml"),
	}
	root.SetArgs(append(append([]string{args[0]}, base...), args[1:]...))

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func TestResolve_Text(t *testing.T) {
	out, _, err := run(t, "resolve", "--year", "1981")
	require.NoError(t, err)

	assert.Contains(t, out, "Year 1981")
	assert.Contains(t, out, "China")
	assert.Contains(t, out, "800")
	assert.Contains(t, out, "matched 1, fallback 1, fuzzy 1, missed 1, skipped 1")
	assert.Contains(t, out, "HONGKONG")
	assert.Contains(t, out, "MLAYSIA")
	assert.Contains(t, out, "unresolved labels:")
	assert.Contains(t, out, "ATLANTIS OF THE DEEP SEA (closest: ")
}

func TestResolve_JSON(t *testing.T) {
	out, _, err := run(t, "resolve", "--year", "1981", "--json", "--legend", "2")
	require.NoError(t, err)

	var rep yearReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))

	assert.True(t, rep.Available)
	assert.Equal(t, map[string]float64{"CHN": 800, "MYS": 42}, rep.Values)
	require.NotNil(t, rep.Stats)
	assert.Equal(t, reconcile.Stats{Matched: 1, FallbackUsed: 1, FuzzyMatched: 1, Missed: 1, Skipped: 1}, *rep.Stats)

	require.Len(t, rep.Top, 2)
	assert.Equal(t, "CHN", rep.Top[0].ID)
	assert.Equal(t, "China", rep.Top[0].Name)

	assert.Len(t, rep.Colors, 2)
	assert.Len(t, rep.Legend, 3)
	assert.Len(t, rep.Redirects, 2)
	require.Len(t, rep.Misses, 1)
	assert.Equal(t, "ATLANTIS OF THE DEEP SEA", rep.Misses[0].Label)
}

func TestResolve_AllYears(t *testing.T) {
	out, _, err := run(t, "resolve", "--all-years", "--json", "--workers", "1")
	require.NoError(t, err)

	var reps []yearReport
	require.NoError(t, json.Unmarshal([]byte(out), &reps))
	require.Len(t, reps, 2)

	assert.Equal(t, 1981, reps[0].Year)
	assert.Equal(t, 1982, reps[1].Year)
	assert.Equal(t, map[string]float64{"USA": 1250, "VNM": 12, "MYS": 8}, reps[1].Values)
}

func TestResolve_YearUnavailable(t *testing.T) {
	out, _, err := run(t, "resolve", "--year", "1999")
	require.NoError(t, err)
	assert.Equal(t, "data not available for 1999\n", out)

	out, _, err = run(t, "resolve", "--year", "1999", "--json")
	require.NoError(t, err)

	var rep yearReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.False(t, rep.Available)
	assert.Equal(t, 1999, rep.Year)
}

func TestResolve_AllYearsWithoutYearRecords(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"flat record", `{"CHINA PROC": 500, "HONGKONG": 300}`},
		{"empty data array", `{"data": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "doc.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.doc), 0o600))

			out, _, err := run(t, "resolve", "--all-years", "--data", path)
			require.NoError(t, err)
			assert.Equal(t, "data not available for any year\n", out)

			out, _, err = run(t, "resolve", "--all-years", "--json", "--data", path)
			require.NoError(t, err)

			var reps []yearReport
			require.NoError(t, json.Unmarshal([]byte(out), &reps))
			assert.Empty(t, reps)
		})
	}
}

func TestResolve_Dump(t *testing.T) {
	out, _, err := run(t, "resolve", "--year", "1982", "--dump")
	require.NoError(t, err)

	assert.Contains(t, out, "year 1982")
	assert.Contains(t, out, "reconcile.Result")
}

func TestResolve_FlagErrors(t *testing.T) {
	_, _, err := run(t, "resolve")
	assert.ErrorContains(t, err, "--year or --all-years")

	_, _, err = run(t, "resolve", "--year", "1981", "--all-years")
	assert.Error(t, err)

	_, _, err = run(t, "resolve", "--year", "1981", "--max-distance", "-1")
	assert.Error(t, err)
}

func TestResolve_MissingReference(t *testing.T) {
	_, _, err := run(t, "resolve", "--year", "1981", "--geojson", filepath.Join(t.TempDir(), "absent.geojson"))
	assert.ErrorIs(t, err, geo.ErrReferenceDataUnavailable)
}

func TestResolve_MaxDistanceFlag(t *testing.T) {
	out, _, err := run(t, "resolve", "--year", "1981", "--json", "--max-distance", "0")
	require.NoError(t, err)

	var rep yearReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, map[string]float64{"CHN": 800}, rep.Values)
	assert.Equal(t, 2, rep.Stats.Missed)
}

func TestYears(t *testing.T) {
	out, _, err := run(t, "years")
	require.NoError(t, err)
	assert.Equal(t, "1981\n1982\n", out)
}

func TestTables(t *testing.T) {
	out, stderr, err := run(t, "tables", "--validate")
	require.NoError(t, err)

	assert.Contains(t, out, "CHINA PROC: CHINA")
	assert.Contains(t, out, "max_fuzzy_distance: 10")
	assert.Contains(t, stderr, "fallback_unresolved")
	assert.Contains(t, stderr, "MACAO")
	assert.Contains(t, stderr, "alias_unresolved")
}

func TestRegistry(t *testing.T) {
	out, _, err := run(t, "registry", "--json")
	require.NoError(t, err)

	var entities []geo.Entity
	require.NoError(t, json.Unmarshal([]byte(out), &entities))
	require.Len(t, entities, 4)

	assert.Equal(t, geo.Entity{ID: "VNM", DisplayName: "Vietnam", Names: []string{"VIETNAM", "VIET NAM"}}, entities[2])

	out, stderr, err := run(t, "registry")
	require.NoError(t, err)
	assert.Contains(t, out, "United States of America")
	assert.Contains(t, stderr, "missing_id")
}
