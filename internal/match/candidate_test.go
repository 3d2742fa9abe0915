package match

import (
	"testing"
)

func TestRankCandidates(t *testing.T) {
	names := []string{"MALTA", "MALAYSIA", "MALI", "MALDIVES"}

	candidates := RankCandidates("MLAYSIA", names)

	if len(candidates) != len(names) {
		t.Fatalf("Expected %d candidates, got %d", len(names), len(candidates))
	}

	if candidates[0].Name != "MALAYSIA" || candidates[0].Distance != 1 {
		t.Errorf("Expected best match MALAYSIA at distance 1, got %s at %d",
			candidates[0].Name, candidates[0].Distance)
	}

	for i := 1; i < len(candidates); i++ {
		if candidates[i-1].Distance > candidates[i].Distance {
			t.Errorf("Candidates not sorted by distance at %d: %v", i, candidates)
		}
	}
}

func TestRankCandidates_TieBreakByInsertionOrder(t *testing.T) {
	// "BAT" is one edit away from both; the earlier name wins.
	names := []string{"CAT", "BAR", "BAT"}

	candidates := RankCandidates("BAX", names)

	if candidates[0].Name != "BAR" || candidates[1].Name != "BAT" {
		t.Errorf("Expected BAR then BAT, got %s then %s", candidates[0].Name, candidates[1].Name)
	}

	if !candidates.IsAmbiguous() {
		t.Error("Expected tied candidates to be ambiguous")
	}
}

func TestClosest(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		names    []string
		wantName string
		wantDist int
		wantOK   bool
	}{
		{"typo", "MLAYSIA", []string{"MALTA", "MALAYSIA"}, "MALAYSIA", 1, true},
		{"exact stops early", "MALI", []string{"MALI", "MALTA"}, "MALI", 0, true},
		{"tie keeps first", "BAX", []string{"CAT", "BAR", "BAT"}, "BAR", 1, true},
		{"empty list", "CHINA", nil, "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Closest(tt.label, tt.names)
			if ok != tt.wantOK {
				t.Fatalf("Closest(%q) ok = %v, want %v", tt.label, ok, tt.wantOK)
			}

			if !ok {
				return
			}

			if got.Name != tt.wantName || got.Distance != tt.wantDist {
				t.Errorf("Closest(%q) = %s (%d), want %s (%d)",
					tt.label, got.Name, got.Distance, tt.wantName, tt.wantDist)
			}
		})
	}
}

func TestClosest_AgreesWithRank(t *testing.T) {
	names := []string{"NORWAY", "NIGER", "NIGERIA", "NEPAL", "KENYA"}

	for _, label := range []string{"NIGERA", "NORWEY", "KENIA", "ATLANTIS"} {
		best, _ := Closest(label, names)
		ranked := RankCandidates(label, names).Best()

		if ranked == nil || best != *ranked {
			t.Errorf("Closest(%q) = %+v, RankCandidates best = %+v", label, best, ranked)
		}
	}
}

func TestCandidateList_Within(t *testing.T) {
	candidates := CandidateList{
		{Name: "A", Distance: 1},
		{Name: "B", Distance: 10},
		{Name: "C", Distance: 11},
	}

	within := candidates.Within(DefaultMaxDistance)
	if len(within) != 2 {
		t.Errorf("Expected 2 candidates within %d, got %d", DefaultMaxDistance, len(within))
	}

	if top := candidates.Top(1); len(top) != 1 || top[0].Name != "A" {
		t.Errorf("Top(1) = %v", top)
	}

	if candidates.Top(10)[2].Name != "C" {
		t.Error("Top(n) with n >= len should return the whole list")
	}

	var empty CandidateList
	if empty.Best() != nil {
		t.Error("Best() on empty list should be nil")
	}
}
