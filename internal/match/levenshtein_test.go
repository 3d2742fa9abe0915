package match

import (
	"testing"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		// Identical strings
		{"", "", 0},
		{"A", "A", 0},
		{"CHINA", "CHINA", 0},

		// Empty vs non-empty
		{"", "ABC", 3},
		{"ABC", "", 3},

		// Single character operations
		{"A", "B", 1},    // substitution
		{"A", "AB", 1},   // insertion
		{"AB", "A", 1},   // deletion
		{"ABC", "AB", 1}, // deletion
		{"AB", "ABC", 1}, // insertion

		// Multiple operations
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"algorithm", "altruistic", 6},

		// Case-sensitive
		{"ABC", "abc", 3},

		// Real-world label examples
		{"MLAYSIA", "MALAYSIA", 1},
		{"VIETNAM", "VIET NAM", 1},
		{"HONGKONG", "HONG KONG", 1},
		{"PHILLIPINES", "PHILIPPINES", 2},

		// Runes count as one character each
		{"CÔTE DIVOIRE", "COTE DIVOIRE", 1},
		{"CURAÇAO", "CURACAO", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			result := Levenshtein(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, result, tt.expected)
			}

			// Verify symmetry
			resultReverse := Levenshtein(tt.b, tt.a)
			if result != resultReverse {
				t.Errorf("Levenshtein symmetry failed: (%q, %q) = %d, (%q, %q) = %d",
					tt.a, tt.b, result, tt.b, tt.a, resultReverse)
			}
		})
	}
}

func TestLevenshtein_Identity(t *testing.T) {
	for _, s := range []string{"", "A", "UNITED STATES OF AMERICA", "CÔTE D’IVOIRE", "日本"} {
		if d := Levenshtein(s, s); d != 0 {
			t.Errorf("Levenshtein(%q, %q) = %d, want 0", s, s, d)
		}
	}
}

func TestLevenshtein_LengthBound(t *testing.T) {
	// The distance never exceeds the longer string and never falls below the length difference.
	pairs := [][2]string{
		{"ATLANTIS", "UNITED KINGDOM"},
		{"SAUDI ARABIA", "KSA"},
		{"NEW ZEALAND", "PAPUA NEW GUINEA"},
	}

	for _, p := range pairs {
		d := Levenshtein(p[0], p[1])
		la, lb := len([]rune(p[0])), len([]rune(p[1]))

		if d > max(la, lb) {
			t.Errorf("Levenshtein(%q, %q) = %d exceeds max length %d", p[0], p[1], d, max(la, lb))
		}

		if diff := la - lb; d < diff || d < -diff {
			t.Errorf("Levenshtein(%q, %q) = %d below length difference", p[0], p[1], d)
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected float64
	}{
		// Identical strings
		{"", "", 1.0},
		{"CHINA", "CHINA", 1.0},

		// Completely different
		{"ABC", "XYZ", 0.0},

		// Partial matches
		{"kitten", "sitting", 1.0 - 3.0/7.0}, // ~0.571
		{"ABC", "AB", 1.0 - 1.0/3.0},         // ~0.667
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			result := Similarity(tt.a, tt.b)
			// Allow small floating point tolerance
			if diff := result - tt.expected; diff < -0.001 || diff > 0.001 {
				t.Errorf("Similarity(%q, %q) = %f, want %f", tt.a, tt.b, result, tt.expected)
			}
		})
	}
}

// Benchmark tests
func BenchmarkLevenshtein(b *testing.B) {
	a := "DEMOCRATIC REPUBLIC OF THE CONGO ZAIRE"
	bStr := "DEMOCRATIC REPUBLIC OF THE CONGO"
	for i := 0; i < b.N; i++ {
		Levenshtein(a, bStr)
	}
}
