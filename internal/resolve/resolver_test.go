package resolve

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"LEC 2025 Season/Spring Season", "lec2025spring"},
		{"LEC/2025 Season/Spring Season", "lec2025spring"},
		{"LCK Spring Playoffs", "lckspring"},
		{"Group Stage", ""},
		{"Regular Split", ""},
		{"LFL Division 2", "lfldivision2"},
		{"", ""},
		{"  T1 ", "t1"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalIDExactMatch(t *testing.T) {
	candidates := []Candidate{
		{Name: "LCK 2025 Spring", CanonicalID: "LCK/2025 Season/Spring Season"},
		{Name: "LEC 2025 Winter", CanonicalID: "LEC/2025 Season/Winter Season"},
	}

	got, ok := CanonicalID("LCK 2025 Spring", candidates)
	if !ok {
		t.Fatal("expected a match")
	}
	if got != "LCK/2025 Season/Spring Season" {
		t.Errorf("got %q", got)
	}
}

// Normalized equality against the canonical id itself must also resolve.
func TestCanonicalIDExactOnCanonicalID(t *testing.T) {
	candidates := []Candidate{
		{Name: "completely different", CanonicalID: "LEC/2025 Season/Spring Season"},
	}

	got, ok := CanonicalID("LEC 2025 Spring Season", candidates)
	if !ok {
		t.Fatal("expected a match")
	}
	if got != "LEC/2025 Season/Spring Season" {
		t.Errorf("got %q", got)
	}
}

func TestCanonicalIDContainment(t *testing.T) {
	candidates := []Candidate{
		{Name: "First Stand 2025", CanonicalID: "First Stand/2025"},
		{Name: "LFL 2025 Spring", CanonicalID: "LFL/2025 Season/Spring Season"},
	}

	got, ok := CanonicalID("LFL", candidates)
	if !ok {
		t.Fatal("expected a match")
	}
	if got != "LFL/2025 Season/Spring Season" {
		t.Errorf("got %q", got)
	}
}

func TestCanonicalIDReverseContainment(t *testing.T) {
	candidates := []Candidate{
		{Name: "MSI", CanonicalID: "MSI/2025"},
	}

	got, ok := CanonicalID("MSI 2025 Bracket Stage Extended Edition", candidates)
	if !ok {
		t.Fatal("expected a match")
	}
	if got != "MSI/2025" {
		t.Errorf("got %q", got)
	}
}

func TestCanonicalIDWordOverlap(t *testing.T) {
	candidates := []Candidate{
		{Name: "LEC 2025 Season/Spring Season", CanonicalID: "LEC/2025 Season/Spring Season"},
	}

	got, ok := CanonicalID("LEC Spring 2025", candidates)
	if !ok {
		t.Fatal("expected a match")
	}
	if got != "LEC/2025 Season/Spring Season" {
		t.Errorf("got %q", got)
	}
}

func TestCanonicalIDNoMatch(t *testing.T) {
	candidates := []Candidate{
		{Name: "LCK 2025 Spring", CanonicalID: "LCK/2025 Season/Spring Season"},
	}

	if _, ok := CanonicalID("VCT Americas", candidates); ok {
		t.Error("expected no match")
	}
}

func TestCanonicalIDEmptyInputs(t *testing.T) {
	if _, ok := CanonicalID("", []Candidate{{Name: "x", CanonicalID: "x"}}); ok {
		t.Error("empty name must not match")
	}
	if _, ok := CanonicalID("LEC", nil); ok {
		t.Error("no candidates must not match")
	}
	// A candidate that normalizes to nothing must not swallow everything
	// through reverse containment.
	if _, ok := CanonicalID("LEC 2025", []Candidate{{Name: "Group Stage", CanonicalID: "Regular Split"}}); ok {
		t.Error("empty-normalized candidate must not match")
	}
}

// Ties inside a tier resolve to the first candidate in input order.
func TestCanonicalIDTieBreakFirstInOrder(t *testing.T) {
	candidates := []Candidate{
		{Name: "LEC 2025 Spring", CanonicalID: "LEC/2025 Season/Spring Season"},
		{Name: "LEC 2025 Spring Playoffs", CanonicalID: "LEC/2025 Season/Spring Playoffs"},
	}

	got, ok := CanonicalID("LEC 2025", candidates)
	if !ok {
		t.Fatal("expected a match")
	}
	if got != "LEC/2025 Season/Spring Season" {
		t.Errorf("tie should resolve to first candidate, got %q", got)
	}
}

// A later tier must not shadow an earlier exact match listed further down
// the candidate slice.
func TestCanonicalIDTierPriority(t *testing.T) {
	candidates := []Candidate{
		{Name: "LCK 2025 Spring And Much More", CanonicalID: "wrong"},
		{Name: "LCK 2025 Spring", CanonicalID: "right"},
	}

	got, ok := CanonicalID("LCK 2025 Spring", candidates)
	if !ok {
		t.Fatal("expected a match")
	}
	if got != "right" {
		t.Errorf("exact tier should win over containment, got %q", got)
	}
}
