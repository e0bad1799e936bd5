package reconcile

import (
	"strings"
	"time"
)

// fixtureRef is the derived identity used to correlate records across the
// two feeds. There is no shared key upstream, so two records describe the
// same fixture iff the unordered team pair, the UTC calendar day, and the
// tournament label agree and their best-of counts are compatible. This is
// a heuristic; keep every comparison behind sameFixture so the policy can
// be tightened in one place.
type fixtureRef struct {
	team1      string
	team2      string
	tournament string
	bestOf     *int
	start      time.Time
}

func sameFixture(a, b fixtureRef) bool {
	return sameTeamPair(a, b) &&
		sameDay(a.start, b.start) &&
		foldName(a.tournament) == foldName(b.tournament) &&
		compatibleBestOf(a.bestOf, b.bestOf)
}

func sameTeamPair(a, b fixtureRef) bool {
	a1, a2 := orderedPair(a.team1, a.team2)
	b1, b2 := orderedPair(b.team1, b.team2)
	return a1 == b1 && a2 == b2
}

func orderedPair(t1, t2 string) (string, string) {
	f1, f2 := foldName(t1), foldName(t2)
	if f1 > f2 {
		return f2, f1
	}
	return f1, f2
}

func foldName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// Best-of counts match when equal or when either feed omitted the field.
func compatibleBestOf(a, b *int) bool {
	if a == nil || b == nil {
		return true
	}
	return *a == *b
}
