// Package resolve maps human-facing competition names onto the canonical
// OverviewPage identifiers the Cargo API filters on. Tournament names on
// the wiki drift constantly ("LEC Spring 2025" vs "LEC/2025 Season/Spring
// Season"), so matching is a cascade of increasingly loose heuristics.
package resolve

import "strings"

// Candidate is one entry of the active-tournaments listing.
type Candidate struct {
	Name        string
	CanonicalID string
}

// Tokens that carry no identity: a tournament's split or stage suffix
// varies between the human name and the wiki page name.
var noiseTokens = []string{
	"split", "season", "playoffs", "qualifier", "groupstage",
	"promotion", "finals", "stage", "bracket", "regular",
}

// Normalize lowercases, strips everything that is not a letter or digit,
// then removes the noise tokens. Matching only ever compares normalized
// strings.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	out := b.String()
	for _, tok := range noiseTokens {
		out = strings.ReplaceAll(out, tok, "")
	}
	return out
}

// words tokenizes on non-alphanumeric boundaries before separators are
// stripped, dropping noise tokens. Tokenizing the fully normalized string
// would always yield a single word and defeat the overlap check.
func words(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	}) {
		if isNoise(w) {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}

func isNoise(w string) bool {
	for _, tok := range noiseTokens {
		if w == tok {
			return true
		}
	}
	return false
}

// CanonicalID finds the canonical identifier for humanName among the
// candidates. Tiers are tried in order; within a tier the first candidate
// in input order wins. A miss is a normal outcome (new or renamed
// tournament), reported as ok=false, never an error.
func CanonicalID(humanName string, candidates []Candidate) (string, bool) {
	target := Normalize(humanName)
	if target == "" || len(candidates) == 0 {
		return "", false
	}

	// 1. Exact match on name or canonical id.
	for _, c := range candidates {
		if Normalize(c.Name) == target || Normalize(c.CanonicalID) == target {
			return c.CanonicalID, true
		}
	}

	// 2. Candidate contains the target.
	for _, c := range candidates {
		if strings.Contains(Normalize(c.Name), target) || strings.Contains(Normalize(c.CanonicalID), target) {
			return c.CanonicalID, true
		}
	}

	// 3. Target contains the candidate.
	for _, c := range candidates {
		if n := Normalize(c.Name); n != "" && strings.Contains(target, n) {
			return c.CanonicalID, true
		}
		if n := Normalize(c.CanonicalID); n != "" && strings.Contains(target, n) {
			return c.CanonicalID, true
		}
	}

	// 4. Word overlap: the smaller word set fully contained in the larger.
	targetWords := words(humanName)
	for _, c := range candidates {
		if overlaps(targetWords, words(c.Name)) || overlaps(targetWords, words(c.CanonicalID)) {
			return c.CanonicalID, true
		}
	}

	return "", false
}

func overlaps(a, b map[string]struct{}) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	common := 0
	for w := range a {
		if _, ok := b[w]; ok {
			common++
		}
	}
	min := len(a)
	if len(b) < min {
		min = len(b)
	}
	return common > 0 && common >= min
}
