package league

// canonicalSets are the finished-set scorelines accepted, as (winner, loser).
var canonicalSets = map[[2]int]bool{
	{6, 0}: true,
	{6, 1}: true,
	{6, 2}: true,
	{6, 3}: true,
	{6, 4}: true,
	{7, 5}: true,
	{7, 6}: true,
	{7, 4}: true,
}

// ValidSet reports whether a-b is an acceptable set score. 0-0 marks an
// unplayed set. The rules are applied in order, so 7-6 is rejected by the
// two-point margin before the scoreline table is consulted.
func ValidSet(a, b int) bool {
	if a < 0 || b < 0 {
		return false
	}
	if a == 0 && b == 0 {
		return true
	}
	if a > 0 && b > 0 && a < 6 && b < 6 {
		return false
	}
	if abs(a-b) < 2 {
		return false
	}
	return canonicalSets[[2]int{a, b}] || canonicalSets[[2]int{b, a}]
}

// ParseSets checks the submitted sets and numbers them from 1.
func ParseSets(inputs []SetInput) ([]SetScore, error) {
	if len(inputs) != SetsPerMatch {
		return nil, ErrWrongSetCount
	}
	sets := make([]SetScore, 0, len(inputs))
	for i, in := range inputs {
		if in.PointsTeamA == nil || in.PointsTeamB == nil {
			return nil, malformedSet(i + 1)
		}
		a, b := *in.PointsTeamA, *in.PointsTeamB
		if !ValidSet(a, b) {
			return nil, invalidSetScore(i+1, a, b)
		}
		sets = append(sets, SetScore{Number: i + 1, PointsA: a, PointsB: b})
	}
	return sets, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
