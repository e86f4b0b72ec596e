package league

// CalculateOutcome aggregates three sets into a match outcome.
// Points count for every set; a set is won by the higher score.
func CalculateOutcome(sets []SetScore) (Outcome, error) {
	if len(sets) != SetsPerMatch {
		return Outcome{}, ErrWrongSetCount
	}
	var o Outcome
	for _, s := range sets {
		o.PointsA += s.PointsA
		o.PointsB += s.PointsB
		switch {
		case s.PointsA > s.PointsB:
			o.SetsWonA++
		case s.PointsB > s.PointsA:
			o.SetsWonB++
		}
	}
	if o.SetsWonA == o.SetsWonB {
		return Outcome{}, ErrTiedSets
	}
	o.Winner = TeamB
	if o.SetsWonA > o.SetsWonB {
		o.Winner = TeamA
	}
	return o, nil
}
