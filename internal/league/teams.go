package league

import "sort"

// Teams is the roster split of a match.
type Teams struct {
	A []Player `json:"teamA"`
	B []Player `json:"teamB"`
}

// Players returns the roster of one side.
func (t Teams) Players(side Team) []Player {
	if side == TeamA {
		return t.A
	}
	return t.B
}

// SideOf finds the team a player is on.
func (t Teams) SideOf(playerID string) (Team, bool) {
	for _, p := range t.A {
		if p.ID == playerID {
			return TeamA, true
		}
	}
	for _, p := range t.B {
		if p.ID == playerID {
			return TeamB, true
		}
	}
	return "", false
}

// ResolveTeams splits the confirmed registrations of a match by position:
// in insertion order, even indexes play for team A and odd ones for team B.
func ResolveTeams(regs []Registration) (Teams, error) {
	confirmed := make([]Registration, 0, len(regs))
	for _, r := range regs {
		if r.Status == RegistrationConfirmed {
			confirmed = append(confirmed, r)
		}
	}
	sort.SliceStable(confirmed, func(i, j int) bool { return confirmed[i].ID < confirmed[j].ID })

	var teams Teams
	for i, r := range confirmed {
		p := r.Player
		p.ID = r.PlayerID
		if i%2 == 0 {
			teams.A = append(teams.A, p)
		} else {
			teams.B = append(teams.B, p)
		}
	}
	if len(teams.A) == 0 || len(teams.B) == 0 {
		return teams, ErrInsufficientPlayers
	}
	return teams, nil
}
