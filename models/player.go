package models

import "time"

// Player — участник турнира вместе со своим текущим положением в таблице.
// PrevOpponents ведёт себя как множество: один и тот же соперник не может
// попасть в него дважды (повторные матчи отклоняются при записи результата).
type Player struct {
	ID            int       `json:"id" db:"player_id"`
	TournamentID  int       `json:"tournament_id" db:"tournament_id"`
	Name          string    `json:"name" db:"name"`
	Points        float64   `json:"points" db:"points"`
	MatchesPlayed int       `json:"matches_played" db:"matches_played"`
	PrevOpponents []int     `json:"prev_opponents" db:"prev_opponents"`
	HadBye        bool      `json:"had_bye" db:"bye"`
	OppWin        *float64  `json:"opp_win,omitempty" db:"opp_win"` // NULL до первого сыгранного матча
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// HasPlayed reports whether the player has already faced the given opponent.
func (p *Player) HasPlayed(opponentID int) bool {
	for _, id := range p.PrevOpponents {
		if id == opponentID {
			return true
		}
	}
	return false
}
