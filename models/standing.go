package models

// Standing — строка турнирной таблицы, отдаваемая представлением
// tournament_filter: очки по убыванию, при равенстве — имя по алфавиту.
type Standing struct {
	PlayerID      int     `json:"player_id" db:"player_id"`
	Name          string  `json:"name" db:"name"`
	Points        float64 `json:"points" db:"points"`
	MatchesPlayed int     `json:"matches_played" db:"matches_played"`
}

// FinalStanding — строка итогового зачёта с тай-брейком по opp_win.
// Rank повторяется для игроков с одинаковой парой (points, opp_win),
// следующий отличающийся игрок получает ранг со сдвигом на число ничьих.
type FinalStanding struct {
	Rank          int      `json:"rank"`
	PlayerID      int      `json:"player_id"`
	Name          string   `json:"name"`
	Points        float64  `json:"points"`
	MatchesPlayed int      `json:"matches_played"`
	OppWin        *float64 `json:"opp_win,omitempty"`
}
