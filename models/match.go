package models

import "time"

// Match — запись о сыгранном матче. Создаётся ровно один раз при вводе
// результата и никогда не изменяется; удаляется только при сбросе истории
// или каскадом вместе с турниром. При Draw=false Player1ID — победитель.
type Match struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Player1ID    int       `json:"player1_id" db:"player1_id"`
	Player2ID    int       `json:"player2_id" db:"player2_id"`
	Draw         bool      `json:"draw" db:"draw"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
