package models

import "time"

// Tournament представляет один турнир по швейцарской системе.
type Tournament struct {
	ID        int       `json:"id" db:"tournament_id"`
	Name      string    `json:"name" db:"tournament_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Players []Player `json:"players,omitempty" db:"-"`
}
