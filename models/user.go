package models

import "time"

type UserRole string

const (
	RoleOrganizer UserRole = "organizer"
)

// User — учётная запись организатора. Только организаторы могут изменять
// турниры через HTTP-интерфейс.
type User struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
