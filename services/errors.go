package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ошибки валидации и бизнес-правил
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrPlayerNameRequired     = errors.New("player name is required")
	ErrPlayerTournamentMixed  = errors.New("players belong to different tournaments")
	ErrPlayerAlreadyByed      = errors.New("player has already received a bye")
	ErrPasswordTooShort       = errors.New("password is too short")

	// Ошибки, специфичные для сущностей
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrPlayerNotFound     = errors.New("player not found")

	// Ошибки аутентификации
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")

	// Экспорт отключён конфигурацией (нет блока R2)
	ErrExportDisabled = errors.New("report export is not configured")
)
