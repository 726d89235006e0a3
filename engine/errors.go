package engine

import "errors"

// Ошибки ядра. Все возвращаются вызывающему синхронно и никогда не
// перезапускаются внутри движка: повтор — политика вызывающей стороны.
var (
	// Матч игрока с самим собой.
	ErrInvalidMatch = errors.New("a player cannot play against themselves")

	// Пара уже встречалась в этом турнире.
	ErrRematch = errors.New("these players have already played each other")

	// Нечётное поле, но каждый игрок уже получал bye.
	ErrNoEligiblePlayerForBye = errors.New("no eligible player left for a bye")

	// Прямой проход не может составить пары без повторного матча.
	// Движок не делает бэктрекинг по уже составленным парам.
	ErrPairingConflict = errors.New("pairing cannot be completed without a rematch")
)
