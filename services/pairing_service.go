package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Bekzhan07/swiss-system/engine"
	"github.com/Bekzhan07/swiss-system/repositories"
)

type PairingService interface {
	// NextRoundPairings — чистая функция от текущего состояния турнира:
	// ничего не записывает. Пары сохраняются вызывающим через ReportMatch,
	// bye — через AwardBye.
	NextRoundPairings(ctx context.Context, tournamentID int) (*engine.Round, error)
}

type pairingService struct {
	playerRepo repositories.PlayerRepository
	calculator *engine.StandingsCalculator
	pairing    *engine.SwissPairingEngine
	hub        *engine.Hub
}

func NewPairingService(playerRepo repositories.PlayerRepository, hub *engine.Hub) PairingService {
	return &pairingService{
		playerRepo: playerRepo,
		calculator: engine.NewStandingsCalculator(),
		pairing:    engine.NewSwissPairingEngine(),
		hub:        hub,
	}
}

func (s *pairingService) NextRoundPairings(ctx context.Context, tournamentID int) (*engine.Round, error) {
	players, err := s.playerRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load players for tournament %d: %w", tournamentID, err)
	}

	round, err := s.pairing.GenerateRound(engine.GenerateRoundParams{
		Players: s.calculator.Rank(players),
	})
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		roomID := strconv.Itoa(tournamentID)
		s.hub.BroadcastToRoom(roomID, engine.WebSocketMessage{
			Type:    engine.MessagePairingsGenerated,
			Payload: round,
			RoomID:  roomID,
		})
	}
	return round, nil
}
