package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Bekzhan07/swiss-system/models"
	"github.com/Bekzhan07/swiss-system/repositories"
)

type TournamentService interface {
	CreateTournament(ctx context.Context, name string) (*models.Tournament, error)
	GetTournament(ctx context.Context, id int) (*models.Tournament, error)
	ListTournaments(ctx context.Context) ([]*models.Tournament, error)
	RenameTournament(ctx context.Context, id int, name string) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, id int) error

	RegisterPlayer(ctx context.Context, tournamentID int, name string) (*models.Player, error)
	ListPlayers(ctx context.Context, tournamentID int) ([]*models.Player, int, error)
	CountPlayers(ctx context.Context, tournamentID int) (int, error)
	DeleteAllPlayers(ctx context.Context) error
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, name string) (*models.Tournament, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}

	tournament := &models.Tournament{Name: name}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetTournament(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}
	return tournament, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context) ([]*models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *tournamentService) RenameTournament(ctx context.Context, id int, name string) (*models.Tournament, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}

	if err := s.tournamentRepo.UpdateName(ctx, id, name); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to rename tournament %d: %w", id, err)
	}
	return s.GetTournament(ctx, id)
}

// DeleteTournament удаляет турнир; его игроки и матчи удаляются каскадом
// на уровне схемы.
func (s *tournamentService) DeleteTournament(ctx context.Context, id int) error {
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}
	return nil
}

func (s *tournamentService) RegisterPlayer(ctx context.Context, tournamentID int, name string) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}

	// Турнир должен существовать: FK отловил бы это позже, но с ErrNotFound
	// ответ точнее.
	if _, err := s.GetTournament(ctx, tournamentID); err != nil {
		return nil, err
	}

	player := &models.Player{Name: name, TournamentID: tournamentID}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to register player: %w", err)
	}
	return player, nil
}

func (s *tournamentService) ListPlayers(ctx context.Context, tournamentID int) ([]*models.Player, int, error) {
	if _, err := s.GetTournament(ctx, tournamentID); err != nil {
		return nil, 0, err
	}

	players, err := s.playerRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list players for tournament %d: %w", tournamentID, err)
	}
	return players, len(players), nil
}

func (s *tournamentService) CountPlayers(ctx context.Context, tournamentID int) (int, error) {
	count, err := s.playerRepo.CountByTournament(ctx, tournamentID)
	if err != nil {
		return 0, fmt.Errorf("failed to count players for tournament %d: %w", tournamentID, err)
	}
	return count, nil
}

func (s *tournamentService) DeleteAllPlayers(ctx context.Context) error {
	if err := s.playerRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to delete all players: %w", err)
	}
	return nil
}
