package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Bekzhan07/swiss-system/engine"
	"github.com/Bekzhan07/swiss-system/models"
	"github.com/Bekzhan07/swiss-system/repositories"
)

type ReportMatchInput struct {
	WinnerID int  `json:"winner_id"`
	LoserID  int  `json:"loser_id"`
	Draw     bool `json:"draw"`
}

type StandingsService interface {
	// Rank — порядок таблицы: очки по убыванию, затем имя. Это же — входной
	// порядок для жеребьёвки.
	Rank(ctx context.Context, tournamentID int) ([]*models.Player, error)

	// ReportMatch записывает результат: создаёт матч, обновляет очки, историю
	// и opp_win обоих игроков в одной транзакции.
	ReportMatch(ctx context.Context, tournamentID int, input ReportMatchInput) (*models.Match, error)

	// AwardBye начисляет bye: победа без соперника, без строки матча.
	AwardBye(ctx context.Context, tournamentID, playerID int) (*models.Player, error)

	// FinalRankings — итоговый зачёт с тай-брейком по opp_win и общими
	// рангами для полностью равных записей.
	FinalRankings(ctx context.Context, tournamentID int) ([]models.FinalStanding, error)

	// ListMatches — сыгранные матчи турнира в порядке записи.
	ListMatches(ctx context.Context, tournamentID int) ([]*models.Match, error)

	// ClearMatches удаляет историю матчей турнира (служебный сброс).
	ClearMatches(ctx context.Context, tournamentID int) error
}

type standingsService struct {
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	txRunner   repositories.TxRunner
	calculator *engine.StandingsCalculator
	hub        *engine.Hub // может быть nil, тогда без живых обновлений
}

func NewStandingsService(
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	txRunner repositories.TxRunner,
	hub *engine.Hub,
) StandingsService {
	return &standingsService{
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		txRunner:   txRunner,
		calculator: engine.NewStandingsCalculator(),
		hub:        hub,
	}
}

func (s *standingsService) Rank(ctx context.Context, tournamentID int) ([]*models.Player, error) {
	players, err := s.playerRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load players for tournament %d: %w", tournamentID, err)
	}
	return s.calculator.Rank(players), nil
}

func (s *standingsService) ReportMatch(ctx context.Context, tournamentID int, input ReportMatchInput) (*models.Match, error) {
	if input.WinnerID == input.LoserID {
		return nil, engine.ErrInvalidMatch
	}

	players, err := s.playerRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load players for tournament %d: %w", tournamentID, err)
	}

	byID := make(map[int]*models.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	winner, ok := byID[input.WinnerID]
	if !ok {
		return nil, s.missingPlayerError(ctx, input.WinnerID, tournamentID)
	}
	loser, ok := byID[input.LoserID]
	if !ok {
		return nil, s.missingPlayerError(ctx, input.LoserID, tournamentID)
	}

	// Повторная сдача того же результата второй раз отклоняется здесь.
	if winner.HasPlayed(loser.ID) || loser.HasPlayed(winner.ID) {
		return nil, engine.ErrRematch
	}

	if input.Draw {
		winner.Points += engine.PointsDraw
		loser.Points += engine.PointsDraw
	} else {
		winner.Points += engine.PointsWin
	}
	winner.MatchesPlayed++
	loser.MatchesPlayed++
	winner.PrevOpponents = append(winner.PrevOpponents, loser.ID)
	loser.PrevOpponents = append(loser.PrevOpponents, winner.ID)

	// Тай-брейк освежается для обоих участников по уже обновлённым очкам.
	// Каскад на их прежних соперников не выполняется: итоговый отчёт
	// пересчитывает opp_win для всех.
	winner.OppWin = s.calculator.OpponentWinAverage(winner, byID)
	loser.OppWin = s.calculator.OpponentWinAverage(loser, byID)

	match := &models.Match{
		TournamentID: tournamentID,
		Player1ID:    winner.ID,
		Player2ID:    loser.ID,
		Draw:         input.Draw,
	}

	err = s.txRunner.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.matchRepo.Create(ctx, exec, match); err != nil {
			if errors.Is(err, repositories.ErrMatchSelfPairing) {
				return engine.ErrInvalidMatch
			}
			return err
		}
		if err := s.playerRepo.UpdateStanding(ctx, exec, winner); err != nil {
			return err
		}
		return s.playerRepo.UpdateStanding(ctx, exec, loser)
	})
	if err != nil {
		return nil, err
	}

	s.broadcastStandings(ctx, tournamentID)
	return match, nil
}

func (s *standingsService) AwardBye(ctx context.Context, tournamentID, playerID int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to load player %d: %w", playerID, err)
	}
	if player.TournamentID != tournamentID {
		return nil, fmt.Errorf("%w: player %d is not in tournament %d", ErrPlayerTournamentMixed, playerID, tournamentID)
	}
	if player.HadBye {
		return nil, ErrPlayerAlreadyByed
	}

	player.HadBye = true
	player.Points += engine.PointsBye
	player.MatchesPlayed++

	err = s.txRunner.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		return s.playerRepo.UpdateStanding(ctx, exec, player)
	})
	if err != nil {
		return nil, err
	}

	s.broadcastStandings(ctx, tournamentID)
	return player, nil
}

func (s *standingsService) FinalRankings(ctx context.Context, tournamentID int) ([]models.FinalStanding, error) {
	players, err := s.playerRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load players for tournament %d: %w", tournamentID, err)
	}

	standings := s.calculator.FinalStandings(players)

	// Пересчитанные тай-брейки фиксируются в хранилище, как и сами очки.
	err = s.txRunner.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		for _, p := range players {
			if err := s.playerRepo.SetOppWin(ctx, exec, p.ID, p.OppWin); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return standings, nil
}

func (s *standingsService) ListMatches(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for tournament %d: %w", tournamentID, err)
	}
	return matches, nil
}

func (s *standingsService) ClearMatches(ctx context.Context, tournamentID int) error {
	if err := s.matchRepo.DeleteByTournament(ctx, tournamentID); err != nil {
		return fmt.Errorf("failed to clear matches for tournament %d: %w", tournamentID, err)
	}
	return nil
}

// missingPlayerError различает участника чужого турнира и несуществующего
// игрока: смешение турниров — ошибка валидации, отсутствие — not found.
func (s *standingsService) missingPlayerError(ctx context.Context, playerID, tournamentID int) error {
	if _, err := s.playerRepo.GetByID(ctx, playerID); err == nil {
		return fmt.Errorf("%w: player %d is not in tournament %d", ErrPlayerTournamentMixed, playerID, tournamentID)
	}
	return fmt.Errorf("%w: player %d in tournament %d", ErrPlayerNotFound, playerID, tournamentID)
}

func (s *standingsService) broadcastStandings(ctx context.Context, tournamentID int) {
	if s.hub == nil {
		return
	}
	ranked, err := s.Rank(ctx, tournamentID)
	if err != nil {
		return
	}
	roomID := strconv.Itoa(tournamentID)
	s.hub.BroadcastToRoom(roomID, engine.WebSocketMessage{
		Type:    engine.MessageStandingsUpdated,
		Payload: ranked,
		RoomID:  roomID,
	})
}
