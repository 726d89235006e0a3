package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Bekzhan07/swiss-system/models"
	"github.com/Bekzhan07/swiss-system/storage"
	"golang.org/x/sync/errgroup"
)

// RankingsReport — снимок итогового зачёта, выгружаемый в объектное
// хранилище.
type RankingsReport struct {
	TournamentID   int                    `json:"tournament_id"`
	TournamentName string                 `json:"tournament_name"`
	GeneratedAt    time.Time              `json:"generated_at"`
	PlayerCount    int                    `json:"player_count"`
	MatchCount     int                    `json:"match_count"`
	Standings      []models.FinalStanding `json:"standings"`
}

type ExportService interface {
	ExportFinalRankings(ctx context.Context, tournamentID int) (*storage.UploadResult, error)
}

type exportService struct {
	tournamentService TournamentService
	standingsService  StandingsService
	matchCounter      MatchCounter
	uploader          storage.FileUploader // nil, если экспорт не сконфигурирован
}

// MatchCounter — минимальный срез репозитория матчей, нужный отчёту.
type MatchCounter interface {
	CountByTournament(ctx context.Context, tournamentID int) (int, error)
}

func NewExportService(
	tournamentService TournamentService,
	standingsService StandingsService,
	matchCounter MatchCounter,
	uploader storage.FileUploader,
) ExportService {
	return &exportService{
		tournamentService: tournamentService,
		standingsService:  standingsService,
		matchCounter:      matchCounter,
		uploader:          uploader,
	}
}

func (s *exportService) ExportFinalRankings(ctx context.Context, tournamentID int) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, ErrExportDisabled
	}

	report := RankingsReport{TournamentID: tournamentID}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tournament, err := s.tournamentService.GetTournament(gCtx, tournamentID)
		if err != nil {
			return err
		}
		report.TournamentName = tournament.Name
		return nil
	})

	g.Go(func() error {
		standings, err := s.standingsService.FinalRankings(gCtx, tournamentID)
		if err != nil {
			return err
		}
		report.Standings = standings
		return nil
	})

	g.Go(func() error {
		count, err := s.tournamentService.CountPlayers(gCtx, tournamentID)
		if err != nil {
			return err
		}
		report.PlayerCount = count
		return nil
	})

	g.Go(func() error {
		count, err := s.matchCounter.CountByTournament(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to count matches for tournament %d: %w", tournamentID, err)
		}
		report.MatchCount = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.GeneratedAt = time.Now().UTC()

	body, err := json.MarshalIndent(report, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rankings report: %w", err)
	}

	key := fmt.Sprintf("tournaments/%d/final-rankings-%s.json",
		tournamentID, report.GeneratedAt.Format("20060102T150405Z"))

	result, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to upload rankings report: %w", err)
	}
	return result, nil
}
