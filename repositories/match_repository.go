package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Bekzhan07/swiss-system/models"
	"github.com/lib/pq"
)

// Нарушение CHECK (player1_id <> player2_id).
var ErrMatchSelfPairing = errors.New("match players must be distinct")

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error)
	CountByTournament(ctx context.Context, tournamentID int) (int, error)
	DeleteByTournament(ctx context.Context, tournamentID int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO matches (player1_id, player2_id, tournament_id, draw)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := exec.QueryRowContext(ctx, query,
		match.Player1ID,
		match.Player2ID,
		match.TournamentID,
		match.Draw,
	).Scan(&match.ID, &match.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "check_violation" {
			return ErrMatchSelfPairing
		}
		return fmt.Errorf("failed to insert match: %w", err)
	}
	return nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	query := `
		SELECT id, player1_id, player2_id, tournament_id, draw, created_at
		FROM matches
		WHERE tournament_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var match models.Match
		if scanErr := rows.Scan(
			&match.ID,
			&match.Player1ID,
			&match.Player2ID,
			&match.TournamentID,
			&match.Draw,
			&match.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, &match)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) CountByTournament(ctx context.Context, tournamentID int) (int, error) {
	query := `SELECT COUNT(*) FROM matches WHERE tournament_id = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, tournamentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count matches for tournament %d: %w", tournamentID, err)
	}
	return count, nil
}

func (r *postgresMatchRepository) DeleteByTournament(ctx context.Context, tournamentID int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE tournament_id = $1`, tournamentID); err != nil {
		return fmt.Errorf("failed to delete matches for tournament %d: %w", tournamentID, err)
	}
	return nil
}
