package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Bekzhan07/swiss-system/models"
	"github.com/lib/pq"
)

var ErrPlayerNotFound = errors.New("player not found")

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Player, error)
	CountByTournament(ctx context.Context, tournamentID int) (int, error)
	// UpdateStanding перезаписывает производные поля игрока одним оператором;
	// через exec несколько таких записей объединяются в одну транзакцию.
	UpdateStanding(ctx context.Context, exec SQLExecutor, player *models.Player) error
	SetOppWin(ctx context.Context, exec SQLExecutor, playerID int, oppWin *float64) error
	DeleteAll(ctx context.Context) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `player_id, name, points, matches_played, prev_opponents, bye, opp_win, tournament_id, created_at`

func scanPlayer(scanner interface{ Scan(...interface{}) error }) (*models.Player, error) {
	player := &models.Player{}
	var prevOpponents pq.Int64Array
	err := scanner.Scan(
		&player.ID,
		&player.Name,
		&player.Points,
		&player.MatchesPlayed,
		&prevOpponents,
		&player.HadBye,
		&player.OppWin,
		&player.TournamentID,
		&player.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	player.PrevOpponents = make([]int, len(prevOpponents))
	for i, id := range prevOpponents {
		player.PrevOpponents[i] = int(id)
	}
	return player, nil
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (name, tournament_id, prev_opponents)
		VALUES ($1, $2, $3)
		RETURNING player_id, points, matches_played, bye, created_at`

	err := r.db.QueryRowContext(ctx, query,
		player.Name,
		player.TournamentID,
		pq.Array([]int64{}),
	).Scan(&player.ID, &player.Points, &player.MatchesPlayed, &player.HadBye, &player.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert player: %w", err)
	}
	player.PrevOpponents = []int{}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE player_id = $1`

	player, err := scanPlayer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to scan player by id %d: %w", id, err)
	}
	return player, nil
}

func (r *postgresPlayerRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Player, error) {
	query := `
		SELECT ` + playerColumns + `
		FROM players
		WHERE tournament_id = $1
		ORDER BY points DESC, name ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query players for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		player, scanErr := scanPlayer(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", scanErr)
		}
		players = append(players, player)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during player rows iteration: %w", err)
	}
	return players, nil
}

func (r *postgresPlayerRepository) CountByTournament(ctx context.Context, tournamentID int) (int, error) {
	query := `SELECT COUNT(*) FROM players WHERE tournament_id = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, tournamentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count players for tournament %d: %w", tournamentID, err)
	}
	return count, nil
}

func (r *postgresPlayerRepository) UpdateStanding(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	query := `
		UPDATE players
		SET points = $1, matches_played = $2, prev_opponents = $3, bye = $4, opp_win = $5
		WHERE player_id = $6`

	prevOpponents := make([]int64, len(player.PrevOpponents))
	for i, id := range player.PrevOpponents {
		prevOpponents[i] = int64(id)
	}

	result, err := exec.ExecContext(ctx, query,
		player.Points,
		player.MatchesPlayed,
		pq.Array(prevOpponents),
		player.HadBye,
		player.OppWin,
		player.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update standing of player %d: %w", player.ID, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) SetOppWin(ctx context.Context, exec SQLExecutor, playerID int, oppWin *float64) error {
	query := `UPDATE players SET opp_win = $1 WHERE player_id = $2`

	result, err := exec.ExecContext(ctx, query, oppWin, playerID)
	if err != nil {
		return fmt.Errorf("failed to set opp_win of player %d: %w", playerID, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

// DeleteAll очищает таблицу игроков целиком. Служебная операция для
// тестовых стендов.
func (r *postgresPlayerRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM players`); err != nil {
		return fmt.Errorf("failed to delete players: %w", err)
	}
	return nil
}
