package services

import (
	"context"
	"sort"

	"github.com/Bekzhan07/swiss-system/models"
	"github.com/Bekzhan07/swiss-system/repositories"
)

// Фейковые репозитории в памяти: чтения отдают копии, записи заменяют
// хранимую копию — сервис обязан явно сохранить всё, что изменил.

type fakePlayerRepo struct {
	players map[int]*models.Player
	nextID  int
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[int]*models.Player), nextID: 1}
}

func copyPlayer(p *models.Player) *models.Player {
	cp := *p
	cp.PrevOpponents = append([]int{}, p.PrevOpponents...)
	if p.OppWin != nil {
		v := *p.OppWin
		cp.OppWin = &v
	}
	return &cp
}

func (r *fakePlayerRepo) Create(ctx context.Context, player *models.Player) error {
	player.ID = r.nextID
	r.nextID++
	player.PrevOpponents = []int{}
	r.players[player.ID] = copyPlayer(player)
	return nil
}

func (r *fakePlayerRepo) GetByID(ctx context.Context, id int) (*models.Player, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return copyPlayer(p), nil
}

func (r *fakePlayerRepo) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Player, error) {
	players := make([]*models.Player, 0)
	for _, p := range r.players {
		if p.TournamentID == tournamentID {
			players = append(players, copyPlayer(p))
		}
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].Points != players[j].Points {
			return players[i].Points > players[j].Points
		}
		return players[i].Name < players[j].Name
	})
	return players, nil
}

func (r *fakePlayerRepo) CountByTournament(ctx context.Context, tournamentID int) (int, error) {
	players, _ := r.ListByTournament(ctx, tournamentID)
	return len(players), nil
}

func (r *fakePlayerRepo) UpdateStanding(ctx context.Context, exec repositories.SQLExecutor, player *models.Player) error {
	if _, ok := r.players[player.ID]; !ok {
		return repositories.ErrPlayerNotFound
	}
	r.players[player.ID] = copyPlayer(player)
	return nil
}

func (r *fakePlayerRepo) SetOppWin(ctx context.Context, exec repositories.SQLExecutor, playerID int, oppWin *float64) error {
	p, ok := r.players[playerID]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	if oppWin == nil {
		p.OppWin = nil
	} else {
		v := *oppWin
		p.OppWin = &v
	}
	return nil
}

func (r *fakePlayerRepo) DeleteAll(ctx context.Context) error {
	r.players = make(map[int]*models.Player)
	return nil
}

type fakeMatchRepo struct {
	matches []*models.Match
	nextID  int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{nextID: 1}
}

func (r *fakeMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	if match.Player1ID == match.Player2ID {
		return repositories.ErrMatchSelfPairing
	}
	match.ID = r.nextID
	r.nextID++
	cp := *match
	r.matches = append(r.matches, &cp)
	return nil
}

func (r *fakeMatchRepo) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	matches := make([]*models.Match, 0)
	for _, m := range r.matches {
		if m.TournamentID == tournamentID {
			cp := *m
			matches = append(matches, &cp)
		}
	}
	return matches, nil
}

func (r *fakeMatchRepo) CountByTournament(ctx context.Context, tournamentID int) (int, error) {
	matches, _ := r.ListByTournament(ctx, tournamentID)
	return len(matches), nil
}

func (r *fakeMatchRepo) DeleteByTournament(ctx context.Context, tournamentID int) error {
	kept := r.matches[:0]
	for _, m := range r.matches {
		if m.TournamentID != tournamentID {
			kept = append(kept, m)
		}
	}
	r.matches = kept
	return nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

type fakeTournamentRepo struct {
	tournaments map[int]*models.Tournament
	nextID      int
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{tournaments: make(map[int]*models.Tournament), nextID: 1}
}

func (r *fakeTournamentRepo) Create(ctx context.Context, tournament *models.Tournament) error {
	tournament.ID = r.nextID
	r.nextID++
	cp := *tournament
	r.tournaments[tournament.ID] = &cp
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	cp := *tournament
	return &cp, nil
}

func (r *fakeTournamentRepo) List(ctx context.Context) ([]*models.Tournament, error) {
	tournaments := make([]*models.Tournament, 0, len(r.tournaments))
	for _, tournament := range r.tournaments {
		cp := *tournament
		tournaments = append(tournaments, &cp)
	}
	sort.Slice(tournaments, func(i, j int) bool { return tournaments[i].ID < tournaments[j].ID })
	return tournaments, nil
}

func (r *fakeTournamentRepo) UpdateName(ctx context.Context, id int, name string) error {
	tournament, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	tournament.Name = name
	return nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}
