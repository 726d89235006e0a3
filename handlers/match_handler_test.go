package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Bekzhan07/swiss-system/engine"
	"github.com/Bekzhan07/swiss-system/models"
	"github.com/Bekzhan07/swiss-system/services"
	"github.com/go-chi/chi/v5"
)

type fakeStandingsService struct {
	ranked    []*models.Player
	reportErr error
	lastInput services.ReportMatchInput
}

func (s *fakeStandingsService) Rank(ctx context.Context, tournamentID int) ([]*models.Player, error) {
	return s.ranked, nil
}

func (s *fakeStandingsService) ReportMatch(ctx context.Context, tournamentID int, input services.ReportMatchInput) (*models.Match, error) {
	s.lastInput = input
	if s.reportErr != nil {
		return nil, s.reportErr
	}
	return &models.Match{
		ID:           1,
		TournamentID: tournamentID,
		Player1ID:    input.WinnerID,
		Player2ID:    input.LoserID,
		Draw:         input.Draw,
	}, nil
}

func (s *fakeStandingsService) AwardBye(ctx context.Context, tournamentID, playerID int) (*models.Player, error) {
	return &models.Player{ID: playerID, TournamentID: tournamentID, HadBye: true, Points: 1.0}, nil
}

func (s *fakeStandingsService) FinalRankings(ctx context.Context, tournamentID int) ([]models.FinalStanding, error) {
	return []models.FinalStanding{}, nil
}

func (s *fakeStandingsService) ListMatches(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	return []*models.Match{}, nil
}

func (s *fakeStandingsService) ClearMatches(ctx context.Context, tournamentID int) error {
	return nil
}

func newMatchRouter(svc services.StandingsService) *chi.Mux {
	handler := NewMatchHandler(svc)
	router := chi.NewRouter()
	router.Post("/tournaments/{tournamentID}/matches", handler.ReportMatchHandler)
	router.Post("/tournaments/{tournamentID}/bye", handler.AwardByeHandler)
	return router
}

func TestReportMatchHandler_Created(t *testing.T) {
	svc := &fakeStandingsService{}
	router := newMatchRouter(svc)

	body := `{"winner_id": 1, "loser_id": 2, "draw": false}`
	req := httptest.NewRequest(http.MethodPost, "/tournaments/7/matches", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if svc.lastInput.WinnerID != 1 || svc.lastInput.LoserID != 2 || svc.lastInput.Draw {
		t.Errorf("service received unexpected input: %+v", svc.lastInput)
	}
}

func TestReportMatchHandler_RematchConflict(t *testing.T) {
	svc := &fakeStandingsService{reportErr: engine.ErrRematch}
	router := newMatchRouter(svc)

	body := `{"winner_id": 1, "loser_id": 2}`
	req := httptest.NewRequest(http.MethodPost, "/tournaments/7/matches", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestReportMatchHandler_SelfPairingBadRequest(t *testing.T) {
	svc := &fakeStandingsService{reportErr: engine.ErrInvalidMatch}
	router := newMatchRouter(svc)

	body := `{"winner_id": 1, "loser_id": 1}`
	req := httptest.NewRequest(http.MethodPost, "/tournaments/7/matches", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestReportMatchHandler_InvalidTournamentID(t *testing.T) {
	router := newMatchRouter(&fakeStandingsService{})

	req := httptest.NewRequest(http.MethodPost, "/tournaments/abc/matches", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestReportMatchHandler_UnknownField(t *testing.T) {
	router := newMatchRouter(&fakeStandingsService{})

	body := `{"winner": 1}`
	req := httptest.NewRequest(http.MethodPost, "/tournaments/7/matches", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestAwardByeHandler(t *testing.T) {
	router := newMatchRouter(&fakeStandingsService{})

	body := `{"player_id": 5}`
	req := httptest.NewRequest(http.MethodPost, "/tournaments/7/bye", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
}
