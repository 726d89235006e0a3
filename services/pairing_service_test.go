package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Bekzhan07/swiss-system/engine"
	"github.com/Bekzhan07/swiss-system/models"
)

func setupPairing(t *testing.T, names ...string) (PairingService, StandingsService, map[string]int) {
	t.Helper()
	playerRepo := newFakePlayerRepo()
	matchRepo := newFakeMatchRepo()
	standings := NewStandingsService(playerRepo, matchRepo, fakeTxRunner{}, nil)
	pairing := NewPairingService(playerRepo, nil)

	ids := make(map[string]int, len(names))
	for _, name := range names {
		player := &models.Player{Name: name, TournamentID: testTournamentID}
		if err := playerRepo.Create(context.Background(), player); err != nil {
			t.Fatalf("Create(%s) failed: %v", name, err)
		}
		ids[name] = player.ID
	}
	return pairing, standings, ids
}

func TestNextRoundPairings_TwoRoundFlow(t *testing.T) {
	pairing, standings, ids := setupPairing(t, "Alice", "Bob", "Carol", "Dana")
	ctx := context.Background()

	round1, err := pairing.NextRoundPairings(ctx, testTournamentID)
	if err != nil {
		t.Fatalf("NextRoundPairings() failed: %v", err)
	}
	if round1.Bye != nil {
		t.Errorf("unexpected bye: %s", round1.Bye.Name)
	}
	if round1.Pairings[0].Player1.Name != "Alice" || round1.Pairings[0].Player2.Name != "Bob" ||
		round1.Pairings[1].Player1.Name != "Carol" || round1.Pairings[1].Player2.Name != "Dana" {
		t.Fatalf("round 1 pairings unexpected: %+v", round1.Pairings)
	}

	// Жеребьёвка ничего не записывает: повторный вызов возвращает то же.
	again, err := pairing.NextRoundPairings(ctx, testTournamentID)
	if err != nil {
		t.Fatalf("repeat NextRoundPairings() failed: %v", err)
	}
	if len(again.Pairings) != 2 || again.Pairings[0].Player1.Name != "Alice" {
		t.Fatalf("pairing is not a pure read: %+v", again.Pairings)
	}

	if _, err := standings.ReportMatch(ctx, testTournamentID, ReportMatchInput{WinnerID: ids["Alice"], LoserID: ids["Bob"]}); err != nil {
		t.Fatalf("ReportMatch() failed: %v", err)
	}
	if _, err := standings.ReportMatch(ctx, testTournamentID, ReportMatchInput{WinnerID: ids["Carol"], LoserID: ids["Dana"], Draw: true}); err != nil {
		t.Fatalf("ReportMatch() failed: %v", err)
	}

	round2, err := pairing.NextRoundPairings(ctx, testTournamentID)
	if err != nil {
		t.Fatalf("NextRoundPairings() failed: %v", err)
	}

	seen := make(map[int]bool)
	for _, pair := range round2.Pairings {
		if pair.Player1.HasPlayed(pair.Player2.ID) {
			t.Errorf("round 2 repeats pair (%s, %s)", pair.Player1.Name, pair.Player2.Name)
		}
		for _, p := range []*models.Player{pair.Player1, pair.Player2} {
			if seen[p.ID] {
				t.Errorf("player %s paired twice", p.Name)
			}
			seen[p.ID] = true
		}
	}

	// Таблица после первого тура: Alice(1.0), Carol(0.5), Dana(0.5), Bob(0.0).
	if round2.Pairings[0].Player1.Name != "Alice" || round2.Pairings[0].Player2.Name != "Carol" {
		t.Errorf("round 2 top pair = (%s, %s), want (Alice, Carol)",
			round2.Pairings[0].Player1.Name, round2.Pairings[0].Player2.Name)
	}
	if round2.Pairings[1].Player1.Name != "Dana" || round2.Pairings[1].Player2.Name != "Bob" {
		t.Errorf("round 2 bottom pair = (%s, %s), want (Dana, Bob)",
			round2.Pairings[1].Player1.Name, round2.Pairings[1].Player2.Name)
	}
}

func TestNextRoundPairings_OddFieldByeRotation(t *testing.T) {
	pairing, standings, ids := setupPairing(t, "Alice", "Bob", "Carol", "Dana", "Eve")
	ctx := context.Background()

	round1, err := pairing.NextRoundPairings(ctx, testTournamentID)
	if err != nil {
		t.Fatalf("NextRoundPairings() failed: %v", err)
	}
	if round1.Bye == nil || round1.Bye.Name != "Eve" {
		t.Fatalf("round 1 bye = %v, want Eve", round1.Bye)
	}
	if len(round1.Pairings) != 2 {
		t.Fatalf("round 1 pairings = %d, want 2", len(round1.Pairings))
	}

	// Фиксируем bye: в следующем нечётном туре его получает другой игрок.
	if _, err := standings.AwardBye(ctx, testTournamentID, ids["Eve"]); err != nil {
		t.Fatalf("AwardBye() failed: %v", err)
	}

	round2, err := pairing.NextRoundPairings(ctx, testTournamentID)
	if err != nil {
		t.Fatalf("NextRoundPairings() failed: %v", err)
	}
	if round2.Bye == nil || round2.Bye.Name == "Eve" {
		t.Fatalf("round 2 bye = %v, want a player other than Eve", round2.Bye)
	}
}

func TestNextRoundPairings_SinglePlayerTournament(t *testing.T) {
	pairing, _, _ := setupPairing(t, "Alice")

	round, err := pairing.NextRoundPairings(context.Background(), testTournamentID)
	if err != nil {
		t.Fatalf("NextRoundPairings() failed: %v", err)
	}
	if round.Bye == nil || round.Bye.Name != "Alice" {
		t.Fatalf("bye = %v, want Alice", round.Bye)
	}
	if len(round.Pairings) != 0 {
		t.Errorf("pairings count = %d, want 0", len(round.Pairings))
	}
}

func TestNextRoundPairings_AllByedSurfacesError(t *testing.T) {
	pairing, standings, ids := setupPairing(t, "Alice", "Bob", "Carol")
	ctx := context.Background()

	for _, name := range []string{"Alice", "Bob", "Carol"} {
		if _, err := standings.AwardBye(ctx, testTournamentID, ids[name]); err != nil {
			t.Fatalf("AwardBye(%s) failed: %v", name, err)
		}
	}

	_, err := pairing.NextRoundPairings(ctx, testTournamentID)
	if !errors.Is(err, engine.ErrNoEligiblePlayerForBye) {
		t.Fatalf("err = %v, want ErrNoEligiblePlayerForBye", err)
	}
}
