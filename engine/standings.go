package engine

import (
	"sort"

	"github.com/Bekzhan07/swiss-system/models"
)

// Очки за исходы матча. Bye оценивается как победа без соперника.
const (
	PointsWin  = 1.0
	PointsDraw = 0.5
	PointsBye  = 1.0
)

// StandingsCalculator упорядочивает игроков и считает тай-брейк opp_win.
// Все методы — чистые функции над переданными срезами: ничего не читают и
// не пишут в хранилище.
type StandingsCalculator struct{}

func NewStandingsCalculator() *StandingsCalculator {
	return &StandingsCalculator{}
}

// Rank returns the players ordered by points descending, ties broken by name
// ascending. This is the display order and the input order for pairing.
// The input slice is not modified.
func (c *StandingsCalculator) Rank(players []*models.Player) []*models.Player {
	ranked := make([]*models.Player, len(players))
	copy(ranked, players)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		return ranked[i].Name < ranked[j].Name
	})

	return ranked
}

// FinalOrder orders players for the terminal report: points descending, then
// opp_win descending (players without a computed opp_win sort last within
// their points group), then name ascending.
func (c *StandingsCalculator) FinalOrder(players []*models.Player) []*models.Player {
	ordered := make([]*models.Player, len(players))
	copy(ordered, players)

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Points != ordered[j].Points {
			return ordered[i].Points > ordered[j].Points
		}
		oi, oj := ordered[i].OppWin, ordered[j].OppWin
		switch {
		case oi != nil && oj != nil && *oi != *oj:
			return *oi > *oj
		case oi != nil && oj == nil:
			return true
		case oi == nil && oj != nil:
			return false
		}
		return ordered[i].Name < ordered[j].Name
	})

	return ordered
}

// OpponentWinAverage computes the mean of the current point totals of all
// opponents the player has faced. Returns nil while the player has no
// history — opp_win is undefined until the first match. Idempotent: re-running
// it without new matches yields the same value.
func (c *StandingsCalculator) OpponentWinAverage(p *models.Player, byID map[int]*models.Player) *float64 {
	if len(p.PrevOpponents) == 0 {
		return nil
	}

	var sum float64
	var counted int
	for _, opponentID := range p.PrevOpponents {
		opponent, ok := byID[opponentID]
		if !ok {
			continue
		}
		sum += opponent.Points
		counted++
	}
	if counted == 0 {
		return nil
	}

	avg := sum / float64(counted)
	return &avg
}

// FinalStandings recomputes opp_win for every player, orders the field with
// FinalOrder, and assigns ranks. Players tied on (points, opp_win) share a
// rank; the next distinct record skips past the tie group.
func (c *StandingsCalculator) FinalStandings(players []*models.Player) []models.FinalStanding {
	byID := make(map[int]*models.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	for _, p := range players {
		p.OppWin = c.OpponentWinAverage(p, byID)
	}

	ordered := c.FinalOrder(players)

	standings := make([]models.FinalStanding, 0, len(ordered))
	rank := 0
	ties := 1
	var lastPoints float64
	var lastOppWin *float64
	for i, p := range ordered {
		if i == 0 || p.Points != lastPoints || !floatPtrEqual(p.OppWin, lastOppWin) {
			rank += ties
			ties = 1
		} else {
			ties++
		}
		lastPoints = p.Points
		lastOppWin = p.OppWin

		standings = append(standings, models.FinalStanding{
			Rank:          rank,
			PlayerID:      p.ID,
			Name:          p.Name,
			Points:        p.Points,
			MatchesPlayed: p.MatchesPlayed,
			OppWin:        p.OppWin,
		})
	}

	return standings
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
