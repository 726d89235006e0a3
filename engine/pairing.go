package engine

import (
	"fmt"

	"github.com/Bekzhan07/swiss-system/models"
)

// Pair — одна пара следующего тура.
type Pair struct {
	Player1 *models.Player `json:"player1"`
	Player2 *models.Player `json:"player2"`
}

// Round — результат жеребьёвки: непересекающиеся пары и не более одного bye.
type Round struct {
	Pairings []Pair         `json:"pairings"`
	Bye      *models.Player `json:"bye,omitempty"`
}

type GenerateRoundParams struct {
	// Players — игроки турнира, уже упорядоченные StandingsCalculator.Rank.
	Players []*models.Player
}

// SwissPairingEngine составляет пары следующего тура по швейцарской системе:
// сверху вниз по таблице, без повторных встреч, с bye для нижнего игрока
// при нечётном поле. Движок ничего не пишет в хранилище — записать пары как
// матчи должен вызывающий после того, как известны результаты.
type SwissPairingEngine struct{}

func NewSwissPairingEngine() *SwissPairingEngine {
	return &SwissPairingEngine{}
}

func (e *SwissPairingEngine) GetName() string {
	return "Swiss"
}

// GenerateRound pairs the ranked field for the next round.
//
// With an odd field the bye goes to the lowest-ranked player who has not had
// one yet; ErrNoEligiblePlayerForBye when everyone already has. A one-player
// field is the degenerate odd case: a bye and no pairings. The remaining
// pool is paired top-down: the leader is matched with the first player below
// them they have not faced. When no such opponent is left for some player the
// engine reports ErrPairingConflict instead of silently allowing a rematch.
func (e *SwissPairingEngine) GenerateRound(params GenerateRoundParams) (*Round, error) {
	pool := make([]*models.Player, len(params.Players))
	copy(pool, params.Players)

	round := &Round{Pairings: make([]Pair, 0, len(pool)/2)}

	if len(pool)%2 != 0 {
		byeIdx := -1
		for i := len(pool) - 1; i >= 0; i-- {
			if !pool[i].HadBye {
				byeIdx = i
				break
			}
		}
		if byeIdx == -1 {
			return nil, ErrNoEligiblePlayerForBye
		}
		round.Bye = pool[byeIdx]
		pool = append(pool[:byeIdx], pool[byeIdx+1:]...)
	}

	for len(pool) > 0 {
		p := pool[0]
		matchIdx := -1
		for i := 1; i < len(pool); i++ {
			if !p.HasPlayed(pool[i].ID) {
				matchIdx = i
				break
			}
		}
		if matchIdx == -1 {
			return nil, fmt.Errorf("no opponent left for player %d (%s): %w", p.ID, p.Name, ErrPairingConflict)
		}

		round.Pairings = append(round.Pairings, Pair{Player1: p, Player2: pool[matchIdx]})
		pool = append(pool[:matchIdx], pool[matchIdx+1:]...)
		pool = pool[1:]
	}

	return round, nil
}
