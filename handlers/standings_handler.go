package handlers

import (
	"net/http"

	"github.com/Bekzhan07/swiss-system/models"
	"github.com/Bekzhan07/swiss-system/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
	pairingService   services.PairingService
	exportService    services.ExportService
}

func NewStandingsHandler(
	standingsService services.StandingsService,
	pairingService services.PairingService,
	exportService services.ExportService,
) *StandingsHandler {
	return &StandingsHandler{
		standingsService: standingsService,
		pairingService:   pairingService,
		exportService:    exportService,
	}
}

// GetStandingsHandler — текущая таблица (очки по убыванию, затем имя).
func (h *StandingsHandler) GetStandingsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	ranked, err := h.standingsService.Rank(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	standings := make([]models.Standing, 0, len(ranked))
	for _, p := range ranked {
		standings = append(standings, models.Standing{
			PlayerID:      p.ID,
			Name:          p.Name,
			Points:        p.Points,
			MatchesPlayed: p.MatchesPlayed,
		})
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetFinalRankingsHandler — итоговый зачёт с тай-брейком по opp_win.
func (h *StandingsHandler) GetFinalRankingsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rankings, err := h.standingsService.FinalRankings(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rankings": rankings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetPairingsHandler — жеребьёвка следующего тура. Ничего не записывает:
// пары фиксируются позже через сдачу результатов.
func (h *StandingsHandler) GetPairingsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	round, err := h.pairingService.NextRoundPairings(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"round": round}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) ExportFinalRankingsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.exportService.ExportFinalRankings(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"report": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
