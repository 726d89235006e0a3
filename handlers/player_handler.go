package handlers

import (
	"net/http"

	"github.com/Bekzhan07/swiss-system/services"
)

type PlayerHandler struct {
	tournamentService services.TournamentService
}

func NewPlayerHandler(tournamentService services.TournamentService) *PlayerHandler {
	return &PlayerHandler{tournamentService: tournamentService}
}

func (h *PlayerHandler) RegisterPlayerHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.tournamentService.RegisterPlayer(r.Context(), tournamentID, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) ListPlayersHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	players, count, err := h.tournamentService.ListPlayers(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players, "count": count}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteAllPlayersHandler — служебный сброс (тестовые стенды).
func (h *PlayerHandler) DeleteAllPlayersHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.tournamentService.DeleteAllPlayers(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
