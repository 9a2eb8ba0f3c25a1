package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pongelo/pongelo/internal/api/middleware"
	"github.com/pongelo/pongelo/internal/api/request"
	"github.com/pongelo/pongelo/internal/api/response"
	"github.com/pongelo/pongelo/internal/services/player"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	playerService *player.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(playerService *player.Service) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
	}
}

// Register handles POST /api/v1/players
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	p, err := h.playerService.Create(r.Context(), req.Name, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(p))
}

// Get handles GET /api/v1/players/{name}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	p, err := h.playerService.Get(r.Context(), name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// Rating handles GET /api/v1/players/{name}/rating
func (h *PlayerHandler) Rating(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	p, err := h.playerService.Get(r.Context(), name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]int{"rating": p.Rating})
}

// Record handles GET /api/v1/players/{name}/record
func (h *PlayerHandler) Record(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	p, err := h.playerService.Get(r.Context(), name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Record{Wins: p.Wins, Losses: p.Losses})
}

// Delete handles DELETE /api/v1/players/{name}
// Players may only delete themselves
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if middleware.MustIdentity(r.Context()) != name {
		WriteError(w, NewForbiddenError("players may only delete their own account"))
		return
	}

	if err := h.playerService.Delete(r.Context(), name); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Rankings handles GET /api/v1/rankings
func (h *PlayerHandler) Rankings(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.Rankings(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}
