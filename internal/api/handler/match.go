package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pongelo/pongelo/internal/api/middleware"
	"github.com/pongelo/pongelo/internal/api/request"
	"github.com/pongelo/pongelo/internal/api/response"
	"github.com/pongelo/pongelo/internal/model"
	"github.com/pongelo/pongelo/internal/services/match"
)

// MatchHandler handles match-related endpoints
type MatchHandler struct {
	workflow *match.Workflow
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(workflow *match.Workflow) *MatchHandler {
	return &MatchHandler{
		workflow: workflow,
	}
}

// Submit handles POST /api/v1/matches
func (h *MatchHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Player1 == "" || req.Player2 == "" {
		WriteError(w, NewInvalidRequestError("player1 and player2 are required"))
		return
	}

	submitter := middleware.MustIdentity(r.Context())

	m, err := h.workflow.Submit(r.Context(), submitter, req.Player1, req.Player2, req.P1Score, req.P2Score)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MatchFromModel(m))
}

// Confirm handles POST /api/v1/matches/{id}/confirm
func (h *MatchHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, err := matchIDFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	confirmer := middleware.MustIdentity(r.Context())

	u1, u2, err := h.workflow.Confirm(r.Context(), confirmer, id)
	if err != nil {
		WriteError(w, err)
		return
	}

	m, err := h.workflow.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ConfirmResponse{
		Match:   response.MatchFromModel(m),
		Player1: response.RatingUpdateFromEngine(u1),
		Player2: response.RatingUpdateFromEngine(u2),
	})
}

// Deny handles POST /api/v1/matches/{id}/deny
func (h *MatchHandler) Deny(w http.ResponseWriter, r *http.Request) {
	id, err := matchIDFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	denier := middleware.MustIdentity(r.Context())

	if err := h.workflow.Deny(r.Context(), denier, id); err != nil {
		WriteError(w, err)
		return
	}

	m, err := h.workflow.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// Get handles GET /api/v1/matches/{id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := matchIDFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	m, err := h.workflow.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// List handles GET /api/v1/matches with an optional status filter
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	status := model.MatchStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		WriteError(w, NewInvalidRequestError("status must be one of pending, confirmed, denied"))
		return
	}

	matches, err := h.workflow.List(r.Context(), status)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchesFromModel(matches))
}

// Rivalry handles GET /api/v1/rivalries
func (h *MatchHandler) Rivalry(w http.ResponseWriter, r *http.Request) {
	p1 := r.URL.Query().Get("player1")
	p2 := r.URL.Query().Get("player2")
	if p1 == "" || p2 == "" {
		WriteError(w, NewInvalidRequestError("player1 and player2 query parameters are required"))
		return
	}

	matches, err := h.workflow.RivalHistory(r.Context(), p1, p2)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchesFromModel(matches))
}

// Preview handles POST /api/v1/ratings/preview
// Computes a hypothetical adjustment without persisting anything
func (h *MatchHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req request.PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Player1 == "" || req.Player2 == "" {
		WriteError(w, NewInvalidRequestError("player1 and player2 are required"))
		return
	}

	u1, u2, err := h.workflow.Preview(r.Context(), req.Player1, req.Player2, req.P1Score, req.P2Score)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PreviewResponse{
		Player1: response.RatingUpdateFromEngine(u1),
		Player2: response.RatingUpdateFromEngine(u2),
	})
}

// matchIDFromRequest parses the match id path variable
func matchIDFromRequest(r *http.Request) (model.MatchID, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, NewInvalidRequestError("match id must be an integer")
	}
	return model.MatchID(id), nil
}
