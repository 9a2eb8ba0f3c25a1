// Package bot exposes the ladder to chat integrations via a slash-command
// webhook. The chat platform authenticates with a shared token and vouches
// for the sending user, so commands act as that user without a password.
package bot

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/pongelo/pongelo/internal/model"
	"github.com/pongelo/pongelo/internal/services/match"
	"github.com/pongelo/pongelo/internal/services/player"
)

const (
	responseInChannel = "in_channel"
	responseEphemeral = "ephemeral"
)

// commandResponse is the JSON payload returned to the chat platform
type commandResponse struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

// Handler handles slash-command webhooks
type Handler struct {
	token         string
	playerService *player.Service
	workflow      *match.Workflow
	logger        *slog.Logger
}

// NewHandler creates a new bot command handler
func NewHandler(token string, playerService *player.Service, workflow *match.Workflow, logger *slog.Logger) *Handler {
	return &Handler{
		token:         token,
		playerService: playerService,
		workflow:      workflow,
		logger:        logger,
	}
}

// ServeHTTP handles POST /bot/command
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	token := r.PostFormValue("token")
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.token)) != 1 {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	user := r.PostFormValue("user_name")
	text := strings.TrimSpace(r.PostFormValue("text"))
	if user == "" {
		writeResponse(w, responseEphemeral, "missing user_name")
		return
	}

	h.logger.Info("bot command",
		slog.String("user", user),
		slog.String("text", text),
	)

	responseType, reply := h.dispatch(r, user, text)
	writeResponse(w, responseType, reply)
}

func (h *Handler) dispatch(r *http.Request, user, text string) (string, string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return responseEphemeral, usage()
	}

	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "submit":
		return h.submit(r, user, args)
	case "confirm":
		return h.confirm(r, user, args)
	case "deny":
		return h.deny(r, user, args)
	case "rankings":
		return h.rankings(r)
	case "record":
		return h.record(r, user, args)
	case "help":
		return responseEphemeral, usage()
	default:
		return responseEphemeral, fmt.Sprintf("unknown command %q\n%s", cmd, usage())
	}
}

func (h *Handler) submit(r *http.Request, user string, args []string) (string, string) {
	if len(args) != 3 {
		return responseEphemeral, "usage: submit <opponent> <your-score> <their-score>"
	}

	opponent := args[0]
	myScore, err1 := strconv.Atoi(args[1])
	theirScore, err2 := strconv.Atoi(args[2])
	if err1 != nil || err2 != nil {
		return responseEphemeral, "scores must be integers"
	}

	m, err := h.workflow.Submit(r.Context(), user, user, opponent, myScore, theirScore)
	if err != nil {
		return responseEphemeral, commandError(err)
	}

	return responseInChannel, fmt.Sprintf(
		"%s reports %d-%d against %s (match #%d). %s, reply `confirm %d` or `deny %d`.",
		user, myScore, theirScore, opponent, m.ID, opponent, m.ID, m.ID,
	)
}

func (h *Handler) confirm(r *http.Request, user string, args []string) (string, string) {
	id, ok := parseMatchID(args)
	if !ok {
		return responseEphemeral, "usage: confirm <match-id>"
	}

	u1, u2, err := h.workflow.Confirm(r.Context(), user, id)
	if err != nil {
		return responseEphemeral, commandError(err)
	}

	return responseInChannel, fmt.Sprintf(
		"match #%d confirmed. %s: %d (%+d), %s: %d (%+d)",
		id, u1.Name, u1.NewRating, u1.Delta, u2.Name, u2.NewRating, u2.Delta,
	)
}

func (h *Handler) deny(r *http.Request, user string, args []string) (string, string) {
	id, ok := parseMatchID(args)
	if !ok {
		return responseEphemeral, "usage: deny <match-id>"
	}

	if err := h.workflow.Deny(r.Context(), user, id); err != nil {
		return responseEphemeral, commandError(err)
	}

	return responseInChannel, fmt.Sprintf("match #%d denied by %s. Ratings are unchanged.", id, user)
}

func (h *Handler) rankings(r *http.Request) (string, string) {
	players, err := h.playerService.Rankings(r.Context())
	if err != nil {
		return responseEphemeral, commandError(err)
	}
	if len(players) == 0 {
		return responseEphemeral, "no players on the ladder yet"
	}

	var b strings.Builder
	b.WriteString("ladder standings:\n")
	for i, p := range players {
		fmt.Fprintf(&b, "%d. %s — %d (%d-%d)\n", i+1, p.Name, p.Rating, p.Wins, p.Losses)
	}
	return responseInChannel, strings.TrimRight(b.String(), "\n")
}

func (h *Handler) record(r *http.Request, user string, args []string) (string, string) {
	name := user
	if len(args) > 0 {
		name = args[0]
	}

	p, err := h.playerService.Get(r.Context(), name)
	if err != nil {
		return responseEphemeral, commandError(err)
	}

	return responseInChannel, fmt.Sprintf("%s: rating %d, record %d-%d", p.Name, p.Rating, p.Wins, p.Losses)
}

func parseMatchID(args []string) (model.MatchID, bool) {
	if len(args) != 1 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return model.MatchID(id), true
}

// commandError maps domain errors to chat-friendly messages
func commandError(err error) string {
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return "player not found; register via the API first"
	case errors.Is(err, model.ErrMatchNotFound):
		return "no such match"
	case errors.Is(err, model.ErrMatchAlreadyResolved):
		return "that match has already been confirmed or denied"
	case errors.Is(err, model.ErrSamePlayer):
		return "you can't play against yourself"
	case errors.Is(err, model.ErrInvalidScore):
		return "scores must be non-negative"
	case errors.Is(err, model.ErrUnauthorizedReporter):
		return "you must report the match from your own side"
	case errors.Is(err, model.ErrUnauthorizedConfirmer):
		return "only your opponent can confirm or deny this match"
	case errors.Is(err, model.ErrConcurrentUpdate):
		return "the ladder is busy, try again"
	default:
		return "something went wrong"
	}
}

func usage() string {
	return strings.Join([]string{
		"commands:",
		"submit <opponent> <your-score> <their-score>",
		"confirm <match-id>",
		"deny <match-id>",
		"rankings",
		"record [player]",
	}, "\n")
}

func writeResponse(w http.ResponseWriter, responseType, text string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(commandResponse{
		ResponseType: responseType,
		Text:         text,
	})
}
