package match

import (
	"context"
	"log/slog"
	"math"

	"github.com/pongelo/pongelo/internal/dependencies/clock"
	"github.com/pongelo/pongelo/internal/metrics"
	"github.com/pongelo/pongelo/internal/model"
	"github.com/pongelo/pongelo/internal/rating"
	"github.com/pongelo/pongelo/internal/storage"
)

// Workflow drives the match confirmation state machine:
// pending -> confirmed (ratings applied) or pending -> denied.
// Terminal states are immutable; the rating engine runs at most once per match.
type Workflow struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewWorkflow creates a new match workflow
func NewWorkflow(storage storage.Storage, clock clock.Clock, logger *slog.Logger, metrics *metrics.Metrics) *Workflow {
	return &Workflow{
		storage: storage,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

// Submit records a game result as a pending match.
// The reporting party always reports themselves as player 1; the auth layer
// enforces that before this call, and the workflow re-validates the invariant.
func (w *Workflow) Submit(ctx context.Context, submitter, p1Name, p2Name string, p1Score, p2Score int) (*model.Match, error) {
	if submitter != p1Name {
		return nil, model.ErrUnauthorizedReporter
	}
	if p1Name == p2Name {
		return nil, model.ErrSamePlayer
	}
	if p1Score < 0 || p2Score < 0 {
		return nil, model.ErrInvalidScore
	}

	// Both players must exist before a result naming them is accepted
	if _, err := w.storage.GetPlayer(ctx, p1Name); err != nil {
		return nil, err
	}
	if _, err := w.storage.GetPlayer(ctx, p2Name); err != nil {
		return nil, err
	}

	match, err := w.storage.CreateMatch(ctx, &model.Match{
		Player1:     p1Name,
		Player2:     p2Name,
		P1Score:     p1Score,
		P2Score:     p2Score,
		SubmittedAt: w.clock.Now(),
	})
	if err != nil {
		w.logger.Error("failed to create match",
			slog.String("player1", p1Name),
			slog.String("player2", p2Name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	w.metrics.MatchesSubmitted.Inc()
	w.logger.Info("match submitted",
		slog.Int64("match_id", int64(match.ID)),
		slog.String("player1", p1Name),
		slog.String("player2", p2Name),
		slog.Int("p1_score", p1Score),
		slog.Int("p2_score", p2Score),
	)

	return match, nil
}

// Confirm transitions a pending match to confirmed and applies the rating
// adjustment. Only the match's player 2 may confirm. The engine runs on the
// players' ratings as stored at commit time, and the status transition plus
// both player updates are persisted atomically: a second confirmer observes
// model.ErrMatchAlreadyResolved and no rating is re-applied.
func (w *Workflow) Confirm(ctx context.Context, confirmer string, id model.MatchID) (rating.Update, rating.Update, error) {
	var u1, u2 rating.Update

	err := w.storage.ResolveMatch(ctx, id, func(m *model.Match, players map[string]*model.Player) error {
		if m.Player2 != confirmer {
			return model.ErrUnauthorizedConfirmer
		}

		p1 := players[m.Player1]
		p2 := players[m.Player2]

		u1, u2 = rating.Adjust(m.Player1, m.Player2, p1.Rating, p2.Rating, m.P1Score, m.P2Score)

		applyUpdate(p1, u1, u2)
		applyUpdate(p2, u2, u1)
		m.Status = model.MatchStatusConfirmed
		return nil
	})
	if err != nil {
		return rating.Update{}, rating.Update{}, err
	}

	w.metrics.MatchesConfirmed.Inc()
	w.metrics.RatingDelta.Observe(math.Abs(float64(u1.Delta)))
	w.logger.Info("match confirmed",
		slog.Int64("match_id", int64(id)),
		slog.String("player1", u1.Name),
		slog.Int("p1_rating", u1.NewRating),
		slog.Int("p1_delta", u1.Delta),
		slog.String("player2", u2.Name),
		slog.Int("p2_rating", u2.NewRating),
		slog.Int("p2_delta", u2.Delta),
	)

	return u1, u2, nil
}

// applyUpdate folds an engine update into a player record. A tie credits
// neither a win nor a loss.
func applyUpdate(p *model.Player, own, other rating.Update) {
	p.Rating = own.NewRating
	switch {
	case own.Won:
		p.Wins++
	case other.Won:
		p.Losses++
	}
}

// Deny transitions a pending match to denied. Only the match's player 2 may
// deny. No rating engine invocation, no player mutation.
func (w *Workflow) Deny(ctx context.Context, denier string, id model.MatchID) error {
	err := w.storage.ResolveMatch(ctx, id, func(m *model.Match, players map[string]*model.Player) error {
		if m.Player2 != denier {
			return model.ErrUnauthorizedConfirmer
		}
		m.Status = model.MatchStatusDenied
		return nil
	})
	if err != nil {
		return err
	}

	w.metrics.MatchesDenied.Inc()
	w.logger.Info("match denied", slog.Int64("match_id", int64(id)))
	return nil
}

// Preview runs the rating engine against the players' current ratings
// without recording anything.
func (w *Workflow) Preview(ctx context.Context, p1Name, p2Name string, p1Score, p2Score int) (rating.Update, rating.Update, error) {
	if p1Score < 0 || p2Score < 0 {
		return rating.Update{}, rating.Update{}, model.ErrInvalidScore
	}

	p1, err := w.storage.GetPlayer(ctx, p1Name)
	if err != nil {
		return rating.Update{}, rating.Update{}, err
	}
	p2, err := w.storage.GetPlayer(ctx, p2Name)
	if err != nil {
		return rating.Update{}, rating.Update{}, err
	}

	u1, u2 := rating.Adjust(p1Name, p2Name, p1.Rating, p2.Rating, p1Score, p2Score)
	return u1, u2, nil
}

// Get retrieves a match by ID
func (w *Workflow) Get(ctx context.Context, id model.MatchID) (*model.Match, error) {
	return w.storage.GetMatch(ctx, id)
}

// List returns matches in creation order, optionally filtered by status
func (w *Workflow) List(ctx context.Context, status model.MatchStatus) ([]*model.Match, error) {
	return w.storage.ListMatches(ctx, status)
}

// RivalHistory returns all matches between two named players, in either
// orientation, in creation order.
func (w *Workflow) RivalHistory(ctx context.Context, a, b string) ([]*model.Match, error) {
	matches, err := w.storage.ListMatches(ctx, "")
	if err != nil {
		return nil, err
	}

	var rivalry []*model.Match
	for _, m := range matches {
		if (m.Player1 == a && m.Player2 == b) || (m.Player1 == b && m.Player2 == a) {
			rivalry = append(rivalry, m)
		}
	}
	return rivalry, nil
}
