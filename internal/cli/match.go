package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match reporting and confirmation commands",
	}

	cmd.AddCommand(newMatchSubmitCmd())
	cmd.AddCommand(newMatchConfirmCmd())
	cmd.AddCommand(newMatchDenyCmd())
	cmd.AddCommand(newMatchGetCmd())
	cmd.AddCommand(newMatchListCmd())
	cmd.AddCommand(newMatchRivalryCmd())
	cmd.AddCommand(newMatchPreviewCmd())

	return cmd
}

func newMatchSubmitCmd() *cobra.Command {
	var opponent string
	var myScore, theirScore int

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Report a match result (you are player 1)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.User == "" {
				return fmt.Errorf("--user is required to submit a match")
			}
			if opponent == "" {
				return fmt.Errorf("--opponent is required")
			}

			req := map[string]any{
				"player1":  cfg.User,
				"player2":  opponent,
				"p1_score": myScore,
				"p2_score": theirScore,
			}
			var result Match

			if err := client.Post("/api/v1/matches", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&opponent, "opponent", "", "Opponent's player name (required)")
	cmd.Flags().IntVar(&myScore, "my-score", 0, "Your score")
	cmd.Flags().IntVar(&theirScore, "their-score", 0, "Opponent's score")
	_ = cmd.MarkFlagRequired("opponent")

	return cmd
}

func newMatchConfirmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <id>",
		Short: "Confirm a pending match reported against you",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var result ConfirmResult
			if err := client.Post(fmt.Sprintf("/api/v1/matches/%d/confirm", id), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchDenyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deny <id>",
		Short: "Deny a pending match reported against you",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var result Match
			if err := client.Post(fmt.Sprintf("/api/v1/matches/%d/deny", id), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var result Match
			if err := client.Get(fmt.Sprintf("/api/v1/matches/%d", id), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/matches"
			if status != "" {
				path += "?status=" + url.QueryEscape(status)
			}

			var result []Match
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status: pending, confirmed, denied")

	return cmd
}

func newMatchRivalryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rivalry <player1> <player2>",
		Short: "List matches between two players",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/rivalries?player1=%s&player2=%s",
				url.QueryEscape(args[0]), url.QueryEscape(args[1]))

			var result []Match
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchPreviewCmd() *cobra.Command {
	var player1, player2 string
	var p1Score, p2Score int

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview the rating impact of a hypothetical result",
		RunE: func(cmd *cobra.Command, args []string) error {
			if player1 == "" || player2 == "" {
				return fmt.Errorf("--player1 and --player2 are required")
			}

			req := map[string]any{
				"player1":  player1,
				"player2":  player2,
				"p1_score": p1Score,
				"p2_score": p2Score,
			}
			var result PreviewResult

			if err := client.Post("/api/v1/ratings/preview", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&player1, "player1", "", "First player (required)")
	cmd.Flags().StringVar(&player2, "player2", "", "Second player (required)")
	cmd.Flags().IntVar(&p1Score, "p1-score", 0, "First player's score")
	cmd.Flags().IntVar(&p2Score, "p2-score", 0, "Second player's score")
	_ = cmd.MarkFlagRequired("player1")
	_ = cmd.MarkFlagRequired("player2")

	return cmd
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("match id must be an integer")
	}
	return id, nil
}
