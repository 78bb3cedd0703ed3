package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/ytcomments/internal/config"
	"github.com/nao1215/ytcomments/internal/history"
	"github.com/nao1215/ytcomments/internal/model"
	"github.com/nao1215/ytcomments/internal/youtube"
	"github.com/spf13/cobra"
)

// defaultHistoryLimit is the number of entries shown by default.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
// It lists exports recorded with "export --history".
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [video-id-or-url]",
		Short: "List recorded exports",
		Long: `History lists exports recorded in the history ledger, newest first.

Only exports run with --history (or history: true in the configuration file)
are recorded. The ledger keeps file names, counts and content digests; it
never stores the exported text or the API key.

For comment exports, the change in comment count against the previous export
of the same video is shown.

Examples:
  # List the most recent exports
  ytcomments history

  # List every export of one video
  ytcomments history --limit 0 https://youtu.be/dQw4w9WgXcQ`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of entries to show (0 for all)")
	cmd.Flags().String("data-dir", "",
		"Directory of the history ledger (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	dataDir, err := cmd.Flags().GetString("data-dir")
	if err != nil {
		return err
	}
	if dataDir == "" {
		dataDir = config.XDGDataDir()
	}

	var videoID string
	if len(args) > 0 {
		videoID = strings.TrimSpace(youtube.Normalize(strings.TrimSpace(args[0])))
		if videoID == "" {
			return youtube.ErrMissingIdentifier
		}
	}

	ledger, err := history.Open(dataDir)
	if err != nil {
		return fmt.Errorf("failed to open history ledger: %w", err)
	}
	defer ledger.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return listHistory(ctx, ledger, videoID, limit, cmd.OutOrStdout())
}

// listHistory prints ledger entries with their change against the previous export.
func listHistory(ctx context.Context, ledger *history.Ledger, videoID string, limit int, out io.Writer) error {
	entries, err := ledger.List(ctx, videoID, limit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if len(entries) == 0 {
		if videoID != "" {
			fmt.Fprintf(out, "No exports recorded for %s\n", videoID)
		} else {
			fmt.Fprintln(out, "No exports recorded.")
		}
		fmt.Fprintln(out, "\nUse 'ytcomments export --history' to record exports.")
		return nil
	}

	fmt.Fprintf(out, "  %-6s  %-20s  %-11s  %-10s  %8s  %-10s  %s\n",
		"ID", "Date", "Video", "Kind", "Comments", "Change", "File")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 90))

	for i := range entries {
		e := &entries[i]

		prev, err := ledger.Previous(ctx, e)
		if err != nil && !errors.Is(err, history.ErrNotFound) {
			return fmt.Errorf("failed to read history: %w", err)
		}

		comments := "-"
		if e.Kind == model.KindComments {
			comments = fmt.Sprintf("%d", e.Comments)
		}

		fmt.Fprintf(out, "  %-6d  %-20s  %-11s  %-10s  %8s  %-10s  %s\n",
			e.ID,
			e.ExportedAt.Local().Format("2006-01-02 15:04:05"),
			e.VideoID,
			e.Kind,
			comments,
			describeChange(history.Compare(prev, e), e),
			e.Filename,
		)
	}

	return nil
}

// describeChange renders a comparison for the history table.
func describeChange(c history.Change, e *history.Entry) string {
	switch {
	case !c.HasPrevious:
		return "first"
	case !c.ContentChanged:
		return "unchanged"
	case e.Kind == model.KindComments:
		return formatDelta(c.CommentDelta)
	default:
		return "changed"
	}
}
