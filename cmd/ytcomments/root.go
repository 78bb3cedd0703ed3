package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for ytcomments.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ytcomments",
		Short: "Export YouTube comments and transcripts as text documents",
		Long: `ytcomments exports the comments and transcript of YouTube videos.

Every export fetches the video details and all comment pages again; nothing
fetched is cached. The API key is taken from --api-key, the
YTCOMMENTS_API_KEY or YOUTUBE_API_KEY environment variables, or the
configuration file, in that order.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
