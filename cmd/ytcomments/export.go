package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/nao1215/ytcomments/internal/config"
	"github.com/nao1215/ytcomments/internal/document"
	"github.com/nao1215/ytcomments/internal/history"
	"github.com/nao1215/ytcomments/internal/log"
	"github.com/nao1215/ytcomments/internal/model"
	"github.com/nao1215/ytcomments/internal/pipeline"
	"github.com/nao1215/ytcomments/internal/transcript"
	"github.com/nao1215/ytcomments/internal/youtube"
	"github.com/spf13/cobra"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [video-id-or-url]...",
		Short: "Export comments and transcripts of YouTube videos",
		Long: `Export fetches a video's details and every comment page, then writes
one text document per requested content kind.

Comment documents are named comentarios_<title>.txt and transcript documents
transcricao_<title>.txt, where <title> is the video title reduced to
lowercase ASCII letters, digits and underscores.

Examples:
  # Export the comments of a single video
  ytcomments export https://www.youtube.com/watch?v=dQw4w9WgXcQ

  # Export comments and transcript
  ytcomments export --mode all dQw4w9WgXcQ

  # Export several videos, three at a time, as Markdown
  ytcomments export --list videos.txt --parallel 3 --format markdown

  # Record exports in the history ledger
  ytcomments export --history dQw4w9WgXcQ

Configuration file (.ytcomments.yaml) example:
  mode: all
  languages: [pt, en]
  videos:
    dQw4w9WgXcQ:
      mode: transcript`,
		Args: cobra.ArbitraryArgs,
		RunE: runExportCmd,
	}

	cmd.Flags().StringP("api-key", "k", "",
		"YouTube Data API key (default: $"+config.APIKeyEnv+" or $"+config.FallbackAPIKeyEnv+")")

	// Content flags
	cmd.Flags().StringP("mode", "m", config.DefaultMode,
		"Content to export: comments, transcript or all")
	cmd.Flags().StringP("format", "F", config.DefaultFormat,
		"Output format: text, markdown or json")
	cmd.Flags().StringSliceP("languages", "L", nil,
		"Preferred caption languages for transcripts (default: pt,pt-BR,en,en-US,en-GB)")

	// Output flags
	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir,
		"Directory to write documents to")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing documents")

	// Batch flags
	cmd.Flags().StringP("list", "l", "",
		"File with one video ID or URL per line")
	cmd.Flags().IntP("parallel", "p", config.DefaultParallel,
		"Number of videos exported concurrently")

	// Connection flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each API request")
	cmd.Flags().StringP("proxy", "x", "",
		"SOCKS5 proxy address (e.g., 127.0.0.1:9050)")

	// History flags
	cmd.Flags().Bool("history", false,
		"Record exports in the history ledger")
	cmd.Flags().String("data-dir", "",
		"Directory of the history ledger (default: XDG data directory)")

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .ytcomments.yaml in current or home directory)")

	return cmd
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	client, err := youtube.NewClient(
		youtube.WithTimeout(cfg.Timeout),
		youtube.WithProxy(cfg.ProxyAddress),
		youtube.WithUserAgent(cfg.UserAgent),
	)
	if err != nil {
		return fmt.Errorf("failed to create YouTube client: %w", err)
	}

	return runExport(ctx, cfg, client, cmd.OutOrStdout(), logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags, the environment and
// the configuration file. Flags win over the file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	if cfg.APIKey, err = flags.GetString("api-key"); err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		cfg.APIKey = config.APIKeyFromEnv()
	}
	if cfg.Mode, err = flags.GetString("mode"); err != nil {
		return nil, err
	}
	if cfg.Format, err = flags.GetString("format"); err != nil {
		return nil, err
	}
	if cfg.Languages, err = flags.GetStringSlice("languages"); err != nil {
		return nil, err
	}
	if cfg.OutputDir, err = flags.GetString("output-dir"); err != nil {
		return nil, err
	}
	if cfg.Force, err = flags.GetBool("force"); err != nil {
		return nil, err
	}
	if cfg.ListFile, err = flags.GetString("list"); err != nil {
		return nil, err
	}
	if cfg.Parallel, err = flags.GetInt("parallel"); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
		return nil, err
	}
	if cfg.ProxyAddress, err = flags.GetString("proxy"); err != nil {
		return nil, err
	}
	if cfg.History, err = flags.GetBool("history"); err != nil {
		return nil, err
	}
	dataDir, err := flags.GetString("data-dir")
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	// If the user named a config file it must exist; otherwise a missing
	// file just leaves the defaults in place.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		explicit := make(map[string]bool)
		for _, name := range []string{"mode", "format", "output-dir", "languages", "proxy", "timeout", "parallel", "history"} {
			explicit[name] = flags.Changed(name)
		}
		cf.Apply(cfg, explicit)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	targets := args
	if cfg.ListFile != "" {
		listed, err := config.ReadTargetList(cfg.ListFile)
		if err != nil {
			return nil, err
		}
		targets = append(append([]string{}, args...), listed...)
	}
	cfg.Targets = youtube.NormalizeAll(targets)

	return cfg, nil
}

// newTranscriptSource builds the caption chain for a language preference.
// Caption bodies and player requests go through hc. The timedtext source lists
// tracks with its own client, so it is left out when a proxy is configured.
func newTranscriptSource(languages []string, hc *http.Client, proxyAddress string, timeout time.Duration) *transcript.Chain {
	var sources []transcript.Source
	if proxyAddress == "" {
		sources = append(sources, transcript.NewCaptionSource(languages, hc, timeout))
	}
	sources = append(sources, transcript.NewPlayerSource(languages, hc))
	return transcript.NewChain(sources...)
}

// runExport exports every target and writes the documents.
// Failed videos are reported and do not stop the others; the returned error
// says how many failed.
func runExport(ctx context.Context, cfg *config.Config, client *youtube.Client, out io.Writer, logger *slog.Logger) error {
	if cfg.APIKey == "" {
		return fmt.Errorf("%w: use --api-key or set %s", youtube.ErrMissingCredential, config.APIKeyEnv)
	}

	formatter, err := document.NewFormatter(cfg.Format)
	if err != nil {
		return err
	}

	var ledger *history.Ledger
	if cfg.History {
		ledger, err = history.Open(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("failed to open history ledger: %w", err)
		}
		defer ledger.Close()
		logger.Debug("history ledger opened", "path", ledger.Path())
	}

	run := func(ctx context.Context, videoID string) (*model.Export, error) {
		mode, err := cfg.ModeFor(videoID)
		if err != nil {
			return nil, err
		}
		exporter := pipeline.NewExporter(client,
			pipeline.WithTranscriptSource(newTranscriptSource(cfg.LanguagesFor(videoID), client.HTTPClient(), cfg.ProxyAddress, cfg.Timeout)),
			pipeline.WithFormatter(formatter),
			pipeline.WithExporterLogger(logger),
		)
		return exporter.Run(ctx, cfg.APIKey, videoID, mode)
	}

	bp := pipeline.NewBatchProcessor(run,
		pipeline.WithConcurrency(cfg.Parallel),
		pipeline.WithBatchLogger(logger),
	)

	total := len(cfg.Targets)
	if total > 1 {
		fmt.Fprintf(out, "Exporting %d videos (parallel: %d)...\n\n", total, cfg.Parallel)
	}
	start := time.Now()

	var (
		mu     sync.Mutex
		failed []error
	)
	err = bp.ProcessBatchWithCallback(ctx, cfg.Targets, func(r pipeline.BatchResult, index int) {
		mu.Lock()
		defer mu.Unlock()

		prefix := ""
		if total > 1 {
			prefix = fmt.Sprintf("[%d/%d] ", index+1, total)
		}

		if r.Err == nil {
			r.Err = saveExport(ctx, cfg, ledger, r.Export, out, prefix)
		}
		if r.Err != nil && total > 1 {
			fmt.Fprintf(out, "%s%s: failed (%s): %v\n", prefix, r.Identifier, youtube.Kind(r.Err), r.Err)
		}
		if r.Err != nil {
			failed = append(failed, fmt.Errorf("%s: %w", r.Identifier, r.Err))
		}
	})
	if err != nil {
		return err
	}

	if total > 1 {
		fmt.Fprintf(out, "\nExported %d of %d videos in %s\n",
			total-len(failed), total, time.Since(start).Round(time.Millisecond))
	}

	switch len(failed) {
	case 0:
		return nil
	case 1:
		if total == 1 {
			return failed[0]
		}
	}
	return fmt.Errorf("%d of %d exports failed: %w", len(failed), total, errors.Join(failed...))
}

// saveExport writes an export's documents and records them in the ledger.
func saveExport(ctx context.Context, cfg *config.Config, ledger *history.Ledger, exp *model.Export, out io.Writer, prefix string) error {
	paths, err := document.Save(cfg.OutputDir, exp.Documents, cfg.Force)
	if err != nil {
		return err
	}

	var entries []history.Entry
	if ledger != nil {
		entries = history.EntriesFromExport(exp, cfg.Format)
	}

	for i, doc := range exp.Documents {
		line := fmt.Sprintf("%s%s: saved %s", prefix, exp.VideoID, paths[i])
		if doc.Kind == model.KindComments {
			line += fmt.Sprintf(" (%d comments, %d pages)", model.CountComments(exp.Comments), exp.PagesFetched)
		}

		if ledger != nil {
			change, err := recordEntry(ctx, ledger, &entries[i])
			if err != nil {
				return err
			}
			line += formatChange(change, doc.Kind)
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

// recordEntry stores e and compares it with the previous export of the same kind.
func recordEntry(ctx context.Context, ledger *history.Ledger, e *history.Entry) (history.Change, error) {
	prev, err := ledger.Latest(ctx, e.VideoID, e.Kind)
	if err != nil && !errors.Is(err, history.ErrNotFound) {
		return history.Change{}, fmt.Errorf("failed to read history: %w", err)
	}
	id, err := ledger.Record(ctx, e)
	if err != nil {
		return history.Change{}, fmt.Errorf("failed to record history: %w", err)
	}
	e.ID = id
	return history.Compare(prev, e), nil
}

// formatChange renders a ledger comparison as a suffix for the saved line.
func formatChange(c history.Change, kind model.ContentKind) string {
	if !c.HasPrevious {
		return " [first export]"
	}
	if !c.ContentChanged {
		return " [unchanged]"
	}
	if kind == model.KindComments {
		return fmt.Sprintf(" [%s comments since last export]", formatDelta(c.CommentDelta))
	}
	return " [changed]"
}

// formatDelta formats a signed count.
func formatDelta(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}
