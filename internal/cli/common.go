package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mikematt33/ghscope/internal/cache"
	"github.com/mikematt33/ghscope/internal/config"
	"github.com/mikematt33/ghscope/internal/gh"
	"github.com/mikematt33/ghscope/internal/report"
	"github.com/mikematt33/ghscope/internal/reports"
)

// rateLimitFloor is the remaining-call count below which we warn before
// starting a run.
const rateLimitFloor = 100

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// outputFormat resolves the effective output format; --json beats --format.
func outputFormat() report.Format {
	if flagJSON {
		return report.FormatJSON
	}
	return report.Format(flagFormat)
}

// applyLookback points every day-based analysis window at the --days value.
func applyLookback(cfg *config.Config, days int) {
	if days <= 0 {
		return
	}
	cfg.Analysis.ActivityWindowDays = days
	cfg.Analysis.FirstTimerWindowDays = days
}

func parseRepo(arg string) (owner, name string, err error) {
	parts := strings.Split(arg, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q, expected owner/repo", arg)
	}
	return parts[0], parts[1], nil
}

// session bundles everything a report command needs, plus the cache
// handle to close when done.
type session struct {
	builder *reports.Builder
	client  *gh.Client
	store   *cache.Cache
	log     *logrus.Logger
	cancel  context.CancelFunc
	ctx     context.Context
}

func (s *session) close() {
	s.cancel()
	if s.store != nil {
		_ = s.store.Close()
	}
}

func newSession(repoArg string) (*session, error) {
	owner, name, err := parseRepo(repoArg)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	// An explicit --days overrides the config file windows; the flag
	// default must not clobber a customized config.
	if rootCmd.PersistentFlags().Changed("days") {
		applyLookback(cfg, flagDays)
	}

	log := newLogger()

	token := gh.ResolveToken(cfg.Global.GitHubToken)
	if token == "" && !flagOffline {
		return nil, fmt.Errorf("no GitHub token found. Please run 'ghscope auth login'")
	}
	client := gh.NewClient(token, log)

	var store *cache.Cache
	if path, err := cache.DefaultPath(); err == nil {
		ttl := time.Duration(cfg.Global.CacheTTL) * time.Minute
		if store, err = cache.Open(path, ttl); err != nil {
			log.WithError(err).Warn("cache unavailable, continuing without it")
			store = nil
		}
	}

	fetcher := gh.NewFetcher(client, store, owner, name, log)
	fetcher.NoCache = flagNoCache
	fetcher.Offline = flagOffline
	if flagLimit > 0 {
		fetcher.Limit = flagLimit
	} else if cfg.Global.PRLimit > 0 {
		fetcher.Limit = cfg.Global.PRLimit
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\n⚠️  Received interrupt signal. Cancelling...")
		cancel()
	}()

	if !flagOffline {
		preflightRateLimit(ctx, client)
	}

	return &session{
		builder: reports.NewBuilder(fetcher, cfg, log),
		client:  client,
		store:   store,
		log:     log,
		cancel:  cancel,
		ctx:     ctx,
	}, nil
}

// preflightRateLimit warns when the remaining budget looks too thin for a
// full run. Warning only, never fatal.
func preflightRateLimit(ctx context.Context, client *gh.Client) {
	limits, err := client.RateLimit(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  WARNING: Could not check rate limit: %v\n", err)
		return
	}
	if limits.Remaining < rateLimitFloor {
		fmt.Fprintf(os.Stderr, "⚠️  WARNING: Only %d/%d API calls remaining (resets at %s). Consider --offline.\n",
			limits.Remaining, limits.Limit, limits.Reset.Format(time.Kitchen))
	}
}

// newSpinner starts an indeterminate progress spinner on stderr and
// returns its stop function. A no-op when the output format is
// machine-readable.
func newSpinner(description string) func() {
	if outputFormat() != report.FormatText {
		return func() {}
	}
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			_ = bar.Finish()
		})
	}
}

// renderTables writes tables in the selected format; for JSON the full
// report aggregate is encoded instead.
func renderTables(tables []report.Table, aggregate any) error {
	format := outputFormat()
	if format == report.FormatJSON {
		return report.WriteJSON(aggregate, os.Stdout)
	}
	return report.NewRenderer(format).Render(tables, os.Stdout)
}

// runReport is the shared driver for single-report commands.
func runReport(cmd *cobra.Command, repoArg, description string,
	build func(s *session) (tables []report.Table, aggregate any, err error)) error {

	s, err := newSession(repoArg)
	if err != nil {
		return err
	}
	defer s.close()

	stop := newSpinner(description)
	tables, aggregate, err := build(s)
	stop()
	if err != nil {
		return err
	}

	cmd.SilenceUsage = true
	return renderTables(tables, aggregate)
}
