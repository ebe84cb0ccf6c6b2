package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"schoolscout/internal/collector"
	"schoolscout/internal/model"
	"schoolscout/internal/portal"
)

var (
	collectState      string
	collectFilters    []string
	collectOutput     string
	collectDelay      time.Duration
	collectTimeout    time.Duration
	collectUserAgent  string
	collectMaxPages   int
	collectCheckpoint int
	collectNoRobots   bool
	collectInsecure   bool
	collectCache      bool
	collectCacheDir   string
)

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect school records from a state portal's listing",
	Long: `Collect walks every page of a state portal's school search results,
extracts one record per listing row, and writes the records to a CSV file.

Filters constrain which rows are kept; with no filters, every row is
collected. The output file is rewritten after each checkpoint, so an
interrupted run loses at most the pages since the last checkpoint.

Example:
  schoolscout collect --state texas -o texas_schools.csv
  schoolscout collect --state texas --filter Prekindergarten --filter Kindergarten --filter "Early Education"`,
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)

	collectCmd.Flags().StringVar(&collectState, "state", "texas", "state portal to collect from")
	collectCmd.Flags().StringSliceVar(&collectFilters, "filter", nil, "grade-level filter label (repeatable; empty accepts all rows)")
	collectCmd.Flags().StringVarP(&collectOutput, "output", "o", "", "output CSV path (default: <state>_schools.csv)")
	collectCmd.Flags().DurationVar(&collectDelay, "delay", time.Second, "courtesy delay between page loads")
	collectCmd.Flags().DurationVar(&collectTimeout, "timeout", 30*time.Second, "per-request timeout")
	collectCmd.Flags().StringVar(&collectUserAgent, "ua", "", "HTTP User-Agent override")
	collectCmd.Flags().IntVar(&collectMaxPages, "max-pages", 500, "defensive bound on pages visited")
	collectCmd.Flags().IntVar(&collectCheckpoint, "checkpoint-pages", 1, "persist the store every N pages")
	collectCmd.Flags().BoolVar(&collectNoRobots, "no-robots", false, "skip robots.txt checks")
	collectCmd.Flags().BoolVar(&collectInsecure, "insecure", false, "skip TLS certificate verification")
	collectCmd.Flags().BoolVar(&collectCache, "cache", false, "cache fetched pages")
	collectCmd.Flags().StringVar(&collectCacheDir, "cache-dir", "", "page cache directory (memory-only when empty)")
}

func runCollect(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = collectTimeout
	cfg.HTTP.InsecureTLS = collectInsecure
	if collectUserAgent != "" {
		cfg.HTTP.UserAgent = collectUserAgent
	}
	cfg.Crawl.Delay = collectDelay
	cfg.Crawl.MaxPages = collectMaxPages
	cfg.Crawl.CheckpointPages = collectCheckpoint
	cfg.Crawl.RespectRobots = !collectNoRobots
	cfg.Cache.Enabled = collectCache
	cfg.Cache.Dir = collectCacheDir
	cfg.Output.Verbose = verbose

	p, err := portal.NewRegistry().Lookup(collectState)
	if err != nil {
		return err
	}

	output := collectOutput
	if output == "" {
		output = strings.ToLower(collectState) + "_schools.csv"
	}

	session := portal.NewSession(cfg)
	defer session.Close()

	st, err := collector.New(p, session, cfg).Run(ctx, model.NewFilterSet(collectFilters...), output)
	if err != nil {
		return fmt.Errorf("collection failed: %w", err)
	}

	fmt.Printf("✓ Collected %d records to %s\n", st.Len(), output)
	return nil
}
