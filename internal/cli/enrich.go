package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"schoolscout/internal/enricher"
	"schoolscout/internal/llm"
	"schoolscout/internal/model"
	"schoolscout/internal/portal"
)

var (
	enrichState       string
	enrichInput       string
	enrichOutput      string
	enrichDelay       time.Duration
	enrichTimeout     time.Duration
	enrichCheckpoint  int
	enrichNoRobots    bool
	enrichInsecure    bool
	enrichCache       bool
	enrichCacheDir    string
	enrichLLM         bool
	enrichLLMProvider string
	enrichLLMModel    string
)

// enrichCmd represents the enrich command
var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich collected records with phone and website details",
	Long: `Enrich reads a CSV record file produced by collect and, for each record,
visits the school's profile page to fill in phone and website fields. Fields
that are already populated are never overwritten, so re-running enrich is
safe and only touches the gaps.

Per-record misses are logged and skipped; the run continues. The store is
rewritten every N processed records, so an interrupted run keeps its
progress up to the last checkpoint.

Example:
  schoolscout enrich -i texas_schools.csv
  schoolscout enrich -i texas_schools.csv --llm --llm-provider openai`,
	RunE: runEnrich,
}

func init() {
	rootCmd.AddCommand(enrichCmd)

	enrichCmd.Flags().StringVar(&enrichState, "state", "texas", "state portal the records came from")
	enrichCmd.Flags().StringVarP(&enrichInput, "input", "i", "", "input CSV path (required)")
	enrichCmd.Flags().StringVarP(&enrichOutput, "output", "o", "", "output CSV path (default: enriched_<input>)")
	enrichCmd.Flags().DurationVar(&enrichDelay, "delay", time.Second, "courtesy delay between detail pages")
	enrichCmd.Flags().DurationVar(&enrichTimeout, "timeout", 30*time.Second, "per-request timeout")
	enrichCmd.Flags().IntVar(&enrichCheckpoint, "checkpoint-every", 50, "persist the store every N processed records")
	enrichCmd.Flags().BoolVar(&enrichNoRobots, "no-robots", false, "skip robots.txt checks")
	enrichCmd.Flags().BoolVar(&enrichInsecure, "insecure", false, "skip TLS certificate verification")
	enrichCmd.Flags().BoolVar(&enrichCache, "cache", false, "cache fetched detail pages")
	enrichCmd.Flags().StringVar(&enrichCacheDir, "cache-dir", "", "page cache directory (memory-only when empty)")

	// LLM fallback flags
	enrichCmd.Flags().BoolVar(&enrichLLM, "llm", false, "enable LLM contact extraction when selectors find nothing")
	enrichCmd.Flags().StringVar(&enrichLLMProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	enrichCmd.Flags().StringVar(&enrichLLMModel, "llm-model", "", "LLM model name (provider default when empty)")

	_ = enrichCmd.MarkFlagRequired("input")
}

func runEnrich(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = enrichTimeout
	cfg.HTTP.InsecureTLS = enrichInsecure
	cfg.Crawl.Delay = enrichDelay
	cfg.Crawl.CheckpointRecords = enrichCheckpoint
	cfg.Crawl.RespectRobots = !enrichNoRobots
	cfg.Cache.Enabled = enrichCache
	cfg.Cache.Dir = enrichCacheDir
	cfg.Output.Verbose = verbose

	if enrichLLM {
		cfg.LLM.Provider = enrichLLMProvider
		cfg.LLM.Model = enrichLLMModel

		switch enrichLLMProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	p, err := portal.NewRegistry().Lookup(enrichState)
	if err != nil {
		return err
	}

	contact, err := llm.NewContactExtractor(llm.ConfigFromModel(cfg.LLM, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy))
	if err != nil {
		return fmt.Errorf("initialize LLM provider: %w", err)
	}

	session := portal.NewSession(cfg)
	defer session.Close()

	if err := enricher.New(p, session, cfg, contact).Run(ctx, enrichInput, enrichOutput); err != nil {
		return fmt.Errorf("enrichment failed: %w", err)
	}

	output := enrichOutput
	if output == "" {
		output = enricher.EnrichedPath(enrichInput)
	}
	fmt.Printf("✓ Enriched records written to %s\n", output)
	return nil
}
