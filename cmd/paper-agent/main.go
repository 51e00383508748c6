// Package main is the paper-agent command line: it summarizes research
// papers, finds the PDF behind a landing page and runs literature searches.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/SaiNageswarS/go-api-boot/config"
	"github.com/SaiNageswarS/go-api-boot/dotenv"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/paper-agent/appconfig"
	"github.com/SaiNageswarS/paper-agent/fetcher"
	"github.com/SaiNageswarS/paper-agent/flows"
	"github.com/SaiNageswarS/paper-agent/llm"
	"github.com/SaiNageswarS/paper-agent/metrics"
	"github.com/SaiNageswarS/paper-agent/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flowDeps flows.Deps
	registry *prometheus.Registry

	// buildDeps is replaced in tests.
	buildDeps = provideDeps
)

var rootCmd = &cobra.Command{
	Use:   "paper-agent",
	Short: "Summarize research papers and search the literature",
	Long: `paper-agent drives a generation model to summarize research papers from a
PDF URL or a local file, to find the PDF behind a paper's landing page, and to
suggest papers related to a natural-language query. Results are printed as JSON.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dotenv.LoadEnv()

		cfgFile, _ := cmd.Flags().GetString("config")
		cfg, err := loadConfig(cfgFile)
		if err != nil {
			return err
		}

		if provider, _ := cmd.Flags().GetString("provider"); provider != "" {
			cfg.LLMProvider = provider
			cfg.LLMModel = ""
		}
		if model, _ := cmd.Flags().GetString("model"); model != "" {
			cfg.LLMModel = model
		}
		cfg.ApplyDefaults()

		deps, err := buildDeps(cfg)
		if err != nil {
			return err
		}
		if progress, _ := cmd.Flags().GetBool("progress"); progress {
			deps.Reporter = &flows.LogProgressReporter{}
		}

		registry = prometheus.NewRegistry()
		deps.Metrics = metrics.New(registry)
		flowDeps = deps
		return nil
	},
	// Metrics are written in the node_exporter textfile format so batch runs
	// can be scraped after they exit.
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		metricsFile, _ := cmd.Flags().GetString("metrics-file")
		if metricsFile == "" || registry == nil {
			return nil
		}
		if err := prometheus.WriteToTextfile(metricsFile, registry); err != nil {
			return fmt.Errorf("writing metrics to %s: %w", metricsFile, err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "config.ini", "config file")
	rootCmd.PersistentFlags().String("provider", "", "generation provider: anthropic, groq, ollama, openrouter or openai")
	rootCmd.PersistentFlags().String("model", "", "model identifier for the provider")
	rootCmd.PersistentFlags().Bool("progress", false, "log flow progress")
	rootCmd.PersistentFlags().String("metrics-file", "", "write Prometheus metrics to this file on exit")
}

// loadConfig reads cfgFile when it exists; every key has a default.
func loadConfig(cfgFile string) (*appconfig.AppConfig, error) {
	cfg := appconfig.NewAppConfig()
	if _, err := os.Stat(cfgFile); err != nil {
		logger.Info("No config file, using defaults", zap.String("config", cfgFile))
		return cfg, nil
	}

	if err := config.LoadConfig(cfgFile, cfg); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

func provideDeps(cfg *appconfig.AppConfig) (flows.Deps, error) {
	client, err := llm.ProvideClient(cfg)
	if err != nil {
		return flows.Deps{}, err
	}

	opts := []fetcher.Option{fetcher.WithMaxRetries(cfg.FetchRetries)}
	if cfg.UserAgent != "" {
		opts = append(opts, fetcher.WithUserAgent(cfg.UserAgent))
	}

	return flows.Deps{
		LLM:               client,
		Fetcher:           fetcher.NewPageFetcher(opts...),
		Options:           llm.ProvideOptions(cfg),
		FetchTimeout:      cfg.FetchTimeout(),
		GenerationTimeout: cfg.GenerationTimeout(),
	}, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	os.Exit(run())
}

func run() int {
	// catch SIGINT -> cancel
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return schema.ExitCode(err)
	}
	return 0
}
