package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/TobiSchelling/NewsCurator/internal/config"
	"github.com/TobiSchelling/NewsCurator/internal/logging"
	"github.com/TobiSchelling/NewsCurator/internal/pipeline"
	"github.com/TobiSchelling/NewsCurator/internal/server"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

var demoTopics = []string{"inteligência artificial", "tecnologia", "inovação"}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "newscurator",
	Short:   "Curated news digests by topic",
	Long:    "NewsCurator searches, categorizes, summarizes and ranks news articles into topic reports.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}

		var err error
		cfg, err = loadConfig(configPath)
		if err != nil {
			return err
		}

		return logging.Setup(logging.Options{
			Level:   cfg.Logging.Level,
			File:    cfg.Logging.File,
			Verbose: verbose,
		})
	},
}

// loadConfig resolves and loads the config file, falling back to the
// built-in defaults when none exists.
func loadConfig(explicit string) (*config.Config, error) {
	path, err := config.ResolveConfigPath(explicit)
	if errors.Is(err, config.ErrNotFound) {
		log.Debug("No config file found, using defaults")
		return config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	loaded, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return loaded, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(curateCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(shellCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("newscurator", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/newscurator/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to configure sources, cache backend and limits.")
		return nil
	},
}

// --- curate command ---

var (
	maxArticles int
	minScore    float64
	category    string
	format      string
	sentiment   bool
)

var curateCmd = &cobra.Command{
	Use:   "curate [topics...]",
	Short: "Curate a report for one or more topics",
	Long:  "Curate a report. Topics may be given as separate arguments or comma-separated.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics := topicsFromArgs(args)
		if len(topics) == 0 {
			return fmt.Errorf("at least one topic is required")
		}

		opts := pipeline.Options{
			MaxResults:       cfg.Curator.MaxSearchResults,
			Category:         category,
			AnalyzeSentiment: sentiment,
		}
		if cmd.Flags().Changed("max") {
			opts.MaxResults = pipeline.NormalizeMaxArticles(maxArticles)
		}
		if cmd.Flags().Changed("min-score") {
			opts.MinScore = pipeline.NormalizeMinScore(minScore)
		}

		return curate(cmd.Context(), topics, opts)
	},
}

func init() {
	curateCmd.Flags().IntVarP(&maxArticles, "max", "m", 0, "Maximum number of articles (default from config)")
	curateCmd.Flags().Float64Var(&minScore, "min-score", 0, "Minimum relevance score, 0.0 to 1.0")
	curateCmd.Flags().StringVar(&category, "category", "", "Only keep articles of this category")
	curateCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, summary, json, quick, markdown")
	curateCmd.Flags().BoolVar(&sentiment, "sentiment", false, "Tag articles with a sentiment")
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Curate a report for the demonstration topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Demo topics: %s\n\n", joinTopics(demoTopics))
		return curate(cmd.Context(), demoTopics, pipeline.Options{MaxResults: cfg.Curator.MaxSearchResults})
	},
}

func curate(ctx context.Context, topics []string, opts pipeline.Options) error {
	src, closeSource := pipeline.NewSource(cfg)
	defer closeSource()
	pipe := pipeline.New(cfg, src)

	res, err := pipe.Run(ctx, topics, opts)
	if err != nil {
		return err
	}

	if verbose {
		for i, step := range res.Steps {
			fmt.Fprintf(os.Stderr, "Step %d/%d: %s - %s\n", i+1, len(res.Steps), step.Name, step.Summary)
		}
	}

	out, err := renderReport(res.Report, format)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// --- stats command ---

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show supported categories and limits",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(statsText(cfg))
	},
}

// statsText needs no article source, so none is opened.
func statsText(cfg *config.Config) string {
	return pipeline.New(cfg, nil).StatsSummary()
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		src, closeSource := pipeline.NewSource(cfg)
		defer closeSource()

		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(cfg, pipeline.New(cfg, src), port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to run server on")
}

// --- shell command ---

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, closeSource := pipeline.NewSource(cfg)
		defer closeSource()

		sh := newShell(pipeline.New(cfg, src), os.Stdin, os.Stdout)
		return sh.Run(cmd.Context())
	},
}
