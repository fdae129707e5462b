package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/salesdojo/salesdojo/internal/catalog"
	"github.com/salesdojo/salesdojo/internal/llm"
	"github.com/salesdojo/salesdojo/internal/output"
	"github.com/salesdojo/salesdojo/internal/session"
	"github.com/salesdojo/salesdojo/internal/store"
)

// Package-level shared dependencies, initialized in cobra.OnInitialize.
var (
	ui          *output.UI
	scenarioCat *catalog.SQLiteCatalog

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "salesdojo",
	Short: "Practice sales conversations against an AI prospect",
	Long: `salesdojo runs turn-based practice conversations between you (the
salesperson) and a simulated prospect persona. Pick a scenario, work the
call, and get coaching feedback when you end the session.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
}

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initDeps)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/salesdojo/config.yaml)")
}

func initConfig() {
	// If --config is explicitly set, use that file
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot find home directory: %v\n", err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "salesdojo")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SALESDOJO")
	viper.AutomaticEnv()

	// Defaults via viper.SetDefault()
	home, _ := os.UserHomeDir()
	defaultConfigDir := filepath.Join(home, ".config", "salesdojo")

	viper.SetDefault("db_path", filepath.Join(defaultConfigDir, "salesdojo.db"))
	viper.SetDefault("port", 8080)
	viper.SetDefault("anthropic.api_key", "")
	viper.SetDefault("anthropic.model", "claude-sonnet-4-20250514")
	viper.SetDefault("llm.reply_timeout", "30s")
	viper.SetDefault("llm.summary_timeout", "60s")

	// Read config file if it exists (optional)
	_ = viper.ReadInConfig()
}

func initDeps() {
	ui = output.New()
	ui.Verbose = verbose

	// The scenario catalog is opened lazily so config/version commands run
	// without touching the database.
}

// getCatalog returns the shared scenario catalog, opening and migrating the
// database on first call.
func getCatalog() (*catalog.SQLiteCatalog, error) {
	if scenarioCat != nil {
		return scenarioCat, nil
	}

	dbPath := viper.GetString("db_path")
	c, err := catalog.NewSQLiteCatalog(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := c.Migrate(rootCmd.Context()); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	scenarioCat = c
	return scenarioCat, nil
}

// newManager builds a session manager over a fresh in-memory session store.
// Sessions live only as long as the process.
func newManager(cat catalog.Catalog) *session.Manager {
	completer := llm.NewClient(
		viper.GetString("anthropic.api_key"),
		viper.GetString("anthropic.model"),
	)
	return session.NewManager(cat, store.NewMemoryStore(), completer, session.Config{
		ReplyTimeout:   parseDuration(viper.GetString("llm.reply_timeout"), 30*time.Second),
		SummaryTimeout: parseDuration(viper.GetString("llm.summary_timeout"), 60*time.Second),
	})
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
