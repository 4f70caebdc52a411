// ABOUTME: Root command for the market CLI
// ABOUTME: Handles global flags, configuration and shared backend wiring

package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/campusmarket/market-cli/internal/client"
	"github.com/campusmarket/market-cli/internal/config"
	"github.com/campusmarket/market-cli/internal/logger"
	"github.com/campusmarket/market-cli/internal/session"
	"github.com/campusmarket/market-cli/internal/tui/recent"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
	configDir  string
)

// Exit codes shared by every command
const (
	exitOK       = 0
	exitNotFound = 1
	exitError    = 2
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "market",
	Short: "CLI for the campus marketplace",
	Long: `market is a command-line client for the campus marketplace.

Browse sellers, list products, write reviews and manage your account.
Run without arguments in a terminal to pick an action from a menu.

Environment Variables:
  MARKET_API_URL         Backend API URL
  MARKET_CONFIG_DIR      Where the session and recent sellers are kept
  MARKET_CALLBACK_ADDR   Loopback address for the login callback (default: 127.0.0.1:8765)
  MARKET_HTTP_TIMEOUT    Backend request timeout (default: none)
  MARKET_LOGIN_TIMEOUT   How long login waits for the browser (default: 5m)
  MARKET_LOG_LEVEL       debug, info, warn, error (default: warn)
  MARKET_LOG_FORMAT      text, json (default: text)`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		logger.Init(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if !isInteractive() {
			_ = cmd.Help()
			return
		}

		ctx, cancel := signalContext()
		defer cancel()

		exitCode := runMenu(ctx, newDeps(), os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides MARKET_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Directory for session and recent sellers (overrides MARKET_CONFIG_DIR)")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return strings.TrimRight(apiURL, "/")
	}
	return config.Load().APIURL
}

// GetConfigDir returns the config directory from flag, env, or default
func GetConfigDir() string {
	if configDir != "" {
		return configDir
	}
	return config.Load().ConfigDir
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// isInteractive reports whether prompts can be shown. Tests replace it.
var isInteractive = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// loadConfig applies the global flags on top of env configuration
func loadConfig() *config.Config {
	cfg := config.Load()
	cfg.APIURL = GetAPIURL()
	cfg.ConfigDir = GetConfigDir()
	return cfg
}

// deps bundles what commands need to reach the backend and the session
type deps struct {
	cfg    *config.Config
	store  *session.Store
	client *client.Client
	recent *recent.Sellers
}

// newDeps wires the session store and API client from configuration.
// The store is initialized before any command reads it.
func newDeps() *deps {
	cfg := loadConfig()

	store := session.NewStore(session.NewFileStorage(cfg.ConfigDir), cfg.APIURL+client.LoginPath)
	store.Init()

	return &deps{
		cfg:    cfg,
		store:  store,
		client: client.New(cfg.APIURL, store, cfg.HTTPTimeout),
		recent: recent.New(cfg.ConfigDir),
	}
}

// run wraps a command body with a signal-aware context and exits non-zero on failure
func run(body func(ctx context.Context, d *deps) int) {
	ctx, cancel := signalContext()
	exitCode := body(ctx, newDeps())
	cancel()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
