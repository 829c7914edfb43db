// Package main provides the CLI entrypoint for typee.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/typee/internal/config"
	"github.com/verte-zerg/typee/internal/generator"
	"github.com/verte-zerg/typee/internal/logging"
	"github.com/verte-zerg/typee/internal/mint"
	"github.com/verte-zerg/typee/internal/model"
	"github.com/verte-zerg/typee/internal/render"
	"github.com/verte-zerg/typee/internal/session"
	"github.com/verte-zerg/typee/internal/tui"
	"github.com/verte-zerg/typee/internal/wordlist"
)

const (
	defaultTimeLimit = 60
	defaultWords     = 150
	defaultLineWidth = 50

	backendLocal = "local"
	backendIOTA  = "iota"

	defaultNodeURL        = "https://api.testnet.iota.cafe"
	defaultNetwork        = "testnet"
	defaultExplorerURL    = "https://explorer.iota.org"
	defaultPackageID      = "0xc00e31b0d06c4774e4149b48153a327601c20d985fd5ab2529cc3fdb76bcef20"
	defaultModule         = "game"
	defaultFunction       = "mint_score"
	defaultStructName     = "Score"
	defaultGasBudget      = int64(10_000_000)
	defaultCLIPath        = "iota"
	defaultConfirmTimeout = "60s"
	defaultPollInterval   = "1s"
	defaultRequestTimeout = 15 * time.Second
)

var (
	practiceTime     int
	practiceWords    int
	practiceWidth    int
	practiceWordList string

	ledgerBackend string
	debugLogging  bool

	historyFormat string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typee",
		Short:         "Terminal typing speed test with minted scores",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().IntVar(&practiceTime, "time", defaultTimeLimit, "time limit in seconds")
	rootCmd.Flags().IntVar(&practiceWords, "words", defaultWords, "words per test")
	rootCmd.Flags().IntVar(&practiceWidth, "width", defaultLineWidth, "line width in characters")
	rootCmd.Flags().StringVar(&practiceWordList, "wordlist", "", "word list file, one word per line (default: built-in list)")
	rootCmd.PersistentFlags().StringVar(&ledgerBackend, "backend", backendLocal, "score ledger: local or iota")
	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "write debug entries to the log file")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newAddressCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := practiceConfig(cmd, fileCfg.Practice)
	if err := validateConfig(cfg); err != nil {
		return err
	}
	ledgerCfg, err := ledgerConfig(cmd, fileCfg.Ledger)
	if err != nil {
		return err
	}

	words, err := wordlist.Resolve(cfg.WordListPath)
	if err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}

	logger, err := logging.New(config.DefaultLogPath(), debugLogging)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client, closeLedger, err := openLedger(context.Background(), ledgerCfg, logger)
	if err != nil {
		return err
	}
	defer closeLedger()

	sess, err := session.New(generator.New(), words, session.Options{
		Words:     cfg.Words,
		TimeLimit: cfg.TimeLimit,
		LineWidth: cfg.LineWidth,
	})
	if err != nil {
		return err
	}
	logger.Info("starting typing test",
		zap.Int("time", cfg.TimeLimit),
		zap.Int("words", cfg.Words),
		zap.Int("width", cfg.LineWidth),
		zap.String("backend", ledgerCfg.Backend),
		zap.Bool("connected", client.Connected()))

	svc := mint.NewService(client, mint.Options{
		ConfirmTimeout: ledgerCfg.ConfirmTimeout,
		PollInterval:   ledgerCfg.PollInterval,
	}, logger)
	model := tui.NewModel(sess, svc, tui.Options{
		VisibleLines:   cfg.VisibleLines,
		ExplorerURL:    ledgerCfg.ExplorerURL,
		Network:        ledgerCfg.Network,
		MintTimeout:    ledgerCfg.ConfirmTimeout + ledgerCfg.RequestTimeout,
		HistoryTimeout: ledgerCfg.RequestTimeout,
		Logger:         logger,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func practiceConfig(cmd *cobra.Command, file config.PracticeConfig) model.Config {
	applyIntConfig(cmd, "time", &practiceTime, file.TimeLimit)
	applyIntConfig(cmd, "words", &practiceWords, file.Words)
	applyIntConfig(cmd, "width", &practiceWidth, file.LineWidth)
	applyStringConfig(cmd, "wordlist", &practiceWordList, file.WordList)
	return model.Config{
		TimeLimit:    practiceTime,
		Words:        practiceWords,
		LineWidth:    practiceWidth,
		VisibleLines: render.DefaultRows,
		WordListPath: expandHome(strings.TrimSpace(practiceWordList)),
	}
}

func ledgerConfig(cmd *cobra.Command, file config.LedgerConfig) (model.LedgerConfig, error) {
	applyStringConfig(cmd, "backend", &ledgerBackend, file.Backend)

	cfg := model.LedgerConfig{
		Backend:        strings.ToLower(strings.TrimSpace(ledgerBackend)),
		NodeURL:        stringOr(file.NodeURL, defaultNodeURL),
		Network:        stringOr(file.Network, defaultNetwork),
		ExplorerURL:    stringOr(file.ExplorerURL, defaultExplorerURL),
		PackageID:      stringOr(file.PackageID, defaultPackageID),
		Module:         defaultModule,
		Function:       defaultFunction,
		StructName:     defaultStructName,
		GasBudget:      defaultGasBudget,
		CLIPath:        stringOr(file.CLIPath, defaultCLIPath),
		RequestTimeout: defaultRequestTimeout,
	}
	if file.GasBudget != nil {
		cfg.GasBudget = *file.GasBudget
	}

	var err error
	if cfg.ConfirmTimeout, err = time.ParseDuration(stringOr(file.ConfirmTimeout, defaultConfirmTimeout)); err != nil {
		return model.LedgerConfig{}, fmt.Errorf("invalid confirm-timeout: %w", err)
	}
	if cfg.PollInterval, err = time.ParseDuration(stringOr(file.PollInterval, defaultPollInterval)); err != nil {
		return model.LedgerConfig{}, fmt.Errorf("invalid poll-interval: %w", err)
	}
	if err := validateLedgerConfig(cfg); err != nil {
		return model.LedgerConfig{}, err
	}
	return cfg, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func stringOr(value *string, fallback string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return fallback
	}
	return strings.TrimSpace(*value)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typee configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# time = %d               # Time limit in seconds
# words = %d             # Words per test
# width = %d              # Line width in characters
# wordlist = ""           # Word list file, one word per line (default: built-in list)

[ledger]
# backend = %q         # "local" (offline sqlite) or "iota"
# node-url = %q
# network = %q
# explorer-url = %q
# package-id = %q
# gas-budget = %d
# cli = %q               # iota CLI wallet binary
# confirm-timeout = %q
# poll-interval = %q
`,
		defaultTimeLimit,
		defaultWords,
		defaultLineWidth,
		backendLocal,
		defaultNodeURL,
		defaultNetwork,
		defaultExplorerURL,
		defaultPackageID,
		defaultGasBudget,
		defaultCLIPath,
		defaultConfirmTimeout,
		defaultPollInterval,
	)
}

var errInvalidBackend = errors.New("unknown backend")

func validateConfig(cfg model.Config) error {
	if cfg.TimeLimit <= 0 {
		return fmt.Errorf("--time must be > 0")
	}
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.LineWidth <= 0 {
		return fmt.Errorf("--width must be > 0")
	}
	return nil
}

func validateLedgerConfig(cfg model.LedgerConfig) error {
	switch cfg.Backend {
	case backendLocal, backendIOTA:
	default:
		return fmt.Errorf("%w %q (expected %s or %s)", errInvalidBackend, cfg.Backend, backendLocal, backendIOTA)
	}
	if cfg.ConfirmTimeout <= 0 {
		return fmt.Errorf("confirm-timeout must be > 0")
	}
	if cfg.PollInterval <= 0 {
		return fmt.Errorf("poll-interval must be > 0")
	}
	if cfg.GasBudget <= 0 {
		return fmt.Errorf("gas-budget must be > 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
