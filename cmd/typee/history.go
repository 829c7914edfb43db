package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/typee/internal/config"
	"github.com/verte-zerg/typee/internal/ledger"
	"github.com/verte-zerg/typee/internal/logging"
	"github.com/verte-zerg/typee/internal/mint"
	"github.com/verte-zerg/typee/internal/model"
	"github.com/verte-zerg/typee/internal/stats"
)

const (
	defaultTrendWindow = 5
	defaultTrendWidth  = 60
	historyIDWidth     = 24
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List minted scores",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyFormat, "format", "table", "output format: table, json or yaml")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	switch historyFormat {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("--format must be table, json or yaml")
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	ledgerCfg, err := ledgerConfig(cmd, fileCfg.Ledger)
	if err != nil {
		return err
	}
	logger, err := logging.New(config.DefaultLogPath(), debugLogging)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	client, closeLedger, err := openLedger(ctx, ledgerCfg, logger)
	if err != nil {
		return err
	}
	defer closeLedger()

	svc := mint.NewService(client, mint.Options{
		ConfirmTimeout: ledgerCfg.ConfirmTimeout,
		PollInterval:   ledgerCfg.PollInterval,
	}, logger)
	ctx, cancel := context.WithTimeout(ctx, ledgerCfg.RequestTimeout)
	defer cancel()
	records, err := svc.History(ctx)
	if err != nil {
		return err
	}
	return writeHistory(cmd.OutOrStdout(), historyFormat, records, terminalWidth())
}

func writeHistory(w io.Writer, format string, records []model.ScoreRecord, width int) error {
	if records == nil {
		records = []model.ScoreRecord{}
	}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := stats.RenderScoreTable(w, records, historyIDWidth); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderSummary(w, records); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	trendWidth := width - len("WPM trend: ")
	if trendWidth <= 0 {
		trendWidth = defaultTrendWidth
	}
	if err := stats.RenderTrend(w, records, defaultTrendWindow, trendWidth); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return width
}

func newAddressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Show the connected wallet address",
		Args:  cobra.NoArgs,
		RunE:  runAddressCmd,
	}
}

func runAddressCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	ledgerCfg, err := ledgerConfig(cmd, fileCfg.Ledger)
	if err != nil {
		return err
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
	return writeAddress(cmd.OutOrStdout(), ledgerCfg, client)
}

func writeAddress(w io.Writer, cfg model.LedgerConfig, id ledger.Identity) error {
	lines := []string{fmt.Sprintf("backend: %s", cfg.Backend)}
	if !id.Connected() {
		lines = append(lines, "not connected")
	} else {
		lines = append(lines,
			fmt.Sprintf("address: %s", id.Address()),
			fmt.Sprintf("short:   %s", ledger.ShortAddress(id.Address())))
	}
	if cfg.Backend == backendIOTA {
		lines = append(lines, fmt.Sprintf("network: %s (%s)", cfg.Network, cfg.NodeURL))
	}
	if _, err := fmt.Fprintln(w, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
