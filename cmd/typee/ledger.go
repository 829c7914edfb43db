package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/verte-zerg/typee/internal/config"
	"github.com/verte-zerg/typee/internal/ledger"
	"github.com/verte-zerg/typee/internal/model"
	"github.com/verte-zerg/typee/internal/store"
)

// openLedger returns the configured ledger client and a function releasing it.
// An unreachable IOTA wallet is not an error; the client reports itself
// disconnected and minting stays unavailable.
func openLedger(ctx context.Context, cfg model.LedgerConfig, logger *zap.Logger) (ledger.Client, func(), error) {
	switch cfg.Backend {
	case backendIOTA:
		client := ledger.NewIOTA(ctx, cfg)
		if !client.Connected() {
			logger.Warn("wallet not connected", zap.Error(client.ConnectError()))
			logErrf("wallet not connected: %v\n", client.ConnectError())
			logErrln("minting is disabled; check `iota client active-address`")
		} else {
			logger.Info("wallet connected", zap.String("address", client.Address()), zap.String("node", cfg.NodeURL))
		}
		return client, func() {}, nil
	default:
		st, err := store.Open(config.DefaultLedgerPath())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open db: %w", err)
		}
		closeStore := func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}
		client, err := ledger.NewLocal(ctx, st)
		if err != nil {
			closeStore()
			return nil, nil, err
		}
		logger.Info("local ledger opened", zap.String("address", client.Address()))
		return client, closeStore, nil
	}
}
