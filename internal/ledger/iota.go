package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"strconv"
	"strings"

	"github.com/verte-zerg/typee/internal/model"
)

const ownedObjectsPageSize = 50

// Runner executes a wallet CLI command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs the command on the host.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
		}
		return nil, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return out, nil
}

// IOTA talks to an IOTA full node over JSON-RPC. Signing and execution are
// delegated to the iota CLI wallet, which holds the keys.
type IOTA struct {
	cfg     model.LedgerConfig
	rpc     *rpcClient
	run     Runner
	address string
	connErr error
}

// IOTAOption customizes an IOTA client.
type IOTAOption func(*IOTA)

// WithRunner replaces the wallet command runner.
func WithRunner(run Runner) IOTAOption {
	return func(c *IOTA) { c.run = run }
}

// NewIOTA resolves the wallet's active address. A wallet that cannot be
// reached leaves the client disconnected rather than failing; ConnectError
// reports why.
func NewIOTA(ctx context.Context, cfg model.LedgerConfig, opts ...IOTAOption) *IOTA {
	c := &IOTA{
		cfg: cfg,
		rpc: newRPCClient(cfg.NodeURL, &http.Client{Timeout: cfg.RequestTimeout}),
		run: ExecRunner,
	}
	for _, opt := range opts {
		opt(c)
	}
	out, err := c.run(ctx, cfg.CLIPath, "client", "active-address")
	if err != nil {
		c.connErr = err
		return c
	}
	address := strings.TrimSpace(string(out))
	if !strings.HasPrefix(address, "0x") {
		c.connErr = fmt.Errorf("unexpected active address %q", address)
		return c
	}
	c.address = address
	return c
}

// Connected implements Identity.
func (c *IOTA) Connected() bool { return c.address != "" }

// Address implements Identity.
func (c *IOTA) Address() string { return c.address }

// ConnectError returns why the wallet is not connected, if it is not.
func (c *IOTA) ConnectError() error { return c.connErr }

type cliCallOutput struct {
	Digest  string      `json:"digest"`
	Effects *txnEffects `json:"effects"`
}

// Submit implements Submitter by invoking the mint entry function.
func (c *IOTA) Submit(ctx context.Context, req MintRequest) (string, error) {
	if !c.Connected() {
		return "", errors.New("wallet not connected")
	}
	out, err := c.run(ctx, c.cfg.CLIPath,
		"client", "call",
		"--package", c.cfg.PackageID,
		"--module", c.cfg.Module,
		"--function", c.cfg.Function,
		"--args", strconv.Itoa(req.WPM), strconv.Itoa(req.Accuracy),
		"--gas-budget", strconv.FormatInt(c.cfg.GasBudget, 10),
		"--json",
	)
	if err != nil {
		return "", err
	}
	var result cliCallOutput
	if err := json.Unmarshal(out, &result); err != nil {
		return "", fmt.Errorf("failed to decode wallet output: %w", err)
	}
	if result.Digest == "" {
		return "", errors.New("wallet output has no transaction digest")
	}
	if result.Effects != nil {
		if err := result.Effects.Status.err(); err != nil {
			return "", err
		}
	}
	return result.Digest, nil
}

type txnEffects struct {
	Status  txnStatus    `json:"status"`
	Created []ownedRefer `json:"created"`
}

type txnStatus struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func (s txnStatus) err() error {
	if s.Status == "" || s.Status == "success" {
		return nil
	}
	if s.Error != "" {
		return fmt.Errorf("transaction %s: %s", s.Status, s.Error)
	}
	return fmt.Errorf("transaction %s", s.Status)
}

type ownedRefer struct {
	Reference struct {
		ObjectID string `json:"objectId"`
	} `json:"reference"`
}

type txnBlock struct {
	Digest  string      `json:"digest"`
	Effects *txnEffects `json:"effects"`
}

// Transaction implements Confirmer.
func (c *IOTA) Transaction(ctx context.Context, digest string) (Effects, error) {
	var block txnBlock
	err := c.rpc.call(ctx, "iota_getTransactionBlock", []any{
		digest,
		map[string]any{"showEffects": true},
	}, &block)
	if err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) && isNotFound(rpcErr.Message) {
			return Effects{}, ErrNotFound
		}
		return Effects{}, err
	}
	if block.Effects == nil {
		return Effects{}, ErrNotFound
	}
	if err := block.Effects.Status.err(); err != nil {
		return Effects{}, err
	}
	effects := Effects{Digest: block.Digest}
	for _, created := range block.Effects.Created {
		if created.Reference.ObjectID != "" {
			effects.Created = append(effects.Created, created.Reference.ObjectID)
		}
	}
	return effects, nil
}

func isNotFound(message string) bool {
	message = strings.ToLower(message)
	return strings.Contains(message, "could not find") || strings.Contains(message, "not found")
}

type ownedObjectsPage struct {
	Data []struct {
		Data *struct {
			ObjectID string `json:"objectId"`
			Content  *struct {
				Fields struct {
					WPM      u64 `json:"wpm"`
					Accuracy u64 `json:"accuracy"`
				} `json:"fields"`
			} `json:"content"`
		} `json:"data"`
	} `json:"data"`
	NextCursor  *string `json:"nextCursor"`
	HasNextPage bool    `json:"hasNextPage"`
}

// ListOwnedScores implements History, following pagination to the end.
func (c *IOTA) ListOwnedScores(ctx context.Context, owner string) ([]model.ScoreRecord, error) {
	query := map[string]any{
		"filter":  map[string]any{"StructType": c.cfg.StructType()},
		"options": map[string]any{"showContent": true},
	}
	var records []model.ScoreRecord
	var cursor *string
	for {
		var page ownedObjectsPage
		err := c.rpc.call(ctx, "iotax_getOwnedObjects", []any{owner, query, cursor, ownedObjectsPageSize}, &page)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Data {
			if item.Data == nil {
				continue
			}
			record := model.ScoreRecord{ID: item.Data.ObjectID}
			if item.Data.Content != nil {
				record.WPM = int(item.Data.Content.Fields.WPM)
				record.Accuracy = int(item.Data.Content.Fields.Accuracy)
			}
			records = append(records, record)
		}
		if !page.HasNextPage || page.NextCursor == nil {
			return records, nil
		}
		cursor = page.NextCursor
	}
}
