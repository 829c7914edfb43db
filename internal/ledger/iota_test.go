package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typee/internal/model"
)

const testAddress = "0x00000000000000000000000000000000000000000000000000000000000000aa"

func testLedgerConfig(nodeURL string) model.LedgerConfig {
	return model.LedgerConfig{
		Backend:        "iota",
		NodeURL:        nodeURL,
		PackageID:      "0xpkg",
		Module:         "game",
		Function:       "mint_score",
		StructName:     "Score",
		GasBudget:      10000000,
		CLIPath:        "iota",
		RequestTimeout: 5 * time.Second,
	}
}

type fakeWallet struct {
	calls  [][]string
	output map[string]string
	err    error
}

func (w *fakeWallet) run(_ context.Context, name string, args ...string) ([]byte, error) {
	w.calls = append(w.calls, append([]string{name}, args...))
	if w.err != nil {
		return nil, w.err
	}
	return []byte(w.output[args[1]]), nil
}

type rpcHandler func(method string, params []json.RawMessage) (any, *RPCError)

func newNode(t *testing.T, handle rpcHandler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     int64             `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		result, rpcErr := handle(req.Method, req.Params)
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = result
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewIOTAResolvesAddress(t *testing.T) {
	wallet := &fakeWallet{output: map[string]string{"active-address": testAddress + "\n"}}
	client := NewIOTA(context.Background(), testLedgerConfig("http://unused"), WithRunner(wallet.run))
	require.True(t, client.Connected())
	require.Equal(t, testAddress, client.Address())
	require.NoError(t, client.ConnectError())
}

func TestNewIOTADisconnectedWithoutWallet(t *testing.T) {
	wallet := &fakeWallet{err: errors.New("executable file not found")}
	client := NewIOTA(context.Background(), testLedgerConfig("http://unused"), WithRunner(wallet.run))
	require.False(t, client.Connected())
	require.Error(t, client.ConnectError())

	_, err := client.Submit(context.Background(), MintRequest{WPM: 1, Accuracy: 1})
	require.Error(t, err)
}

func TestIOTASubmitInvokesMintCall(t *testing.T) {
	wallet := &fakeWallet{output: map[string]string{
		"active-address": testAddress,
		"call":           `{"digest":"9xDigest","effects":{"status":{"status":"success"}}}`,
	}}
	client := NewIOTA(context.Background(), testLedgerConfig("http://unused"), WithRunner(wallet.run))

	digest, err := client.Submit(context.Background(), MintRequest{WPM: 64, Accuracy: 98})
	require.NoError(t, err)
	require.Equal(t, "9xDigest", digest)

	call := strings.Join(wallet.calls[len(wallet.calls)-1], " ")
	require.Contains(t, call, "client call --package 0xpkg --module game --function mint_score")
	require.Contains(t, call, "--args 64 98")
	require.Contains(t, call, "--gas-budget 10000000 --json")
}

func TestIOTASubmitReportsFailedEffects(t *testing.T) {
	wallet := &fakeWallet{output: map[string]string{
		"active-address": testAddress,
		"call":           `{"digest":"9xDigest","effects":{"status":{"status":"failure","error":"InsufficientGas"}}}`,
	}}
	client := NewIOTA(context.Background(), testLedgerConfig("http://unused"), WithRunner(wallet.run))
	_, err := client.Submit(context.Background(), MintRequest{WPM: 64, Accuracy: 98})
	require.ErrorContains(t, err, "InsufficientGas")
}

func TestIOTATransaction(t *testing.T) {
	node := newNode(t, func(method string, params []json.RawMessage) (any, *RPCError) {
		require.Equal(t, "iota_getTransactionBlock", method)
		var digest string
		require.NoError(t, json.Unmarshal(params[0], &digest))
		if digest == "pending" {
			return nil, &RPCError{Code: -32602, Message: "Could not find the referenced transaction"}
		}
		return map[string]any{
			"digest": digest,
			"effects": map[string]any{
				"status":  map[string]any{"status": "success"},
				"created": []any{map[string]any{"reference": map[string]any{"objectId": "0xscore"}}},
			},
		}, nil
	})
	wallet := &fakeWallet{output: map[string]string{"active-address": testAddress}}
	client := NewIOTA(context.Background(), testLedgerConfig(node.URL), WithRunner(wallet.run))

	effects, err := client.Transaction(context.Background(), "done")
	require.NoError(t, err)
	require.Equal(t, []string{"0xscore"}, effects.Created)

	_, err = client.Transaction(context.Background(), "pending")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestIOTAListOwnedScoresPaginates(t *testing.T) {
	node := newNode(t, func(method string, params []json.RawMessage) (any, *RPCError) {
		require.Equal(t, "iotax_getOwnedObjects", method)
		var query struct {
			Filter struct {
				StructType string `json:"StructType"`
			} `json:"filter"`
		}
		require.NoError(t, json.Unmarshal(params[1], &query))
		require.Equal(t, "0xpkg::game::Score", query.Filter.StructType)

		var cursor *string
		require.NoError(t, json.Unmarshal(params[2], &cursor))
		if cursor == nil {
			return map[string]any{
				"data": []any{
					map[string]any{"data": map[string]any{
						"objectId": "0x1",
						"content":  map[string]any{"fields": map[string]any{"wpm": "61", "accuracy": "95"}},
					}},
				},
				"nextCursor":  "c1",
				"hasNextPage": true,
			}, nil
		}
		return map[string]any{
			"data": []any{
				map[string]any{"data": map[string]any{
					"objectId": "0x2",
					"content":  map[string]any{"fields": map[string]any{"wpm": 70, "accuracy": 100}},
				}},
				map[string]any{"error": map[string]any{"code": "deleted"}},
			},
			"nextCursor":  nil,
			"hasNextPage": false,
		}, nil
	})
	wallet := &fakeWallet{output: map[string]string{"active-address": testAddress}}
	client := NewIOTA(context.Background(), testLedgerConfig(node.URL), WithRunner(wallet.run))

	records, err := client.ListOwnedScores(context.Background(), testAddress)
	require.NoError(t, err)
	require.Equal(t, []model.ScoreRecord{
		{ID: "0x1", WPM: 61, Accuracy: 95},
		{ID: "0x2", WPM: 70, Accuracy: 100},
	}, records)
}

func TestIOTAListOwnedScoresRPCError(t *testing.T) {
	node := newNode(t, func(string, []json.RawMessage) (any, *RPCError) {
		return nil, &RPCError{Code: -32000, Message: "boom"}
	})
	wallet := &fakeWallet{output: map[string]string{"active-address": testAddress}}
	client := NewIOTA(context.Background(), testLedgerConfig(node.URL), WithRunner(wallet.run))
	_, err := client.ListOwnedScores(context.Background(), testAddress)
	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	require.Equal(t, "boom", rpcErr.Message)
}
