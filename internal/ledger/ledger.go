// Package ledger defines the capabilities the typing test consumes from a
// score ledger, with an offline sqlite backend and an IOTA network backend.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/typee/internal/model"
)

// ErrNotFound reports a transaction the ledger does not know (yet).
var ErrNotFound = errors.New("transaction not found")

// MintRequest carries the arguments of the mint call.
type MintRequest struct {
	WPM      int
	Accuracy int
}

// Effects are the observed results of an executed transaction.
type Effects struct {
	Digest  string
	Created []string
}

// Identity exposes the connected wallet. The core never mutates it.
type Identity interface {
	Connected() bool
	Address() string
}

// Submitter signs and executes a mint transaction, returning its digest.
type Submitter interface {
	Submit(ctx context.Context, req MintRequest) (string, error)
}

// Confirmer looks up an executed transaction. It returns ErrNotFound until
// the transaction is visible.
type Confirmer interface {
	Transaction(ctx context.Context, digest string) (Effects, error)
}

// History lists score objects owned by an address.
type History interface {
	ListOwnedScores(ctx context.Context, owner string) ([]model.ScoreRecord, error)
}

// Client bundles every ledger capability.
type Client interface {
	Identity
	Submitter
	Confirmer
	History
}

// ExplorerURL links to an object on the block explorer.
func ExplorerURL(base, network, objectID string) string {
	base = strings.TrimRight(base, "/")
	if network == "" {
		return fmt.Sprintf("%s/object/%s", base, objectID)
	}
	return fmt.Sprintf("%s/object/%s?network=%s", base, objectID, network)
}

// ShortAddress abbreviates an address as 0x1234...abcd.
func ShortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
