package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/typee/internal/model"
	"github.com/verte-zerg/typee/internal/store"
)

// Local is an offline ledger backed by the sqlite store. Transactions are
// visible as soon as Submit returns.
type Local struct {
	store   *store.Store
	address string
	now     func() time.Time
}

// NewLocal opens the local wallet, creating its address on first use.
func NewLocal(ctx context.Context, st *store.Store) (*Local, error) {
	address, err := st.Address(ctx, newAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to load local wallet: %w", err)
	}
	return &Local{store: st, address: address, now: time.Now}, nil
}

// Connected implements Identity.
func (l *Local) Connected() bool { return l.address != "" }

// Address implements Identity.
func (l *Local) Address() string { return l.address }

// Submit implements Submitter.
func (l *Local) Submit(ctx context.Context, req MintRequest) (string, error) {
	if req.WPM < 0 || req.Accuracy < 0 {
		return "", fmt.Errorf("negative score arguments: wpm=%d accuracy=%d", req.WPM, req.Accuracy)
	}
	digest := uuid.NewString()
	err := l.store.InsertScore(ctx, store.MintedScore{
		Digest:    digest,
		ObjectID:  newObjectID(),
		Owner:     l.address,
		WPM:       req.WPM,
		Accuracy:  req.Accuracy,
		CreatedAt: l.now(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to record transaction: %w", err)
	}
	return digest, nil
}

// Transaction implements Confirmer.
func (l *Local) Transaction(ctx context.Context, digest string) (Effects, error) {
	created, found, err := l.store.CreatedObjects(ctx, digest)
	if err != nil {
		return Effects{}, err
	}
	if !found {
		return Effects{}, ErrNotFound
	}
	return Effects{Digest: digest, Created: created}, nil
}

// ListOwnedScores implements History.
func (l *Local) ListOwnedScores(ctx context.Context, owner string) ([]model.ScoreRecord, error) {
	return l.store.ListScores(ctx, owner)
}

// newAddress and newObjectID produce 32-byte hex ids shaped like IOTA ones.
func newAddress() string {
	return "0x" + hex32()
}

func newObjectID() string {
	return "0x" + hex32()
}

func hex32() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
