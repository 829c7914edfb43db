package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typee/internal/store"
)

func newTestLocal(t *testing.T) *Local {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	local, err := NewLocal(context.Background(), st)
	require.NoError(t, err)
	return local
}

func TestLocalIdentity(t *testing.T) {
	local := newTestLocal(t)
	require.True(t, local.Connected())
	require.True(t, strings.HasPrefix(local.Address(), "0x"))
	require.Len(t, local.Address(), 66)
}

func TestLocalSubmitConfirmAndList(t *testing.T) {
	local := newTestLocal(t)
	ctx := context.Background()

	digest, err := local.Submit(ctx, MintRequest{WPM: 72, Accuracy: 97})
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	effects, err := local.Transaction(ctx, digest)
	require.NoError(t, err)
	require.Equal(t, digest, effects.Digest)
	require.Len(t, effects.Created, 1)

	records, err := local.ListOwnedScores(ctx, local.Address())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, effects.Created[0], records[0].ID)
	require.Equal(t, 72, records[0].WPM)
	require.Equal(t, 97, records[0].Accuracy)

	others, err := local.ListOwnedScores(ctx, "0xsomeoneelse")
	require.NoError(t, err)
	require.Empty(t, others)
}

func TestLocalUnknownTransaction(t *testing.T) {
	local := newTestLocal(t)
	_, err := local.Transaction(context.Background(), "missing")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestLocalRejectsNegativeArguments(t *testing.T) {
	local := newTestLocal(t)
	_, err := local.Submit(context.Background(), MintRequest{WPM: -1, Accuracy: 50})
	require.Error(t, err)
}
