// Package mint turns finished tests into minted score objects and reads them
// back. It serializes submissions and bounds confirmation polling.
package mint

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/verte-zerg/typee/internal/ledger"
	"github.com/verte-zerg/typee/internal/model"
)

const (
	defaultConfirmTimeout = 60 * time.Second
	defaultPollInterval   = time.Second
)

// Options bounds confirmation polling.
type Options struct {
	ConfirmTimeout time.Duration
	PollInterval   time.Duration
}

// Service coordinates minting and history against a ledger client.
type Service struct {
	client   ledger.Client
	opts     Options
	logger   *zap.Logger
	inFlight atomic.Bool
	history  singleflight.Group
}

// NewService wraps client. A nil logger discards logs.
func NewService(client ledger.Client, opts Options, logger *zap.Logger) *Service {
	if opts.ConfirmTimeout <= 0 {
		opts.ConfirmTimeout = defaultConfirmTimeout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, opts: opts, logger: logger}
}

// Connected reports whether a wallet identity is available.
func (s *Service) Connected() bool { return s.client.Connected() }

// Address returns the connected identity's address.
func (s *Service) Address() string { return s.client.Address() }

// InFlight reports whether a submission is pending.
func (s *Service) InFlight() bool { return s.inFlight.Load() }

// Mint submits stats and waits for the created score object. Only one
// submission may be pending; there are no automatic retries.
func (s *Service) Mint(ctx context.Context, stats model.Stats) (model.Receipt, error) {
	if !s.client.Connected() {
		return model.Receipt{}, ErrNotConnected
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return model.Receipt{}, ErrSubmissionInFlight
	}
	defer s.inFlight.Store(false)

	s.logger.Info("submitting score",
		zap.Int("wpm", stats.WPM),
		zap.Int("accuracy", stats.Accuracy),
		zap.String("owner", s.client.Address()))
	digest, err := s.client.Submit(ctx, ledger.MintRequest{WPM: stats.WPM, Accuracy: stats.Accuracy})
	if err != nil {
		s.logger.Error("mint failed", zap.Error(err))
		return model.Receipt{}, submissionFailure(err)
	}
	s.logger.Info("transaction submitted, waiting for confirmation", zap.String("digest", digest))

	effects, err := s.waitForTransaction(ctx, digest)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ledger.ErrNotFound) {
			s.logger.Warn("confirmation timed out", zap.String("digest", digest), zap.Error(err))
			return model.Receipt{Digest: digest}, confirmationTimeout(digest, err)
		}
		s.logger.Error("transaction failed", zap.String("digest", digest), zap.Error(err))
		return model.Receipt{Digest: digest}, submissionFailure(err)
	}
	if len(effects.Created) == 0 {
		s.logger.Warn("transaction created no object", zap.String("digest", digest))
		return model.Receipt{Digest: digest}, noObjectCreated(digest)
	}
	receipt := model.Receipt{Digest: digest, ObjectID: effects.Created[0]}
	s.logger.Info("mint confirmed", zap.String("digest", digest), zap.String("object", receipt.ObjectID))
	return receipt, nil
}

func (s *Service) waitForTransaction(ctx context.Context, digest string) (ledger.Effects, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.ConfirmTimeout)
	defer cancel()
	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()
	for {
		effects, err := s.client.Transaction(ctx, digest)
		if err == nil {
			return effects, nil
		}
		if !errors.Is(err, ledger.ErrNotFound) {
			if ctx.Err() != nil {
				return ledger.Effects{}, ctx.Err()
			}
			return ledger.Effects{}, err
		}
		select {
		case <-ctx.Done():
			return ledger.Effects{}, errors.Join(ledger.ErrNotFound, ctx.Err())
		case <-ticker.C:
		}
	}
}

// History lists the connected identity's scores. Concurrent calls share one
// ledger query; results are never cached between calls.
func (s *Service) History(ctx context.Context) ([]model.ScoreRecord, error) {
	if !s.client.Connected() {
		return nil, ErrNotConnected
	}
	owner := s.client.Address()
	v, err, _ := s.history.Do(owner, func() (any, error) {
		return s.client.ListOwnedScores(ctx, owner)
	})
	if err != nil {
		s.logger.Error("error fetching history", zap.String("owner", owner), zap.Error(err))
		return nil, historyFailure(err)
	}
	records, _ := v.([]model.ScoreRecord)
	s.logger.Debug("history loaded", zap.Int("scores", len(records)))
	return records, nil
}
