package faucet

import (
	"context"
	"errors"
	"sync"
	"time"

	faucetmodels "github.com/ternoa-network/faucetx/pkg/db/models/faucet"
	"github.com/ternoa-network/faucetx/pkg/rpc"
)

// fakeStore is an in-memory ClaimStore with the same ordering and
// capping semantics as the Postgres implementation.
type fakeStore struct {
	mu       sync.Mutex
	nextID   int64
	currency []*faucetmodels.CurrencyClaim
	nfts     []*faucetmodels.NFTClaim

	latestCalls int

	insertCurrencyErr error
	latestErr         error
	hasPendingErr     error
	markCurrencyErr   error
	markNFTErr        error

	// hasPendingEntered/hasPendingRelease let a test hold the pending
	// lookup open while a second request races it.
	hasPendingEntered chan struct{}
	hasPendingRelease chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (s *fakeStore) InsertCurrencyClaim(_ context.Context, wallet string) (*faucetmodels.CurrencyClaim, error) {
	if s.insertCurrencyErr != nil {
		return nil, s.insertCurrencyErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	claim := &faucetmodels.CurrencyClaim{ID: s.nextID, WalletAddress: wallet, CreatedAt: time.Now()}
	s.currency = append(s.currency, claim)
	return claim, nil
}

func (s *fakeStore) LatestCurrencyClaim(_ context.Context, wallet string) (*faucetmodels.CurrencyClaim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latestCalls++
	if s.latestErr != nil {
		return nil, s.latestErr
	}
	for i := len(s.currency) - 1; i >= 0; i-- {
		if s.currency[i].WalletAddress == wallet {
			return s.currency[i], nil
		}
	}
	return nil, nil
}

func (s *fakeStore) OldestUnprocessedCurrencyClaims(_ context.Context, limit int) ([]*faucetmodels.CurrencyClaim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*faucetmodels.CurrencyClaim, 0, limit)
	for _, claim := range s.currency {
		if claim.Processed {
			continue
		}
		out = append(out, claim)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *fakeStore) MarkCurrencyClaimsProcessed(_ context.Context, wallets []string, limit int) (int64, error) {
	if s.markCurrencyErr != nil {
		return 0, s.markCurrencyErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	set := toSet(wallets)
	var marked int64
	for _, claim := range s.currency {
		if marked == int64(limit) {
			break
		}
		if claim.Processed {
			continue
		}
		if _, ok := set[claim.WalletAddress]; !ok {
			continue
		}
		claim.Processed = true
		marked++
	}
	return marked, nil
}

func (s *fakeStore) InsertNFTClaim(_ context.Context, wallet, seriesID string) (*faucetmodels.NFTClaim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	claim := &faucetmodels.NFTClaim{ID: s.nextID, WalletAddress: wallet, SeriesID: seriesID, CreatedAt: time.Now()}
	s.nfts = append(s.nfts, claim)
	return claim, nil
}

func (s *fakeStore) HasPendingNFTClaim(_ context.Context, wallet string) (bool, error) {
	if s.hasPendingEntered != nil {
		close(s.hasPendingEntered)
		s.hasPendingEntered = nil
		<-s.hasPendingRelease
	}
	if s.hasPendingErr != nil {
		return false, s.hasPendingErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, claim := range s.nfts {
		if claim.WalletAddress == wallet && !claim.Processed {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) OldestUnprocessedNFTClaims(_ context.Context, limit int) ([]*faucetmodels.NFTClaim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*faucetmodels.NFTClaim, 0, limit)
	for _, claim := range s.nfts {
		if claim.Processed {
			continue
		}
		out = append(out, claim)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *fakeStore) MarkNFTClaimsProcessed(_ context.Context, wallets []string, limit int) (int64, error) {
	if s.markNFTErr != nil {
		return 0, s.markNFTErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	set := toSet(wallets)
	var marked int64
	for _, claim := range s.nfts {
		if marked == int64(limit) {
			break
		}
		if claim.Processed {
			continue
		}
		if _, ok := set[claim.WalletAddress]; !ok {
			continue
		}
		claim.Processed = true
		marked++
	}
	return marked, nil
}

func (s *fakeStore) pendingCurrency() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, claim := range s.currency {
		if !claim.Processed {
			n++
		}
	}
	return n
}

func (s *fakeStore) pendingNFTs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, claim := range s.nfts {
		if !claim.Processed {
			n++
		}
	}
	return n
}

func toSet(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, s := range in {
		out[s] = struct{}{}
	}
	return out
}

type fakeOracle struct {
	mu sync.Mutex

	balance    uint64
	balanceErr error

	inventory    map[string][]rpc.NFT
	inventoryErr map[string]error

	balanceCalls   int
	inventoryCalls int
}

func (o *fakeOracle) FaucetBalance(context.Context) (uint64, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.balanceCalls++
	if o.balanceErr != nil {
		return 0, o.balanceErr
	}
	return o.balance, nil
}

func (o *fakeOracle) UnassignedNFTs(_ context.Context, seriesID string) ([]rpc.NFT, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.inventoryCalls++
	if err := o.inventoryErr[seriesID]; err != nil {
		return nil, err
	}
	return o.inventory[seriesID], nil
}

type fakeLedger struct {
	mu      sync.Mutex
	receipt *rpc.BatchReceipt
	err     error
	batches [][]rpc.Operation
}

func (l *fakeLedger) SubmitBatch(_ context.Context, ops []rpc.Operation) (*rpc.BatchReceipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.batches = append(l.batches, ops)
	if l.err != nil {
		return nil, l.err
	}
	return l.receipt, nil
}

func (l *fakeLedger) submitted() [][]rpc.Operation {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.batches
}

type fakeCache struct {
	mu        sync.Mutex
	remaining map[string]time.Duration
	getErr    error
	setErr    error
	sets      int
}

func (c *fakeCache) SetCooldown(_ context.Context, wallet string, window time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	if c.remaining == nil {
		c.remaining = map[string]time.Duration{}
	}
	c.remaining[wallet] = window
	c.sets++
	return nil
}

func (c *fakeCache) CooldownRemaining(_ context.Context, wallet string) (time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return 0, c.getErr
	}
	return c.remaining[wallet], nil
}

var errStoreDown = errors.New("store down")
