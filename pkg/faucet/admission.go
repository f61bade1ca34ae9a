package faucet

import (
	"context"
	"fmt"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
	faucetmodels "github.com/ternoa-network/faucetx/pkg/db/models/faucet"
	"go.uber.org/zap"
)

// Admission gates inbound claim requests: address validation, per-wallet
// cooldown, and supply checks. Accepted requests become pending rows in
// the claim store; settlement happens asynchronously, so admission never
// touches the chain beyond read-only balance/inventory queries.
type Admission struct {
	Logger *zap.Logger
	Store  ClaimStore
	Oracle InventoryOracle
	Cache  CooldownCache // optional, nil disables the fast path
	Config Config

	// inflight serializes concurrent NFT claims per wallet so two
	// requests racing the has-pending check cannot both insert.
	inflight *xsync.Map[string, struct{}]
}

// NewAdmission creates an admission controller.
func NewAdmission(logger *zap.Logger, store ClaimStore, oracle InventoryOracle, cache CooldownCache, cfg Config) *Admission {
	return &Admission{
		Logger:   logger,
		Store:    store,
		Oracle:   oracle,
		Cache:    cache,
		Config:   cfg,
		inflight: xsync.NewMap[string, struct{}](),
	}
}

// SubmitCurrencyClaim validates and queues a currency claim.
// The cooldown keys off the wallet's newest row regardless of its
// processed state, matching the deployed behavior.
func (a *Admission) SubmitCurrencyClaim(ctx context.Context, address string) (*faucetmodels.CurrencyClaim, error) {
	if err := ValidateAddress(address); err != nil {
		return nil, err
	}
	if address == a.Config.FaucetAddress {
		return nil, &ValidationError{Reason: "faucet address cannot be a recipient"}
	}

	// Fast path: a cache hit saves the store round-trip. Errors and
	// misses fall through to the authoritative lookup below.
	if a.Cache != nil {
		if remaining, err := a.Cache.CooldownRemaining(ctx, address); err != nil {
			a.Logger.Warn("Cooldown cache lookup failed", zap.Error(err))
		} else if remaining > 0 {
			return nil, &StateConflictError{Remaining: remaining}
		}
	}

	last, err := a.Store.LatestCurrencyClaim(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("cooldown lookup: %w", err)
	}
	if last != nil {
		if elapsed := time.Since(last.CreatedAt); elapsed < a.Config.Cooldown {
			return nil, &StateConflictError{Remaining: a.Config.Cooldown - elapsed}
		}
	}

	balance, err := a.Oracle.FaucetBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("faucet balance lookup: %w", err)
	}
	if balance < a.Config.ClaimAmount {
		return nil, &SupplyExhaustedError{Reason: "All faucet claims have been taken, please come back tomorrow"}
	}

	claim, err := a.Store.InsertCurrencyClaim(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("queue currency claim: %w", err)
	}

	if a.Cache != nil {
		if err := a.Cache.SetCooldown(ctx, address, a.Config.Cooldown); err != nil {
			a.Logger.Warn("Cooldown cache write failed", zap.Error(err))
		}
	}

	a.Logger.Info("Currency claim queued",
		zap.Int64("claim_id", claim.ID),
		zap.String("wallet", address))

	return claim, nil
}

// SubmitNFTClaim validates and queues an NFT claim. A wallet may hold at
// most one unprocessed NFT claim; the inventory check is best-effort and
// repeated at batch time since inventory can change in between.
func (a *Admission) SubmitNFTClaim(ctx context.Context, address, seriesID string) (*faucetmodels.NFTClaim, error) {
	series, err := a.Config.ResolveSeries(seriesID)
	if err != nil {
		return nil, err
	}
	if err := ValidateAddress(address); err != nil {
		return nil, err
	}

	if _, loaded := a.inflight.LoadOrStore(address, struct{}{}); loaded {
		return nil, &StateConflictError{Reason: "wallet already has an NFT claim in progress"}
	}
	defer a.inflight.Delete(address)

	pending, err := a.Store.HasPendingNFTClaim(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("pending claim lookup: %w", err)
	}
	if pending {
		return nil, &StateConflictError{Reason: "wallet already has a pending NFT claim"}
	}

	nfts, err := a.Oracle.UnassignedNFTs(ctx, series)
	if err != nil {
		return nil, fmt.Errorf("inventory lookup for series %s: %w", series, err)
	}
	if len(nfts) == 0 {
		return nil, &SupplyExhaustedError{Reason: "All NFT claims have been taken"}
	}

	claim, err := a.Store.InsertNFTClaim(ctx, address, series)
	if err != nil {
		return nil, fmt.Errorf("queue nft claim: %w", err)
	}

	a.Logger.Info("NFT claim queued",
		zap.Int64("claim_id", claim.ID),
		zap.String("wallet", address),
		zap.String("series", series))

	return claim, nil
}
