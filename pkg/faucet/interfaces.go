package faucet

import (
	"context"
	"time"

	faucetmodels "github.com/ternoa-network/faucetx/pkg/db/models/faucet"
	"github.com/ternoa-network/faucetx/pkg/rpc"
)

// ClaimStore is the durable queue of pending and settled claims.
type ClaimStore interface {
	InsertCurrencyClaim(ctx context.Context, wallet string) (*faucetmodels.CurrencyClaim, error)
	LatestCurrencyClaim(ctx context.Context, wallet string) (*faucetmodels.CurrencyClaim, error)
	OldestUnprocessedCurrencyClaims(ctx context.Context, limit int) ([]*faucetmodels.CurrencyClaim, error)
	MarkCurrencyClaimsProcessed(ctx context.Context, wallets []string, limit int) (int64, error)

	InsertNFTClaim(ctx context.Context, wallet, seriesID string) (*faucetmodels.NFTClaim, error)
	HasPendingNFTClaim(ctx context.Context, wallet string) (bool, error)
	OldestUnprocessedNFTClaims(ctx context.Context, limit int) ([]*faucetmodels.NFTClaim, error)
	MarkNFTClaimsProcessed(ctx context.Context, wallets []string, limit int) (int64, error)
}

// Ledger submits batched transactions through the faucet node's signing
// account. Only the batch processor holds a Ledger; nothing else submits.
type Ledger interface {
	SubmitBatch(ctx context.Context, ops []rpc.Operation) (*rpc.BatchReceipt, error)
}

// InventoryOracle is the read-only view over the chain/indexer that
// admission and settlement consult. Balance may lag the chain head by a
// block; callers compensate with conservative pre-checks plus
// event-based confirmation.
type InventoryOracle interface {
	FaucetBalance(ctx context.Context) (uint64, error)
	UnassignedNFTs(ctx context.Context, seriesID string) ([]rpc.NFT, error)
}

// CooldownCache is an optional fast path in front of the claim store's
// cooldown lookup. A nil cache or a cache error always falls through to
// the store, which stays authoritative.
type CooldownCache interface {
	SetCooldown(ctx context.Context, wallet string, window time.Duration) error
	CooldownRemaining(ctx context.Context, wallet string) (time.Duration, error)
}
