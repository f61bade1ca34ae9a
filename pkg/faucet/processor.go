package faucet

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/alitto/pond/v2"
	faucetmodels "github.com/ternoa-network/faucetx/pkg/db/models/faucet"
	"github.com/ternoa-network/faucetx/pkg/rpc"
	"go.uber.org/zap"
)

// inventoryWorkers bounds parallel per-series indexer queries in one run.
const inventoryWorkers = 4

// Processor drains the claim queue: it folds the oldest pending claims
// into one atomic batched transaction, submits it through the ledger
// client, and marks settled claims from the events the included block
// emitted. It is the only component that mutates on-chain state.
type Processor struct {
	Logger *zap.Logger
	Store  ClaimStore
	Ledger Ledger
	Oracle InventoryOracle
	Config Config

	// running guards against overlapping ticks; a tick that finds a run
	// in progress is a no-op. Overlapping batches could pay out twice
	// from one balance snapshot or assign the same NFT twice.
	running atomic.Bool

	pool pond.Pool
}

// NewProcessor creates a batch processor.
func NewProcessor(logger *zap.Logger, store ClaimStore, ledger Ledger, oracle InventoryOracle, cfg Config) *Processor {
	return &Processor{
		Logger: logger,
		Store:  store,
		Ledger: ledger,
		Oracle: oracle,
		Config: cfg,
		pool:   pond.NewPool(inventoryWorkers),
	}
}

// RunOnce executes a single batch run. It never propagates an error:
// a failed run is logged and the untouched pending rows are retried on
// the next tick.
func (p *Processor) RunOnce(ctx context.Context) {
	if !p.running.CompareAndSwap(false, true) {
		p.Logger.Info("Previous batch run still in progress, skipping tick")
		return
	}
	defer p.running.Store(false)

	if err := p.process(ctx); err != nil {
		p.Logger.Error("Batch run failed, claims stay pending", zap.Error(err))
	}
}

func (p *Processor) process(ctx context.Context) error {
	currencyClaims, err := p.Store.OldestUnprocessedCurrencyClaims(ctx, p.Config.BatchSize)
	if err != nil {
		return err
	}
	nftClaims, err := p.Store.OldestUnprocessedNFTClaims(ctx, p.Config.BatchSize)
	if err != nil {
		return err
	}

	if len(currencyClaims) == 0 && len(nftClaims) == 0 {
		p.Logger.Debug("No pending claims, skipping batch")
		return nil
	}

	ops := make([]rpc.Operation, 0, len(currencyClaims)+len(nftClaims))

	if len(currencyClaims) > 0 {
		transfers, err := p.currencyOps(ctx, currencyClaims)
		if err != nil {
			return err
		}
		ops = append(ops, transfers...)
	}

	if len(nftClaims) > 0 {
		ops = append(ops, p.nftOps(ctx, nftClaims)...)
	}

	if len(ops) == 0 {
		p.Logger.Info("No submittable operations this run")
		return nil
	}

	sctx, cancel := context.WithTimeout(ctx, p.Config.SubmitTimeout)
	defer cancel()

	receipt, err := p.Ledger.SubmitBatch(sctx, ops)
	if err != nil {
		return err
	}

	p.Logger.Info("Batch included",
		zap.String("tx_hash", receipt.TxHash),
		zap.Uint64("height", receipt.Height),
		zap.Int("operations", len(ops)),
		zap.Int("events", len(receipt.Events)))

	p.reconcile(ctx, receipt)
	return nil
}

// currencyOps builds transfer operations for the currency portion after a
// conservative balance pre-check. On shortfall the whole currency portion
// is skipped for this run rather than failing the batch; the NFT portion
// still goes out.
func (p *Processor) currencyOps(ctx context.Context, claims []*faucetmodels.CurrencyClaim) ([]rpc.Operation, error) {
	balance, err := p.Oracle.FaucetBalance(ctx)
	if err != nil {
		return nil, err
	}

	required := uint64(len(claims)) * p.Config.ClaimAmount
	if balance < required {
		p.Logger.Warn("Faucet balance below batch payout, skipping currency portion",
			zap.Uint64("balance", balance),
			zap.Uint64("required", required),
			zap.Int("claims", len(claims)))
		return nil, nil
	}

	ops := make([]rpc.Operation, 0, len(claims))
	for _, claim := range claims {
		ops = append(ops, rpc.Operation{
			Type:   rpc.OpTypeTransfer,
			To:     claim.WalletAddress,
			Amount: p.Config.ClaimAmount,
		})
	}
	return ops, nil
}

// nftOps resolves one unassigned NFT per claim. Inventory is fetched once
// per distinct series (in parallel) and an in-run reservation set keeps a
// given NFT id out of the batch more than once. Claims whose series ran
// dry since admission are skipped, stay pending, and surface in the log.
func (p *Processor) nftOps(ctx context.Context, claims []*faucetmodels.NFTClaim) []rpc.Operation {
	inventories := p.fetchInventories(ctx, claims)

	reserved := make(map[string]struct{})
	ops := make([]rpc.Operation, 0, len(claims))

	for _, claim := range claims {
		nftID := ""
		for _, nft := range inventories[claim.SeriesID] {
			if _, taken := reserved[nft.ID]; !taken {
				nftID = nft.ID
				break
			}
		}
		if nftID == "" {
			p.Logger.Warn("No unassigned NFT left for claim, leaving pending",
				zap.Int64("claim_id", claim.ID),
				zap.String("wallet", claim.WalletAddress),
				zap.String("series", claim.SeriesID))
			continue
		}

		reserved[nftID] = struct{}{}
		ops = append(ops, rpc.Operation{
			Type:     rpc.OpTypeNFTTransfer,
			To:       claim.WalletAddress,
			SeriesID: claim.SeriesID,
			NFTID:    nftID,
		})
	}

	return ops
}

// fetchInventories queries the oracle once per distinct series. A failed
// series lookup is treated as empty inventory for this run: its claims
// stay pending and retry next tick.
func (p *Processor) fetchInventories(ctx context.Context, claims []*faucetmodels.NFTClaim) map[string][]rpc.NFT {
	series := make(map[string]struct{}, len(claims))
	for _, claim := range claims {
		series[claim.SeriesID] = struct{}{}
	}

	var mu sync.Mutex
	inventories := make(map[string][]rpc.NFT, len(series))

	group := p.pool.NewGroup()
	for id := range series {
		group.Submit(func() {
			nfts, err := p.Oracle.UnassignedNFTs(ctx, id)
			if err != nil {
				p.Logger.Warn("Inventory lookup failed, treating series as empty this run",
					zap.String("series", id),
					zap.Error(err))
				return
			}
			mu.Lock()
			inventories[id] = nfts
			mu.Unlock()
		})
	}
	_ = group.Wait()

	return inventories
}

// reconcile marks claims processed from the success sets derived off the
// included block's events. The submission acknowledgement is never
// trusted: a batched transaction may partially fail per-operation, so
// only event-confirmed recipients are marked. Store errors here are
// logged, not returned; marking is at-least-once with idempotent effect.
func (p *Processor) reconcile(ctx context.Context, receipt *rpc.BatchReceipt) {
	var currencyWallets, nftWallets []string
	for _, ev := range receipt.Events {
		if success := ev.GetSuccess(); success != nil && !*success {
			continue
		}
		switch ev.Type() {
		case rpc.EventTypeTransfer:
			currencyWallets = append(currencyWallets, ev.GetTo())
		case rpc.EventTypeNFTTransfer:
			nftWallets = append(nftWallets, ev.GetTo())
		}
	}

	if len(currencyWallets) > 0 {
		marked, err := p.Store.MarkCurrencyClaimsProcessed(ctx, currencyWallets, p.Config.BatchSize)
		if err != nil {
			p.Logger.Error("Failed to mark currency claims processed, will re-mark next run",
				zap.String("tx_hash", receipt.TxHash),
				zap.Error(err))
		} else {
			p.Logger.Info("Currency claims settled", zap.Int64("marked", marked))
		}
	}

	if len(nftWallets) > 0 {
		marked, err := p.Store.MarkNFTClaimsProcessed(ctx, nftWallets, p.Config.BatchSize)
		if err != nil {
			p.Logger.Error("Failed to mark NFT claims processed, will re-mark next run",
				zap.String("tx_hash", receipt.TxHash),
				zap.Error(err))
		} else {
			p.Logger.Info("NFT claims settled", zap.Int64("marked", marked))
		}
	}
}
