package rpc

import (
	"context"
	"fmt"

	"github.com/ternoa-network/faucetx/pkg/retry"
	"go.uber.org/zap"
)

// errTxPending marks a poll attempt that found the transaction not yet included.
var errTxPending = fmt.Errorf("transaction not yet included")

// SubmitBatch submits a single atomic batched transaction to the node's
// faucet account and waits for block inclusion. The returned receipt
// carries the events the included block emitted for this transaction;
// those events, not the submission acknowledgement, are the authoritative
// record of which operations applied.
//
// Inclusion polling is bounded by ctx; a deadline exceeded means the run
// must be treated as failed and retried by the caller.
func (c *Client) SubmitBatch(ctx context.Context, ops []Operation) (*BatchReceipt, error) {
	if len(ops) == 0 {
		return nil, fmt.Errorf("empty operation list")
	}

	var ack submitBatchResponse
	if err := c.node.doJSON(ctx, "POST", submitBatchPath, submitBatchRequest{Operations: ops}, &ack); err != nil {
		return nil, fmt.Errorf("submit batch: %w", err)
	}
	if ack.TxHash == "" {
		return nil, fmt.Errorf("submit batch: node returned no tx hash")
	}

	c.Logger.Info("Batch transaction submitted",
		zap.String("tx_hash", ack.TxHash),
		zap.Int("operations", len(ops)))

	height, err := c.awaitInclusion(ctx, ack.TxHash)
	if err != nil {
		return nil, fmt.Errorf("await inclusion of %s: %w", ack.TxHash, err)
	}

	events, err := c.EventsByHeight(ctx, height, ack.TxHash)
	if err != nil {
		return nil, fmt.Errorf("events at height %d: %w", height, err)
	}

	return &BatchReceipt{
		TxHash: ack.TxHash,
		Height: height,
		Events: events,
	}, nil
}

// awaitInclusion polls tx-by-hash with backoff until the transaction
// reports a non-zero height or ctx expires.
func (c *Client) awaitInclusion(ctx context.Context, txHash string) (uint64, error) {
	var height uint64
	err := retry.WithBackoff(ctx, retry.InclusionPollConfig(), c.Logger, "tx-inclusion", func() error {
		var status txByHashResponse
		payload := map[string]any{"txHash": txHash}
		if err := c.node.doJSON(ctx, "POST", txByHashPath, payload, &status); err != nil {
			return err
		}
		if status.Height == 0 {
			return errTxPending
		}
		height = status.Height
		return nil
	})
	if err != nil {
		return 0, err
	}
	return height, nil
}
