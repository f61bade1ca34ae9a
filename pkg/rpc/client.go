package rpc

import (
	"context"

	"go.uber.org/zap"
)

// Client talks to the faucet node (balance, batch submission, events) and
// to the NFT indexer (unassigned inventory). Both sides share the same
// breaker/token-bucket transport but keep separate endpoint sets.
type Client struct {
	Logger *zap.Logger

	// FaucetAddress is the node-held account that funds every batch.
	FaucetAddress string

	node    *HTTPClient
	indexer *HTTPClient
}

// ClientOpts configures a new Client.
type ClientOpts struct {
	FaucetAddress string
	NodeOpts      Opts
	IndexerOpts   Opts
}

// NewClient creates a new Client with the given options.
func NewClient(logger *zap.Logger, opts ClientOpts) *Client {
	return &Client{
		Logger:        logger,
		FaucetAddress: opts.FaucetAddress,
		node:          NewHTTPWithOpts(opts.NodeOpts),
		indexer:       NewHTTPWithOpts(opts.IndexerOpts),
	}
}

// Height returns the current chain head height.
func (c *Client) Height(ctx context.Context) (uint64, error) {
	var resp struct {
		Height uint64 `json:"height"`
	}
	if err := c.node.doJSON(ctx, "POST", heightPath, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Height, nil
}
