package rpc

import (
	"context"
)

// Balance fetches the current balance of a single account from the node.
// The node answers from its latest committed state, which may lag the
// chain head by one block; callers that care must reconcile via events.
func (c *Client) Balance(ctx context.Context, address string) (uint64, error) {
	var account Account
	payload := map[string]any{"address": address}
	if err := c.node.doJSON(ctx, "POST", accountPath, payload, &account); err != nil {
		return 0, err
	}
	return account.Amount, nil
}

// FaucetBalance fetches the current balance of the faucet account.
func (c *Client) FaucetBalance(ctx context.Context) (uint64, error) {
	return c.Balance(ctx, c.FaucetAddress)
}
