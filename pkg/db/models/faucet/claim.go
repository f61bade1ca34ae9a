package faucet

import "time"

// CurrencyClaim is a queued request for test currency. Rows are never
// deleted: they double as the audit log and as the cooldown anchor for
// their wallet. Processed flips to true exactly once, after the batch
// processor confirms settlement from chain events.
type CurrencyClaim struct {
	ID            int64     `json:"id"`
	WalletAddress string    `json:"walletAddress"`
	Processed     bool      `json:"processed"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NFTClaim is a queued request for a test NFT out of a series.
// A wallet may hold at most one unprocessed NFT claim at a time.
type NFTClaim struct {
	ID            int64     `json:"id"`
	WalletAddress string    `json:"walletAddress"`
	SeriesID      string    `json:"seriesId"`
	Processed     bool      `json:"processed"`
	CreatedAt     time.Time `json:"createdAt"`
}
