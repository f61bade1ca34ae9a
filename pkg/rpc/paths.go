package rpc

// RPC endpoint paths for the faucet node and the NFT indexer.
// All paths are consolidated here so an RPC version bump is a single edit.

const (
	// Node queries
	heightPath   = "/v1/query/height"
	accountPath  = "/v1/query/account"
	txByHashPath = "/v1/query/tx-by-hash"

	// Events emitted by an included block
	eventsByHeightPath = "/v1/query/events-by-height"

	// Batched faucet transaction submission (node-side signing account)
	submitBatchPath = "/v1/tx/batch"

	// Indexer queries
	nftsBySeriesPath = "/v1/query/nfts-by-series"
)
