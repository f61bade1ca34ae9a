package rpc

// OpType identifies the kind of operation inside a batched transaction.
type OpType string

const (
	OpTypeTransfer    OpType = "transfer"
	OpTypeNFTTransfer OpType = "nft-transfer"
)

// Operation is a single transfer inside a batched faucet transaction.
// Transfers carry Amount; NFT transfers carry SeriesID and NFTID.
type Operation struct {
	Type     OpType `json:"type"`
	To       string `json:"to"`
	Amount   uint64 `json:"amount,omitempty"`
	SeriesID string `json:"seriesId,omitempty"`
	NFTID    string `json:"nftId,omitempty"`
}

// BatchReceipt is the settlement view of an included batch transaction:
// the block it landed in and the events that block emitted for it.
// Callers must derive success from Events, not from the submission itself,
// since a batched transaction may partially fail per-operation.
type BatchReceipt struct {
	TxHash string
	Height uint64
	Events []EventMessage
}

// Account represents an account returned from the node RPC.
type Account struct {
	Address string `json:"address"`
	Amount  uint64 `json:"amount"`
}

// NFT represents an unassigned NFT returned from the indexer,
// ordered oldest-minted first with burned NFTs excluded.
type NFT struct {
	ID       string `json:"id"`
	SeriesID string `json:"seriesId"`
}

// submitBatchRequest is the wire payload for the batch-tx endpoint.
type submitBatchRequest struct {
	Operations []Operation `json:"operations"`
}

// submitBatchResponse acknowledges acceptance into the node mempool.
type submitBatchResponse struct {
	TxHash string `json:"txHash"`
}

// txByHashResponse reports inclusion status. Height is zero while the
// transaction is still pending.
type txByHashResponse struct {
	TxHash string `json:"txHash"`
	Height uint64 `json:"height"`
}

// nftsBySeriesRequest queries the indexer for unassigned NFTs in a series.
type nftsBySeriesRequest struct {
	SeriesID     string `json:"seriesId"`
	ExcludeBurnt bool   `json:"excludeBurnt"`
	Unassigned   bool   `json:"unassigned"`
}

// nftsBySeriesResponse is the wire shape of the nfts-by-series query.
type nftsBySeriesResponse struct {
	NFTs []NFT `json:"nfts"`
}
