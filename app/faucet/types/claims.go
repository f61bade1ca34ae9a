package types

// ClaimResponse is returned when a claim is accepted into the queue.
// Claim carries the stored row, either a currency or an NFT claim.
type ClaimResponse struct {
	Message string      `json:"message"`
	Claim   interface{} `json:"claim"`
}

// PendingResponse reports the queue depth per claim kind.
type PendingResponse struct {
	CurrencyClaims int64 `json:"currencyClaims"`
	NFTClaims      int64 `json:"nftClaims"`
}
