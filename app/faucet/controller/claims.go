package controller

import (
	"fmt"
	"net/http"

	"github.com/go-jose/go-jose/v4/json"
	"github.com/gorilla/mux"
	"github.com/ternoa-network/faucetx/app/faucet/types"
	"github.com/ternoa-network/faucetx/pkg/faucet"
)

// HandleCurrencyClaim queues a test currency claim for the wallet in the path.
func (c *Controller) HandleCurrencyClaim(w http.ResponseWriter, r *http.Request) {
	wallet := mux.Vars(r)["walletId"]

	claim, err := c.App.Admission.SubmitCurrencyClaim(r.Context(), wallet)
	if err != nil {
		writeClaimError(w, err)
		return
	}

	_ = json.NewEncoder(w).Encode(types.ClaimResponse{
		Message: fmt.Sprintf("Successfully claimed for address %s", wallet),
		Claim:   claim,
	})
}

// HandleNFTClaim queues a test NFT claim. The series comes from the
// seriesId query parameter when present; QR short codes (qrId) all map
// onto the configured default series.
func (c *Controller) HandleNFTClaim(w http.ResponseWriter, r *http.Request) {
	wallet := mux.Vars(r)["walletId"]
	seriesID := r.URL.Query().Get("seriesId")

	claim, err := c.App.Admission.SubmitNFTClaim(r.Context(), wallet, seriesID)
	if err != nil {
		writeClaimError(w, err)
		return
	}

	_ = json.NewEncoder(w).Encode(types.ClaimResponse{
		Message: fmt.Sprintf("Successfully claimed for address %s", wallet),
		Claim:   claim,
	})
}

func writeClaimError(w http.ResponseWriter, err error) {
	w.WriteHeader(faucet.HTTPStatus(err))
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
