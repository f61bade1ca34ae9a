package controller

import (
	"context"
	"net/http"

	"github.com/go-jose/go-jose/v4/json"
	"github.com/ternoa-network/faucetx/app/faucet/types"
)

// HandlePendingClaims reports how many claims of each kind wait for settlement.
func (c *Controller) HandlePendingClaims(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	currency, err := c.App.Store.CountPendingCurrencyClaims(ctx)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "failed to count pending claims"})
		return
	}
	nfts, err := c.App.Store.CountPendingNFTClaims(ctx)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "failed to count pending claims"})
		return
	}

	_ = json.NewEncoder(w).Encode(types.PendingResponse{CurrencyClaims: currency, NFTClaims: nfts})
}

// HandleProcess triggers a settlement run outside the cron schedule.
// The run is detached from the request; an already running batch makes
// this a no-op through the processor's busy flag.
func (c *Controller) HandleProcess(w http.ResponseWriter, _ *http.Request) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.App.Config.SubmitTimeout*2)
		defer cancel()
		c.App.Processor.RunOnce(ctx)
	}()

	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"ok": "1"})
}
