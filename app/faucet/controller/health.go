package controller

import (
	"net/http"

	"github.com/go-jose/go-jose/v4/json"
)

// HandleHealth reports liveness of the claim store and the node RPC.
func (c *Controller) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := c.App.Store.Ping(ctx); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "unhealthy", "error": "claim store unreachable"})
		return
	}

	height, err := c.App.RPC.Height(ctx)
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "unhealthy", "error": "node unreachable"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok", "height": height})
}
