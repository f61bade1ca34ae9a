package faucet

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ternoa-network/faucetx/app/faucet/controller"
	"github.com/ternoa-network/faucetx/app/faucet/types"
	"github.com/ternoa-network/faucetx/pkg/utils"
)

// NewServer creates the HTTP server serving the claim and admin API.
func NewServer(app *types.App) error {
	ctler := controller.NewController(app)
	router, err := ctler.NewRouter()
	if err != nil {
		return err
	}

	// use <ip>:<port> to bind to a specific interface or :<port> to bind to all interfaces
	addr := utils.Env("ADDR", ":3000")

	app.Server = &http.Server{
		Addr:              addr,
		Handler:           controller.WithCORS(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
	app.Logger.Info("Starting server", zap.String("addr", addr))

	return nil
}
