package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ternoa-network/faucetx/app/faucet"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	defer cancel()

	app := faucet.Initialize(ctx)

	serverErr := faucet.NewServer(app)
	if serverErr != nil {
		app.Logger.Fatal("Unable to initialize server", zap.Error(serverErr))
	}

	app.Start(ctx)
}
