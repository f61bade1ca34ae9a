package types

import (
	"context"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternoa-network/faucetx/pkg/db/faucet"
	faucetcore "github.com/ternoa-network/faucetx/pkg/faucet"
	"github.com/ternoa-network/faucetx/pkg/redis"
	"github.com/ternoa-network/faucetx/pkg/rpc"
	"go.uber.org/zap"
)

type App struct {
	// Claim store on Postgres
	Store *faucet.DB

	// RPC client for node submission and indexer inventory queries
	RPC *rpc.Client

	// Redis Client (cooldown fast path, optional)
	RedisClient *redis.Client

	// Claim admission and batch settlement
	Admission *faucetcore.Admission
	Processor *faucetcore.Processor
	Config    faucetcore.Config

	// Cron triggers a settlement run every tick, according to CronSpec.
	Cron     *cron.Cron
	CronSpec string

	// Zap Logger
	Logger *zap.Logger

	// HTTP Server
	Server *http.Server
}

// Start runs the scheduler and HTTP server and blocks until the context
// is canceled, then shuts both down in order. The cron is drained before
// the store closes so an in-flight settlement run keeps its connection.
func (a *App) Start(ctx context.Context) {
	a.Cron.Start()
	a.Logger.Info("Settlement scheduler started", zap.String("cronSpec", a.CronSpec))

	go func() { _ = a.Server.ListenAndServe() }()
	<-ctx.Done()

	a.Logger.Info("Stopping settlement scheduler")
	<-a.Cron.Stop().Done()

	if a.RedisClient != nil {
		a.Logger.Info("Closing redis connection")
		if err := a.RedisClient.Close(); err != nil {
			a.Logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	if a.Store != nil {
		a.Logger.Info("Closing claim store connection")
		if err := a.Store.Close(); err != nil {
			a.Logger.Error("Failed to close claim store connection", zap.Error(err))
		}
	}

	a.Logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = a.Server.Shutdown(shutdownCtx)

	time.Sleep(200 * time.Millisecond)
	a.Logger.Info("さようなら!")
}
