package faucet

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternoa-network/faucetx/app/faucet/types"
	faucetstore "github.com/ternoa-network/faucetx/pkg/db/faucet"
	faucetcore "github.com/ternoa-network/faucetx/pkg/faucet"
	"github.com/ternoa-network/faucetx/pkg/logging"
	"github.com/ternoa-network/faucetx/pkg/redis"
	"github.com/ternoa-network/faucetx/pkg/rpc"
	"github.com/ternoa-network/faucetx/pkg/utils"
	"go.uber.org/zap"
)

// Initialize wires the claim store, RPC clients, admission controller
// and batch processor, and registers the settlement cron.
func Initialize(ctx context.Context) *types.App {
	logger, err := logging.New()
	if err != nil {
		// nothing else to do here, we'll just log to stderr
		panic(err)
	}

	store, err := faucetstore.New(ctx, logger)
	if err != nil {
		logger.Fatal("Unable to initialize claim store", zap.Error(err))
	}

	cfg := faucetcore.ConfigFromEnv()

	// RPC rate limiting: the faucet submits one batch per tick plus a few
	// balance and inventory reads, so modest limits are plenty.
	rpcOpts := rpc.Opts{RPS: 10, Burst: 20, BreakerFailures: 5, BreakerCooldown: 30 * time.Second}

	nodeOpts := rpcOpts
	nodeOpts.Endpoints = utils.Dedup(utils.SplitList(utils.Env("NODE_URL", "http://localhost:50002")))
	indexerOpts := rpcOpts
	indexerOpts.Endpoints = utils.Dedup(utils.SplitList(utils.Env("INDEXER_URL", "http://localhost:50000")))

	rpcClient := rpc.NewClient(logger, rpc.ClientOpts{
		FaucetAddress: cfg.FaucetAddress,
		NodeOpts:      nodeOpts,
		IndexerOpts:   indexerOpts,
	})

	// Redis cooldown fast path (optional)
	var redisClient *redis.Client
	if utils.Env("REDIS_ENABLED", "false") == "true" {
		redisClient, err = redis.NewClient(ctx, logger)
		if err != nil {
			logger.Warn("Failed to initialize Redis client - cooldown checks fall back to the claim store",
				zap.Error(err))
			redisClient = nil
		} else {
			logger.Info("Redis client initialized for cooldown checks")
		}
	} else {
		logger.Info("Redis disabled - cooldown checks hit the claim store")
	}

	var cache faucetcore.CooldownCache
	if redisClient != nil {
		cache = redisClient
	}

	app := &types.App{
		Store:       store,
		RPC:         rpcClient,
		RedisClient: redisClient,
		Admission:   faucetcore.NewAdmission(logger, store, rpcClient, cache, cfg),
		Processor:   faucetcore.NewProcessor(logger, store, rpcClient, rpcClient, cfg),
		Config:      cfg,
		CronSpec:    utils.Env("FAUCET_CRON", "0 * * * * *"),
		Logger:      logger,
	}

	if err := SetupScheduler(ctx, app); err != nil {
		logger.Fatal("Unable to set up settlement scheduler", zap.Error(err))
	}

	return app
}

// SetupScheduler registers the settlement run on the app cron. Each run
// is bounded so a stuck RPC cannot pin a tick forever; the processor's
// own busy flag makes overlapping ticks a no-op either way.
func SetupScheduler(ctx context.Context, app *types.App) error {
	app.Cron = cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger)))

	_, err := app.Cron.AddFunc(app.CronSpec, func() {
		rctx, cancel := context.WithTimeout(ctx, app.Config.SubmitTimeout+15*time.Second)
		defer cancel()
		app.Processor.RunOnce(rctx)
	})
	return err
}
