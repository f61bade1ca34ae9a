package faucet

import (
	"context"
	"fmt"
	"sync"

	"github.com/ternoa-network/faucetx/pkg/db/postgres"
	"go.uber.org/zap"
)

// DB represents the PostgreSQL-backed claim store.
type DB struct {
	postgres.Client
}

// New creates and initializes the claim store.
func New(ctx context.Context, logger *zap.Logger) (*DB, error) {
	client, err := postgres.New(ctx, logger.With(zap.String("component", "claim-store")), postgres.DefaultPoolConfig())
	if err != nil {
		return nil, err
	}

	db := &DB{Client: client}
	if err := db.InitializeDB(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

// InitializeDB ensures the required tables exist.
// Creates all tables in parallel using goroutines.
func (db *DB) InitializeDB(ctx context.Context) error {
	initOps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"currency_claims", db.initCurrencyClaims},
		{"nft_claims", db.initNFTClaims},
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(initOps))

	for _, op := range initOps {
		wg.Add(1)
		go func(name string, fn func(context.Context) error) {
			defer wg.Done()
			db.Logger.Debug("Initializing table", zap.String("table", name))
			if err := fn(ctx); err != nil {
				errChan <- fmt.Errorf("init %s: %w", name, err)
			}
		}(op.name, op.fn)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		return err
	}

	db.Logger.Info("Claim store initialized")
	return nil
}

// Close terminates the underlying PostgreSQL connection
func (db *DB) Close() error {
	db.Pool.Close()
	return nil
}
