package faucet

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	faucetmodels "github.com/ternoa-network/faucetx/pkg/db/models/faucet"
)

// initCurrencyClaims creates the currency_claims table
func (db *DB) initCurrencyClaims(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS currency_claims (
			id BIGSERIAL PRIMARY KEY,
			wallet_address TEXT NOT NULL,
			processed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_currency_claims_wallet_created
			ON currency_claims(wallet_address, created_at DESC);

		CREATE INDEX IF NOT EXISTS idx_currency_claims_pending
			ON currency_claims(created_at) WHERE NOT processed;
	`

	return db.Exec(ctx, query)
}

// InsertCurrencyClaim queues a new pending currency claim for a wallet.
func (db *DB) InsertCurrencyClaim(ctx context.Context, wallet string) (*faucetmodels.CurrencyClaim, error) {
	query := `
		INSERT INTO currency_claims (wallet_address)
		VALUES ($1)
		RETURNING id, wallet_address, processed, created_at
	`

	var claim faucetmodels.CurrencyClaim
	err := db.Pool.QueryRow(ctx, query, wallet).Scan(
		&claim.ID, &claim.WalletAddress, &claim.Processed, &claim.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert currency claim: %w", err)
	}

	return &claim, nil
}

// LatestCurrencyClaim returns the newest claim for a wallet regardless of
// processed state, or nil when the wallet has never claimed.
func (db *DB) LatestCurrencyClaim(ctx context.Context, wallet string) (*faucetmodels.CurrencyClaim, error) {
	query := `
		SELECT id, wallet_address, processed, created_at
		FROM currency_claims
		WHERE wallet_address = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var claim faucetmodels.CurrencyClaim
	err := db.Pool.QueryRow(ctx, query, wallet).Scan(
		&claim.ID, &claim.WalletAddress, &claim.Processed, &claim.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest currency claim: %w", err)
	}

	return &claim, nil
}

// OldestUnprocessedCurrencyClaims returns up to limit pending claims,
// oldest first (FIFO fairness across ticks).
func (db *DB) OldestUnprocessedCurrencyClaims(ctx context.Context, limit int) ([]*faucetmodels.CurrencyClaim, error) {
	query := `
		SELECT id, wallet_address, processed, created_at
		FROM currency_claims
		WHERE NOT processed
		ORDER BY created_at ASC
		LIMIT $1
	`

	rows, err := db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query unprocessed currency claims: %w", err)
	}
	defer rows.Close()

	var claims []*faucetmodels.CurrencyClaim
	for rows.Next() {
		var claim faucetmodels.CurrencyClaim
		if err := rows.Scan(&claim.ID, &claim.WalletAddress, &claim.Processed, &claim.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan currency claim: %w", err)
		}
		claims = append(claims, &claim)
	}

	return claims, rows.Err()
}

// MarkCurrencyClaimsProcessed flips processed on the oldest pending claims
// whose wallet is in the given set, capped at limit. Rows already processed
// are untouched, so re-marking after a partially failed reconciliation is a
// no-op for them.
func (db *DB) MarkCurrencyClaimsProcessed(ctx context.Context, wallets []string, limit int) (int64, error) {
	if len(wallets) == 0 {
		return 0, nil
	}

	query := `
		UPDATE currency_claims
		SET processed = TRUE
		WHERE id IN (
			SELECT id FROM currency_claims
			WHERE NOT processed AND wallet_address = ANY($1)
			ORDER BY created_at ASC
			LIMIT $2
		)
	`

	tag, err := db.Pool.Exec(ctx, query, wallets, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to mark currency claims processed: %w", err)
	}

	return tag.RowsAffected(), nil
}

// CountPendingCurrencyClaims returns the number of unprocessed currency claims.
func (db *DB) CountPendingCurrencyClaims(ctx context.Context) (int64, error) {
	var count int64
	err := db.Pool.QueryRow(ctx, `SELECT count(*) FROM currency_claims WHERE NOT processed`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending currency claims: %w", err)
	}
	return count, nil
}
