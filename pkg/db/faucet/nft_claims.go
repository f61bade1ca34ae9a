package faucet

import (
	"context"
	"fmt"

	faucetmodels "github.com/ternoa-network/faucetx/pkg/db/models/faucet"
)

// initNFTClaims creates the nft_claims table
func (db *DB) initNFTClaims(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS nft_claims (
			id BIGSERIAL PRIMARY KEY,
			wallet_address TEXT NOT NULL,
			series_id TEXT NOT NULL,
			processed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_nft_claims_wallet_created
			ON nft_claims(wallet_address, created_at DESC);

		CREATE INDEX IF NOT EXISTS idx_nft_claims_pending
			ON nft_claims(created_at) WHERE NOT processed;
	`

	return db.Exec(ctx, query)
}

// InsertNFTClaim queues a new pending NFT claim for a wallet.
func (db *DB) InsertNFTClaim(ctx context.Context, wallet, seriesID string) (*faucetmodels.NFTClaim, error) {
	query := `
		INSERT INTO nft_claims (wallet_address, series_id)
		VALUES ($1, $2)
		RETURNING id, wallet_address, series_id, processed, created_at
	`

	var claim faucetmodels.NFTClaim
	err := db.Pool.QueryRow(ctx, query, wallet, seriesID).Scan(
		&claim.ID, &claim.WalletAddress, &claim.SeriesID, &claim.Processed, &claim.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert nft claim: %w", err)
	}

	return &claim, nil
}

// HasPendingNFTClaim reports whether the wallet already holds an
// unprocessed NFT claim.
func (db *DB) HasPendingNFTClaim(ctx context.Context, wallet string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM nft_claims WHERE wallet_address = $1 AND NOT processed)`

	var exists bool
	if err := db.Pool.QueryRow(ctx, query, wallet).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pending nft claim: %w", err)
	}

	return exists, nil
}

// OldestUnprocessedNFTClaims returns up to limit pending NFT claims,
// oldest first.
func (db *DB) OldestUnprocessedNFTClaims(ctx context.Context, limit int) ([]*faucetmodels.NFTClaim, error) {
	query := `
		SELECT id, wallet_address, series_id, processed, created_at
		FROM nft_claims
		WHERE NOT processed
		ORDER BY created_at ASC
		LIMIT $1
	`

	rows, err := db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query unprocessed nft claims: %w", err)
	}
	defer rows.Close()

	var claims []*faucetmodels.NFTClaim
	for rows.Next() {
		var claim faucetmodels.NFTClaim
		if err := rows.Scan(&claim.ID, &claim.WalletAddress, &claim.SeriesID, &claim.Processed, &claim.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan nft claim: %w", err)
		}
		claims = append(claims, &claim)
	}

	return claims, rows.Err()
}

// MarkNFTClaimsProcessed flips processed on the oldest pending NFT claims
// whose wallet is in the given set, capped at limit. Idempotent for rows
// already processed.
func (db *DB) MarkNFTClaimsProcessed(ctx context.Context, wallets []string, limit int) (int64, error) {
	if len(wallets) == 0 {
		return 0, nil
	}

	query := `
		UPDATE nft_claims
		SET processed = TRUE
		WHERE id IN (
			SELECT id FROM nft_claims
			WHERE NOT processed AND wallet_address = ANY($1)
			ORDER BY created_at ASC
			LIMIT $2
		)
	`

	tag, err := db.Pool.Exec(ctx, query, wallets, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to mark nft claims processed: %w", err)
	}

	return tag.RowsAffected(), nil
}

// CountPendingNFTClaims returns the number of unprocessed NFT claims.
func (db *DB) CountPendingNFTClaims(ctx context.Context) (int64, error) {
	var count int64
	err := db.Pool.QueryRow(ctx, `SELECT count(*) FROM nft_claims WHERE NOT processed`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending nft claims: %w", err)
	}
	return count, nil
}
