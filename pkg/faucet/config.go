package faucet

import (
	"time"

	"github.com/ternoa-network/faucetx/pkg/utils"
)

// Defaults mirror the public testnet faucet deployment.
const (
	DefaultFaucetAddress = "5CtE5KeuNPtBazwVHdCyNwxAmSUzdTaM2eG82o1Z4d9uJZfA"
	DefaultClaimAmount   = 1150
	DefaultBatchSize     = 100
	DefaultCooldown      = 24 * time.Hour
	DefaultSubmitTimeout = 45 * time.Second
)

// Config carries the tunables shared by admission and the batch processor.
type Config struct {
	// FaucetAddress is the funding account; it is rejected as a recipient.
	FaucetAddress string
	// ClaimAmount is the payout of a single currency claim.
	ClaimAmount uint64
	// BatchSize caps how many claims of each kind go into one batch.
	BatchSize int
	// Cooldown is the minimum gap between accepted currency claims per wallet.
	Cooldown time.Duration
	// SubmitTimeout bounds waiting for block inclusion of a batch.
	SubmitTimeout time.Duration
	// NFTSeriesID is the series QR short codes resolve to.
	NFTSeriesID string
}

// ConfigFromEnv reads the faucet tunables from the environment.
func ConfigFromEnv() Config {
	return Config{
		FaucetAddress: utils.Env("FAUCET_ADDRESS", DefaultFaucetAddress),
		ClaimAmount:   utils.EnvUint64("FAUCET_CLAIM_AMOUNT", DefaultClaimAmount),
		BatchSize:     utils.EnvInt("FAUCET_BATCH_SIZE", DefaultBatchSize),
		Cooldown:      utils.EnvDuration("FAUCET_COOLDOWN", DefaultCooldown),
		SubmitTimeout: utils.EnvDuration("FAUCET_SUBMIT_TIMEOUT", DefaultSubmitTimeout),
		NFTSeriesID:   utils.Env("NFT_SERIES_ID", ""),
	}
}

// ResolveSeries picks the series for an NFT claim: an explicit id wins,
// otherwise every QR short code maps onto the configured default series.
func (c Config) ResolveSeries(seriesID string) (string, error) {
	if seriesID != "" {
		return seriesID, nil
	}
	if c.NFTSeriesID == "" {
		return "", &ValidationError{Reason: "no NFT series configured"}
	}
	return c.NFTSeriesID, nil
}
