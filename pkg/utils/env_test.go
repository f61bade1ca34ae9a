package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnv(t *testing.T) {
	t.Setenv("FAUCETX_TEST_STR", "value")
	assert.Equal(t, "value", Env("FAUCETX_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", Env("FAUCETX_TEST_MISSING", "fallback"))
}

func TestEnvUint64(t *testing.T) {
	t.Setenv("FAUCETX_TEST_U64", "1150")
	assert.Equal(t, uint64(1150), EnvUint64("FAUCETX_TEST_U64", 1))

	t.Setenv("FAUCETX_TEST_U64_BAD", "-5")
	assert.Equal(t, uint64(7), EnvUint64("FAUCETX_TEST_U64_BAD", 7))
}

func TestEnvInt(t *testing.T) {
	t.Setenv("FAUCETX_TEST_INT", "100")
	assert.Equal(t, 100, EnvInt("FAUCETX_TEST_INT", 1))

	// Zero and negatives fall back to the default.
	t.Setenv("FAUCETX_TEST_INT_ZERO", "0")
	assert.Equal(t, 5, EnvInt("FAUCETX_TEST_INT_ZERO", 5))
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("FAUCETX_TEST_DUR", "24h")
	assert.Equal(t, 24*time.Hour, EnvDuration("FAUCETX_TEST_DUR", time.Minute))

	t.Setenv("FAUCETX_TEST_DUR_BAD", "soon")
	assert.Equal(t, time.Minute, EnvDuration("FAUCETX_TEST_DUR_BAD", time.Minute))

	t.Setenv("FAUCETX_TEST_DUR_NEG", "-5s")
	assert.Equal(t, time.Minute, EnvDuration("FAUCETX_TEST_DUR_NEG", time.Minute))
}
