package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testContractAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

func TestLoad(t *testing.T) {
	t.Run("defaults to sepolia and an in-memory store", func(t *testing.T) {
		t.Setenv("CONTRACT_ADDRESS", testContractAddress)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "11155111", cfg.Chain.NetworkID)
		assert.Equal(t, ":memory:", cfg.Database.Path)
		assert.Equal(t, uint64(1), cfg.Tracker.Confirmations)
		assert.Equal(t, 5*time.Minute, cfg.Tracker.Timeout)
		assert.Equal(t, 8080, cfg.Server.Port)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("CONTRACT_ADDRESS", testContractAddress)
		t.Setenv("RPC_URL", "http://localhost:8545")
		t.Setenv("CHAIN_ID", "31337")
		t.Setenv("CONFIRMATIONS", "3")
		t.Setenv("POLL_INTERVAL", "500ms")
		t.Setenv("CONFIRMATION_TIMEOUT", "1m")
		t.Setenv("PORT", "9090")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8545", cfg.Chain.RPC)
		assert.Equal(t, "31337", cfg.Chain.NetworkID)
		assert.Equal(t, uint64(3), cfg.Tracker.Confirmations)
		assert.Equal(t, 500*time.Millisecond, cfg.Tracker.PollInterval)
		assert.Equal(t, time.Minute, cfg.Tracker.Timeout)
		assert.Equal(t, 9090, cfg.Server.Port)
	})

	t.Run("missing contract address", func(t *testing.T) {
		t.Setenv("CONTRACT_ADDRESS", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("invalid contract address", func(t *testing.T) {
		t.Setenv("CONTRACT_ADDRESS", "0x1234")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("zero confirmations rejected", func(t *testing.T) {
		t.Setenv("CONTRACT_ADDRESS", testContractAddress)
		t.Setenv("CONFIRMATIONS", "0")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("malformed duration", func(t *testing.T) {
		t.Setenv("CONTRACT_ADDRESS", testContractAddress)
		t.Setenv("POLL_INTERVAL", "soon")

		_, err := Load()
		assert.ErrorContains(t, err, "POLL_INTERVAL")
	})
}
