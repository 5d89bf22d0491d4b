package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chainsight/slotperf/internal/application/domain"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BEACON_NODE_URL", "http://localhost:5052")
	t.Setenv("POLL_INTERVAL_SECONDS", "")
	t.Setenv("TARGET_SLOT", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:5052", cfg.BeaconNodeURL)
	require.Equal(t, 60*time.Second, cfg.PollInterval)
	require.False(t, cfg.HasTargetSlot)
}

func TestLoadTargetSlot(t *testing.T) {
	t.Setenv("BEACON_NODE_URL", "http://localhost:5052")
	t.Setenv("TARGET_SLOT", "123456")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.HasTargetSlot)
	require.Equal(t, domain.Slot(123456), cfg.TargetSlot)
}

func TestLoadMissingBeaconURL(t *testing.T) {
	t.Setenv("BEACON_NODE_URL", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadInvalidPollInterval(t *testing.T) {
	t.Setenv("BEACON_NODE_URL", "http://localhost:5052")
	t.Setenv("POLL_INTERVAL_SECONDS", "zero")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadInvalidTargetSlot(t *testing.T) {
	t.Setenv("BEACON_NODE_URL", "http://localhost:5052")
	t.Setenv("TARGET_SLOT", "-3")

	_, err := Load()
	require.Error(t, err)
}
