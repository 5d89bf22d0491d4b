package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chainsight/slotperf/internal/application/domain"
)

// Config holds runtime configuration for the slotperf service.
type Config struct {
	BeaconNodeURL string
	PollInterval  time.Duration

	// TargetSlot, when set, switches to one-shot mode: evaluate exactly this
	// slot, print the report and exit.
	TargetSlot    domain.Slot
	HasTargetSlot bool
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	beaconURL := strings.TrimSpace(os.Getenv("BEACON_NODE_URL"))
	if beaconURL == "" {
		return nil, fmt.Errorf("BEACON_NODE_URL is required")
	}

	intervalStr := strings.TrimSpace(os.Getenv("POLL_INTERVAL_SECONDS"))
	if intervalStr == "" {
		intervalStr = "60"
	}
	sec, err := strconv.Atoi(intervalStr)
	if err != nil || sec <= 0 {
		return nil, fmt.Errorf("invalid POLL_INTERVAL_SECONDS: %q", intervalStr)
	}
	pollInterval := time.Duration(sec) * time.Second

	cfg := &Config{
		BeaconNodeURL: beaconURL,
		PollInterval:  pollInterval,
	}

	slotStr := strings.TrimSpace(os.Getenv("TARGET_SLOT"))
	if slotStr != "" {
		n, err := strconv.ParseUint(slotStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TARGET_SLOT: %q", slotStr)
		}
		cfg.TargetSlot = domain.Slot(n)
		cfg.HasTargetSlot = true
	}

	return cfg, nil
}
