package main

import (
	"context"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/chainsight/slotperf/internal/adapters"
	"github.com/chainsight/slotperf/internal/application/domain"
	"github.com/chainsight/slotperf/internal/application/services"
	"github.com/chainsight/slotperf/internal/config"
	"github.com/chainsight/slotperf/internal/logger"
)

var log = logger.New("slotperf")

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load config")
		os.Exit(1)
	}

	log.Info().
		Str("beacon_node_url", cfg.BeaconNodeURL).
		Dur("poll_interval", cfg.PollInterval).
		Msg("Starting slotperf")

	beaconAdapter, err := adapters.NewBeaconHTTPAdapter(cfg.BeaconNodeURL)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create beacon HTTP adapter")
		os.Exit(1)
	}

	evaluator := services.NewPerformanceEvaluator(beaconAdapter)

	// One-shot mode: evaluate a single slot, print the report, done.
	if cfg.HasTargetSlot {
		report, err := evaluator.Evaluate(context.Background(), cfg.TargetSlot)
		if err != nil {
			log.Error().Err(err).Uint64("slot", uint64(cfg.TargetSlot)).Msg("Evaluation failed")
			os.Exit(1)
		}
		printReport(cfg.TargetSlot, report)
		return
	}

	tracker := services.NewFinalityTracker(beaconAdapter, evaluator, cfg.PollInterval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT / SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		tracker.Run(ctx)
	}()

	sig := <-sigCh
	log.Warn().Str("signal", sig.String()).Msg("Received signal, shutting down...")
}

func printReport(slot domain.Slot, report domain.PerformanceReport) {
	validators := make([]domain.ValidatorIndex, 0, len(report))
	for validator := range report {
		validators = append(validators, validator)
	}
	sort.Slice(validators, func(i, j int) bool { return validators[i] < validators[j] })

	for _, validator := range validators {
		log.Info().
			Uint64("slot", uint64(slot)).
			Uint64("validator", uint64(validator)).
			Int64("inclusion_distance", report[validator]).
			Msg("Attestation performance")
	}
	log.Info().Uint64("slot", uint64(slot)).Int("validators", len(report)).Msg("Evaluation complete")
}
