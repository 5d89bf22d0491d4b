package services

import (
	"context"
	"time"

	"github.com/chainsight/slotperf/internal/application/domain"
	"github.com/chainsight/slotperf/internal/application/ports"
	"github.com/chainsight/slotperf/internal/logger"
)

const SlotsPerEpoch = domain.Slot(32) // Ethereum consensus constant

var trackerLog = logger.New("tracker")

// FinalityTracker follows the node's finalized checkpoint and evaluates the
// attestation performance of every slot as its epoch becomes final.
type FinalityTracker struct {
	Chain        ports.ChainDataProvider
	Evaluator    *PerformanceEvaluator
	PollInterval time.Duration

	lastFinalizedEpoch domain.Epoch
	seenFinality       bool
}

// NewFinalityTracker constructs a FinalityTracker with dependencies injected.
func NewFinalityTracker(
	chain ports.ChainDataProvider,
	evaluator *PerformanceEvaluator,
	pollInterval time.Duration,
) *FinalityTracker {
	return &FinalityTracker{
		Chain:        chain,
		Evaluator:    evaluator,
		PollInterval: pollInterval,
	}
}

// Run starts the periodic check loop. If the ticker fires while a check is
// still in flight nothing new starts; we just pick up at the next tick.
func (t *FinalityTracker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.checkLatestFinalizedEpoch(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (t *FinalityTracker) checkLatestFinalizedEpoch(ctx context.Context) {
	finalizedEpoch, err := t.Chain.GetFinalizedEpoch(ctx)
	if err != nil {
		trackerLog.Error().Err(err).Msg("Failed to fetch finalized epoch")
		return
	}
	if t.seenFinality && finalizedEpoch == t.lastFinalizedEpoch {
		trackerLog.Debug().Uint64("epoch", uint64(finalizedEpoch)).Msg("Finalized epoch unchanged, skipping check")
		return
	}

	// On start only the newly finalized epoch is evaluated; afterwards every
	// epoch between the last seen checkpoint and the new one is covered.
	firstEpoch := finalizedEpoch
	if t.seenFinality {
		firstEpoch = t.lastFinalizedEpoch + 1
	}
	t.lastFinalizedEpoch = finalizedEpoch
	t.seenFinality = true

	for epoch := firstEpoch; epoch <= finalizedEpoch; epoch++ {
		trackerLog.Info().Uint64("epoch", uint64(epoch)).Msg("Evaluating newly finalized epoch")
		t.evaluateEpoch(ctx, epoch)
	}
}

func (t *FinalityTracker) evaluateEpoch(ctx context.Context, epoch domain.Epoch) {
	startSlot := domain.Slot(uint64(epoch) * uint64(SlotsPerEpoch))
	for slot := startSlot; slot < startSlot+SlotsPerEpoch; slot++ {
		if ctx.Err() != nil {
			return
		}
		report, err := t.Evaluator.Evaluate(ctx, slot)
		if err != nil {
			trackerLog.Error().Err(err).Uint64("slot", uint64(slot)).Msg("Failed to evaluate slot")
			continue
		}
		logSlotSummary(slot, report)
	}
}

// logSlotSummary reduces a per-validator report to the numbers worth a log
// line: how many duties the slot had, how many were missed, and the mean
// inclusion distance of the rest.
func logSlotSummary(slot domain.Slot, report domain.PerformanceReport) {
	var missed, included int
	var distanceSum int64
	for _, distance := range report {
		if distance == domain.MissedAttestation {
			missed++
			continue
		}
		included++
		distanceSum += distance
	}

	event := trackerLog.Info().
		Uint64("slot", uint64(slot)).
		Int("validators", len(report)).
		Int("missed", missed)
	if included > 0 {
		event = event.Float64("mean_inclusion_distance", float64(distanceSum)/float64(included))
	}
	event.Msg("Slot attestation performance")
}
