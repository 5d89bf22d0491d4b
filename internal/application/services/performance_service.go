package services

import (
	"context"

	"github.com/pkg/errors"

	"github.com/chainsight/slotperf/internal/application/domain"
	"github.com/chainsight/slotperf/internal/application/ports"
	"github.com/chainsight/slotperf/internal/logger"
)

var evalLog = logger.New("evaluator")

// PerformanceEvaluator computes per-validator attestation performance for a
// single slot: the minimum number of slots between the duty slot and the
// first canonical inclusion of the validator's vote, or
// domain.MissedAttestation if no canonical inclusion exists.
type PerformanceEvaluator struct {
	Chain ports.ChainDataProvider
}

// NewPerformanceEvaluator constructs a PerformanceEvaluator with dependencies injected.
func NewPerformanceEvaluator(chain ports.ChainDataProvider) *PerformanceEvaluator {
	return &PerformanceEvaluator{Chain: chain}
}

// Evaluate returns the attestation performance report for every validator
// with a duty in the given slot. The call is atomic: on any error the report
// is nil, never partially filled.
func (e *PerformanceEvaluator) Evaluate(ctx context.Context, slot domain.Slot) (domain.PerformanceReport, error) {
	committees, err := e.resolveCommittees(ctx, slot)
	if err != nil {
		return nil, err
	}

	attestations, err := e.Chain.GetSlotAttestations(ctx, slot)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch attestations for slot %d", slot)
	}

	// One distance cell per (committee, position), seeded as missed.
	performance := make([][]int64, len(committees))
	for i, committee := range committees {
		performance[i] = make([]int64, len(committee.Validators))
		for pos := range performance[i] {
			performance[i][pos] = domain.MissedAttestation
		}
	}

	// Attestations arrive in ascending inclusion-slot order, so the first
	// write into a cell is the minimum inclusion distance for that validator.
	for _, att := range attestations {
		canonical, err := e.Chain.IsCanonicalBlock(ctx, att.BeaconBlockRoot)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to check canonicality of block %#x", att.BeaconBlockRoot)
		}
		if !canonical {
			evalLog.Debug().
				Uint64("slot", uint64(slot)).
				Str("root", att.BeaconBlockRoot.String()).
				Msg("Skipping attestation for non-canonical block")
			continue
		}

		if int(att.CommitteeIndex) >= len(committees) {
			return nil, errors.Wrapf(domain.ErrUnknownCommittee,
				"committee %d in slot %d with %d committees", att.CommitteeIndex, slot, len(committees))
		}
		committee := committees[att.CommitteeIndex]

		participation, err := domain.DecodeAggregationBits(att.AggregationBits, len(committee.Validators))
		if err != nil {
			return nil, errors.Wrapf(err, "committee %d in slot %d", att.CommitteeIndex, slot)
		}

		inclusionDistance := int64(att.InclusionSlot) - int64(slot) - 1
		cells := performance[att.CommitteeIndex]
		for pos, attested := range participation {
			if attested && cells[pos] == domain.MissedAttestation {
				cells[pos] = inclusionDistance
			}
		}
	}

	report := make(domain.PerformanceReport)
	for i, committee := range committees {
		for pos, validator := range committee.Validators {
			report[validator] = performance[i][pos]
		}
	}
	return report, nil
}

// resolveCommittees fetches the slot's committees and verifies their indices
// form a contiguous sequence from 0, the ordering the aggregator relies on.
// A slot with no committees yields an empty slice, not an error.
func (e *PerformanceEvaluator) resolveCommittees(ctx context.Context, slot domain.Slot) ([]domain.Committee, error) {
	committees, err := e.Chain.GetSlotCommittees(ctx, slot)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch committees for slot %d", slot)
	}
	for i, committee := range committees {
		if committee.Index != domain.CommitteeIndex(i) {
			return nil, errors.Wrapf(domain.ErrMalformedCommitteeData,
				"committee at position %d has index %d in slot %d", i, committee.Index, slot)
		}
	}
	return committees, nil
}
