package adapters

import (
	"context"
	"fmt"
	nethttp "net/http"
	"sort"
	"time"

	"github.com/attestantio/go-eth2-client/api"
	eth2http "github.com/attestantio/go-eth2-client/http"
	"github.com/attestantio/go-eth2-client/spec"
	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/rs/zerolog"

	"github.com/chainsight/slotperf/internal/application/domain"
	"github.com/chainsight/slotperf/internal/application/ports"
	"github.com/chainsight/slotperf/internal/logger"
)

// inclusionWindow is how many slots after the duty slot an attestation can
// still be included in a block.
const inclusionWindow = domain.Slot(32)

var adapterLog = logger.New("beacon-adapter")

// beaconHTTPClient implements ports.ChainDataProvider using go-eth2-client.
type beaconHTTPClient struct {
	client *eth2http.Service
}

// NewBeaconHTTPAdapter is the constructor used from main.go.
func NewBeaconHTTPAdapter(endpoint string) (ports.ChainDataProvider, error) {
	customHTTPClient := &nethttp.Client{
		Timeout: 2000 * time.Second, // global upper bound; per-request timeout below
	}

	client, err := eth2http.New(
		context.Background(),
		eth2http.WithAddress(endpoint),
		eth2http.WithHTTPClient(customHTTPClient),
		// This is the per-request timeout used by go-eth2-client.
		eth2http.WithTimeout(20*time.Second),
		// Silence go-eth2-client logs unless they are warnings+.
		eth2http.WithLogLevel(zerolog.WarnLevel),
	)
	if err != nil {
		return nil, err
	}

	return &beaconHTTPClient{client: client.(*eth2http.Service)}, nil
}

// GetFinalizedEpoch returns the latest finalized epoch.
func (b *beaconHTTPClient) GetFinalizedEpoch(ctx context.Context) (domain.Epoch, error) {
	finality, err := b.client.Finality(ctx, &api.FinalityOpts{State: "head"})
	if err != nil {
		return 0, err
	}
	return domain.Epoch(finality.Data.Finalized.Epoch), nil
}

// GetSlotCommittees returns the committees assigned to a slot, ordered by
// committee index ascending. The beacon API only filters committees by epoch,
// so the epoch is fetched and narrowed down to the one slot.
func (b *beaconHTTPClient) GetSlotCommittees(
	ctx context.Context,
	slot domain.Slot,
) ([]domain.Committee, error) {
	epoch := phase0.Epoch(uint64(slot) / 32)
	resp, err := b.client.BeaconCommittees(ctx, &api.BeaconCommitteesOpts{
		// Epoch filters by epoch, state defaults to "head".
		Epoch: &epoch,
	})
	if err != nil {
		return nil, err
	}

	var committees []domain.Committee
	for _, c := range resp.Data {
		if domain.Slot(c.Slot) != slot {
			continue
		}
		vals := make([]domain.ValidatorIndex, len(c.Validators))
		for i, v := range c.Validators {
			vals[i] = domain.ValidatorIndex(v)
		}
		committees = append(committees, domain.Committee{
			Index:      domain.CommitteeIndex(c.Index),
			Validators: vals,
		})
	}
	sort.Slice(committees, func(i, j int) bool {
		return committees[i].Index < committees[j].Index
	})
	return committees, nil
}

// GetSlotAttestations returns all attestations voting for `slot`, found by
// scanning the blocks of the inclusion window [slot+1, slot+32].
//
// The ascending scan order is what gives downstream consumers their
// ascending-inclusion-slot ordering; a missed slot (404) is skipped.
func (b *beaconHTTPClient) GetSlotAttestations(
	ctx context.Context,
	slot domain.Slot,
) ([]domain.Attestation, error) {
	var out []domain.Attestation
	for inclusionSlot := slot + 1; inclusionSlot <= slot+inclusionWindow; inclusionSlot++ {
		block, err := b.client.SignedBeaconBlock(ctx, &api.SignedBeaconBlockOpts{
			Block: fmt.Sprintf("%d", inclusionSlot),
		})
		if err != nil {
			if apiErr, ok := err.(*api.Error); ok && apiErr.StatusCode == 404 {
				// Missed slot → no block, no attestations.
				continue
			}
			return nil, err
		}
		if block == nil || block.Data == nil {
			continue
		}

		for _, att := range blockAttestations(block.Data) {
			if domain.Slot(att.Data.Slot) != slot {
				continue
			}
			out = append(out, domain.Attestation{
				CommitteeIndex:  domain.CommitteeIndex(att.Data.Index),
				InclusionSlot:   inclusionSlot,
				AggregationBits: att.AggregationBits,
				BeaconBlockRoot: att.Data.BeaconBlockRoot,
			})
		}
	}
	return out, nil
}

// blockAttestations extracts the single-committee attestations from any
// pre-Electra block. Electra merged committees into one attestation object
// with committee bits, a shape this tool does not consume; such blocks are
// skipped with a warning.
func blockAttestations(block *spec.VersionedSignedBeaconBlock) []*phase0.Attestation {
	switch {
	case block.Phase0 != nil:
		return block.Phase0.Message.Body.Attestations
	case block.Altair != nil:
		return block.Altair.Message.Body.Attestations
	case block.Bellatrix != nil:
		return block.Bellatrix.Message.Body.Attestations
	case block.Capella != nil:
		return block.Capella.Message.Body.Attestations
	case block.Deneb != nil:
		return block.Deneb.Message.Body.Attestations
	default:
		adapterLog.Warn().Str("version", block.Version.String()).
			Msg("Unsupported block version, skipping its attestations")
		return nil
	}
}

// IsCanonicalBlock checks the canonical flag on the block header for `root`.
// An unknown root (404) is simply not canonical.
func (b *beaconHTTPClient) IsCanonicalBlock(
	ctx context.Context,
	root phase0.Root,
) (bool, error) {
	header, err := b.client.BeaconBlockHeader(ctx, &api.BeaconBlockHeaderOpts{
		Block: root.String(),
	})
	if err != nil {
		if apiErr, ok := err.(*api.Error); ok && apiErr.StatusCode == 404 {
			return false, nil
		}
		return false, err
	}
	if header == nil || header.Data == nil {
		return false, nil
	}
	return header.Data.Canonical, nil
}
