package ports

import (
	"context"

	"github.com/attestantio/go-eth2-client/spec/phase0"

	"github.com/chainsight/slotperf/internal/application/domain"
)

// ChainDataProvider is the hexagonal port for accessing beacon chain data.
// The evaluator depends only on this interface, not on any concrete client.
type ChainDataProvider interface {
	// GetFinalizedEpoch returns the latest finalized epoch known by the node.
	GetFinalizedEpoch(ctx context.Context) (domain.Epoch, error)

	// GetSlotCommittees returns the committees assigned to a slot, ordered by
	// committee index ascending. An empty slice means no committees for the
	// slot, which is not an error.
	GetSlotCommittees(ctx context.Context, slot domain.Slot) ([]domain.Committee, error)

	// GetSlotAttestations returns the attestations whose duty slot is the
	// given slot, ordered by inclusion slot ascending.
	GetSlotAttestations(ctx context.Context, slot domain.Slot) ([]domain.Attestation, error)

	// IsCanonicalBlock reports whether the block with the given root is part
	// of the canonical chain. Unknown roots are not canonical.
	IsCanonicalBlock(ctx context.Context, root phase0.Root) (bool, error)
}
