package domain

import (
	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/prysmaticlabs/go-bitfield"
)

// Basic consensus types
type Epoch uint64
type Slot uint64
type ValidatorIndex uint64
type CommitteeIndex uint64

// MissedAttestation is the report value for a validator whose attestation was
// never included in a canonical block for the evaluated slot.
const MissedAttestation int64 = -1

// Committee is the ordered list of validators assigned to attest at a given
// (slot, committee index). The validator order is the protocol's shuffle
// order; aggregation bit positions refer to it.
type Committee struct {
	Index      CommitteeIndex
	Validators []ValidatorIndex
}

// Attestation is one attestation for the evaluated slot as included on chain.
type Attestation struct {
	// Committee the vote belongs to.
	CommitteeIndex CommitteeIndex

	// Slot of the block that included this attestation.
	InclusionSlot Slot

	// Packed SSZ bitlist of which committee positions participated.
	AggregationBits bitfield.Bitlist

	// Root of the beacon block the attestation voted for.
	BeaconBlockRoot phase0.Root
}

// PerformanceReport maps each validator active in the evaluated slot to its
// minimum inclusion distance, or MissedAttestation.
type PerformanceReport map[ValidatorIndex]int64
