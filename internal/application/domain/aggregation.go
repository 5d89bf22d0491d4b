package domain

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/go-bitfield"
)

// DecodeAggregationBits unpacks an SSZ aggregation bitlist into per-position
// participation flags for a committee of the given size.
//
// The wire format is bit-packed least-significant-bit first, with a single
// delimiter bit marking the logical length and zero padding up to the next
// byte boundary. bitfield.Bitlist reads bits in that order and derives the
// logical length from the delimiter, so position i of the result corresponds
// directly to committee position i.
//
// The logical length must equal committeeSize exactly: byte count alone is
// ambiguous when the true length is a multiple of 8, and a bitlist that is
// too short (or too long) for its committee means the attestation and
// committee data disagree. Truncating or padding would silently corrupt the
// performance numbers, so any mismatch is rejected.
func DecodeAggregationBits(bits bitfield.Bitlist, committeeSize int) ([]bool, error) {
	if bits.Len() != uint64(committeeSize) {
		return nil, errors.Wrapf(ErrMalformedBitVector,
			"expected %d bits, decoded %d", committeeSize, bits.Len())
	}
	participation := make([]bool, committeeSize)
	for i := range participation {
		participation[i] = bits.BitAt(uint64(i))
	}
	return participation, nil
}
