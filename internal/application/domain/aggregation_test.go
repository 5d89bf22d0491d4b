package domain

import (
	"testing"

	"github.com/prysmaticlabs/go-bitfield"
	"github.com/stretchr/testify/require"
)

func TestDecodeAggregationBitsOrder(t *testing.T) {
	// Raw bitlist bytes, packed LSB-first with the delimiter bit at position
	// `size`. Only committee position 0 is set in each case, so the decoder's
	// bit ordering is exercised directly against hand-built byte sequences.
	tests := []struct {
		name string
		raw  []byte
		size int
	}{
		{name: "single member", raw: []byte{0x03}, size: 1},
		{name: "three members", raw: []byte{0x09}, size: 3},
		{name: "seven members", raw: []byte{0x81}, size: 7},
		{name: "full byte", raw: []byte{0x01, 0x01}, size: 8},
		{name: "ten members", raw: []byte{0x01, 0x04}, size: 10},
		{name: "two full bytes", raw: []byte{0x01, 0x00, 0x01}, size: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			participation, err := DecodeAggregationBits(bitfield.Bitlist(tt.raw), tt.size)
			require.NoError(t, err)
			require.Len(t, participation, tt.size)
			require.True(t, participation[0], "position 0 must be set")
			for i := 1; i < tt.size; i++ {
				require.False(t, participation[i], "position %d must be clear", i)
			}
		})
	}
}

func TestDecodeAggregationBitsRoundTrip(t *testing.T) {
	bits := bitfield.NewBitlist(5)
	bits.SetBitAt(1, true)
	bits.SetBitAt(4, true)

	participation, err := DecodeAggregationBits(bits, 5)
	require.NoError(t, err)
	require.Equal(t, []bool{false, true, false, false, true}, participation)
}

func TestDecodeAggregationBitsEmptyCommittee(t *testing.T) {
	// A delimiter-only bitlist carries zero logical bits.
	participation, err := DecodeAggregationBits(bitfield.Bitlist{0x01}, 0)
	require.NoError(t, err)
	require.Empty(t, participation)
}

func TestDecodeAggregationBitsLengthMismatch(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		size int
	}{
		{name: "empty input", raw: nil, size: 1},
		{name: "too short", raw: []byte{0x09}, size: 5},
		{name: "too long", raw: []byte{0x01, 0x04}, size: 4},
		{name: "byte count alone is ambiguous", raw: []byte{0xFF, 0x01}, size: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			participation, err := DecodeAggregationBits(bitfield.Bitlist(tt.raw), tt.size)
			require.ErrorIs(t, err, ErrMalformedBitVector)
			require.Nil(t, participation)
		})
	}
}
