package domain

import "github.com/pkg/errors"

// Errors that abort an evaluation. All of them indicate inconsistent or
// corrupt upstream data; the evaluator never returns a partial report.
var (
	// ErrMalformedCommitteeData means the committees fetched for a slot do not
	// form a contiguous index sequence starting at 0.
	ErrMalformedCommitteeData = errors.New("malformed committee data")

	// ErrMalformedBitVector means an aggregation bitlist does not carry exactly
	// as many bits as the committee it references has members.
	ErrMalformedBitVector = errors.New("malformed aggregation bit-vector")

	// ErrUnknownCommittee means an attestation references a committee index
	// with no committee assigned in the evaluated slot.
	ErrUnknownCommittee = errors.New("attestation references unknown committee")
)
