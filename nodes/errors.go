package nodes

import "errors"

// Construction errors. They are returned wrapped with context, so callers
// should compare using errors.Is.
var (
	ErrEmptyInput             = errors.New("nodes: empty input")
	ErrNonContiguousIDs       = errors.New("nodes: ids are not exactly 0..n-1")
	ErrMissingPublicKey       = errors.New("nodes: missing public key")
	ErrWeightOverflow         = errors.New("nodes: total weight overflows uint16")
	ErrZeroTotalWeight        = errors.New("nodes: total weight is zero")
	ErrUnsatisfiableReduction = errors.New("nodes: minimum total weight exceeds the committee's total weight")
)

// Lookup errors.
var (
	ErrInvalidShareID    = errors.New("nodes: invalid share id")
	ErrInvalidNodeID     = errors.New("nodes: invalid node id")
	ErrDuplicateNodeID   = errors.New("nodes: duplicate node id")
	ErrMalformedEncoding = errors.New("nodes: malformed encoding")
)
