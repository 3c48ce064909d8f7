// Package nodes maps the weight of committee members to share ids and
// reduces member weights for threshold schemes.
package nodes

import (
	"bytes"
	"cmp"
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/cmwaters/tbls/pkg/ecies"
	"github.com/cmwaters/tbls/pkg/encoding"
	"github.com/cmwaters/tbls/pkg/group"
)

// Nodes is a validated committee with a deterministic assignment of share ids.
//
// Members are stored sorted by id, so two committees built from permutations
// of the same members are equal and hash identically. Member k owns the share
// ids in (accumulated[k-1], accumulated[k]]. A Nodes value is never mutated
// after construction and can be shared freely between goroutines.
type Nodes[G group.Suite] struct {
	nodes []Node[G]

	// accumulated[k] is the sum of the weights of nodes 0..k. It is non
	// decreasing and ties occur exactly at members with zero weight.
	accumulated []uint16
	totalWeight uint16

	encoded []byte
	digest  encoding.Digest
}

// nodeRecord is the canonical encoding of a single member.
type nodeRecord struct {
	ID        uint16
	PublicKey []byte
	Weight    uint16
}

// New validates the members and builds the committee. The input may be in any
// order. It fails if the input is empty, if the ids are not exactly 0..n-1, if
// a public key is missing, or if the total weight is zero or overflows uint16.
func New[G group.Suite](nodes []Node[G]) (*Nodes[G], error) {
	if len(nodes) == 0 {
		return nil, ErrEmptyInput
	}

	sorted := slices.Clone(nodes)
	slices.SortFunc(sorted, func(a, b Node[G]) int {
		return cmp.Compare(a.ID, b.ID)
	})

	// ids are unsigned and sorted, so position i must hold id i. This rejects
	// gaps, duplicates and a minimum id other than 0 in a single pass.
	for i, n := range sorted {
		if int(n.ID) != i {
			return nil, fmt.Errorf("%w: expected id %d at position %d, got %d", ErrNonContiguousIDs, i, i, n.ID)
		}
		if n.PK == nil {
			return nil, fmt.Errorf("%w: node %d", ErrMissingPublicKey, n.ID)
		}
	}

	accumulated := make([]uint16, len(sorted))
	var total uint32
	for i, n := range sorted {
		total += uint32(n.Weight)
		if total > math.MaxUint16 {
			return nil, fmt.Errorf("%w: exceeded at node %d", ErrWeightOverflow, n.ID)
		}
		accumulated[i] = uint16(total)
	}
	if total == 0 {
		return nil, ErrZeroTotalWeight
	}

	records := make([]nodeRecord, len(sorted))
	for i, n := range sorted {
		records[i] = nodeRecord{ID: n.ID, PublicKey: n.PK.Bytes(), Weight: n.Weight}
	}
	encoded, err := encoding.Marshal(records)
	if err != nil {
		return nil, err
	}

	return &Nodes[G]{
		nodes:       sorted,
		accumulated: accumulated,
		totalWeight: uint16(total),
		encoded:     encoded,
		digest:      encoding.Sum(encoded),
	}, nil
}

// Unmarshal decodes a committee produced by MarshalBinary and validates it
// again.
func Unmarshal[G group.Suite](b []byte) (*Nodes[G], error) {
	var records []nodeRecord
	if err := encoding.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	nodes := make([]Node[G], len(records))
	for i, r := range records {
		pk, err := ecies.PublicKeyFromBytes[G](r.PublicKey)
		if err != nil {
			return nil, fmt.Errorf("%w: node %d: %v", ErrMalformedEncoding, r.ID, err)
		}
		nodes[i] = Node[G]{ID: r.ID, PK: pk, Weight: r.Weight}
	}
	return New(nodes)
}

// TotalWeight returns the sum of all member weights. It is always positive.
func (n *Nodes[G]) TotalWeight() uint16 {
	return n.totalWeight
}

// NumNodes returns the number of members, including zero weight members.
func (n *Nodes[G]) NumNodes() int {
	return len(n.nodes)
}

// All iterates over the members in id order.
func (n *Nodes[G]) All() iter.Seq[Node[G]] {
	return func(yield func(Node[G]) bool) {
		for _, node := range n.nodes {
			if !yield(node) {
				return
			}
		}
	}
}

// Nodes returns a copy of the members in id order.
func (n *Nodes[G]) Nodes() []Node[G] {
	return slices.Clone(n.nodes)
}

// Equal returns true if both committees contain the same members.
func (n *Nodes[G]) Equal(other *Nodes[G]) bool {
	if n == nil || other == nil {
		return n == other
	}
	return slices.EqualFunc(n.nodes, other.nodes, Node[G].Equal)
}

// Hash returns a digest over the canonical encoding of the members. Equal
// committees always have the same hash, so participants can compare
// committees by exchanging only the hash.
func (n *Nodes[G]) Hash() encoding.Digest {
	return n.digest
}

// MarshalBinary returns the canonical encoding of the members.
func (n *Nodes[G]) MarshalBinary() ([]byte, error) {
	return bytes.Clone(n.encoded), nil
}

func (n *Nodes[G]) String() string {
	return fmt.Sprintf("Nodes{n: %d, total_weight: %d, hash: %s}", len(n.nodes), n.totalWeight, n.digest)
}
