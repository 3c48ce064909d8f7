package nodes

import (
	"fmt"
	"iter"
	"slices"
)

// ShareIDToNode returns the member that owns the share. It fails if the share
// id is zero or larger than the total weight.
func (n *Nodes[G]) ShareIDToNode(id ShareID) (Node[G], error) {
	if id == 0 || uint16(id) > n.totalWeight {
		return Node[G]{}, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidShareID, id, n.totalWeight)
	}
	// the first boundary at or above id belongs to the owner. Members with
	// zero weight share their boundary with the previous member and are
	// therefore never selected.
	idx, _ := slices.BinarySearch(n.accumulated, uint16(id))
	return n.nodes[idx], nil
}

// NodeIDToNode returns the member with the given id.
func (n *Nodes[G]) NodeIDToNode(id uint16) (Node[G], error) {
	if int(id) >= len(n.nodes) {
		return Node[G]{}, fmt.Errorf("%w: %d, committee has %d members", ErrInvalidNodeID, id, len(n.nodes))
	}
	return n.nodes[id], nil
}

// ShareIDsOf returns the share ids owned by the member in ascending order. A
// member with zero weight owns no shares.
func (n *Nodes[G]) ShareIDsOf(id uint16) ([]ShareID, error) {
	if int(id) >= len(n.nodes) {
		return nil, fmt.Errorf("%w: %d, committee has %d members", ErrInvalidNodeID, id, len(n.nodes))
	}
	first, last := n.shareRange(id)
	ids := make([]ShareID, 0, last-first)
	for s := first; s < last; s++ {
		ids = append(ids, ShareID(s+1))
	}
	return ids, nil
}

// ShareIDs iterates over every share id, 1 through TotalWeight.
func (n *Nodes[G]) ShareIDs() iter.Seq[ShareID] {
	total := uint32(n.totalWeight)
	return func(yield func(ShareID) bool) {
		for s := uint32(1); s <= total; s++ {
			if !yield(ShareID(s)) {
				return
			}
		}
	}
}

// TotalWeightOf returns the combined weight of a set of members. Each id must
// be valid and appear at most once.
func (n *Nodes[G]) TotalWeightOf(ids []uint16) (uint16, error) {
	seen := make(map[uint16]struct{}, len(ids))
	var total uint16
	for _, id := range ids {
		if int(id) >= len(n.nodes) {
			return 0, fmt.Errorf("%w: %d", ErrInvalidNodeID, id)
		}
		if _, ok := seen[id]; ok {
			return 0, fmt.Errorf("%w: %d", ErrDuplicateNodeID, id)
		}
		seen[id] = struct{}{}
		// a subset of the members can not exceed the total weight
		total += n.nodes[id].Weight
	}
	return total, nil
}

// shareRange returns the half open range [first, last) of zero based share
// offsets owned by the member.
func (n *Nodes[G]) shareRange(id uint16) (first, last uint32) {
	if id > 0 {
		first = uint32(n.accumulated[id-1])
	}
	return first, uint32(n.accumulated[id])
}
