package tally

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/cmwaters/tbls/nodes"
	"github.com/cmwaters/tbls/pkg/group"
)

var ErrZeroThreshold = errors.New("tally: threshold must be positive")

// Tally accumulates the weight of the members that have contributed to a
// threshold operation, for example by supplying their decrypted shares. Once
// the accumulated weight reaches the threshold, enough shares are available.
//
// Unlike the committee it is built from, a Tally is mutable. It is safe for
// concurrent use.
type Tally[G group.Suite] struct {
	committee *nodes.Nodes[G]
	threshold uint16

	mtx          sync.Mutex
	weight       uint32
	contributors map[uint16]struct{}
}

func New[G group.Suite](committee *nodes.Nodes[G], threshold uint16) (*Tally[G], error) {
	if threshold == 0 {
		return nil, ErrZeroThreshold
	}
	if threshold > committee.TotalWeight() {
		return nil, fmt.Errorf("threshold %d exceeds total weight %d", threshold, committee.TotalWeight())
	}
	return &Tally[G]{
		committee:    committee,
		threshold:    threshold,
		contributors: make(map[uint16]struct{}),
	}, nil
}

// Add records a contribution from the member and reports whether the
// threshold has been reached. Repeated contributions from the same member are
// counted once.
func (t *Tally[G]) Add(id uint16) (bool, error) {
	node, err := t.committee.NodeIDToNode(id)
	if err != nil {
		return false, err
	}

	t.mtx.Lock()
	defer t.mtx.Unlock()
	if _, ok := t.contributors[id]; !ok {
		t.contributors[id] = struct{}{}
		t.weight += uint32(node.Weight)
	}
	return t.reached(), nil
}

// Weight returns the accumulated weight.
func (t *Tally[G]) Weight() uint16 {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return uint16(t.weight)
}

func (t *Tally[G]) Threshold() uint16 {
	return t.threshold
}

// Reached returns true once the accumulated weight is at least the threshold.
func (t *Tally[G]) Reached() bool {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return t.reached()
}

// Contributors returns the ids of the members that have contributed, in
// ascending order.
func (t *Tally[G]) Contributors() []uint16 {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	ids := make([]uint16, 0, len(t.contributors))
	for id := range t.contributors {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ShareIDs returns the share ids owned by the contributors, in ascending order.
func (t *Tally[G]) ShareIDs() []nodes.ShareID {
	contributors := t.Contributors()
	shares := make([]nodes.ShareID, 0, t.Weight())
	for _, id := range contributors {
		// contributors were validated in Add
		owned, _ := t.committee.ShareIDsOf(id)
		shares = append(shares, owned...)
	}
	return shares
}

func (t *Tally[G]) reached() bool {
	return t.weight >= uint32(t.threshold)
}
