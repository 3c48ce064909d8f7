package nodes

import (
	"fmt"

	"github.com/cmwaters/tbls/pkg/ecies"
	"github.com/cmwaters/tbls/pkg/group"
)

// Node is a single committee member. ID is assigned by the protocol and is
// independent of the member's position in any input slice. Weight is the
// number of shares the member controls and may be zero.
type Node[G group.Suite] struct {
	ID     uint16
	PK     *ecies.PublicKey[G]
	Weight uint16
}

// Equal returns true if all three fields are equal.
func (n Node[G]) Equal(other Node[G]) bool {
	return n.ID == other.ID && n.Weight == other.Weight && n.PK.Equal(other.PK)
}

func (n Node[G]) String() string {
	return fmt.Sprintf("Node{id: %d, weight: %d, pk: %s}", n.ID, n.Weight, n.PK)
}

// ShareID identifies a single unit of weight. Share ids are 1-based: the zero
// value is never a valid share id.
type ShareID uint16

// NewShareID returns id as a ShareID, rejecting zero.
func NewShareID(id uint16) (ShareID, error) {
	if id == 0 {
		return 0, fmt.Errorf("%w: share ids start at 1", ErrInvalidShareID)
	}
	return ShareID(id), nil
}
