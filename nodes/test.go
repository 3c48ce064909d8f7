package nodes

import (
	"github.com/cmwaters/tbls/pkg/ecies"
	"github.com/cmwaters/tbls/pkg/group"
)

// NewTestNodes returns n members with ids 0..n-1 sharing a single random key.
// Member i has weight i+1 for i <= 10 and 10 + i%10 otherwise, so 100 members
// carry a total weight of 1361.
func NewTestNodes[G group.Suite](n int) []Node[G] {
	pk := ecies.NewTestKey[G]().PublicKey()
	nodes := make([]Node[G], n)
	for i := range nodes {
		weight := uint16(1 + i)
		if i > 10 {
			weight = uint16(10 + i%10)
		}
		nodes[i] = Node[G]{ID: uint16(i), PK: pk, Weight: weight}
	}
	return nodes
}
