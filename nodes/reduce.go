package nodes

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/cmwaters/tbls/pkg/group"
	"github.com/rs/zerolog"
)

type reducer struct {
	logger zerolog.Logger
}

// weightClass counts the members sharing a single non zero weight. Scanning
// classes instead of members keeps each divisor evaluation proportional to the
// number of distinct weights.
type weightClass struct {
	weight uint32
	count  uint32
}

// NewReduced builds a committee whose weights are divided by a common divisor
// d, together with the threshold scaled to the new weights.
//
// Every weight w becomes floor(w/d) and the rounding loss is the sum of
// w mod d over all members. Divisors are tried from 2 upwards until the
// reduced total weight would fall below minTotalWeight. Among the tried
// divisors, the largest one whose loss does not exceed maxLossBudget is
// chosen. If none qualifies the committee is returned unchanged. The new
// threshold is ceil(threshold/d).
//
// A minTotalWeight of zero is treated as one. It is an error for
// minTotalWeight to exceed the total weight of the input.
func NewReduced[G group.Suite](
	nodes []Node[G],
	threshold uint16,
	maxLossBudget uint16,
	minTotalWeight uint16,
	opts ...Option,
) (*Nodes[G], uint16, error) {
	r := &reducer{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}

	original, err := New(nodes)
	if err != nil {
		return nil, 0, err
	}

	if minTotalWeight == 0 {
		minTotalWeight = 1
	}
	if minTotalWeight > original.totalWeight {
		return nil, 0, fmt.Errorf("%w: minimum %d, total %d", ErrUnsatisfiableReduction, minTotalWeight, original.totalWeight)
	}

	d := r.selectDivisor(weightClasses(original.nodes), uint32(maxLossBudget), uint32(minTotalWeight))
	if d == 1 {
		r.logger.Info().
			Uint16("total_weight", original.totalWeight).
			Uint16("threshold", threshold).
			Msg("no divisor within loss budget, committee unchanged")
		return original, threshold, nil
	}

	reduced := make([]Node[G], len(original.nodes))
	for i, n := range original.nodes {
		reduced[i] = Node[G]{ID: n.ID, PK: n.PK, Weight: uint16(uint32(n.Weight) / d)}
	}
	result, err := New(reduced)
	if err != nil {
		// unreachable: the selected divisor keeps the total at or above one
		return nil, 0, err
	}
	newThreshold := uint16((uint32(threshold) + d - 1) / d)

	r.logger.Info().
		Uint32("divisor", d).
		Uint16("total_weight", original.totalWeight).
		Uint16("reduced_total_weight", result.totalWeight).
		Uint16("threshold", threshold).
		Uint16("reduced_threshold", newThreshold).
		Msg("reduced committee weights")

	return result, newThreshold, nil
}

func (r *reducer) selectDivisor(classes []weightClass, maxLoss, minTotal uint32) uint32 {
	maxWeight := classes[len(classes)-1].weight

	best := uint32(1)
	for d := uint32(2); d <= maxWeight; d++ {
		var total, loss uint32
		for _, c := range classes {
			total += c.count * (c.weight / d)
			loss += c.count * (c.weight % d)
		}
		if total < minTotal {
			r.logger.Debug().
				Uint32("divisor", d).
				Uint32("total_weight", total).
				Msg("total weight below minimum, stopping")
			break
		}
		r.logger.Debug().
			Uint32("divisor", d).
			Uint32("total_weight", total).
			Uint32("loss", loss).
			Bool("within_budget", loss <= maxLoss).
			Msg("evaluated divisor")
		if loss <= maxLoss {
			best = d
		}
	}
	return best
}

// weightClasses groups the non zero weights in ascending order. The committee
// has a positive total weight, so the result is never empty.
func weightClasses[G group.Suite](nodes []Node[G]) []weightClass {
	counts := make(map[uint16]uint32)
	for _, n := range nodes {
		if n.Weight > 0 {
			counts[n.Weight]++
		}
	}
	classes := make([]weightClass, 0, len(counts))
	for w, c := range counts {
		classes = append(classes, weightClass{weight: uint32(w), count: c})
	}
	slices.SortFunc(classes, func(a, b weightClass) int {
		return cmp.Compare(a.weight, b.weight)
	})
	return classes
}
