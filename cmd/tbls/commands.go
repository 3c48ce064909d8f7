package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cmwaters/tbls"
	"github.com/cmwaters/tbls/config"
	"github.com/cmwaters/tbls/nodes"
	"github.com/cmwaters/tbls/pkg/ecies"
	"github.com/cmwaters/tbls/pkg/group"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func keygen[G group.Suite](w io.Writer) error {
	sk, err := ecies.GeneratePrivateKey[G](rand.Reader)
	if err != nil {
		return err
	}
	b, err := sk.MarshalBinary()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "private-key: %s\n", hex.EncodeToString(b))
	fmt.Fprintf(w, "public-key:  %s\n", sk.PublicKey())
	return nil
}

func inspect[G group.Suite](cmd *cobra.Command, cfg config.Config, logger zerolog.Logger) error {
	committee, threshold, err := tbls.FromConfig[G](cfg)
	if err != nil {
		return err
	}
	logger.Debug().Int("members", committee.NumNodes()).Msg("loaded committee")

	peers, err := cfg.PeerDirectory()
	if err != nil {
		return err
	}
	return printCommittee(cmd.OutOrStdout(), committee, threshold, "PEER", func(id uint16) string {
		if p, ok := peers[id]; ok {
			return p.String()
		}
		return "-"
	})
}

func reduce[G group.Suite](cmd *cobra.Command, cfg config.Config, logger zerolog.Logger) error {
	original := cfg
	original.Reduction = nil
	before, _, err := tbls.FromConfig[G](original)
	if err != nil {
		return err
	}
	after, threshold, err := tbls.FromConfig[G](cfg, nodes.WithLogger(logger))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "total weight: %d -> %d\n", before.TotalWeight(), after.TotalWeight())
	fmt.Fprintf(w, "threshold:    %d -> %d\n\n", cfg.Threshold, threshold)
	return printCommittee(w, after, threshold, "ORIGINAL WEIGHT", func(id uint16) string {
		node, _ := before.NodeIDToNode(id)
		return fmt.Sprintf("%d", node.Weight)
	})
}

// printCommittee writes a summary followed by one row per member. extra
// fills the last column.
func printCommittee[G group.Suite](
	w io.Writer,
	committee *nodes.Nodes[G],
	threshold uint16,
	extraHeader string,
	extra func(id uint16) string,
) error {
	fmt.Fprintf(w, "members:      %d\n", committee.NumNodes())
	fmt.Fprintf(w, "total weight: %d\n", committee.TotalWeight())
	fmt.Fprintf(w, "threshold:    %d\n", threshold)
	fmt.Fprintf(w, "hash:         %s\n\n", committee.Hash())

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tWEIGHT\tSHARES\tPUBLIC KEY\t%s\n", extraHeader)
	for node := range committee.All() {
		shares, err := committee.ShareIDsOf(node.ID)
		if err != nil {
			return err
		}
		span := "-"
		if len(shares) > 0 {
			span = fmt.Sprintf("%d..%d", shares[0], shares[len(shares)-1])
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n", node.ID, node.Weight, span, node.PK, extra(node.ID))
	}
	return tw.Flush()
}
