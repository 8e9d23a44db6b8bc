package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hupe1980/seqpack/sequence"
	"github.com/spf13/cobra"
)

func newRevcompCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "revcomp <sequence>",
		Short: "Print the reverse complement of a nucleotide sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := c.parseSequence(args[0])
			if err != nil {
				return err
			}
			rc, err := seq.ReverseComplement()
			if err != nil {
				return err
			}
			if c.jsonOut {
				return c.printJSON(cmd.OutOrStdout(), map[string]string{"sequence": rc.String()})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rc.String())
			return err
		},
	}
}

type stats struct {
	Kind        string         `json:"kind"`
	Length      int            `json:"length"`
	Bits        uint           `json:"bits_per_symbol"`
	PackedBytes int            `json:"packed_bytes"`
	GCContent   *float64       `json:"gc_content,omitempty"`
	Composition map[string]int `json:"composition"`
}

func sequenceStats(seq *sequence.Packed) (stats, error) {
	st := stats{
		Kind:        seq.Kind().String(),
		Length:      seq.Len(),
		Bits:        seq.BitsPerSymbol(),
		PackedBytes: seq.SizeBytes(),
		Composition: make(map[string]int),
	}
	for sym, n := range seq.Composition() {
		st.Composition[string(sym)] = n
	}
	gc, err := seq.GCContent()
	switch {
	case err == nil:
		st.GCContent = &gc
	case !errors.Is(err, sequence.ErrUnsupported):
		return stats{}, err
	}
	return st, nil
}

func newStatsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <sequence>",
		Short: "Print length, packed size, GC content and composition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := c.parseSequence(args[0])
			if err != nil {
				return err
			}
			st, err := sequenceStats(seq)
			if err != nil {
				return err
			}
			if c.jsonOut {
				return c.printJSON(cmd.OutOrStdout(), st)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "kind\t%s\nlength\t%d\nbits\t%d\npacked\t%d\n", st.Kind, st.Length, st.Bits, st.PackedBytes)
			if st.GCContent != nil {
				fmt.Fprintf(w, "gc\t%.2f%%\n", *st.GCContent)
			}
			syms := make([]string, 0, len(st.Composition))
			for s := range st.Composition {
				syms = append(syms, s)
			}
			sort.Strings(syms)
			for _, s := range syms {
				fmt.Fprintf(w, "%s\t%d\n", s, st.Composition[s])
			}
			return nil
		},
	}
}
