package main

import (
	"fmt"

	"github.com/hupe1980/seqpack/align"
	"github.com/spf13/cobra"
)

func newAlignCmd(c *cli) *cobra.Command {
	var (
		mode     string
		distance bool
	)
	sc := align.DefaultScoring()

	cmd := &cobra.Command{
		Use:   "align <query|@name> <target|@name>",
		Short: "Align two sequences globally, locally or semi-globally",
		Long: `Align computes a pairwise alignment with affine gap penalties.

Both sequences must use the same alphabet; pass --kind when detection
would pick different ones. With --edit-distance only the Levenshtein
distance is printed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := align.ParseMode(mode)
			if err != nil {
				return err
			}
			eng, err := c.engine()
			if err != nil {
				return err
			}
			query, err := c.resolveSequence(ctx, eng, args[0])
			if err != nil {
				return err
			}
			defer eng.Release(query)
			target, err := c.resolveSequence(ctx, eng, args[1])
			if err != nil {
				return err
			}
			defer eng.Release(target)

			w := cmd.OutOrStdout()
			if distance {
				d, err := align.EditDistance(query, target)
				if err != nil {
					return err
				}
				if c.jsonOut {
					return c.printJSON(w, map[string]int{"edit_distance": d})
				}
				_, err = fmt.Fprintln(w, d)
				return err
			}

			aln, err := align.Align(query, target, m, sc)
			if err != nil {
				return err
			}
			if c.jsonOut {
				return c.printJSON(w, aln)
			}
			_, err = fmt.Fprint(w, aln.Format())
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&mode, "mode", "global", "alignment mode: global, local, semi-global")
	f.BoolVar(&distance, "edit-distance", false, "print only the edit distance")
	f.IntVar(&sc.Match, "match", sc.Match, "match score")
	f.IntVar(&sc.Mismatch, "mismatch", sc.Mismatch, "mismatch score")
	f.IntVar(&sc.GapOpen, "gap-open", sc.GapOpen, "score of the first gap column")
	f.IntVar(&sc.GapExtend, "gap-extend", sc.GapExtend, "score of each further gap column")
	f.BoolVar(&sc.Ambiguity, "ambiguity", false, "score intersecting IUPAC codes as matches")
	return cmd
}
