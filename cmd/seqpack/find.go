package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/seqpack"
	"github.com/hupe1980/seqpack/sequence"
	"github.com/spf13/cobra"
)

func newFindCmd(c *cli) *cobra.Command {
	var (
		maxEdits    int
		bothStrands bool
		countOnly   bool
	)
	cmd := &cobra.Command{
		Use:   "find <sequence|@name> <pattern>",
		Short: "Find exact or approximate pattern occurrences",
		Long: `Find reports every start position of pattern in the sequence.

With --max-edits the search tolerates that many substitutions, insertions
or deletions. A sequence argument of the form @name is loaded from --store.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, err := c.engine()
			if err != nil {
				return err
			}
			seq, err := c.resolveSequence(ctx, eng, args[0])
			if err != nil {
				return err
			}
			defer eng.Release(seq)
			pattern := []byte(strings.TrimSpace(args[1]))

			if countOnly {
				n, err := eng.Count(ctx, seq, pattern, maxEdits)
				if err != nil {
					return err
				}
				if c.jsonOut {
					return c.printJSON(cmd.OutOrStdout(), map[string]int{"count": n})
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), n)
				return err
			}

			var ms seqpack.MatchSet
			switch {
			case bothStrands:
				ms, err = eng.FindBothStrands(ctx, seq, pattern, maxEdits)
			case maxEdits != 0:
				ms, err = eng.FindApproximate(ctx, seq, pattern, maxEdits)
			default:
				ms, err = eng.FindExact(ctx, seq, pattern)
			}
			if err != nil {
				return err
			}

			if c.jsonOut {
				return c.printJSON(cmd.OutOrStdout(), ms)
			}
			w := cmd.OutOrStdout()
			for _, m := range ms {
				fmt.Fprintf(w, "%d\t%d\t%d\t%s\n", m.Position, m.Length, m.EditDistance, m.Strand)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&maxEdits, "max-edits", "k", 0, "maximum edit distance")
	cmd.Flags().BoolVar(&bothStrands, "both-strands", false, "also search the reverse complement")
	cmd.Flags().BoolVar(&countOnly, "count", false, "print only the number of matches")
	return cmd
}

// resolveSequence builds arg, or loads it from the store when it starts
// with '@'. Either way the result is accounted by eng.
func (c *cli) resolveSequence(ctx context.Context, eng *seqpack.Engine, arg string) (*sequence.Packed, error) {
	name, ok := strings.CutPrefix(arg, "@")
	if !ok {
		raw := strings.TrimSpace(arg)
		kind, err := c.sequenceKind(raw)
		if err != nil {
			return nil, err
		}
		return eng.Build(ctx, kind, []byte(raw))
	}
	store, err := c.openStore(ctx, eng)
	if err != nil {
		return nil, err
	}
	return eng.Load(ctx, store, name)
}
