// Package align computes pairwise alignments of packed sequences.
//
// Three modes are supported:
//
//   - Global aligns both sequences end to end (Needleman-Wunsch).
//   - Local finds the best-scoring pair of substrings (Smith-Waterman).
//   - SemiGlobal aligns end to end but does not charge for leading or
//     trailing overhangs of either sequence.
//
// Gaps are affine: a run of L gap columns costs GapOpen + (L-1)*GapExtend.
// Scores are computed on alphabet codes, so both sequences must share an
// alphabet. Alignment keeps three score matrices and needs
// O(len(a)*len(b)) memory; EditDistance keeps two rows.
//
//	a, _ := sequence.FromString(alphabet.DNA, "ACGTACGT")
//	b, _ := sequence.FromString(alphabet.DNA, "ACGTCGT")
//	aln, err := align.NeedlemanWunsch(a, b, align.DefaultScoring())
//	if err != nil {
//	    return err
//	}
//	fmt.Print(aln.Format()) // ACGTACGT / ACGT-CGT, score 12
package align
