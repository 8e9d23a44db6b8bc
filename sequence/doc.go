// Package sequence implements the bit-packed sequence store.
//
// A Packed sequence stores symbols at the width of its alphabet (2, 4 or 5
// bits) in a big-endian bit stream and answers random access with plain
// offset arithmetic, never unpacking the buffer. 5-bit protein codes may
// straddle a byte boundary; At reads both bytes and combines them.
//
// Stores are immutable. Slicing yields a View that borrows the store;
// every other transform (Concat, ReverseComplement, Mask, ...) allocates a
// new store, so concurrent readers never observe a mutation.
//
//	seq, err := sequence.FromString(alphabet.DNA, "ACGTACGTTTGCA")
//	if err != nil {
//	    return err
//	}
//	rc, _ := seq.ReverseComplement()
//	v, _ := seq.Slice(2, 6)
//	fmt.Println(rc, v) // TGCAAACGTACGT GTAC
package sequence
