package chunk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name                    string
		length, target, overlap int
		want                    []Chunk
	}{
		{"empty", 0, 4, 2, nil},
		{"single", 3, 4, 2, []Chunk{{0, 0, 3, 3}}},
		{"exact", 8, 4, 0, []Chunk{{0, 0, 4, 4}, {1, 4, 8, 8}}},
		{"short tail", 10, 4, 3, []Chunk{{0, 0, 4, 7}, {1, 4, 8, 10}, {2, 8, 10, 10}}},
		{"overlap beyond end", 5, 2, 100, []Chunk{{0, 0, 2, 5}, {1, 2, 4, 5}, {2, 4, 5, 5}}},
		{"max overlap", 5, 2, math.MaxInt, []Chunk{{0, 0, 2, 5}, {1, 2, 4, 5}, {2, 4, 5, 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Partition(tt.length, tt.target, tt.overlap)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPartitionCovers(t *testing.T) {
	for length := 1; length < 60; length++ {
		for target := 1; target < 12; target++ {
			chunks, err := Partition(length, target, 3)
			require.NoError(t, err)
			require.Len(t, chunks, (length+target-1)/target)

			next := 0
			for i, c := range chunks {
				assert.Equal(t, i, c.Index)
				assert.Equal(t, next, c.Start)
				assert.LessOrEqual(t, c.End, c.ScanEnd)
				assert.LessOrEqual(t, c.ScanEnd, length)
				next = c.End
			}
			assert.Equal(t, length, next)
		}
	}
}

func TestPartitionDeterministic(t *testing.T) {
	a, err := Partition(1000, 37, 5)
	require.NoError(t, err)
	b, err := Partition(1000, 37, 5)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPartitionInvalid(t *testing.T) {
	_, err := Partition(10, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidChunking)
	_, err = Partition(10, -3, 1)
	assert.ErrorIs(t, err, ErrInvalidChunking)
	_, err = Partition(10, 4, -1)
	assert.ErrorIs(t, err, ErrInvalidChunking)
}

func TestChunkOwns(t *testing.T) {
	c := Chunk{Index: 1, Start: 4, End: 8, ScanEnd: 11}
	assert.True(t, c.Owns(4))
	assert.True(t, c.Owns(7))
	assert.False(t, c.Owns(8))
	assert.False(t, c.Owns(3))
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, 7, c.ScanLen())
	assert.Equal(t, "chunk#1[4:8|11]", c.String())
}

func TestOverlapFor(t *testing.T) {
	assert.Equal(t, 3, OverlapFor(4, 0))
	assert.Equal(t, 5, OverlapFor(4, 2))
	assert.Equal(t, 0, OverlapFor(1, 0))
	assert.Equal(t, 0, OverlapFor(0, 0))
	assert.Equal(t, math.MaxInt, OverlapFor(4, math.MaxInt))
	assert.Equal(t, math.MaxInt, OverlapFor(4, math.MaxInt-3))
	assert.Equal(t, math.MaxInt-1, OverlapFor(4, math.MaxInt-4))
}

func TestPartitionScanEndNeverBeforeEnd(t *testing.T) {
	for _, overlap := range []int{0, 1, 7, math.MaxInt - 1, math.MaxInt} {
		chunks, err := Partition(13, 4, overlap)
		require.NoError(t, err)
		for _, c := range chunks {
			assert.GreaterOrEqual(t, c.ScanEnd, c.End, "overlap %d %s", overlap, c)
			assert.LessOrEqual(t, c.ScanEnd, 13, "overlap %d %s", overlap, c)
		}
	}
}

func TestDefaultChunkSymbols(t *testing.T) {
	assert.Equal(t, L2Bytes*4, DefaultChunkSymbols(2))
	assert.Equal(t, L2Bytes*2, DefaultChunkSymbols(4))
	assert.Equal(t, L2Bytes*8/5, DefaultChunkSymbols(5))
}
