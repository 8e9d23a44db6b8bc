package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Length int    `json:"length"`
}

func TestCodecsAgree(t *testing.T) {
	in := entry{Name: "chr1", Kind: "dna", Length: 248956422}

	a, err := GoJSON{}.Marshal(in)
	require.NoError(t, err)
	b, err := JSON{}.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))

	var out entry
	require.NoError(t, JSON{}.Unmarshal(a, &out))
	assert.Equal(t, in, out)
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}
	_, ok := ByName("msgpack")
	assert.False(t, ok)

	assert.Equal(t, "go-json", Default.Name())
	assert.Panics(t, func() { MustByName("xml") })
}
