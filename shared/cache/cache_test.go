package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedRoom struct {
	ID       string   `json:"id"`
	Capacity int      `json:"capacity"`
	Tags     []string `json:"tags"`
}

func TestEncodeDecode(t *testing.T) {
	raw, err := encode("user-id")
	require.NoError(t, err)
	assert.Equal(t, []byte("user-id"), raw)

	var plain string
	require.NoError(t, decode(string(raw), &plain))
	assert.Equal(t, "user-id", plain)

	raw, err = encode(cachedRoom{ID: "r1", Capacity: 8, Tags: []string{"tv"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"r1","capacity":8,"tags":["tv"]}`, string(raw))

	var room cachedRoom
	require.NoError(t, decode(string(raw), &room))
	assert.Equal(t, cachedRoom{ID: "r1", Capacity: 8, Tags: []string{"tv"}}, room)
}

func TestEncodeDecode_Errors(t *testing.T) {
	_, err := encode(make(chan int))
	assert.Error(t, err)

	var room cachedRoom
	assert.Error(t, decode("{", &room))
}
