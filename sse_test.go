package pumpd

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSEReader(t *testing.T) {
	r := NewSSEReader(strings.NewReader("{\"a\":1}\n\n\n{\"b\":2}\r\n\r\ndata: x\ndata: y\n\ntrailing"))

	payload, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(payload))

	payload, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, string(payload))

	payload, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "x\ny", string(payload))

	payload, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "trailing", string(payload))
}
