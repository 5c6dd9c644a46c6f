package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamBufferDrainRevealsInOrder(t *testing.T) {
	b := NewStreamBuffer()
	b.Append("Referto")
	b.Append(" medico")

	assert.Equal(t, "Refe", b.Drain(4))
	assert.Equal(t, "rto ", b.Drain(4))
	assert.Equal(t, "Refe"+"rto ", b.Rendered())
	assert.Equal(t, "Referto medico", b.Total())
	assert.Equal(t, 6, b.PendingLen())
}

func TestStreamBufferRenderedIsPrefixOfTotal(t *testing.T) {
	b := NewStreamBuffer()
	for _, frag := range []string{"Referto", " medico", " normale"} {
		b.Append(frag)
		b.Drain(3)
		assert.True(t, len(b.Rendered()) <= len(b.Total()))
		assert.Equal(t, b.Total()[:len(b.Rendered())], b.Rendered())
	}
	b.FlushAll()
	assert.Equal(t, "Referto medico normale", b.Rendered())
	assert.Equal(t, b.Total(), b.Rendered())
	assert.Zero(t, b.PendingLen())
}

func TestStreamBufferDrainBudgetEdges(t *testing.T) {
	b := NewStreamBuffer()
	assert.Equal(t, "", b.Drain(4), "empty queue")

	b.Append("ab")
	assert.Equal(t, "", b.Drain(0))
	assert.Equal(t, "ab", b.Drain(10), "budget beyond queue length")
	assert.Equal(t, "", b.FlushAll())
}

func TestStreamBufferHandlesMultibyteRunes(t *testing.T) {
	b := NewStreamBuffer()
	b.Append("già à")
	assert.Equal(t, "già", b.Drain(3))
	assert.Equal(t, " à", b.FlushAll())
	assert.Equal(t, "già à", b.Rendered())
}
