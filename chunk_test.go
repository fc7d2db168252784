package rosbag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkAccumulation(t *testing.T) {
	c := newChunk(64)
	assert.Equal(t, uint32(0), c.offset())
	assert.Equal(t, int64(-1), c.pos)
	assert.Equal(t, chunkStartUnset, c.start)
	assert.Equal(t, uint64(0), c.end)

	c.append([]byte{0x01, 0x02, 0x03})
	assert.Equal(t, uint32(3), c.offset())
	assert.Equal(t, uint32(3), c.size())

	c.append([]byte{0x04})
	assert.Equal(t, uint32(4), c.size())
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, c.finalize())
}

func TestChunkRecordTracksBounds(t *testing.T) {
	c := newChunk(64)
	c.append(make([]byte, 10))

	c.record(7, 50, 0)
	assert.Equal(t, uint64(50), c.start)
	assert.Equal(t, uint64(50), c.end)

	c.record(7, 10, 0)
	c.record(3, 99, 0)
	assert.Equal(t, uint64(10), c.start)
	assert.Equal(t, uint64(99), c.end)

	// offsets are captured at record time, before the message bytes land.
	assert.Equal(t, []indexEntry{
		{time: 50, offset: 10},
		{time: 10, offset: 10},
	}, c.index[7])
	assert.Equal(t, []indexEntry{{time: 99, offset: 10}}, c.index[3])
}

func TestChunkConnIDsSorted(t *testing.T) {
	c := newChunk(64)
	for _, id := range []uint32{9, 2, 7, 0, 5} {
		c.record(id, 1, 0)
	}
	assert.Equal(t, []uint32{0, 2, 5, 7, 9}, c.connIDs())
}
