package rosbag

import (
	"bytes"
	"math"
	"sort"
)

// chunkStartUnset is the sentinel start time of a chunk that has not yet
// seen a message. It is encoded as time zero in the chunk info record if it
// survives to close.
const chunkStartUnset = uint64(math.MaxUint64)

// indexEntry is one message occurrence within a chunk: the message timestamp
// and the byte offset of its record header within the chunk body.
type indexEntry struct {
	time   uint64
	offset uint32
}

// chunk accumulates connection and message records destined for a single
// CHUNK record, together with the index data needed to emit the trailing
// IDXDATA records once the chunk is flushed.
type chunk struct {
	body *bytes.Buffer

	// pos is the absolute file offset of the chunk's CHUNK record, -1
	// until the chunk has been flushed.
	pos int64

	start uint64 // earliest message timestamp, chunkStartUnset if none
	end   uint64 // latest message timestamp

	// index maps connection id to the ordered message occurrences on that
	// connection within this chunk.
	index map[uint32][]indexEntry
}

// newChunk returns an empty chunk with body capacity preallocated to the
// writer's chunk threshold, to avoid repeatedly expanding the buffer.
func newChunk(capacity int) *chunk {
	return &chunk{
		body:  bytes.NewBuffer(make([]byte, 0, capacity)),
		pos:   -1,
		start: chunkStartUnset,
		end:   0,
		index: make(map[uint32][]indexEntry),
	}
}

// append adds bytes to the chunk body.
func (c *chunk) append(p []byte) {
	c.body.Write(p)
}

// offset returns the current body size, which is the offset at which the
// next appended bytes will land.
func (c *chunk) offset() uint32 {
	return uint32(c.body.Len())
}

// size returns the number of bytes appended so far.
func (c *chunk) size() uint32 {
	return uint32(c.body.Len())
}

// finalize returns the concatenated chunk body.
func (c *chunk) finalize() []byte {
	return c.body.Bytes()
}

// record captures a message occurrence: the index entry is recorded against
// the current body offset, and the chunk time bounds are widened to cover
// the message timestamp. Must be called before the message bytes are
// appended, so the recorded offset points at the record header.
func (c *chunk) record(conn uint32, time uint64, sizeHint int) {
	entries, ok := c.index[conn]
	if !ok && sizeHint > 0 {
		entries = make([]indexEntry, 0, sizeHint)
	}
	c.index[conn] = append(entries, indexEntry{time: time, offset: c.offset()})

	if time < c.start {
		c.start = time
	}
	if time > c.end {
		c.end = time
	}
}

// connIDs returns the ids of the connections present in the chunk index in
// ascending order, for deterministic output.
func (c *chunk) connIDs() []uint32 {
	ids := make([]uint32, 0, len(c.index))
	for id := range c.index {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}
