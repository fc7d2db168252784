package rosbag

import (
	"fmt"
	"sort"
	"strconv"
)

// Writer is a writer for ROS bag files, format version 2.0. It accepts a
// stream of (connection, timestamp, payload) triples and produces a bag
// whose byte layout matches the reference implementation, so any existing
// ROS1 bag reader can open it. Indexing and chunk rotation are handled
// internally.
//
// Because the start of a bag file contains a pointer to the index at the end
// of the file, the bag header is written with placeholder values on open and
// patched in place on close, once the trailing index position and the chunk
// and connection counts are known. A fixed envelope is reserved for it so no
// downstream bytes move.
//
// The writer is single-owner and not safe for concurrent use.
type Writer struct {
	path string
	mem  *memorySink // non-nil in memory mode
	out  sink

	phase  writerPhase
	config writerConfig

	chunk  *chunk
	chunks []chunkInfo

	connections []*Connection
	identities  map[string]uint32

	buf32 []byte
}

const (
	// defaultChunkThreshold is the default chunk rotation threshold of the
	// writer.
	defaultChunkThreshold = 1 << 20

	// bagHeaderEnvelope is the reserved on-disk size of the bag header
	// record including its padding, starting immediately after the magic
	// bytes. The first chunk record begins at len(Magic) + bagHeaderEnvelope.
	bagHeaderEnvelope = 4096
)

// writerPhase tracks the writer through its lifecycle. Transitions are one
// way; a closed writer cannot be reopened.
type writerPhase int

const (
	phaseFresh writerPhase = iota
	phaseOpen
	phaseClosed
)

// chunkInfo is the retained summary of a flushed chunk, converted to a
// physical chunk info record on close.
type chunkInfo struct {
	pos    int64             // offset of the chunk record
	start  uint64            // earliest message timestamp, chunkStartUnset if none
	end    uint64            // latest message timestamp
	counts map[uint32]uint32 // message count per connection id
}

// NewWriter constructs a bag writer that writes to a file at path. The file
// is created on Open; a path that already exists at that point fails with
// ErrFileExists.
func NewWriter(path string, opts ...WriterOption) (*Writer, error) {
	return newWriter(path, nil, opts)
}

// NewInMemoryWriter constructs a bag writer that accumulates the bag in
// memory. The output is available from Bytes after Close.
func NewInMemoryWriter(opts ...WriterOption) (*Writer, error) {
	return newWriter("", newMemorySink(), opts)
}

func newWriter(path string, mem *memorySink, opts []WriterOption) (*Writer, error) {
	// default configuration values
	config := writerConfig{
		chunkThreshold: defaultChunkThreshold,
		compression:    CompressionNone,
	}

	// apply config overrides
	for _, opt := range opts {
		opt(&config)
	}

	if config.compression != CompressionNone {
		return nil, ErrUnsupportedCompression{compression: config.compression}
	}

	return &Writer{
		path:       path,
		mem:        mem,
		config:     config,
		identities: make(map[string]uint32),
		buf32:      make([]byte, 32),
	}, nil
}

// Open acquires the destination and writes the bag leader: the magic bytes
// followed by a preliminary bag header padded to its reserved envelope.
// Opening an already-open writer is a no-op; a closed writer cannot be
// reopened.
func (w *Writer) Open() error {
	switch w.phase {
	case phaseOpen:
		return nil
	case phaseClosed:
		return ErrAlreadyClosed
	}

	if w.mem != nil {
		w.out = w.mem
	} else {
		out, err := openFileSink(w.path)
		if err != nil {
			return err
		}
		w.out = out
	}

	if err := w.writeLeader(); err != nil {
		w.out.Close()
		return err
	}

	w.chunk = newChunk(w.config.chunkThreshold)
	w.phase = phaseOpen

	return nil
}

func (w *Writer) writeLeader() error {
	if _, err := w.out.Write(Magic); err != nil {
		return err
	}
	if _, err := w.out.Write(marshalBagHeader(BagHeader{})); err != nil {
		return err
	}
	return nil
}

// AddConnection registers a connection and writes its connection record into
// the active chunk. A missing message definition or md5sum is resolved from
// the predefined schema table; message types absent from the table must
// supply both. A connection whose full identifying tuple (topic, type,
// definition, md5sum, callerid, latching) matches an existing one is
// rejected. The returned handle is only valid against this writer.
func (w *Writer) AddConnection(topic, msgType string, opts ...ConnectionOption) (*Connection, error) {
	if w.phase != phaseOpen {
		return nil, ErrNotOpen
	}

	config := connectionConfig{}
	for _, opt := range opts {
		opt(&config)
	}

	if config.definition == nil || config.md5sum == nil {
		s, ok := lookupSchema(msgType)
		if !ok {
			return nil, ErrSchemaRequired{msgType: msgType}
		}
		if config.definition == nil {
			config.definition = &s.definition
		}
		if config.md5sum == nil {
			config.md5sum = &s.md5sum
		}
	}

	conn := &Connection{
		ID:                uint32(len(w.connections)),
		Topic:             topic,
		Type:              msgType,
		MD5Sum:            *config.md5sum,
		MessageDefinition: *config.definition,
		CallerID:          config.callerID,
		Latching:          config.latching,
		owner:             w,
	}

	identity := conn.identity()
	if _, ok := w.identities[identity]; ok {
		return nil, ErrDuplicateConnection{topic: topic, msgType: msgType}
	}

	w.chunk.append(marshalConnection(conn))

	w.identities[identity] = conn.ID
	w.connections = append(w.connections, conn)

	return conn, nil
}

// WriteMessage writes a message data record to the active chunk. The index
// entry for the message is captured before the record is appended, so the
// recorded offset is the position of the record header within the chunk
// body. If the chunk exceeds the configured threshold after the append, it
// is flushed and a fresh chunk installed; messages are never split across
// chunks.
func (w *Writer) WriteMessage(conn *Connection, time uint64, payload []byte) error {
	if w.phase != phaseOpen {
		return ErrNotOpen
	}
	if conn == nil || conn.owner != w {
		var id uint32
		if conn != nil {
			id = conn.ID
		}
		return ErrUnknownConnection{conn: id}
	}

	// If possible, pre-size the connection's index from the number of
	// messages it carried in the previous chunk.
	sizeHint := 0
	if nchunks := len(w.chunks); nchunks > 0 {
		sizeHint = int(w.chunks[nchunks-1].counts[conn.ID])
	}
	w.chunk.record(conn.ID, time, sizeHint)

	var h header
	h.setU32("conn", conn.ID)
	h.setTime("time", time)

	w.chunk.append(h.serialize(OpMessageData))
	putU32(w.buf32, uint32(len(payload)))
	w.chunk.append(w.buf32[:4])
	w.chunk.append(payload)

	if w.chunk.size() > uint32(w.config.chunkThreshold) {
		return w.flushActiveChunk()
	}

	return nil
}

// Close flushes the active chunk, writes the trailing index (connection
// records followed by chunk info records), patches the final bag header over
// the preliminary one, and releases the destination. Closing an
// already-closed writer is a no-op. The destination is released on all exit
// paths.
func (w *Writer) Close() error {
	switch w.phase {
	case phaseClosed:
		return nil
	case phaseFresh:
		return ErrNotOpen
	}

	err := w.finalize()
	closeErr := w.out.Close()
	w.phase = phaseClosed

	if err != nil {
		return err
	}
	return closeErr
}

func (w *Writer) finalize() error {
	if err := w.flushActiveChunk(); err != nil {
		return err
	}

	indexPos := w.out.Position()

	// The bag specification does not exactly spell it out, but ROS tooling
	// expects the post-chunk section to consist of a block of connection
	// records, followed by a block of chunk info records.
	for _, conn := range w.connections {
		if _, err := w.out.Write(marshalConnection(conn)); err != nil {
			return fmt.Errorf("failed to write connection record: %w", err)
		}
	}

	for _, info := range w.chunks {
		if err := w.writeChunkInfo(info); err != nil {
			return err
		}
	}

	// The final header has the same field set as the preliminary one and
	// therefore the same serialized length, so it fills the reserved
	// envelope exactly.
	final := marshalBagHeader(BagHeader{
		IndexPos:   uint64(indexPos),
		ConnCount:  uint32(len(w.connections)),
		ChunkCount: uint32(len(w.chunks)),
	})

	return w.out.Patch(int64(len(Magic)), final)
}

// Bytes returns the produced bag. It is only available on in-memory writers,
// after Close.
func (w *Writer) Bytes() ([]byte, error) {
	if w.mem == nil {
		return nil, ErrWrongMode
	}
	if w.phase != phaseClosed {
		return nil, ErrNotClosed
	}
	return w.mem.Bytes(), nil
}

// flushActiveChunk flushes the current chunk to the output as a chunk record
// followed by one index data record per participating connection, then
// installs a fresh chunk. A chunk that never received any bytes is skipped;
// a chunk holding only connection records is still flushed.
func (w *Writer) flushActiveChunk() error {
	if w.chunk.size() == 0 {
		return nil
	}

	// current position in the output is the location of the chunk record.
	w.chunk.pos = w.out.Position()

	// With compression disabled the stored body length equals the
	// uncompressed size.
	var h header
	h.setString("compression", CompressionNone)
	h.setU32("size", w.chunk.size())

	if err := w.writeRecord(h.serialize(OpChunk), w.chunk.finalize()); err != nil {
		return fmt.Errorf("failed to write chunk: %w", err)
	}

	// A chunk record is followed by one index data record per connection,
	// in ascending id order so identical inputs produce identical outputs.
	// Map iteration in Go is otherwise random.
	counts := make(map[uint32]uint32, len(w.chunk.index))
	for _, id := range w.chunk.connIDs() {
		entries := w.chunk.index[id]
		counts[id] = uint32(len(entries))
		if err := w.writeIndexData(id, entries); err != nil {
			return err
		}
	}

	w.chunks = append(w.chunks, chunkInfo{
		pos:    w.chunk.pos,
		start:  w.chunk.start,
		end:    w.chunk.end,
		counts: counts,
	})

	w.chunk = newChunk(w.config.chunkThreshold)

	return nil
}

// writeIndexData writes an index data record to the output. See
// http://wiki.ros.org/Bags/Format/2.0#Index_data for details.
func (w *Writer) writeIndexData(conn uint32, entries []indexEntry) error {
	var h header
	h.setU32("ver", 1) // version 1 is assumed
	h.setU32("conn", conn)
	h.setU32("count", uint32(len(entries)))

	data := make([]byte, 12*len(entries))
	offset := 0
	for _, entry := range entries {
		offset += putRostime(data[offset:], entry.time)
		offset += putU32(data[offset:], entry.offset)
	}

	if err := w.writeRecord(h.serialize(OpIndexData), data); err != nil {
		return fmt.Errorf("failed to write index data: %w", err)
	}

	return nil
}

// writeChunkInfo writes a chunk info record to the output. See
// http://wiki.ros.org/Bags/Format/2.0#Chunk_info for details.
func (w *Writer) writeChunkInfo(info chunkInfo) error {
	start := info.start
	if start == chunkStartUnset {
		start = 0
	}

	var h header
	h.setU32("ver", 1) // version 1 is assumed
	h.setU64("chunk_pos", uint64(info.pos))
	h.setTime("start_time", start)
	h.setTime("end_time", info.end)
	h.setU32("count", uint32(len(info.counts)))

	// The data portion consists of back-to-back connection ids and
	// per-connection message counts, as uint32 pairs in ascending id order.
	ids := make([]uint32, 0, len(info.counts))
	for id := range info.counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})

	data := make([]byte, 8*len(ids))
	offset := 0
	for _, id := range ids {
		offset += putU32(data[offset:], id)
		offset += putU32(data[offset:], info.counts[id])
	}

	if err := w.writeRecord(h.serialize(OpChunkInfo), data); err != nil {
		return fmt.Errorf("failed to write chunk info: %w", err)
	}

	return nil
}

// writeRecord writes a record to the output: the serialized header, then the
// length-prefixed data portion. See
// http://wiki.ros.org/Bags/Format/2.0#Records for details.
func (w *Writer) writeRecord(header, data []byte) error {
	if _, err := w.out.Write(header); err != nil {
		return fmt.Errorf("failed to write record header: %w", err)
	}

	putU32(w.buf32, uint32(len(data)))
	if _, err := w.out.Write(w.buf32[:4]); err != nil {
		return fmt.Errorf("failed to write record data length: %w", err)
	}

	if _, err := w.out.Write(data); err != nil {
		return fmt.Errorf("failed to write record data: %w", err)
	}

	return nil
}

// marshalBagHeader serializes a bag header record padded out with ASCII
// spaces so that the record occupies exactly bagHeaderEnvelope bytes. The
// padding length depends only on the field set, which both headers share.
func marshalBagHeader(bh BagHeader) []byte {
	var h header
	h.setU64("index_pos", bh.IndexPos)
	h.setU32("conn_count", bh.ConnCount)
	h.setU32("chunk_count", bh.ChunkCount)
	hdr := h.serialize(OpBagHeader)

	padding := bagHeaderEnvelope - len(hdr) - 4

	buf := make([]byte, bagHeaderEnvelope)
	offset := copy(buf, hdr)
	offset += putU32(buf[offset:], uint32(padding))
	for i := offset; i < len(buf); i++ {
		buf[i] = 0x20
	}

	return buf
}

// marshalConnection serializes a connection record: the record header
// carrying the id and storage topic, followed by the connection detail
// header. The detail header's leading length prefix doubles as the record
// body length. See http://wiki.ros.org/Bags/Format/2.0#Connection for
// details.
func marshalConnection(conn *Connection) []byte {
	var rec header
	rec.setU32("conn", conn.ID)
	rec.setString("topic", conn.Topic)

	var detail header
	detail.setString("topic", conn.Topic)
	detail.setString("type", conn.Type)
	detail.setString("md5sum", conn.MD5Sum)
	detail.setString("message_definition", conn.MessageDefinition)
	if conn.CallerID != nil {
		detail.setString("callerid", *conn.CallerID)
	}
	if conn.Latching != nil {
		detail.setString("latching", strconv.Itoa(*conn.Latching))
	}

	return append(rec.serialize(OpConnection), detail.serialize(OpInvalid)...)
}
