package rosbag

// header is an ordered set of record header fields. Insertion order is
// preserved and defines serialization order. See
// http://wiki.ros.org/Bags/Format/2.0#Headers for the on-disk form.
type header struct {
	fields []headerField
}

// headerField is a single key=value pair of a record header. The value is
// already-serialized binary; the key is raw bytes.
type headerField struct {
	key   string
	value []byte
}

func (h *header) set(key string, value []byte) {
	h.fields = append(h.fields, headerField{key: key, value: value})
}

func (h *header) setU32(key string, x uint32) {
	value := make([]byte, 4)
	putU32(value, x)
	h.set(key, value)
}

func (h *header) setU64(key string, x uint64) {
	value := make([]byte, 8)
	putU64(value, x)
	h.set(key, value)
}

// setTime sets a nanosecond timestamp, serialized as sec:u32 then nsec:u32.
func (h *header) setTime(key string, t uint64) {
	value := make([]byte, 8)
	putRostime(value, t)
	h.set(key, value)
}

func (h *header) setString(key, value string) {
	h.set(key, []byte(value))
}

// serialize returns the wire form of the header: a 4-byte little-endian
// total length, then for each field a 4-byte little-endian length followed
// by "key=value". If op is not OpInvalid, a synthetic "op" field holding the
// single opcode byte is emitted first. The result is exactly 4 + D bytes,
// where D is the total length. Any record body and its length prefix are the
// caller's concern.
func (h *header) serialize(op OpCode) []byte {
	fields := h.fields
	if op != OpInvalid {
		fields = append([]headerField{{key: "op", value: []byte{byte(op)}}}, fields...)
	}

	total := 0
	for _, f := range fields {
		total += 4 + len(f.key) + 1 + len(f.value)
	}

	buf := make([]byte, 4+total)
	offset := putU32(buf, uint32(total))
	for _, f := range fields {
		offset += putU32(buf[offset:], uint32(len(f.key)+1+len(f.value)))
		offset += copy(buf[offset:], f.key)
		buf[offset] = '='
		offset++
		offset += copy(buf[offset:], f.value)
	}

	return buf
}
