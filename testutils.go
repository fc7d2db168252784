package rosbag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// record is a parsed bag record, used by tests to check the structure of
// produced bags.
type record struct {
	op     OpCode
	fields map[string][]byte
	data   []byte
	pos    int // offset of the record within the scanned buffer
}

// scanRecord parses the record starting at buf[offset:] and returns it along
// with the offset of the next record.
func scanRecord(t *testing.T, buf []byte, offset int) (record, int) {
	t.Helper()

	var headerLen int
	o := offset
	require.LessOrEqual(t, o+4, len(buf))
	o += readInt(&headerLen, buf[o:])

	fields := make(map[string][]byte)
	end := o + headerLen
	require.LessOrEqual(t, end, len(buf))
	for o < end {
		var fieldLen int
		o += readInt(&fieldLen, buf[o:])
		field := buf[o : o+fieldLen]
		o += fieldLen
		i := bytes.IndexByte(field, '=')
		require.GreaterOrEqual(t, i, 0, "header field without separator")
		fields[string(field[:i])] = field[i+1:]
	}
	require.Equal(t, end, o, "header fields overran header length")

	var dataLen int
	require.LessOrEqual(t, o+4, len(buf))
	o += readInt(&dataLen, buf[o:])
	require.LessOrEqual(t, o+dataLen, len(buf))
	data := buf[o : o+dataLen]
	o += dataLen

	rec := record{fields: fields, data: data, pos: offset}
	if op, ok := fields["op"]; ok {
		require.Len(t, op, 1)
		rec.op = OpCode(op[0])
	}
	return rec, o
}

// scanRecords parses all records in buf[offset:len(buf)].
func scanRecords(t *testing.T, buf []byte, offset int) []record {
	t.Helper()
	var records []record
	for offset < len(buf) {
		var rec record
		rec, offset = scanRecord(t, buf, offset)
		records = append(records, rec)
	}
	return records
}

// scanBag checks the magic and parses all top-level records of a produced
// bag. Records nested inside chunk bodies are not descended into; scan the
// chunk data separately for those.
func scanBag(t *testing.T, bag []byte) []record {
	t.Helper()
	require.True(t, bytes.HasPrefix(bag, Magic), "bag does not start with magic")
	return scanRecords(t, bag, len(Magic))
}

// bagfile writes a bag in memory with a small chunk threshold and returns
// the produced bytes.
func bagfile(t *testing.T, build func(w *Writer)) []byte {
	t.Helper()
	w, err := NewInMemoryWriter(WithChunkThreshold(2048))
	require.NoError(t, err)
	require.NoError(t, w.Open())
	build(w)
	require.NoError(t, w.Close())
	bag, err := w.Bytes()
	require.NoError(t, err)
	return bag
}
