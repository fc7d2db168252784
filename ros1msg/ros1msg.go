// Package ros1msg builds ROS1-serialized message payloads for well-known
// message types, suitable for writing to a bag. Serialization follows the
// ROS1 wire format: all integers and floats little-endian, strings and
// variable-length byte arrays prefixed with a uint32 length, fixed arrays
// laid out flat, and time as a seconds/nanoseconds uint32 pair.
package ros1msg

import (
	"encoding/binary"
	"math"
)

// Header is the std_msgs/Header prefix common to stamped messages.
type Header struct {
	Seq     uint32
	Stamp   uint64 // nanoseconds since the unix epoch
	FrameID string
}

// Int8 is the std_msgs/Int8 message.
type Int8 struct {
	Data int8
}

// Marshal returns the ROS1 serialization of the message.
func (m *Int8) Marshal() []byte {
	return []byte{byte(m.Data)}
}

// encoder accumulates ROS1 wire-format primitives.
type encoder struct {
	buf []byte
}

func newEncoder(capacity int) *encoder {
	return &encoder{buf: make([]byte, 0, capacity)}
}

func (e *encoder) u8(x uint8) {
	e.buf = append(e.buf, x)
}

func (e *encoder) u32(x uint32) {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, x)
}

func (e *encoder) f64(x float64) {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, math.Float64bits(x))
}

// str emits a uint32 length followed by the raw bytes, no terminator.
func (e *encoder) str(s string) {
	e.u32(uint32(len(s)))
	e.buf = append(e.buf, s...)
}

// bytes emits a uint32 length followed by the raw bytes.
func (e *encoder) bytes(p []byte) {
	e.u32(uint32(len(p)))
	e.buf = append(e.buf, p...)
}

// time emits a nanosecond timestamp as sec:u32 then nsec:u32.
func (e *encoder) time(ns uint64) {
	e.u32(uint32(ns / 1e9))
	e.u32(uint32(ns % 1e9))
}

func (e *encoder) header(h Header) {
	e.u32(h.Seq)
	e.time(h.Stamp)
	e.str(h.FrameID)
}
