package rosbag

import "strconv"

// Types and constants for the ROS bag file format, version 2.0. Official
// specification: http://wiki.ros.org/Bags/Format/2.0

// Magic is the magic number for ROS bag files.
var Magic = []byte("#ROSBAG V2.0\n")

// OpCode is a single-byte opcode identifying a record type. See the ROS bag
// spec for details.
type OpCode byte

const (
	// OpInvalid is not in the bag spec. It marks a header with no op field.
	OpInvalid OpCode = 0x00

	// Message data record: http://wiki.ros.org/Bags/Format/2.0#Message_data
	OpMessageData OpCode = 0x02

	// Bag header record: http://wiki.ros.org/Bags/Format/2.0#Bag_header
	OpBagHeader OpCode = 0x03

	// Index data record: http://wiki.ros.org/Bags/Format/2.0#Index_data
	OpIndexData OpCode = 0x04

	// Chunk record: http://wiki.ros.org/Bags/Format/2.0#Chunk
	OpChunk OpCode = 0x05

	// Chunk info record: http://wiki.ros.org/Bags/Format/2.0#Chunk_info
	OpChunkInfo OpCode = 0x06

	// Connection record: http://wiki.ros.org/Bags/Format/2.0#Connection
	OpConnection OpCode = 0x07
)

// CompressionNone is the only chunk compression this writer produces or
// accepts. Compressed chunks (lz4, bz2) are out of scope.
const CompressionNone = "none"

// String returns a string representation of the opcode for display.
func (o OpCode) String() string {
	switch o {
	case OpMessageData:
		return "message data"
	case OpBagHeader:
		return "bag header"
	case OpIndexData:
		return "index data"
	case OpChunk:
		return "chunk"
	case OpChunkInfo:
		return "chunk info"
	case OpConnection:
		return "connection"
	default:
		return "unknown"
	}
}

// BagHeader is the bag header record, occurring once in the file as the
// first record after the magic. It is written with placeholder values on
// open and patched with real values on close, once the location of the
// index is known.
type BagHeader struct {
	IndexPos   uint64 // offset of first record after the chunk section
	ConnCount  uint32 // number of unique connections in the file
	ChunkCount uint32 // number of chunk records in the file
}

// Connection is a channel against which messages are written: a topic plus
// the schema of the messages stored on it. Connections are created by
// (*Writer).AddConnection, assigned dense zero-based ids in creation order,
// and are only valid against the Writer that produced them.
//
// Two topic-bearing headers exist on disk (the record header and the
// connection header). This is because messages can be written to the bag on
// a topic different from where they were originally published; this writer
// stores the same topic in both.
type Connection struct {
	ID     uint32 // unique connection ID, dense and zero-based
	Topic  string // topic on which the messages are stored
	Type   string // message type, e.g. "std_msgs/msg/Int8"
	MD5Sum string // md5sum of the message type, 32 hex characters

	// MessageDefinition is the full text of the message definition,
	// possibly multi-section (output of gendeps --cat).
	MessageDefinition string

	CallerID *string // name of the node sending data, if known
	Latching *int    // publisher latching mode, serialized as a decimal string

	owner *Writer
}

// identity returns the key under which the connection's full identifying
// tuple is registered for duplicate detection. Extension fields participate:
// a connection differing only in latching or callerid is distinct.
func (c *Connection) identity() string {
	key := c.Topic + "\x00" + c.Type + "\x00" + c.MD5Sum + "\x00" + c.MessageDefinition
	if c.CallerID != nil {
		key += "\x00callerid=" + *c.CallerID
	}
	if c.Latching != nil {
		key += "\x00latching=" + strconv.Itoa(*c.Latching)
	}
	return key
}
