package rosbag

// WriterOption configures a Writer at construction time.
type WriterOption func(c *writerConfig)

// WithChunkThreshold sets the chunk rotation threshold in bytes. A chunk is
// flushed once its size exceeds the threshold; a single message larger than
// the threshold still lands whole in one chunk. The default is 1MB.
func WithChunkThreshold(threshold int) WriterOption {
	return func(c *writerConfig) {
		c.chunkThreshold = threshold
	}
}

// WithCompression sets the chunk compression on the output bag. The only
// supported value is "none"; anything else fails writer construction.
func WithCompression(compression string) WriterOption {
	return func(c *writerConfig) {
		c.compression = compression
	}
}

type writerConfig struct {
	chunkThreshold int
	compression    string
}

// ConnectionOption configures a connection added to a bag.
type ConnectionOption func(c *connectionConfig)

// WithMessageDefinition sets the full message definition text. If absent,
// the definition is resolved from the predefined schema table.
func WithMessageDefinition(definition string) ConnectionOption {
	return func(c *connectionConfig) {
		c.definition = &definition
	}
}

// WithMD5Sum sets the md5sum of the message type. If absent, the sum is
// resolved from the predefined schema table.
func WithMD5Sum(md5sum string) ConnectionOption {
	return func(c *connectionConfig) {
		c.md5sum = &md5sum
	}
}

// WithCallerID sets the name of the node sending data.
func WithCallerID(callerID string) ConnectionOption {
	return func(c *connectionConfig) {
		c.callerID = &callerID
	}
}

// WithLatching marks the publisher as latching. The value is serialized as
// its decimal string; values outside {0, 1} are not validated.
func WithLatching(latching int) ConnectionOption {
	return func(c *connectionConfig) {
		c.latching = &latching
	}
}

type connectionConfig struct {
	definition *string
	md5sum     *string
	callerID   *string
	latching   *int
}
