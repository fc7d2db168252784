package ros1msg

// Image is the sensor_msgs/Image message: an uncompressed pixel matrix with
// row stride and encoding metadata.
type Image struct {
	Header      Header
	Height      uint32 // number of rows
	Width       uint32 // number of columns
	Encoding    string // pixel encoding, e.g. "rgb8", "mono8"
	IsBigendian uint8
	Step        uint32 // full row length in bytes
	Data        []byte // size is Step * Height
}

// Marshal returns the ROS1 serialization of the message.
func (m *Image) Marshal() []byte {
	e := newEncoder(32 + len(m.Header.FrameID) + len(m.Encoding) + len(m.Data))
	e.header(m.Header)
	e.u32(m.Height)
	e.u32(m.Width)
	e.str(m.Encoding)
	e.u8(m.IsBigendian)
	e.u32(m.Step)
	e.bytes(m.Data)
	return e.buf
}

// CompressedImage is the sensor_msgs/CompressedImage message: an image
// buffer in a compressed interchange format such as jpeg or png.
type CompressedImage struct {
	Header Header
	Format string // "jpeg" or "png"
	Data   []byte
}

// Marshal returns the ROS1 serialization of the message.
func (m *CompressedImage) Marshal() []byte {
	e := newEncoder(24 + len(m.Header.FrameID) + len(m.Format) + len(m.Data))
	e.header(m.Header)
	e.str(m.Format)
	e.bytes(m.Data)
	return e.buf
}
