package rosbag

import (
	"sort"
	"strings"
)

// schema is a predefined message schema: the full message definition text
// and the md5sum of the message type.
type schema struct {
	definition string
	md5sum     string
}

// Message definitions below are the canonical gendeps --cat outputs for the
// well-known types, reproduced verbatim including dependent sections.

const headerDefinition = `MSG: std_msgs/Header
# Standard metadata for higher-level stamped data types.
# This is generally used to communicate timestamped data
# in a particular coordinate frame.
#
# sequence ID: consecutively increasing ID
uint32 seq
#Two-integer timestamp that is expressed as:
# * stamp.sec: seconds (stamp_secs) since epoch (in Python the variable is called 'stamp_secs')
# * stamp.nsec: nanoseconds since stamp_secs (in Python the variable is called 'stamp_nsecs')
# time-handling sugar is provided by the client library
time stamp
#Frame this data is associated with
string frame_id`

const sectionSeparator = "\n================================================================================\n"

const int8Definition = `int8 data`

const compressedImageDefinition = `# This message contains a compressed image

Header header        # Header timestamp should be acquisition time of image
                     # Header frame_id should be optical frame of camera
                     # origin of frame should be optical center of camera
                     # +x should point to the right in the image
                     # +y should point down in the image
                     # +z should point into to plane of the image

string format        # Specifies the format of the data
                     #   Acceptable values:
                     #     jpeg, png
uint8[] data         # Compressed image buffer
` + sectionSeparator + headerDefinition

const imageDefinition = `# This message contains an uncompressed image
# (0, 0) is at top-left corner of image
#

Header header        # Header timestamp should be acquisition time of image
                     # Header frame_id should be optical frame of camera
                     # origin of frame should be optical center of camera
                     # +x should point to the right in the image
                     # +y should point down in the image
                     # +z should point into to plane of the image
                     # If the frame_id here and the frame_id of the CameraInfo
                     # message associated with the image conflict
                     # the behavior is undefined

uint32 height         # image height, that is, number of rows
uint32 width          # image width, that is, number of columns

# The legal values for encoding are in file src/image_encodings.cpp
# If you want to standardize a new string format, join
# ros-users@lists.sourceforge.net and send an email proposing a new encoding.

string encoding       # Encoding of pixels -- channel meaning, ordering, size
                      # taken from the list of strings in include/sensor_msgs/image_encodings.h

uint8 is_bigendian    # is this data bigendian?
uint32 step           # Full row length in bytes
uint8[] data          # actual matrix data, size is (step * rows)
` + sectionSeparator + headerDefinition

const imuDefinition = `# This is a message to hold data from an IMU (Inertial Measurement Unit)
#
# Accelerations should be in m/s^2 (not in g's), and rotational velocity should be in rad/sec
#
# If the covariance of the measurement is known, it should be filled in (if all you know is the
# variance of each measurement, e.g. from the datasheet, just put those along the diagonal)
# A covariance matrix of all zeros will be interpreted as "covariance unknown", and to use the
# data a covariance will have to be assumed or gotten from some other source
#
# If you have no estimate for one of the data elements (e.g. your IMU doesn't produce an orientation
# estimate), please set element 0 of the associated covariance matrix to -1
# If you are interpreting this message, please check for a value of -1 in the first element of each
# covariance matrix, and disregard the associated estimate.

Header header

geometry_msgs/Quaternion orientation
float64[9] orientation_covariance # Row major about x, y, z axes

geometry_msgs/Vector3 angular_velocity
float64[9] angular_velocity_covariance # Row major about x, y, z axes

geometry_msgs/Vector3 linear_acceleration
float64[9] linear_acceleration_covariance # Row major x, y z
` + sectionSeparator + headerDefinition + sectionSeparator + `MSG: geometry_msgs/Quaternion
# This represents an orientation in free space in quaternion form.

float64 x
float64 y
float64 z
float64 w` + sectionSeparator + `MSG: geometry_msgs/Vector3
# This represents a vector in free space.
# It is only meant to represent a direction. Therefore, it does not
# make sense to apply a translation to it (e.g., when applying a
# generic rigid transformation to a Vector3, tf2 will only apply the
# rotation). If you want your data to be translatable too, use the
# geometry_msgs/Point message instead.

float64 x
float64 y
float64 z`

// predefinedSchemas maps well-known message types to their schemas. Each
// type is registered under both its "pkg/msg/Type" and "pkg/Type" names.
var predefinedSchemas = buildSchemaTable(map[string]schema{
	"std_msgs/msg/Int8": {
		definition: int8Definition,
		md5sum:     "27ffa0c9c4b8fb8492252bcad9e5c57b",
	},
	"sensor_msgs/msg/CompressedImage": {
		definition: compressedImageDefinition,
		md5sum:     "8f7a12909da2c9d3332d540a0977563f",
	},
	"sensor_msgs/msg/Image": {
		definition: imageDefinition,
		md5sum:     "060021388200f6f0f447d0fcd9c64743",
	},
	"sensor_msgs/msg/Imu": {
		definition: imuDefinition,
		md5sum:     "6a62c6daae103f4ff57a132d6f95cec2",
	},
})

func buildSchemaTable(base map[string]schema) map[string]schema {
	table := make(map[string]schema, 2*len(base))
	for msgType, s := range base {
		table[msgType] = s
		table[strings.Replace(msgType, "/msg/", "/", 1)] = s
	}
	return table
}

// lookupSchema resolves a predefined schema for a message type. Both the
// "pkg/msg/Type" and "pkg/Type" spellings are recognized.
func lookupSchema(msgType string) (schema, bool) {
	s, ok := predefinedSchemas[msgType]
	return s, ok
}

// Schema returns the predefined message definition and md5sum for a message
// type, if one exists. Both the "pkg/msg/Type" and "pkg/Type" spellings are
// recognized.
func Schema(msgType string) (definition, md5sum string, ok bool) {
	s, ok := lookupSchema(msgType)
	return s.definition, s.md5sum, ok
}

// PredefinedTypes returns the canonical names of the message types with
// predefined schemas, in sorted order.
func PredefinedTypes() []string {
	types := make([]string, 0, len(predefinedSchemas)/2)
	for msgType := range predefinedSchemas {
		if strings.Contains(msgType, "/msg/") {
			types = append(types, msgType)
		}
	}
	sort.Strings(types)
	return types
}
