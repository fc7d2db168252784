package rosbag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaLookup(t *testing.T) {
	cases := []struct {
		msgType string
		md5sum  string
	}{
		{"std_msgs/msg/Int8", "27ffa0c9c4b8fb8492252bcad9e5c57b"},
		{"sensor_msgs/msg/CompressedImage", "8f7a12909da2c9d3332d540a0977563f"},
		{"sensor_msgs/msg/Image", "060021388200f6f0f447d0fcd9c64743"},
		{"sensor_msgs/msg/Imu", "6a62c6daae103f4ff57a132d6f95cec2"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.msgType, func(t *testing.T) {
			s, ok := lookupSchema(c.msgType)
			require.True(t, ok)
			assert.Equal(t, c.md5sum, s.md5sum)
			assert.Len(t, s.md5sum, 32)
			assert.NotEmpty(t, s.definition)

			// both the "pkg/msg/Type" and "pkg/Type" spellings resolve to
			// the same schema.
			alias, ok := lookupSchema(strings.Replace(c.msgType, "/msg/", "/", 1))
			require.True(t, ok)
			assert.Equal(t, s, alias)
		})
	}
}

func TestSchemaLookupUnknown(t *testing.T) {
	_, ok := lookupSchema("test_msgs/msg/Nope")
	assert.False(t, ok)
}

func TestSchemaDefinitions(t *testing.T) {
	int8, _ := lookupSchema("std_msgs/Int8")
	assert.Equal(t, "int8 data", int8.definition)

	// multi-section definitions carry their dependency sections.
	imu, _ := lookupSchema("sensor_msgs/Imu")
	assert.Contains(t, imu.definition, "MSG: std_msgs/Header")
	assert.Contains(t, imu.definition, "MSG: geometry_msgs/Quaternion")
	assert.Contains(t, imu.definition, "MSG: geometry_msgs/Vector3")

	image, _ := lookupSchema("sensor_msgs/Image")
	assert.Contains(t, image.definition, "uint8[] data")
	assert.Contains(t, image.definition, "MSG: std_msgs/Header")
}
