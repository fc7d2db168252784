package cmd

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	rosbag "github.com/rostools/go-bagwriter"
	"github.com/rostools/go-bagwriter/ros1msg"
)

var (
	output         string
	messageCount   int
	chunkThreshold int
)

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Record an example bag with a counter topic and a synthetic IMU topic",
	Run: func(cmd *cobra.Command, args []string) {
		if err := writeExample(output, messageCount, chunkThreshold); err != nil {
			logrus.WithError(err).Fatalf("failed to write %s", output)
		}
	},
}

func writeExample(path string, count, threshold int) error {
	writer, err := rosbag.NewWriter(path, rosbag.WithChunkThreshold(threshold))
	if err != nil {
		return err
	}
	if err := writer.Open(); err != nil {
		return err
	}
	defer writer.Close()

	counter, err := writer.AddConnection("/counter", "std_msgs/msg/Int8")
	if err != nil {
		return err
	}
	imu, err := writer.AddConnection("/imu/data", "sensor_msgs/msg/Imu",
		rosbag.WithCallerID("baggen"))
	if err != nil {
		return err
	}

	start := uint64(time.Now().UnixNano())
	for i := 0; i < count; i++ {
		// 20Hz, IMU samples offset by a millisecond from the counter.
		stamp := start + uint64(i)*50e6

		tick := ros1msg.Int8{Data: int8(i)}
		if err := writer.WriteMessage(counter, stamp, tick.Marshal()); err != nil {
			return err
		}

		sample := ros1msg.Imu{
			Header: ros1msg.Header{
				Seq:     uint32(i),
				Stamp:   stamp,
				FrameID: "imu_link",
			},
			Orientation:           ros1msg.Quaternion{W: 1},
			OrientationCovariance: [9]float64{-1},
			AngularVelocity: ros1msg.Vector3{
				Z: 0.1 * math.Sin(float64(i)/10),
			},
			LinearAcceleration: ros1msg.Vector3{Z: 9.81},
		}
		if err := writer.WriteMessage(imu, stamp+1e6, sample.Marshal()); err != nil {
			return err
		}
		logrus.Debugf("wrote message pair %d at %d", i, stamp)
	}

	if err := writer.Close(); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"path":     path,
		"messages": 2 * count,
	}).Info("bag written")

	return nil
}

func init() {
	exampleCmd.Flags().StringVarP(&output, "output", "o", "example.bag", "output bag path")
	exampleCmd.Flags().IntVarP(&messageCount, "count", "n", 100, "messages per topic")
	exampleCmd.Flags().IntVar(&chunkThreshold, "chunk-threshold", 1<<20, "chunk rotation threshold in bytes")
	rootCmd.AddCommand(exampleCmd)
}
