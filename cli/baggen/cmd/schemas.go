package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	rosbag "github.com/rostools/go-bagwriter"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List message types with predefined schemas",
	Run: func(cmd *cobra.Command, args []string) {
		for _, msgType := range rosbag.PredefinedTypes() {
			_, md5sum, _ := rosbag.Schema(msgType)
			fmt.Printf("%s  %s\n", md5sum, msgType)
		}
	},
}

func init() {
	rootCmd.AddCommand(schemasCmd)
}
