package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is stamped by the release build via -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gapcheck version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gapcheck %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
