package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Actual version and commit can be specified in build command.
var (
	version = "unknown"
	commit  = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		short, _ := cmd.Flags().GetBool("short")
		fmt.Fprintln(cmd.OutOrStdout(), versionString(short))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().Bool("short", false, "print only the version number")
}

func versionString(short bool) string {
	if short {
		return version
	}
	if commit != "" {
		return fmt.Sprintf("%s version: %s (%s)", app, version, commit)
	}
	return fmt.Sprintf("%s version: %s", app, version)
}
