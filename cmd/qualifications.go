package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/qualification"
)

var qualificationsCmd = &cobra.Command{
	Use:   "qualifications",
	Short: "Print the qualification levels from lowest to highest",
	Run: func(_ *cobra.Command, _ []string) {
		log := newLogger()

		config, err := getConfig()
		if err != nil {
			log.Fatal("getting a config", zap.Error(err))
		}

		levels, err := config.Levels()
		if err != nil {
			log.Fatal("building qualification levels", zap.Error(err))
		}

		if err := printLevels(os.Stdout, levels); err != nil {
			log.Fatal("printing qualification levels", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(qualificationsCmd)
}

func printLevels(out io.Writer, levels *qualification.Levels) error {
	for i, name := range levels.Names() {
		if _, err := fmt.Fprintf(out, "%2d %s\n", i, name); err != nil {
			return err
		}
	}
	return nil
}
