package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "director",
	Short: "Session director for the Sherlock case",
	Long: "Drives a case session from a live feed or the scripted rehearsal, " +
		"keeping one session state and the audio mix in sync.",
	SilenceUsage: true,
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "director.yaml", "path to the yaml config file")
	rootCmd.AddCommand(runCmd, schemaCmd)

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
