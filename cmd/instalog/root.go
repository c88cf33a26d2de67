package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:     "instalog",
	Short:   "Generate a single-shot Windows diagnostic report",
	Version: reportVersion,
	Long: `instalog runs a script of scanning sections — running processes,
services and drivers, the event log, machine specifications, restore
points, installed programs, and recently-created files — and writes the
combined findings to a single report file for malware and
misconfiguration triage.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging to stderr")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress messages")
	rootCmd.AddCommand(runCmd)
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		code := 1
		if ee, ok := err.(exitError); ok {
			code = ee.code
		}
		os.Exit(code)
	}
}

// printInfo prints a progress message unless quiet mode is set.
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}
