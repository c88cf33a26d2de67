package main

import (
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/billyoneal/instalog-go/internal/diaglog"
	"github.com/billyoneal/instalog-go/internal/logsink"
	"github.com/billyoneal/instalog-go/internal/oserr"
	"github.com/billyoneal/instalog-go/internal/osfacade/scopes"
	"github.com/billyoneal/instalog-go/internal/pathresolve"
	"github.com/billyoneal/instalog-go/internal/report"
	"github.com/billyoneal/instalog-go/internal/script"
	"github.com/billyoneal/instalog-go/internal/sections"
)

const reportVersion = "1.0"

var (
	scriptPath string
	outputPath string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the scanning script and write the report",
	Example: `  # Run the built-in default script, writing instalog.txt
  instalog run

  # Run a custom script and choose the output path
  instalog run --script custom.txt --output C:\report.txt`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&scriptPath, "script", "s", "", "path to a script file (default: the built-in default script)")
	runCmd.Flags().StringVarP(&outputPath, "output", "o", "instalog.txt", "path to write the report to")
}

func runRun(cmd *cobra.Command, args []string) error {
	diaglog.Init(diaglog.Options{Verbose: verbose, Level: slog.LevelDebug}, os.Stderr)

	comScope, err := scopes.InitSingleThreaded()
	if err != nil {
		return wrapExit(err)
	}
	defer comScope.Close()

	fsScope, err := scopes.DisableRedirection()
	if err != nil {
		return wrapExit(err)
	}
	defer fsScope.Close()

	resolver, err := pathresolve.NewForLocalMachine()
	if err != nil {
		return wrapExit(err)
	}
	windowsDir, err := pathresolve.WindowsDirectory()
	if err != nil {
		return wrapExit(err)
	}
	systemDrive := envOrDefault("SystemDrive", windowsDir[:2])
	is64Bit := runtime.GOARCH == "amd64" || runtime.GOARCH == "arm64"

	ctx, err := sections.NewContext(windowsDir, systemDrive, is64Bit, resolver)
	if err != nil {
		return wrapExit(err)
	}

	registry := ctx.NewRegistry()

	scriptText := script.DefaultScript
	if scriptPath != "" {
		raw, err := os.ReadFile(scriptPath)
		if err != nil {
			return wrapExit(err)
		}
		scriptText = string(raw)
	}

	scr, err := script.Parse(scriptText, registry)
	if err != nil {
		return wrapExit(err)
	}

	sink, err := logsink.OpenFileSink(outputPath)
	if err != nil {
		return wrapExit(err)
	}
	defer sink.Close()

	var ui report.UserInterface = report.ConsoleUI{}
	if quiet {
		ui = report.NoopUI{}
	}

	header := report.BuildHeaderInfo(reportVersion, is64Bit)

	printInfo("Generating report: %s\n", outputPath)
	exec := report.New(sink, ui)
	if err := exec.Run(scr, header); err != nil {
		return wrapExit(err)
	}

	printInfo("Report written to %s\n", outputPath)
	return nil
}

func envOrDefault(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// wrapExit annotates err so cobra's error path exits with the OsError
// discriminant packed into the low byte (§6.5), rather than cobra's
// default exit code 1.
func wrapExit(err error) error {
	code := oserr.ExitCode(err)
	return exitError{err: err, code: code}
}

type exitError struct {
	err  error
	code int
}

func (e exitError) Error() string { return e.err.Error() }
func (e exitError) Unwrap() error { return e.err }
