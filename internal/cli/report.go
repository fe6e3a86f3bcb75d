package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"cotbench/internal/config"
	"cotbench/internal/report"
	"cotbench/internal/runner"
)

// runReport builds the handler for the report command.
func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		outputDir := fs.String("output-dir", config.DefaultOutputDir, "Directory containing runs")
		outDir := fs.String("out", "", "Directory for the rendered files (default: the run directory)")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(stderr, "Usage: cotbench report <results.json|run-dir|run-id|latest>")
			return ExitUsage
		}

		results, runDir, err := report.ResolveRun(*outputDir, fs.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load run: %v\n", err)
			return ExitError
		}
		target := *outDir
		if target == "" {
			target = runDir
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			fmt.Fprintf(stderr, "Failed to create output directory: %v\n", err)
			return ExitError
		}
		if err := runner.WriteArtifacts(results, target, report.MarkdownArtifact(), report.HTMLArtifact(context.Background())); err != nil {
			fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
			return ExitError
		}

		printAccuracy(stdout, report.Summarize(results))
		fmt.Fprintf(stdout, "Report written to %s\n", target)
		return ExitOK
	}
}
