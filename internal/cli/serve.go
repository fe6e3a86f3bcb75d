package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"cotbench/internal/config"
	"cotbench/internal/report"
	"cotbench/internal/reportserver"
)

// serveReport is a test seam for running the report server.
var serveReport = reportserver.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		addr := fs.String("addr", "127.0.0.1:5000", "Address to listen on")
		outputDir := fs.String("output-dir", config.DefaultOutputDir, "Directory containing runs")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}

		ref := fs.Arg(0)
		if ref == "" {
			fmt.Fprintln(stderr, "Missing <results.json|run-dir|run-id|latest>")
			return ExitUsage
		}
		if fs.NArg() > 1 {
			fmt.Fprintln(stderr, "Too many arguments")
			return ExitUsage
		}
		if *addr == "" {
			fmt.Fprintln(stderr, "Missing --addr")
			return ExitUsage
		}

		results, runDir, err := report.ResolveRun(*outputDir, ref)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load run: %v\n", err)
			return ExitError
		}

		resultsPath := filepath.Join(runDir, config.ResultsFileName)
		if info, err := os.Stat(ref); err == nil && !info.IsDir() {
			resultsPath = ref
		}
		cfg := reportserver.Config{
			Addr:        *addr,
			ResultsPath: resultsPath,
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		fmt.Fprintf(stdout, "Serving run %s at http://%s\n", results.Metadata.RunID, cfg.Addr)
		if err := serveReport(ctx, cfg); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
