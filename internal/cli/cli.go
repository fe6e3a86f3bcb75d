package cli

import (
	"fmt"
	"io"
)

// Process exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Command is one cotbench subcommand.
type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

type handlerFactory func(cmd *Command) func(args []string, stdout, stderr io.Writer) int

// Run dispatches args to a subcommand and returns the exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	switch args[0] {
	case "-h", "--help":
		printUsage(stdout)
		return ExitOK
	case "help":
		return runHelp(args[1:], stdout, stderr)
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}
	return cmd.Run(args[1:], stdout, stderr)
}

// runHelp prints the overview or, given a command name, that command's usage.
func runHelp(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitOK
	}
	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
		return ExitUsage
	}
	printCommandUsage(cmd, stdout)
	return ExitOK
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  cotbench <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"cotbench help <command>\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, handler handlerFactory) *Command {
	cmd := &Command{Name: name, Summary: summary, Usage: usage}
	cmd.Run = handler(cmd)
	return cmd
}

var commands = []*Command{
	command("run", "Compare zero-shot and chain-of-thought answers", []string{
		"cotbench run [--config <path>] [--questions-file <path>] [--replay-file <path>] [--dry-run]",
		"cotbench run --model <name> --temperature <t> --max-retries <n> --retry-wait <s> --pause <s>",
	}, runRun),
	command("validate", "Validate config, questions and replay fixtures", []string{
		"cotbench validate [--config <path>] [--questions-file <path>] [--replay-file <path>]",
	}, runValidate),
	command("report", "Render results.md and report.html for a run", []string{
		"cotbench report <results.json|run-dir|run-id|latest> [--output-dir <dir>] [--out <dir>]",
	}, runReport),
	command("serve", "Serve a run report over HTTP", []string{
		"cotbench serve <results.json|run-dir|run-id|latest> [--output-dir <dir>] [--addr <host:port>]",
	}, runServe),
}
