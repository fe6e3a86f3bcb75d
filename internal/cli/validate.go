package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"cotbench/internal/config"
	"cotbench/internal/provider"
	"cotbench/internal/question"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		var flagValues config.Config
		flags.String("config", config.DefaultConfigFile, "Path to YAML config file")
		flags.StringVar(&flagValues.QuestionsFile, "questions-file", "", "JSON or YAML questions file")
		flags.StringVar(&flagValues.ReplayFile, "replay-file", "", "Replay fixture to check against the questions")
		if err := flags.Parse(args); err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		cfg, err := loadRunConfig(flags, flags.Lookup("config").Value.String(), flagValues)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}

		problems := validateFixtures(cfg)
		if len(problems) > 0 {
			fmt.Fprintln(stderr, "Validation failed:")
			for _, problem := range problems {
				fmt.Fprintf(stderr, "  %s\n", problem)
			}
			return ExitError
		}

		fmt.Fprintln(stdout, "Config OK")
		return ExitOK
	}
}

// validateFixtures loads the questions and replay fixture the way a run
// would and reports every problem found, including questions the replay
// fixture cannot answer.
func validateFixtures(cfg config.Config) []string {
	var problems []string
	questions, err := question.Load(cfg.QuestionsFile)
	if err != nil {
		problems = append(problems, err.Error())
	}
	if cfg.ReplayFile == "" {
		return problems
	}
	index, err := provider.LoadReplayIndex(cfg.ReplayFile)
	if err != nil {
		return append(problems, err.Error())
	}
	for i, q := range questions {
		if _, ok := index[q.Prompt]; !ok {
			problems = append(problems, fmt.Sprintf("questions[%d]: %v", i, &provider.ReplayMissError{Question: q.Prompt}))
		}
	}
	return problems
}
