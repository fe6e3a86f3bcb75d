package cli

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"cotbench/internal/config"
	"cotbench/internal/report"
	"cotbench/internal/runner"
	"cotbench/internal/ui/live"
)

// runAndWrite is a test seam for run execution.
var runAndWrite = runner.RunAndWrite

// liveUI is the part of the live controller the run command drives.
type liveUI interface {
	runner.RunObserver
	Close()
	Wait() error
}

// startLiveUI is a test seam for the live progress view.
var startLiveUI = func(stdout io.Writer, noColor bool, onInterrupt func()) liveUI {
	return live.Start(stdout, live.Options{NoColor: noColor, OnInterrupt: onInterrupt})
}

// configFlags copies a flag-bound value onto the loaded config. Only flags
// present on the command line are applied.
var configFlags = map[string]func(dst *config.Config, src config.Config){
	"model":            func(dst *config.Config, src config.Config) { dst.Model = src.Model },
	"temperature":      func(dst *config.Config, src config.Config) { dst.Temperature = src.Temperature },
	"cot-suffix":       func(dst *config.Config, src config.Config) { dst.CoTSuffix = src.CoTSuffix },
	"zero-shot-suffix": func(dst *config.Config, src config.Config) { dst.ZeroShotSuffix = src.ZeroShotSuffix },
	"max-retries":      func(dst *config.Config, src config.Config) { dst.MaxRetries = src.MaxRetries },
	"retry-wait":       func(dst *config.Config, src config.Config) { dst.RetryWait = src.RetryWait },
	"pause":            func(dst *config.Config, src config.Config) { dst.Pause = src.Pause },
	"output-dir":       func(dst *config.Config, src config.Config) { dst.OutputDir = src.OutputDir },
	"questions-file":   func(dst *config.Config, src config.Config) { dst.QuestionsFile = src.QuestionsFile },
	"replay-file":      func(dst *config.Config, src config.Config) { dst.ReplayFile = src.ReplayFile },
	"dry-run":          func(dst *config.Config, src config.Config) { dst.DryRun = src.DryRun },
	"save-markdown":    func(dst *config.Config, src config.Config) { dst.SaveMarkdown = src.SaveMarkdown },
	"tag":              func(dst *config.Config, src config.Config) { dst.Tag = src.Tag },
	"base-url":         func(dst *config.Config, src config.Config) { dst.BaseURL = src.BaseURL },
}

// bindConfigFlags registers one flag per config key, defaulting to the
// built-in values.
func bindConfigFlags(fs *flag.FlagSet, dst *config.Config) {
	def := config.Default()
	fs.StringVar(&dst.Model, "model", def.Model, "Model name")
	fs.Float64Var(&dst.Temperature, "temperature", def.Temperature, "Sampling temperature (0-2)")
	fs.StringVar(&dst.CoTSuffix, "cot-suffix", def.CoTSuffix, "Suffix appended to chain-of-thought prompts")
	fs.StringVar(&dst.ZeroShotSuffix, "zero-shot-suffix", def.ZeroShotSuffix, "Suffix appended to zero-shot prompts")
	fs.IntVar(&dst.MaxRetries, "max-retries", def.MaxRetries, "Retries per API call after the first attempt")
	fs.Float64Var(&dst.RetryWait, "retry-wait", def.RetryWait, "Base retry delay in seconds, doubled per attempt")
	fs.Float64Var(&dst.Pause, "pause", def.Pause, "Seconds to pause between live calls")
	fs.StringVar(&dst.OutputDir, "output-dir", def.OutputDir, "Directory for run outputs")
	fs.StringVar(&dst.QuestionsFile, "questions-file", "", "JSON or YAML questions file (default: built-in set)")
	fs.StringVar(&dst.ReplayFile, "replay-file", "", "Replay answers from a previous results.json")
	fs.BoolVar(&dst.DryRun, "dry-run", false, "Use simulated answers instead of calling the API")
	fs.BoolVar(&dst.SaveMarkdown, "save-markdown", false, "Also write results.md and report.html")
	fs.StringVar(&dst.Tag, "tag", "", "Run id to use instead of a generated one")
	fs.StringVar(&dst.BaseURL, "base-url", def.BaseURL, "Chat completions API base URL")
}

// loadRunConfig layers defaults, the YAML file, and explicitly set flags, then
// normalizes and validates the result.
func loadRunConfig(fs *flag.FlagSet, path string, flagValues config.Config) (config.Config, error) {
	set := setFlags(fs)
	cfg, err := config.Read(path, set["config"])
	if err != nil {
		return config.Config{}, err
	}
	for name := range set {
		if apply, ok := configFlags[name]; ok {
			apply(&cfg, flagValues)
		}
	}
	config.Normalize(&cfg)
	if err := config.Validate(&cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func setFlags(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// runRun builds the handler for the run command.
func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		var flagValues config.Config
		bindConfigFlags(fs, &flagValues)
		configPath := fs.String("config", config.DefaultConfigFile, "Path to YAML config file")
		envFile := fs.String("env-file", config.DefaultEnvFile, "Path to .env file with the API key")
		uiModeFlag := fs.String("ui", string(uiAuto), "Progress view: auto|live|plain")
		verbose := fs.Bool("verbose", false, "Verbose logging")
		logPath := fs.String("log", "", "Write verbose logs and diagnostics to a file")
		noColor := fs.Bool("no-color", false, "Disable ANSI colors")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "Unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			return ExitUsage
		}

		decision, err := resolveUIMode(*uiModeFlag, *verbose, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid --ui: %v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		if err := config.LoadEnv(*envFile, setFlags(fs)["env-file"]); err != nil {
			fmt.Fprintf(stderr, "Failed to load env file: %v\n", err)
			return ExitError
		}
		cfg, err := loadRunConfig(fs, *configPath, flagValues)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}

		logFile, err := openLogFile(*logPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open log file: %v\n", err)
			return ExitError
		}
		if logFile != nil {
			defer func() { _ = logFile.Close() }()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		var held bytes.Buffer
		params := runner.RunParams{
			Verbose:           *verbose || logFile != nil,
			VerboseWriter:     verboseWriter(*verbose, stdout, logFile),
			DiagnosticsWriter: diagnosticsWriter(decision.useLive, stderr, logFile, &held),
			NoColor:           *noColor,
		}
		var ui liveUI
		if decision.useLive {
			ui = startLiveUI(stdout, *noColor, cancel)
			params.Observer = ui
		}

		var artifacts []runner.Artifact
		if cfg.SaveMarkdown {
			artifacts = append(artifacts, report.MarkdownArtifact(), report.HTMLArtifact(ctx))
		}
		results, paths, err := runAndWrite(ctx, cfg, params, artifacts...)
		if ui != nil {
			ui.Close()
			if uiErr := ui.Wait(); uiErr != nil {
				fmt.Fprintf(stderr, "Live UI error: %v\n", uiErr)
			}
		}
		_, _ = held.WriteTo(stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Run %s completed (%s, %d questions)\n", results.Metadata.RunID, results.Metadata.Mode, results.Metadata.QuestionCount)
		printAccuracy(stdout, report.Summarize(results))
		fmt.Fprintf(stdout, "Results: %s\n", paths.ResultsPath())
		if cfg.SaveMarkdown {
			fmt.Fprintf(stdout, "Report: %s\n", paths.ArtifactPath(report.MarkdownFileName))
		}
		return ExitOK
	}
}

func printAccuracy(w io.Writer, summary report.Summary) {
	for _, mode := range []report.ModeSummary{summary.ZeroShot, summary.CoT} {
		if mode.Scored() == 0 {
			fmt.Fprintf(w, "%s accuracy: n/a (%d unscored)\n", mode.Mode.Label(), mode.Unknown)
			continue
		}
		fmt.Fprintf(w, "%s accuracy: %d/%d (%.1f%%)\n", mode.Mode.Label(), mode.Correct, mode.Scored(), mode.Accuracy*100)
	}
}

func openLogFile(path string) (io.WriteCloser, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
}

// verboseWriter sends verbose lines to stdout when --verbose is set and to the
// log file when one is open.
func verboseWriter(verbose bool, stdout io.Writer, logFile io.Writer) io.Writer {
	switch {
	case verbose && logFile != nil:
		return io.MultiWriter(stdout, logFile)
	case verbose:
		return stdout
	case logFile != nil:
		return logFile
	default:
		return nil
	}
}

// diagnosticsWriter routes warnings and retry notices. While the live table
// owns the terminal they collect in held, which the caller prints to stderr
// once the table exits.
func diagnosticsWriter(useLive bool, stderr io.Writer, logFile io.Writer, held *bytes.Buffer) io.Writer {
	switch {
	case useLive && logFile != nil:
		return io.MultiWriter(held, logFile)
	case useLive:
		return held
	case logFile != nil:
		return io.MultiWriter(stderr, logFile)
	default:
		return stderr
	}
}
