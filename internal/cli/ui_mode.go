package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

type uiMode string

const (
	uiAuto  uiMode = "auto"
	uiLive  uiMode = "live"
	uiPlain uiMode = "plain"
)

// uiModeDecision captures whether a run renders the live progress table.
type uiModeDecision struct {
	useLive bool
	warning string
}

// isTerminal reports whether a writer is a TTY.
var isTerminal = defaultIsTerminal

// resolveUIMode picks the progress view for a run. Verbose runs always use
// plain output since the log lines would tear the live table.
func resolveUIMode(mode string, verbose bool, stdout io.Writer) (uiModeDecision, error) {
	parsed, err := parseUIMode(mode)
	if err != nil {
		return uiModeDecision{}, err
	}
	if verbose {
		return uiModeDecision{}, nil
	}
	switch parsed {
	case uiAuto:
		return uiModeDecision{useLive: isTerminal(stdout)}, nil
	case uiLive:
		if isTerminal(stdout) {
			return uiModeDecision{useLive: true}, nil
		}
		return uiModeDecision{
			warning: "Live UI requested but stdout is not a TTY; falling back to plain output.",
		}, nil
	default:
		return uiModeDecision{}, nil
	}
}

func parseUIMode(mode string) (uiMode, error) {
	normalized := uiMode(strings.ToLower(strings.TrimSpace(mode)))
	switch normalized {
	case "":
		return uiAuto, nil
	case uiAuto, uiLive, uiPlain:
		return normalized, nil
	default:
		return "", fmt.Errorf("invalid ui mode %q (expected auto|live|plain)", mode)
	}
}

func defaultIsTerminal(stdout io.Writer) bool {
	if stdout == nil {
		return false
	}
	if file, ok := stdout.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := stdout.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
