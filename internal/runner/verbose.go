package runner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"cotbench/internal/eval"
)

const (
	verbosePrefix = "[verbose]"
	warningPrefix = "[warn]"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiDim    = "\x1b[2m"
	ansiGray   = "\x1b[90m"
	ansiGreen  = "\x1b[32m"
	ansiRed    = "\x1b[31m"
	ansiBlue   = "\x1b[34m"
	ansiYellow = "\x1b[33m"
)

type verboseStyle int

const (
	styleDefault verboseStyle = iota
	styleRun
	styleQuestion
	styleMetrics
	styleWarning
	styleError
)

// verboseLogger writes prefixed progress lines. A disabled logger is a no-op.
type verboseLogger struct {
	enabled bool
	writer  io.Writer
	prefix  string
	palette verbosePalette
}

func newVerboseLogger(enabled bool, writer io.Writer, noColor bool) verboseLogger {
	return verboseLogger{
		enabled: enabled && writer != nil,
		writer:  writer,
		prefix:  verbosePrefix,
		palette: paletteFor(writer, noColor),
	}
}

func newDiagnosticsLogger(writer io.Writer, noColor bool) verboseLogger {
	return verboseLogger{
		enabled: writer != nil,
		writer:  writer,
		prefix:  warningPrefix,
		palette: paletteFor(writer, noColor),
	}
}

func (l verboseLogger) log(style verboseStyle, format string, args ...any) {
	if !l.enabled {
		return
	}
	line := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.writer, "%s %s\n", l.palette.prefix(l.prefix), l.palette.apply(style, line))
}

func verdictStyle(verdict eval.Verdict) verboseStyle {
	switch verdict {
	case eval.VerdictCorrect:
		return styleMetrics
	case eval.VerdictIncorrect:
		return styleError
	default:
		return styleDefault
	}
}

type verbosePalette struct {
	enabled bool
}

func paletteFor(writer io.Writer, noColor bool) verbosePalette {
	if noColor {
		return verbosePalette{enabled: false}
	}
	return verbosePalette{enabled: ShouldUseStyling(writer)}
}

// ShouldUseStyling reports whether ANSI styling suits writer: it must be a
// terminal and NO_COLOR, TERM=dumb and CLICOLOR=0 must be absent.
func ShouldUseStyling(writer io.Writer) bool {
	if writer == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := writer.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}

func (p verbosePalette) prefix(text string) string {
	if !p.enabled {
		return text
	}
	return ansiDim + ansiGray + text + ansiReset
}

func (p verbosePalette) apply(style verboseStyle, text string) string {
	if !p.enabled {
		return text
	}
	switch style {
	case styleRun, styleQuestion:
		return ansiBold + ansiBlue + text + ansiReset
	case styleMetrics:
		return ansiBold + ansiGreen + text + ansiReset
	case styleWarning:
		return ansiYellow + text + ansiReset
	case styleError:
		return ansiBold + ansiRed + text + ansiReset
	default:
		return text
	}
}
