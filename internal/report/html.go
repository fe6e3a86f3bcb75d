package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"cotbench/internal/eval"
	"cotbench/internal/runner"
)

// HTMLFileName is the standalone page written next to results.json.
const HTMLFileName = "report.html"

const pageStyle = `body{font-family:system-ui,sans-serif;margin:2rem;color:#222}
table{border-collapse:collapse;width:100%}
th,td{border:1px solid #ccc;padding:.5rem;vertical-align:top;text-align:left}
th{background:#f4f4f4}
.true{color:#1a7f37}.false{color:#cf222e}.unknown{color:#888}
.answer p{margin:.25rem 0}`

// HTML renders the run page to bytes.
func HTML(ctx context.Context, results runner.Results) ([]byte, error) {
	var buf bytes.Buffer
	if err := Page(results, Summarize(results)).Render(ctx, &buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

// HTMLArtifact renders report.html for runner.WriteRunOutputs.
func HTMLArtifact(ctx context.Context) runner.Artifact {
	return runner.Artifact{Name: HTMLFileName, Render: func(results runner.Results) ([]byte, error) {
		return HTML(ctx, results)
	}}
}

// renderAnswer converts answer Markdown to HTML. Raw HTML in the answer is dropped.
func renderAnswer(answer string) string {
	doc := parser.NewWithExtensions(parser.CommonExtensions | parser.HardLineBreak)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML})
	return string(markdown.ToHTML([]byte(answer), doc, renderer))
}

func verdictLabel(verdict eval.Verdict) string {
	switch verdict {
	case eval.VerdictCorrect:
		return "correct"
	case eval.VerdictIncorrect:
		return "incorrect"
	default:
		return "unscored"
	}
}

func formatRate(mode ModeSummary) string {
	if mode.Scored() == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", mode.Accuracy*100)
}
