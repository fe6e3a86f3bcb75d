package report

import (
	"fmt"
	"strings"
	"time"

	"cotbench/internal/runner"
)

// MarkdownFileName is the optional table export written next to results.json.
const MarkdownFileName = "results.md"

// Markdown renders the run as a metadata list followed by a comparison table.
// Newlines inside answers become <br> so each record stays on one table row.
func Markdown(results runner.Results) string {
	var b strings.Builder
	b.WriteString("# Zero-Shot vs Zero-Shot-CoT\n\n## 元信息\n\n")
	for _, item := range metadataItems(results.Metadata) {
		fmt.Fprintf(&b, "- **%s**: %s\n", item.key, item.value)
	}
	b.WriteString("\n## 结果对比\n\n")
	b.WriteString("| 序号 | 问题 | Zero-Shot 摘要 | CoT 摘要 | Zero-Shot 正确 | CoT 正确 |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for i, record := range results.Records {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
			i+1,
			tableCell(record.Question),
			tableCell(record.ZeroShotAnswer),
			tableCell(record.CoTAnswer),
			record.ZeroShotCorrect,
			record.CoTCorrect,
		)
	}
	return b.String()
}

// MarkdownArtifact renders results.md for runner.WriteRunOutputs.
func MarkdownArtifact() runner.Artifact {
	return runner.Artifact{Name: MarkdownFileName, Render: func(results runner.Results) ([]byte, error) {
		return []byte(Markdown(results)), nil
	}}
}

type metadataItem struct {
	key   string
	value string
}

func metadataItems(meta runner.Metadata) []metadataItem {
	items := []metadataItem{
		{"run_id", meta.RunID},
		{"model", meta.Model},
		{"temperature", fmt.Sprint(meta.Temperature)},
		{"cot_suffix", meta.CoTSuffix},
		{"zero_shot_suffix", meta.ZeroShotSuffix},
		{"question_count", fmt.Sprint(meta.QuestionCount)},
		{"timestamp", meta.Timestamp.Format(time.RFC3339)},
		{"mode", string(meta.Mode)},
	}
	if meta.ReplayFile != "" {
		items = append(items, metadataItem{"replay_file", meta.ReplayFile})
	}
	return items
}

func tableCell(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "|", `\|`)
	return strings.ReplaceAll(text, "\n", "<br>")
}
