package report

import (
	"unicode/utf8"

	"github.com/montanaflynn/stats"

	"cotbench/internal/eval"
	"cotbench/internal/prompt"
	"cotbench/internal/runner"
)

// ModeSummary aggregates verdicts and answer lengths for one prompting mode.
type ModeSummary struct {
	Mode      prompt.Mode
	Correct   int
	Incorrect int
	Unknown   int
	// Accuracy is Correct over scored answers, or 0 when nothing was scored.
	Accuracy          float64
	MeanAnswerRunes   float64
	MedianAnswerRunes float64
}

// Scored returns the number of answers with a known verdict.
func (m ModeSummary) Scored() int {
	return m.Correct + m.Incorrect
}

// Summary compares the two modes across a run.
type Summary struct {
	RunID    string
	ZeroShot ModeSummary
	CoT      ModeSummary
	// Improved counts questions CoT got right after zero-shot got wrong.
	Improved int
	// Regressed counts the opposite.
	Regressed int
}

// Summarize computes per-mode accuracy and answer length statistics.
func Summarize(results runner.Results) Summary {
	zeroVerdicts := make([]eval.Verdict, 0, len(results.Records))
	cotVerdicts := make([]eval.Verdict, 0, len(results.Records))
	zeroAnswers := make([]string, 0, len(results.Records))
	cotAnswers := make([]string, 0, len(results.Records))
	summary := Summary{RunID: results.Metadata.RunID}
	for _, record := range results.Records {
		zeroVerdicts = append(zeroVerdicts, record.ZeroShotCorrect)
		cotVerdicts = append(cotVerdicts, record.CoTCorrect)
		zeroAnswers = append(zeroAnswers, record.ZeroShotAnswer)
		cotAnswers = append(cotAnswers, record.CoTAnswer)
		switch {
		case record.ZeroShotCorrect == eval.VerdictIncorrect && record.CoTCorrect == eval.VerdictCorrect:
			summary.Improved++
		case record.ZeroShotCorrect == eval.VerdictCorrect && record.CoTCorrect == eval.VerdictIncorrect:
			summary.Regressed++
		}
	}
	summary.ZeroShot = summarizeMode(prompt.ModeZeroShot, zeroVerdicts, zeroAnswers)
	summary.CoT = summarizeMode(prompt.ModeCoT, cotVerdicts, cotAnswers)
	return summary
}

func summarizeMode(mode prompt.Mode, verdicts []eval.Verdict, answers []string) ModeSummary {
	out := ModeSummary{Mode: mode}
	for _, verdict := range verdicts {
		switch verdict {
		case eval.VerdictCorrect:
			out.Correct++
		case eval.VerdictIncorrect:
			out.Incorrect++
		default:
			out.Unknown++
		}
	}
	if scored := out.Scored(); scored > 0 {
		out.Accuracy = float64(out.Correct) / float64(scored)
	}

	lengths := make(stats.Float64Data, 0, len(answers))
	for _, answer := range answers {
		lengths = append(lengths, float64(utf8.RuneCountInString(answer)))
	}
	if mean, err := stats.Mean(lengths); err == nil {
		out.MeanAnswerRunes = mean
	}
	if median, err := stats.Median(lengths); err == nil {
		out.MedianAnswerRunes = median
	}
	return out
}
