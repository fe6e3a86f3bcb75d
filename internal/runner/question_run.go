package runner

import (
	"context"
	"fmt"
	"time"

	"cotbench/internal/config"
	"cotbench/internal/eval"
	"cotbench/internal/prompt"
	"cotbench/internal/provider"
	"cotbench/internal/question"
	"cotbench/internal/retry"
)

// questionRun holds the per-run state shared by the question loop and the
// retry callback. current identifies the call being retried.
type questionRun struct {
	cfg      config.Config
	provider provider.Provider
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
	observer RunObserver
	verbose  verboseLogger
	diag     verboseLogger

	current     int
	currentText string
	currentMode prompt.Mode
}

func (r *questionRun) answerQuestion(ctx context.Context, index int, q question.Question) (Record, error) {
	zeroPrompt := prompt.Build(q.Prompt, r.cfg.ZeroShotSuffix)
	cotPrompt := prompt.Build(q.Prompt, r.cfg.CoTSuffix)
	r.verbose.log(styleQuestion, "Q%d %s", index+1, q.Prompt)

	zeroAnswer, zeroVerdict, err := r.answer(ctx, index, q, prompt.ModeZeroShot, zeroPrompt)
	if err != nil {
		return Record{}, err
	}
	if err := r.pace(ctx, index, q); err != nil {
		return Record{}, err
	}
	cotAnswer, cotVerdict, err := r.answer(ctx, index, q, prompt.ModeCoT, cotPrompt)
	if err != nil {
		return Record{}, err
	}

	return Record{
		Question:        q.Prompt,
		Rationale:       q.Rationale,
		GroundTruth:     q.GroundTruth,
		ZeroShotPrompt:  zeroPrompt,
		CoTPrompt:       cotPrompt,
		ZeroShotAnswer:  zeroAnswer,
		CoTAnswer:       cotAnswer,
		ZeroShotCorrect: zeroVerdict,
		CoTCorrect:      cotVerdict,
	}, nil
}

func (r *questionRun) answer(ctx context.Context, index int, q question.Question, mode prompt.Mode, built string) (string, eval.Verdict, error) {
	r.current, r.currentText, r.currentMode = index, q.Prompt, mode
	r.emit(QuestionEvent{QuestionIndex: index, QuestionText: q.Prompt, Type: QuestionRunning, Mode: mode})

	answer, err := r.provider.Answer(ctx, provider.Request{Question: q, Mode: mode, Prompt: built})
	if err != nil {
		return "", eval.VerdictUnknown, fmt.Errorf("question %d %s: %w", index+1, mode, err)
	}
	verdict := eval.Score(answer, q.GroundTruth)
	r.emit(QuestionEvent{QuestionIndex: index, QuestionText: q.Prompt, Type: QuestionAnswered, Mode: mode, Verdict: verdict})
	r.verbose.log(verdictStyle(verdict), "Q%d %s correct=%s", index+1, mode.Label(), verdict)
	return answer, verdict, nil
}

// pace waits between live calls. Replayed and simulated answers are not paced.
func (r *questionRun) pace(ctx context.Context, index int, q question.Question) error {
	pause := r.cfg.PauseDuration()
	if r.provider.Kind() != provider.KindLive || pause <= 0 {
		return nil
	}
	r.emit(QuestionEvent{QuestionIndex: index, QuestionText: q.Prompt, Type: QuestionPausing, Wait: pause})
	return r.sleep(ctx, pause)
}

func (r *questionRun) onRetry(event retry.Event) {
	r.emit(QuestionEvent{
		QuestionIndex: r.current,
		QuestionText:  r.currentText,
		Type:          QuestionRetrying,
		Mode:          r.currentMode,
		Attempt:       event.Attempt,
		Remaining:     event.Remaining,
		Wait:          event.Wait,
		Error:         errorText(event.Err),
	})
	r.diag.log(styleWarning, "Q%d %s attempt %d/%d failed: %v; retrying in %s (%d left)",
		r.current+1, r.currentMode.Label(), event.Attempt, event.Total, event.Err, event.Wait, event.Remaining)
}

func (r *questionRun) emit(event QuestionEvent) {
	if r.observer == nil {
		return
	}
	if event.EmittedAt.IsZero() {
		event.EmittedAt = r.now()
	}
	r.observer.OnQuestionEvent(event)
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func formatAccuracy(records []Record) string {
	var zeroCorrect, cotCorrect, scored int
	for _, record := range records {
		if record.ZeroShotCorrect.Known() {
			scored++
		}
		if record.ZeroShotCorrect == eval.VerdictCorrect {
			zeroCorrect++
		}
		if record.CoTCorrect == eval.VerdictCorrect {
			cotCorrect++
		}
	}
	if scored == 0 {
		return "no scored questions"
	}
	return fmt.Sprintf("zero-shot %d/%d, cot %d/%d", zeroCorrect, scored, cotCorrect, scored)
}
