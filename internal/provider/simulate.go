package provider

import (
	"context"
	"fmt"

	"cotbench/internal/prompt"
)

const (
	simulatedIntro   = "[模拟回答]"
	unknownAnswerTag = "未知"
)

// Simulated returns deterministic templated answers for dry runs.
type Simulated struct{}

// Kind reports KindSimulated.
func (Simulated) Kind() Kind { return KindSimulated }

// Answer echoes the question and ends with the ground truth, or a placeholder
// when the question is unscored.
func (Simulated) Answer(_ context.Context, req Request) (string, error) {
	truth := req.Question.GroundTruth
	if truth == "" {
		truth = unknownAnswerTag
	}
	if req.Mode == prompt.ModeCoT {
		return fmt.Sprintf("%s 让我们一步一步地分析：\n1. 问题：%s\n2. 推理……所以答案是 %s。", simulatedIntro, req.Question.Prompt, truth), nil
	}
	return fmt.Sprintf("%s %s => %s", simulatedIntro, req.Question.Prompt, truth), nil
}
