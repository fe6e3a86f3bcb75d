package eval

import "strings"

// Score checks whether the normalized ground truth occurs anywhere in the
// normalized answer. This is a lexical heuristic: "30" also matches "300",
// and "thirty" never matches "30". Empty ground truth is unscored.
func Score(answer, groundTruth string) Verdict {
	if groundTruth == "" {
		return VerdictUnknown
	}
	truth := Normalize(groundTruth)
	if truth == "" {
		return VerdictUnknown
	}
	if strings.Contains(Normalize(answer), truth) {
		return VerdictCorrect
	}
	return VerdictIncorrect
}
