package question

// Question is a single evaluation item. It is loaded once per run and never mutated.
type Question struct {
	Prompt      string `json:"prompt" yaml:"prompt"`
	GroundTruth string `json:"ground_truth,omitempty" yaml:"ground_truth,omitempty"`
	Rationale   string `json:"rationale,omitempty" yaml:"rationale,omitempty"`
}

// Scored reports whether the question carries a ground truth to score against.
func (q Question) Scored() bool {
	return q.GroundTruth != ""
}
