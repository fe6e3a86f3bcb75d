package prompt

import "testing"

func TestBuildAppendsSuffix(t *testing.T) {
	got := Build("  2+2是多少？ ", " 请直接给出最终答案。")
	if got != "2+2是多少？ 请直接给出最终答案。" {
		t.Fatalf("unexpected prompt: %q", got)
	}
}

func TestBuildEmptySuffix(t *testing.T) {
	if got := Build(" question ", "   "); got != "question" {
		t.Fatalf("unexpected prompt: %q", got)
	}
}

func TestBuildSkipsExistingSuffix(t *testing.T) {
	question := "How many? Let's think step by step."
	if got := Build(question+"\n", "Let's think step by step."); got != question {
		t.Fatalf("expected suffix to be kept once, got %q", got)
	}
}

func TestBuildIdempotent(t *testing.T) {
	cases := []struct {
		question string
		suffix   string
	}{
		{"一个篮子里有15个苹果。", "让我们一步一步地思考。"},
		{"  padded  ", "  also padded  "},
		{"", "suffix"},
		{"no suffix", ""},
		{"ends with suffix suffix", "suffix"},
		{"trailing space in question ", " x "},
	}
	for _, tc := range cases {
		once := Build(tc.question, tc.suffix)
		twice := Build(once, tc.suffix)
		if once != twice {
			t.Fatalf("Build not idempotent for %q/%q: %q != %q", tc.question, tc.suffix, once, twice)
		}
	}
}
