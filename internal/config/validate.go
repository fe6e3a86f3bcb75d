package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Validate checks a normalized config and the files it references.
func Validate(cfg *Config) error {
	collector := &issueCollector{}
	add := collector.add

	if cfg.Model == "" {
		add("model", "is required")
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		add("temperature", "must be between 0 and 2")
	}
	if cfg.MaxRetries < 0 {
		add("max_retries", "must be >= 0")
	}
	if cfg.RetryWait < 0 {
		add("retry_wait", "must be >= 0")
	}
	if cfg.Pause < 0 {
		add("pause", "must be >= 0")
	}
	if cfg.RequestTimeout <= 0 {
		add("request_timeout", "must be > 0")
	}
	if cfg.OutputDir == "" {
		add("output_dir", "is required")
	}
	validateTag(cfg.Tag, add)
	validateBaseURL(cfg.BaseURL, add)
	validateFile("questions_file", cfg.QuestionsFile, add)
	validateFile("replay_file", cfg.ReplayFile, add)

	return collector.result()
}

func validateTag(tag string, add issueAdder) {
	if tag == "" {
		return
	}
	if tag == "." || tag == ".." || strings.ContainsAny(tag, `/\`) {
		add("tag", fmt.Sprintf("invalid run directory name %q", tag))
	}
}

func validateBaseURL(raw string, add issueAdder) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		add("base_url", fmt.Sprintf("must be an http(s) URL, got %q", raw))
	}
}

func validateFile(field, path string, add issueAdder) {
	if path == "" {
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		add(field, fmt.Sprintf("file %q not found", path))
		return
	}
	if info.IsDir() {
		add(field, fmt.Sprintf("%q is a directory", path))
	}
}
