package config

import "strings"

// Normalize trims string settings and fills connection defaults.
func Normalize(cfg *Config) {
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.OutputDir = strings.TrimSpace(cfg.OutputDir)
	cfg.QuestionsFile = strings.TrimSpace(cfg.QuestionsFile)
	cfg.ReplayFile = strings.TrimSpace(cfg.ReplayFile)
	cfg.Tag = strings.TrimSpace(cfg.Tag)
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.APIKeyEnv = strings.TrimSpace(cfg.APIKeyEnv)
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = DefaultAPIKeyEnv
	}
}
