package config

import "time"

// Config is the resolved run configuration. Durations are stored in seconds to
// match the YAML and flag surface.
type Config struct {
	Model          string  `yaml:"model"`
	Temperature    float64 `yaml:"temperature"`
	CoTSuffix      string  `yaml:"cot_suffix"`
	ZeroShotSuffix string  `yaml:"zero_shot_suffix"`
	MaxRetries     int     `yaml:"max_retries"`
	RetryWait      float64 `yaml:"retry_wait"`
	Pause          float64 `yaml:"pause"`
	OutputDir      string  `yaml:"output_dir"`
	QuestionsFile  string  `yaml:"questions_file"`
	ReplayFile     string  `yaml:"replay_file"`
	DryRun         bool    `yaml:"dry_run"`
	SaveMarkdown   bool    `yaml:"save_markdown"`
	Tag            string  `yaml:"tag"`
	BaseURL        string  `yaml:"base_url"`
	APIKeyEnv      string  `yaml:"api_key_env"`
	RequestTimeout float64 `yaml:"request_timeout"`
}

// Default values for a run.
const (
	DefaultModel          = "gpt-4o-mini"
	DefaultTemperature    = 0.1
	DefaultCoTSuffix      = "让我们一步一步地思考。"
	DefaultZeroShotSuffix = "请直接给出最终答案。"
	DefaultMaxRetries     = 3
	DefaultRetryWait      = 3.0
	DefaultPause          = 1.0
	DefaultOutputDir      = "outputs"
	DefaultBaseURL        = "https://api.openai.com/v1"
	DefaultAPIKeyEnv      = "OPENAI_API_KEY"
	DefaultRequestTimeout = 120.0
)

// Default returns the configuration used when no file or flag overrides a key.
func Default() Config {
	return Config{
		Model:          DefaultModel,
		Temperature:    DefaultTemperature,
		CoTSuffix:      DefaultCoTSuffix,
		ZeroShotSuffix: DefaultZeroShotSuffix,
		MaxRetries:     DefaultMaxRetries,
		RetryWait:      DefaultRetryWait,
		Pause:          DefaultPause,
		OutputDir:      DefaultOutputDir,
		BaseURL:        DefaultBaseURL,
		APIKeyEnv:      DefaultAPIKeyEnv,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// RetryWaitDuration returns the base retry delay.
func (c Config) RetryWaitDuration() time.Duration { return seconds(c.RetryWait) }

// PauseDuration returns the pacing delay between live calls.
func (c Config) PauseDuration() time.Duration { return seconds(c.Pause) }

// RequestTimeoutDuration returns the per-request HTTP timeout.
func (c Config) RequestTimeoutDuration() time.Duration { return seconds(c.RequestTimeout) }

func seconds(value float64) time.Duration {
	if value <= 0 {
		return 0
	}
	return time.Duration(value * float64(time.Second))
}
