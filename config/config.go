package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported inference providers
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Config holds the application configuration
type Config struct {
	Server         ServerConfig         `yaml:"server"`
	Inference      InferenceConfig      `yaml:"inference"`
	RateLimiting   RateLimitingConfig   `yaml:"rate_limiting"`
	Sampling       SamplingConfig       `yaml:"sampling"`
	Prompt         PromptConfig         `yaml:"prompt"`
	FileProcessing FileProcessingConfig `yaml:"file_processing"`
	Security       SecurityConfig       `yaml:"security"`
	Logging        LoggingConfig        `yaml:"logging"`
}

type ServerConfig struct {
	Address string `yaml:"address"`
}

type InferenceConfig struct {
	Provider              string `yaml:"provider"` // "openai" or "ollama"
	APIKey                string `yaml:"api_key"`
	BaseURL               string `yaml:"base_url"`
	Model                 string `yaml:"model"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
}

// RateLimitingConfig throttles calls to the inference provider. Zero disables a bucket.
type RateLimitingConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	RequestsPerDay    int `yaml:"requests_per_day"`
}

// TaskSampling is passed through to the model untouched.
type TaskSampling struct {
	DoSample          bool    `yaml:"do_sample"`
	MaxNewTokens      int     `yaml:"max_new_tokens"`
	Temperature       float32 `yaml:"temperature"`
	TopP              float32 `yaml:"top_p"`
	RepetitionPenalty float32 `yaml:"repetition_penalty"`
}

type SamplingConfig struct {
	Generate       TaskSampling `yaml:"generate"`
	Convert        TaskSampling `yaml:"convert"`
	Analyze        TaskSampling `yaml:"analyze"`
	Optimize       TaskSampling `yaml:"optimize"`
	AnalyzeProject TaskSampling `yaml:"analyze_project"`
}

type PromptConfig struct {
	// MaxContextTokens bounds the file context embedded in completion prompts. 0 sends the whole file.
	MaxContextTokens int `yaml:"max_context_tokens"`
}

type FileProcessingConfig struct {
	MaxFileSizeMB       int      `yaml:"max_file_size_mb"`
	SupportedExtensions []string `yaml:"supported_extensions"`
}

type SecurityConfig struct {
	RedactSecrets   bool     `yaml:"redact_secrets"`
	SkipSecretFiles []string `yaml:"skip_secret_files"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Address: ":5000"},
		Inference: InferenceConfig{
			Provider:              ProviderOpenAI,
			BaseURL:               "http://localhost:8000/v1",
			Model:                 "deepseek-ai/deepseek-coder-1.3b-instruct",
			RequestTimeoutSeconds: 0,
		},
		Sampling: SamplingConfig{
			Generate:       TaskSampling{DoSample: true, MaxNewTokens: 2048, Temperature: 0.2, TopP: 0.95},
			Convert:        TaskSampling{DoSample: true, MaxNewTokens: 2048, Temperature: 0.2, TopP: 0.95},
			Analyze:        TaskSampling{DoSample: true, MaxNewTokens: 2048, Temperature: 0.2, TopP: 0.95, RepetitionPenalty: 1.1},
			Optimize:       TaskSampling{DoSample: true, MaxNewTokens: 1000, Temperature: 0.3, TopP: 0.9},
			AnalyzeProject: TaskSampling{DoSample: true, MaxNewTokens: 2048, Temperature: 0.2, TopP: 0.95},
		},
		FileProcessing: FileProcessingConfig{
			MaxFileSizeMB: 1,
			SupportedExtensions: []string{
				".py", ".js", ".ts", ".jsx", ".tsx", ".java", ".c", ".h", ".cpp", ".hpp", ".cs",
				".go", ".rb", ".rs", ".php", ".swift", ".kt", ".sql", ".sh", ".ps1", ".r",
				".json", ".yaml", ".yml", ".toml", ".md", ".html", ".css",
			},
		},
		Security: SecurityConfig{
			RedactSecrets:   true,
			SkipSecretFiles: []string{".env", ".env.*", "*.pem", "*.key", "id_rsa*", "credentials*"},
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}
}

// LoadConfig loads configuration from YAML file with environment variable substitution.
// An empty configPath skips the file and returns defaults plus environment overrides.
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	config := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Substitute environment variables, then decode over the defaults
		content := expandEnvVars(string(data))
		if err := yaml.Unmarshal([]byte(content), config); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	config.applyEnvOverrides()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyEnvOverrides lets deployments change the essentials without a config file
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CODEGENIE_ADDR"); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv("CODEGENIE_PROVIDER"); v != "" {
		c.Inference.Provider = v
	}
	if v := os.Getenv("CODEGENIE_API_KEY"); v != "" {
		c.Inference.APIKey = v
	}
	if v := os.Getenv("CODEGENIE_BASE_URL"); v != "" {
		c.Inference.BaseURL = v
	}
	if v := os.Getenv("CODEGENIE_MODEL"); v != "" {
		c.Inference.Model = v
	}
	if v := os.Getenv("CODEGENIE_MAX_CONTEXT_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Prompt.MaxContextTokens = n
		}
	}
	if v := os.Getenv("CODEGENIE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Inference.Provider {
	case ProviderOpenAI:
		if c.Inference.APIKey == "" && c.Inference.BaseURL == "" {
			return fmt.Errorf("openai provider needs an API key or a base URL")
		}
	case ProviderOllama:
	default:
		return fmt.Errorf("unknown inference provider %q", c.Inference.Provider)
	}

	if c.Inference.Model == "" {
		return fmt.Errorf("inference model is required")
	}

	if c.RateLimiting.RequestsPerMinute < 0 || c.RateLimiting.RequestsPerDay < 0 {
		return fmt.Errorf("rate limits must not be negative")
	}

	if c.Inference.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}

	if c.Prompt.MaxContextTokens < 0 {
		return fmt.Errorf("max context tokens must not be negative")
	}

	if c.FileProcessing.MaxFileSizeMB <= 0 {
		return fmt.Errorf("max file size must be positive")
	}

	return nil
}

// expandEnvVars expands environment variables in the format ${VAR_NAME}
func expandEnvVars(content string) string {
	return os.Expand(content, func(key string) string {
		return os.Getenv(key)
	})
}

// RequestTimeout returns the per-call inference timeout; zero means none.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Inference.RequestTimeoutSeconds) * time.Second
}

// MaxFileSize returns the project collector's per-file limit in bytes.
func (c *Config) MaxFileSize() int64 {
	return int64(c.FileProcessing.MaxFileSizeMB) * 1024 * 1024
}

// IsFileSupported checks if a file extension is supported
func (c *Config) IsFileSupported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, supportedExt := range c.FileProcessing.SupportedExtensions {
		if ext == supportedExt {
			return true
		}
	}
	return false
}

// IsSecretFile checks if a file should be skipped due to security concerns
func (c *Config) IsSecretFile(filename string) bool {
	basename := filepath.Base(filename)
	for _, pattern := range c.Security.SkipSecretFiles {
		if matched, _ := filepath.Match(pattern, basename); matched {
			return true
		}
	}
	return false
}

// Locate returns the first config.yaml found in the working directory or its
// parent, or "" when there is none.
func Locate() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	candidates := []string{
		filepath.Join(cwd, "config.yaml"),
		filepath.Join(cwd, "..", "config.yaml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
