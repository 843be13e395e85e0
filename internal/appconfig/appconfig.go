// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.yaml"
	// defaultRequestTimeout is the default timeout for backend requests.
	defaultRequestTimeout = 600 * time.Second
	// defaultHistoryFile is where every invocation's command line is appended.
	defaultHistoryFile = "CMDs/commands.cmd"
)

// Config represents the top-level application configuration.
type Config struct {
	Debug          bool              `yaml:"debug" mapstructure:"debug"`
	LogFile        string            `yaml:"logFile,omitempty" mapstructure:"logFile"`
	HistoryFile    string            `yaml:"historyFile,omitempty" mapstructure:"historyFile"`
	TimeoutSeconds int               `yaml:"timeout,omitempty" mapstructure:"timeout"`
	Backends       Backends          `yaml:"backends" mapstructure:"backends"`
	Synth          SynthConfig       `yaml:"synth" mapstructure:"synth"`
	RAG            RAGConfig         `yaml:"rag" mapstructure:"rag"`
	DesignTops     map[string]string `yaml:"designTops,omitempty" mapstructure:"designTops"`
	ConfigPath     string            `yaml:"-" mapstructure:"-"`
}

// Backends holds the connection settings for every supported backend kind.
type Backends struct {
	Gateway    Backend `yaml:"gateway" mapstructure:"gateway"`
	OpenAI     Backend `yaml:"openai" mapstructure:"openai"`
	OpenRouter Backend `yaml:"openrouter" mapstructure:"openrouter"`
	Anthropic  Backend `yaml:"anthropic" mapstructure:"anthropic"`
	Gemini     Backend `yaml:"gemini" mapstructure:"gemini"`
	Ollama     Backend `yaml:"ollama" mapstructure:"ollama"`
}

// Backend describes how to reach one provider endpoint. Credentials are never
// stored in the file itself; APIKeyEnv names the environment variable that
// carries the key.
type Backend struct {
	BaseURL   string `yaml:"baseURL,omitempty" mapstructure:"baseURL"`
	APIKeyEnv string `yaml:"apiKeyEnv,omitempty" mapstructure:"apiKeyEnv"`
	Model     string `yaml:"model,omitempty" mapstructure:"model"`
}

// APIKey resolves the backend's API key from the environment.
func (b Backend) APIKey() string {
	if strings.TrimSpace(b.APIKeyEnv) == "" {
		return ""
	}
	return os.Getenv(b.APIKeyEnv)
}

// SynthConfig describes the external synthesis tooling invoked per source file.
type SynthConfig struct {
	Make         string `yaml:"make,omitempty" mapstructure:"make"`
	Target       string `yaml:"target,omitempty" mapstructure:"target"`
	ReportScript string `yaml:"reportScript,omitempty" mapstructure:"reportScript"`
	WorkDir      string `yaml:"workDir,omitempty" mapstructure:"workDir"`
	MetricsFile  string `yaml:"metricsFile,omitempty" mapstructure:"metricsFile"`
}

// MakeCommand returns the build command, defaulting to make.
func (s SynthConfig) MakeCommand() string {
	if strings.TrimSpace(s.Make) == "" {
		return "make"
	}
	return s.Make
}

// MakeTarget returns the build target, defaulting to synth.
func (s SynthConfig) MakeTarget() string {
	if strings.TrimSpace(s.Target) == "" {
		return "synth"
	}
	return s.Target
}

// ReportScriptPath returns the report generation script, defaulting to ./run.sh.
func (s SynthConfig) ReportScriptPath() string {
	if strings.TrimSpace(s.ReportScript) == "" {
		return "./run.sh"
	}
	return s.ReportScript
}

// MetricsFilePath returns where the tooling drops its metrics file.
func (s SynthConfig) MetricsFilePath() string {
	if strings.TrimSpace(s.MetricsFile) == "" {
		return "reports/metrics.txt"
	}
	return s.MetricsFile
}

// RAGConfig holds the retrieval-augmented-generation settings.
type RAGConfig struct {
	Docs           map[string]string `yaml:"docs,omitempty" mapstructure:"docs"`
	ChunkSize      int               `yaml:"chunkSize,omitempty" mapstructure:"chunkSize"`
	Overlap        int               `yaml:"overlap,omitempty" mapstructure:"overlap"`
	TopK           int               `yaml:"topK,omitempty" mapstructure:"topK"`
	EmbeddingModel string            `yaml:"embeddingModel,omitempty" mapstructure:"embeddingModel"`
}

// ChunkWords returns the chunk size in words, defaulting to 500.
func (r RAGConfig) ChunkWords() int {
	if r.ChunkSize <= 0 {
		return 500
	}
	return r.ChunkSize
}

// OverlapWords returns the chunk overlap in words, defaulting to 100.
func (r RAGConfig) OverlapWords() int {
	if r.Overlap < 0 {
		return 0
	}
	if r.Overlap == 0 {
		return 100
	}
	return r.Overlap
}

// TopChunks returns how many chunks are retrieved, defaulting to 3.
func (r RAGConfig) TopChunks() int {
	if r.TopK <= 0 {
		return 3
	}
	return r.TopK
}

// EmbeddingModelName returns the embedding model, defaulting to text-embedding-3-small.
func (r RAGConfig) EmbeddingModelName() string {
	if strings.TrimSpace(r.EmbeddingModel) == "" {
		return "text-embedding-3-small"
	}
	return r.EmbeddingModel
}

// defaultDesignTops maps protocols to the module name the lint tooling reports on.
var defaultDesignTops = map[string]string{
	"i2c":  "I2C_driver",
	"spi":  "SPI_driver",
	"axi":  "AXI4_Lite_Master",
	"uart": "UART_driver",
}

// DesignTop returns the expected top module name for a protocol.
func (c Config) DesignTop(protocol string) string {
	if top, ok := c.DesignTops[protocol]; ok && strings.TrimSpace(top) != "" {
		return top
	}
	return defaultDesignTops[protocol]
}

// RequestTimeout returns the timeout for backend requests, falling back to the default.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "svbench.log"
}

// HistoryFilePath returns the append-only command history file.
func (c Config) HistoryFilePath() string {
	if path := c.HistoryFile; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultHistoryFile
}

// Load reads the application configuration from the specified path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("could not parse config file %q: %w", path, err)
	}
	config.ConfigPath = path
	return config, nil
}
