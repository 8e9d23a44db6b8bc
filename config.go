package seqpack

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hupe1980/seqpack/internal/simd"
	"gopkg.in/yaml.v3"
)

// Config is the serializable form of the engine options.
type Config struct {
	// ChunkSize is the number of symbols per chunk; 0 derives it from the
	// alphabet width.
	ChunkSize int `yaml:"chunk_size" json:"chunk_size"`

	// Overlap is the minimum chunk overlap in symbols.
	Overlap int `yaml:"overlap" json:"overlap"`

	// Workers is the worker pool size; 0 uses GOMAXPROCS.
	Workers int `yaml:"workers" json:"workers"`

	// Parallel enables parallel chunk scanning.
	Parallel bool `yaml:"parallel" json:"parallel"`

	// AmbiguityMatching makes IUPAC codes wildcards.
	AmbiguityMatching bool `yaml:"ambiguity_matching" json:"ambiguity_matching"`

	// WordParallel enables the SWAR exact-search filter.
	WordParallel bool `yaml:"word_parallel" json:"word_parallel"`

	MemoryLimitBytes      int64 `yaml:"memory_limit_bytes" json:"memory_limit_bytes"`
	MaxConcurrentSearches int64 `yaml:"max_concurrent_searches" json:"max_concurrent_searches"`
	IOLimitBytesPerSec    int64 `yaml:"io_limit_bytes_per_sec" json:"io_limit_bytes_per_sec"`

	// LogLevel is a slog level name (debug, info, warn, error); empty keeps
	// the engine's logger.
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// DefaultConfig returns the configuration New uses without options.
func DefaultConfig() Config {
	return Config{
		Parallel:     true,
		WordParallel: simd.WordParallel(),
	}
}

// Validate checks the configuration for out-of-range values.
func (c Config) Validate() error {
	switch {
	case c.ChunkSize < 0:
		return fmt.Errorf("%w: chunk_size %d", ErrInvalidArgument, c.ChunkSize)
	case c.Overlap < 0:
		return fmt.Errorf("%w: overlap %d", ErrInvalidArgument, c.Overlap)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidArgument, c.Workers)
	case c.MemoryLimitBytes < 0, c.MaxConcurrentSearches < 0, c.IOLimitBytesPerSec < 0:
		return fmt.Errorf("%w: negative resource limit", ErrInvalidArgument)
	}
	if c.LogLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
			return fmt.Errorf("%w: log_level %q", ErrInvalidArgument, c.LogLevel)
		}
	}
	return nil
}

// LoadConfig reads a YAML configuration file. Keys missing from the file
// keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML configuration bytes over DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
