package logger

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

const (
	OutputConsole = "console"
	OutputFile    = "file"
	OutputBoth    = "both"
)

// Config defines the logger configuration
type Config struct {
	Level            string     `mapstructure:"level"`  // debug, info, warn, error
	Format           string     `mapstructure:"format"` // json, console
	Output           string     `mapstructure:"output"` // console, file, both
	File             FileConfig `mapstructure:"file"`
	EnableCaller     bool       `mapstructure:"enable_caller"`
	EnableStacktrace bool       `mapstructure:"enable_stacktrace"` // stacktrace for error level
}

// FileConfig defines rotated file output
type FileConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxAge     int    `mapstructure:"max_age"`  // days
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

// DefaultConfig returns default logger configuration
func DefaultConfig() *Config {
	return &Config{
		Level:            "info",
		Format:           "json",
		Output:           OutputConsole,
		EnableCaller:     true,
		EnableStacktrace: true,
		File: FileConfig{
			Filename:   "logs/search-api.log",
			MaxSize:    100,
			MaxAge:     30,
			MaxBackups: 10,
			Compress:   true,
		},
	}
}

// Validate validates the logger configuration
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("invalid log level %q", c.Level)
	}

	switch c.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format %q, must be 'json' or 'console'", c.Format)
	}

	switch c.Output {
	case OutputConsole:
		return nil
	case OutputFile, OutputBoth:
	default:
		return fmt.Errorf("invalid log output %q, must be 'console', 'file' or 'both'", c.Output)
	}

	if c.File.Filename == "" {
		return fmt.Errorf("log file filename is required when output is %q", c.Output)
	}
	if c.File.MaxSize <= 0 || c.File.MaxAge <= 0 {
		return fmt.Errorf("log file max_size and max_age must be greater than 0")
	}
	if c.File.MaxBackups < 0 {
		return fmt.Errorf("log file max_backups must not be negative")
	}
	return nil
}
