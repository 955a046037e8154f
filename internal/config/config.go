package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	DeviceCPU = "cpu"
	DeviceGPU = "gpu"
)

// Config holds application configuration.
type Config struct {
	Model       string  // Model specification in format "model:version" (e.g., "llama3:latest")
	Device      string  // Compute device the model runs on, reported in stats
	WindowSize  int     // Number of turns kept in conversation memory
	MaxWords    int     // Per-message word cap applied before storing a turn
	OllamaURL   string  // Base URL of the local Ollama server
	Temperature float64 // Sampling temperature
	MaxTokens   int     // Maximum tokens per completion
	Template    string  // Optional path to a TOML prompt template
	Debug       bool    // Enable debug logging
}

// SetDefaults registers defaults so env- or file-only configuration works
// without flags.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("model", "llama3:latest")
	v.SetDefault("device", DeviceCPU)
	v.SetDefault("window", 5)
	v.SetDefault("max-words", 100)
	v.SetDefault("ollama-url", "http://localhost:11434")
	v.SetDefault("temperature", 0.7)
	v.SetDefault("max-tokens", 128)
}

// Load extracts and validates a Config from viper.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Model:       v.GetString("model"),
		Device:      v.GetString("device"),
		WindowSize:  v.GetInt("window"),
		MaxWords:    v.GetInt("max-words"),
		OllamaURL:   v.GetString("ollama-url"),
		Temperature: v.GetFloat64("temperature"),
		MaxTokens:   v.GetInt("max-tokens"),
		Template:    v.GetString("template"),
		Debug:       v.GetBool("debug"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the session cannot run with.
func (c Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	if c.Device != DeviceCPU && c.Device != DeviceGPU {
		return fmt.Errorf("unknown device %q (expected %s or %s)", c.Device, DeviceCPU, DeviceGPU)
	}
	if c.WindowSize < 1 {
		return fmt.Errorf("window size must be at least 1, got %d", c.WindowSize)
	}
	if c.MaxWords < 1 {
		return fmt.Errorf("max words must be at least 1, got %d", c.MaxWords)
	}
	if c.OllamaURL == "" {
		return fmt.Errorf("ollama URL must not be empty")
	}
	if c.Temperature < 0 {
		return fmt.Errorf("temperature must not be negative, got %g", c.Temperature)
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("max tokens must be at least 1, got %d", c.MaxTokens)
	}
	return nil
}
