package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/agentmetrics-cli/internal/utils"
)

// DefaultInput is the dataset file name looked up in the working directory.
const DefaultInput = "first-80-rows-agentic_ai_performance_dataset_20250622.xlsx"

// Global configuration structure.
type Global struct {
	Input      string `mapstructure:"input" yaml:"input"`
	Output     string `mapstructure:"output" yaml:"output"`
	SheetName  string `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex int    `mapstructure:"sheet_index" yaml:"sheet_index"`
	// SkipRows drops leading sheet rows that sit above the header row.
	SkipRows int `mapstructure:"skip_rows" yaml:"skip_rows"`
	TopN     int `mapstructure:"top_n" yaml:"top_n"`
	// FalseTokens lists strings treated as false in the multimodal column.
	FalseTokens []string `mapstructure:"false_tokens" yaml:"false_tokens"`
	LogLevel    string   `mapstructure:"log_level" yaml:"log_level"`
}

// Dir returns ~/.agentmetrics.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".agentmetrics"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.agentmetrics/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env (including a local .env file) > config file > defaults.
// Command-line flags are applied on top by the caller.
func Load(cfgFile string) (*Global, error) {
	// .env is optional; existing environment variables win over it
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("AGENTMETRICS")
	v.AutomaticEnv()

	v.SetDefault("input", DefaultInput)
	v.SetDefault("output", "results.json")
	v.SetDefault("sheet_name", "")
	v.SetDefault("sheet_index", 1)
	v.SetDefault("skip_rows", 0)
	v.SetDefault("top_n", 3)
	v.SetDefault("false_tokens", []string{})
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.TopN <= 0 {
		return nil, fmt.Errorf("invalid top_n: %d (must be > 0)", c.TopN)
	}
	return &c, nil
}
