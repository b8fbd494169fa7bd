package config

import (
	"errors"
	"fmt"
	"strings"
	"tictactoe/meta"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "TICTACTOE"

// Config holds everything the commands can be tuned with.
type Config struct {
	// Files
	ModelPath    string `mapstructure:"model_path"`
	ProgressPath string `mapstructure:"progress_path"`
	ChartPath    string `mapstructure:"chart_path"`
	HistoryPath  string `mapstructure:"history_path"`
	RecordsDir   string `mapstructure:"records_dir"`

	// Training and evaluation
	Episodes     int     `mapstructure:"episodes"`
	EvalGames    int     `mapstructure:"eval_games"`
	LearningRate float64 `mapstructure:"learning_rate"`
	Discount     float64 `mapstructure:"discount"`
	Exploration  float64 `mapstructure:"exploration"`
	// Seed 0 seeds from the clock.
	Seed uint64 `mapstructure:"seed"`

	LogLevel string `mapstructure:"log_level"`
	Addr     string `mapstructure:"addr"`
}

func Default() *Config {
	return &Config{
		ModelPath:    meta.ModelFile,
		ProgressPath: meta.ProgressFile,
		ChartPath:    meta.ChartFile,
		HistoryPath:  meta.HistoryFile,
		RecordsDir:   "experiments",
		Episodes:     meta.TrainingEpisodes,
		EvalGames:    meta.EvaluationGames,
		LearningRate: meta.LearningRate,
		Discount:     meta.Discount,
		Exploration:  meta.Exploration,
		LogLevel:     "info",
		Addr:         ":8080",
	}
}

// Validate checks paths and counts. Hyperparameters are passed through as
// given.
func (c *Config) Validate() error {
	if c.ModelPath == "" {
		return errors.New("model_path is required")
	}
	if c.ProgressPath == "" {
		return errors.New("progress_path is required")
	}
	if c.HistoryPath == "" {
		return errors.New("history_path is required")
	}
	if c.Episodes < 0 {
		return fmt.Errorf("episodes must not be negative, got %d", c.Episodes)
	}
	if c.EvalGames < 0 {
		return fmt.Errorf("eval_games must not be negative, got %d", c.EvalGames)
	}
	return nil
}

// NewViper returns a viper instance that knows every key, reads
// TICTACTOE_* environment variables and falls back to Default.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("model_path", d.ModelPath)
	v.SetDefault("progress_path", d.ProgressPath)
	v.SetDefault("chart_path", d.ChartPath)
	v.SetDefault("history_path", d.HistoryPath)
	v.SetDefault("records_dir", d.RecordsDir)
	v.SetDefault("episodes", d.Episodes)
	v.SetDefault("eval_games", d.EvalGames)
	v.SetDefault("learning_rate", d.LearningRate)
	v.SetDefault("discount", d.Discount)
	v.SetDefault("exploration", d.Exploration)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("addr", d.Addr)
	return v
}

// BindFlag binds the named flag, if flags defines it, to a config key.
func BindFlag(v *viper.Viper, flags *pflag.FlagSet, key, name string) error {
	flag := flags.Lookup(name)
	if flag == nil {
		return nil
	}
	if err := v.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("bind flag %s: %w", name, err)
	}
	return nil
}

// Load reads the optional config file, then resolves every key with the
// usual precedence (flag, env, file, default) and validates the result.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
