package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Server     ServerConfig
	Data       DataConfig
	Storage    StorageConfig
	Log        LogConfig
	Recommend  RecommendConfig
	Similarity SimilarityConfig
	Session    SessionConfig
}

type ServerConfig struct {
	Port int `validate:"min=1,max=65535"`
	// RateLimit is the sustained number of /chat requests per second allowed
	// per client. Zero disables limiting.
	RateLimit float64 `validate:"gte=0"`
	RateBurst int     `validate:"gte=1"`
}

type DataConfig struct {
	MoviesPath  string `validate:"required"`
	CreditsPath string `validate:"required"`
}

type StorageConfig struct {
	DataDir string `validate:"required"`
	// Journal toggles the SQLite interaction journal.
	Journal bool
	// QueueSize bounds the turns waiting to be journaled.
	QueueSize int `validate:"min=1"`
}

type LogConfig struct {
	Level string `validate:"oneof=debug info warn error"`
}

type RecommendConfig struct {
	DefaultTopN int `validate:"min=1,max=100"`
	PersonTopN  int `validate:"min=1,max=100"`
	SearchTopN  int `validate:"min=1,max=100"`
}

type SimilarityConfig struct {
	MaxFeatures int `validate:"min=1"`
}

type SessionConfig struct {
	HistorySize int `validate:"min=1"`
	MaxSessions int `validate:"min=1"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:      5000,
			RateLimit: 5,
			RateBurst: 10,
		},
		Data: DataConfig{
			MoviesPath:  "data/tmdb_5000_movies.csv",
			CreditsPath: "data/tmdb_5000_credits.csv",
		},
		Storage: StorageConfig{
			DataDir:   defaultDataDir(),
			Journal:   true,
			QueueSize: 256,
		},
		Log: LogConfig{
			Level: "info",
		},
		Recommend: RecommendConfig{
			DefaultTopN: 10,
			PersonTopN:  8,
			SearchTopN:  5,
		},
		Similarity: SimilarityConfig{
			MaxFeatures: 5000,
		},
		Session: SessionConfig{
			HistorySize: 20,
			MaxSessions: 10000,
		},
	}
}

// Load reads configuration from the JSON file at
// $XDG_CONFIG_HOME/flickfusion/config.json and applies FLICKFUSION_*
// environment overrides on top. The result is validated before return.
func Load() (Config, error) {
	return loadWith(newFileBackend(configFilePath()))
}

func loadWith(b ConfigBackend) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = func() func(Config) error {
	v := validator.New()
	return func(cfg Config) error {
		err := v.Struct(cfg)
		if err == nil {
			return nil
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating config: %w", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
}()
