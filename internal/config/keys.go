package config

import (
	"fmt"
	"os"
	"strconv"
)

type keyType int

const (
	kString keyType = iota
	kInt
	kBool
	kFloat
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "server.port", typ: kInt, env: "FLICKFUSION_SERVER_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.Port },
	},
	{
		key: "server.rate_limit", typ: kFloat, env: "FLICKFUSION_SERVER_RATE_LIMIT",
		apply:   func(cfg *Config, v any) { cfg.Server.RateLimit = v.(float64) },
		extract: func(cfg Config) any { return cfg.Server.RateLimit },
	},
	{
		key: "server.rate_burst", typ: kInt, env: "FLICKFUSION_SERVER_RATE_BURST",
		apply:   func(cfg *Config, v any) { cfg.Server.RateBurst = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.RateBurst },
	},
	{
		key: "data.movies_path", typ: kString, env: "FLICKFUSION_DATA_MOVIES_PATH",
		apply:   func(cfg *Config, v any) { cfg.Data.MoviesPath = v.(string) },
		extract: func(cfg Config) any { return cfg.Data.MoviesPath },
	},
	{
		key: "data.credits_path", typ: kString, env: "FLICKFUSION_DATA_CREDITS_PATH",
		apply:   func(cfg *Config, v any) { cfg.Data.CreditsPath = v.(string) },
		extract: func(cfg Config) any { return cfg.Data.CreditsPath },
	},
	{
		key: "storage.data_dir", typ: kString, env: "FLICKFUSION_STORAGE_DATA_DIR",
		apply:   func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.DataDir },
	},
	{
		key: "storage.journal", typ: kBool, env: "FLICKFUSION_STORAGE_JOURNAL",
		apply:   func(cfg *Config, v any) { cfg.Storage.Journal = v.(bool) },
		extract: func(cfg Config) any { return cfg.Storage.Journal },
	},
	{
		key: "storage.queue_size", typ: kInt, env: "FLICKFUSION_STORAGE_QUEUE_SIZE",
		apply:   func(cfg *Config, v any) { cfg.Storage.QueueSize = v.(int) },
		extract: func(cfg Config) any { return cfg.Storage.QueueSize },
	},
	{
		key: "log.level", typ: kString, env: "FLICKFUSION_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
	{
		key: "recommend.default_top_n", typ: kInt, env: "FLICKFUSION_RECOMMEND_DEFAULT_TOP_N",
		apply:   func(cfg *Config, v any) { cfg.Recommend.DefaultTopN = v.(int) },
		extract: func(cfg Config) any { return cfg.Recommend.DefaultTopN },
	},
	{
		key: "recommend.person_top_n", typ: kInt, env: "FLICKFUSION_RECOMMEND_PERSON_TOP_N",
		apply:   func(cfg *Config, v any) { cfg.Recommend.PersonTopN = v.(int) },
		extract: func(cfg Config) any { return cfg.Recommend.PersonTopN },
	},
	{
		key: "recommend.search_top_n", typ: kInt, env: "FLICKFUSION_RECOMMEND_SEARCH_TOP_N",
		apply:   func(cfg *Config, v any) { cfg.Recommend.SearchTopN = v.(int) },
		extract: func(cfg Config) any { return cfg.Recommend.SearchTopN },
	},
	{
		key: "similarity.max_features", typ: kInt, env: "FLICKFUSION_SIMILARITY_MAX_FEATURES",
		apply:   func(cfg *Config, v any) { cfg.Similarity.MaxFeatures = v.(int) },
		extract: func(cfg Config) any { return cfg.Similarity.MaxFeatures },
	},
	{
		key: "session.history_size", typ: kInt, env: "FLICKFUSION_SESSION_HISTORY_SIZE",
		apply:   func(cfg *Config, v any) { cfg.Session.HistorySize = v.(int) },
		extract: func(cfg Config) any { return cfg.Session.HistorySize },
	},
	{
		key: "session.max_sessions", typ: kInt, env: "FLICKFUSION_SESSION_MAX_SESSIONS",
		apply:   func(cfg *Config, v any) { cfg.Session.MaxSessions = v.(int) },
		extract: func(cfg Config) any { return cfg.Session.MaxSessions },
	},
}

func applyBackend(cfg *Config, b ConfigBackend) error {
	for _, s := range specs {
		switch s.typ {
		case kString:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kInt:
			v, ok, err := b.GetInt(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kBool:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok && v != "" {
				if bv, err := strconv.ParseBool(v); err == nil {
					s.apply(cfg, bv)
				} else {
					fmt.Fprintf(os.Stderr, "[WARN] could not parse bool from config key %s=%q: %v. Using default value.\n", s.key, v, err)
				}
			}
		case kFloat:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok && v != "" {
				if f, err := strconv.ParseFloat(v, 64); err == nil {
					s.apply(cfg, f)
				} else {
					fmt.Fprintf(os.Stderr, "[WARN] could not parse float from config key %s=%q: %v. Using default value.\n", s.key, v, err)
				}
			}
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		raw := os.Getenv(s.env)
		if raw == "" {
			continue
		}
		switch s.typ {
		case kString:
			s.apply(cfg, raw)
		case kInt:
			if i, err := strconv.Atoi(raw); err == nil {
				s.apply(cfg, i)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse integer from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		case kBool:
			if b, err := strconv.ParseBool(raw); err == nil {
				s.apply(cfg, b)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse bool from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		case kFloat:
			if f, err := strconv.ParseFloat(raw, 64); err == nil {
				s.apply(cfg, f)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse float from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		}
	}
}
