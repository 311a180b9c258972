package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/berthplan/core/metrics"
	"github.com/kilianp07/berthplan/core/scheduler"
	"github.com/kilianp07/berthplan/infra/mqtt"
)

type Config struct {
	Scheduler scheduler.SchedulerConfig `json:"scheduler"`
	Fixtures  FixturesConfig            `json:"fixtures"`
	Server    ServerConfig              `json:"server"`
	Metrics   metrics.Config            `json:"metrics"`
	MQTT      mqtt.Config               `json:"mqtt"`
	Logging   LoggingConfig             `json:"logging"`
	Sentry    SentryConfig              `json:"sentry"`
}

// Load reads path (YAML or JSON) and applies K_-prefixed environment
// overrides, e.g. K_SCHEDULER__PLAN_DATE. An empty path loads defaults and
// environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills every section.
func (c *Config) SetDefaults() {
	c.Scheduler.SetDefaults()
	c.Fixtures.SetDefaults()
	c.Server.SetDefaults()
	c.MQTT.SetDefaults()
	c.Logging.SetDefaults()
}

func (c Config) Validate() error {
	validators := []func() error{
		c.Scheduler.Validate,
		c.Fixtures.Validate,
		c.Server.Validate,
		c.MQTT.Validate,
		c.Logging.Validate,
		c.Sentry.Validate,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}
