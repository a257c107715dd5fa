package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"invest-sim/internal/model"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Provider  ProviderConfig `yaml:"provider"`
	Defaults  Defaults       `yaml:"defaults"`
	Watchlist []string       `yaml:"watchlist"`
}

type ProviderConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Defaults are the simulation parameters applied when a request or CLI run
// leaves them unset. They mirror the original UI's slider defaults.
type Defaults struct {
	InitialCapital      float64 `yaml:"initial_capital"`
	MonthlyContribution float64 `yaml:"monthly_contribution"`
	Period              string  `yaml:"period"`

	ProtectivePut ProtectivePutDefaults `yaml:"protective_put"`
	BullCall      BullCallDefaults      `yaml:"bull_call"`
}

type ProtectivePutDefaults struct {
	StrikePct  int `yaml:"strike_pct"`
	PremiumPct int `yaml:"premium_pct"`
}

type BullCallDefaults struct {
	OTMPct        int `yaml:"otm_pct"`
	ITMPct        int `yaml:"itm_pct"`
	PremiumITMPct int `yaml:"premium_itm_pct"`
	PremiumOTMPct int `yaml:"premium_otm_pct"`
}

// Default returns the built-in configuration, used when no file is given.
func Default() *Config {
	return &Config{
		Provider: ProviderConfig{
			TimeoutSeconds: 30,
		},
		Defaults: Defaults{
			InitialCapital:      500,
			MonthlyContribution: 500,
			Period:              "2y",
			ProtectivePut:       ProtectivePutDefaults{StrikePct: 5, PremiumPct: 2},
			BullCall: BullCallDefaults{
				OTMPct: 5, ITMPct: 5, PremiumITMPct: 8, PremiumOTMPct: 3,
			},
		},
		Watchlist: []string{
			"PETR4.SA", "VALE3.SA", "ITUB4.SA", "WEGE3.SA", "BBDC3.SA",
			"ABEV3.SA", "BBAS3.SA", "BPAC11.SA", "SANB11.SA", "ITSA4.SA",
		},
	}
}

// Load reads, merges over the defaults, and validates a config file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config but does not validate it. Useful for
// debugging partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Provider.TimeoutSeconds <= 0 {
		return errors.New("provider.timeout_seconds must be > 0")
	}
	d := c.Defaults
	if d.InitialCapital <= 0 {
		return errors.New("defaults.initial_capital must be > 0")
	}
	if d.MonthlyContribution < 0 {
		return errors.New("defaults.monthly_contribution must be >= 0")
	}
	if !model.ValidPeriod(d.Period) {
		return fmt.Errorf("defaults.period %q is not a supported period", d.Period)
	}
	for name, v := range map[string]int{
		"protective_put.strike_pct":  d.ProtectivePut.StrikePct,
		"protective_put.premium_pct": d.ProtectivePut.PremiumPct,
		"bull_call.otm_pct":          d.BullCall.OTMPct,
		"bull_call.itm_pct":          d.BullCall.ITMPct,
		"bull_call.premium_itm_pct":  d.BullCall.PremiumITMPct,
		"bull_call.premium_otm_pct":  d.BullCall.PremiumOTMPct,
	} {
		if v < 1 || v > 10 {
			return fmt.Errorf("defaults.%s must be in [1,10], got %d", name, v)
		}
	}
	return nil
}

// Timeout converts the provider timeout to a duration.
func (p ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}
