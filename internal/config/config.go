package config

import (
	"cmp"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type ClientConfig struct {
	BaseURL           string        `yaml:"base_url"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
}

const (
	_requestTimeoutDefault    = 30 * time.Second
	_requestsPerMinuteDefault = 120
)

func (c *ClientConfig) Setup() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return err
	}

	if c.RequestTimeout <= 0 {
		c.RequestTimeout = _requestTimeoutDefault
	}
	if c.RequestsPerMinute <= 0 {
		c.RequestsPerMinute = _requestsPerMinuteDefault
	}

	return nil
}

type MarketConfig struct {
	RefreshInterval  time.Duration `yaml:"refresh_interval"`
	FollowedSeed     []int         `yaml:"followed_seed"`
	NoSampleFallback bool          `yaml:"no_sample_fallback"`
}

const _refreshIntervalDefault = 60 * time.Second

// Games every fresh install follows until the user picks their own.
var _followedSeedDefault = []int{1, 2, 3, 4, 5, 6, 7}

func (c *MarketConfig) Setup() {
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = _refreshIntervalDefault
	}
	if len(c.FollowedSeed) == 0 {
		c.FollowedSeed = _followedSeedDefault
	}
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

const _serverPortDefault = "8080"

func (c *ServerConfig) Setup() {
	c.Port = cmp.Or(c.Port, _serverPortDefault)
}

type Config struct {
	Client ClientConfig `yaml:"client"`
	Market MarketConfig `yaml:"market"`
	Server ServerConfig `yaml:"server"`
}

func (c *Config) ValidateAndSetup() error {
	if err := c.Client.Setup(); err != nil {
		return fmt.Errorf("%w: can't setup client cfg", err)
	}
	c.Market.Setup()
	c.Server.Setup()
	return nil
}

func LoadConfig(filename string) (Config, error) {
	var cfg Config
	input, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("%w: can't read file", err)
	}

	if err := yaml.Unmarshal(input, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: can't unmarshal config", err)
	}

	if err := cfg.ValidateAndSetup(); err != nil {
		return cfg, fmt.Errorf("%w: can't setup cfg", err)
	}

	return cfg, nil
}
