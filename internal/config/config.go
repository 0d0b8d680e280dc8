package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/ini.v1"
)

// ServiceKeyEnv overrides kopis.service_key when set.
const ServiceKeyEnv = "KOPIS_SERVICE_KEY"

const (
	defaultBaseURL           = "http://www.kopis.or.kr/openApi/restful"
	defaultRequestsPerSecond = 5
	defaultAddr              = ":39039"
	defaultLogLevel          = "info"
)

var ErrMissingServiceKey = errors.New("kopis service_key is not configured (set it in [kopis] or " + ServiceKeyEnv + ")")

type Kopis struct {
	ServiceKey        string
	BaseURL           string
	RequestsPerSecond int
}

type Server struct {
	Addr string
}

type Log struct {
	Level string
}

type Config struct {
	Kopis  Kopis
	Server Server
	Log    Log
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Kopis: Kopis{
			BaseURL:           defaultBaseURL,
			RequestsPerSecond: defaultRequestsPerSecond,
		},
		Server: Server{Addr: defaultAddr},
		Log:    Log{Level: defaultLogLevel},
	}
}

// Load reads an ini config file. An empty path yields the defaults. The
// service key environment variable is applied last in both cases.
//
//	[kopis]
//	service_key = ...
//	base_url = http://www.kopis.or.kr/openApi/restful
//	requests_per_second = 5
//
//	[server]
//	addr = :39039
//
//	[log]
//	level = info
func Load(path string) (Config, error) {
	c := Default()

	if path != "" {
		cfg, err := ini.Load(path)
		if err != nil {
			return c, fmt.Errorf("load config %s: %w", path, err)
		}

		sec := cfg.Section("kopis")
		c.Kopis.ServiceKey = sec.Key("service_key").String()
		c.Kopis.BaseURL = sec.Key("base_url").MustString(defaultBaseURL)
		c.Kopis.RequestsPerSecond = sec.Key("requests_per_second").MustInt(defaultRequestsPerSecond)

		c.Server.Addr = cfg.Section("server").Key("addr").MustString(defaultAddr)
		c.Log.Level = cfg.Section("log").Key("level").MustString(defaultLogLevel)
	}

	if key := strings.TrimSpace(os.Getenv(ServiceKeyEnv)); key != "" {
		c.Kopis.ServiceKey = key
	}

	return c, nil
}

// Validate checks the settings every KOPIS-backed command needs and reports
// all problems at once.
func (c Config) Validate() error {
	var err error
	if strings.TrimSpace(c.Kopis.ServiceKey) == "" {
		err = multierr.Append(err, ErrMissingServiceKey)
	}
	if u, perr := url.Parse(c.Kopis.BaseURL); perr != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		err = multierr.Append(err, fmt.Errorf("kopis base_url must be an absolute http(s) URL, got %q", c.Kopis.BaseURL))
	}
	if c.Kopis.RequestsPerSecond < 0 {
		err = multierr.Append(err, fmt.Errorf("kopis requests_per_second must not be negative, got %d", c.Kopis.RequestsPerSecond))
	}
	return err
}
