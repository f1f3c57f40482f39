package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns every known key with its default and meaning.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "listen", Default: ":8080", Comment: "Controller endpoint: host:port or unix:/path/to/socket"},
		{Key: "log.level", Default: "info", Comment: "trace, debug, info, warn or error"},
		{Key: "log.format", Default: "console", Comment: "console or json"},
		{Key: "queue.capacity", Default: 0, Comment: "Looper queue bound; 0 is unbounded, newest commands are dropped when full"},
		{Key: "metrics.enabled", Default: true, Comment: "Expose prometheus metrics on the controller endpoint"},
		{Key: "metrics.path", Default: "/metrics", Comment: "Path for prometheus metrics"},
		{Key: "ws.read_buffer", Default: 4096, Comment: "Websocket read buffer in bytes"},
		{Key: "ws.write_buffer", Default: 4096, Comment: "Websocket write buffer in bytes"},
		{Key: "ws.send_queue", Default: 64, Comment: "Events buffered per controller before new ones are dropped"},
		{Key: "ws.write_timeout", Default: "5s", Comment: "Deadline for writing one event to a controller"},
		{Key: "shutdown_timeout", Default: "5s", Comment: "Grace period for in-flight requests on shutdown"},
	}
}

type Config struct {
	Listen          string
	LogLevel        string
	LogFormat       string
	QueueCapacity   int
	MetricsEnabled  bool
	MetricsPath     string
	ReadBuffer      int
	WriteBuffer     int
	SendQueue       int
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
func Load(v *viper.Viper) error {
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("vtprovider")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "vtprovider"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "vtprovider"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("vtprovider")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return nil
}

func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Listen:          strings.TrimSpace(v.GetString("listen")),
		LogLevel:        v.GetString("log.level"),
		LogFormat:       v.GetString("log.format"),
		QueueCapacity:   v.GetInt("queue.capacity"),
		MetricsEnabled:  v.GetBool("metrics.enabled"),
		MetricsPath:     v.GetString("metrics.path"),
		ReadBuffer:      v.GetInt("ws.read_buffer"),
		WriteBuffer:     v.GetInt("ws.write_buffer"),
		SendQueue:       v.GetInt("ws.send_queue"),
		WriteTimeout:    v.GetDuration("ws.write_timeout"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Listen == "" || c.Listen == "unix:" {
		errs = append(errs, errors.New("listen must not be empty"))
	}
	if c.QueueCapacity < 0 {
		errs = append(errs, fmt.Errorf("queue.capacity must be >= 0, got %d", c.QueueCapacity))
	}
	if c.ReadBuffer < 0 || c.WriteBuffer < 0 {
		errs = append(errs, errors.New("ws buffers must be >= 0"))
	}
	if c.SendQueue < 1 {
		errs = append(errs, fmt.Errorf("ws.send_queue must be >= 1, got %d", c.SendQueue))
	}
	if c.WriteTimeout < 0 || c.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("timeouts must be >= 0"))
	}
	if c.MetricsEnabled && !strings.HasPrefix(c.MetricsPath, "/") {
		errs = append(errs, fmt.Errorf("metrics.path must start with /, got %q", c.MetricsPath))
	}
	if f := strings.ToLower(c.LogFormat); f != "console" && f != "json" {
		errs = append(errs, fmt.Errorf("log.format must be console or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}
