package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/moffa90/go-wt2003s/protocol"
	"github.com/moffa90/go-wt2003s/transport"
)

// EnvPrefix prefixes environment overrides, e.g. WT2003S_SERIAL_PORT.
const EnvPrefix = "WT2003S"

// SerialConfig describes the UART link.
type SerialConfig struct {
	Port        string        `mapstructure:"port" yaml:"port"`
	TXPin       string        `mapstructure:"txPin" yaml:"txPin"`
	RXPin       string        `mapstructure:"rxPin" yaml:"rxPin"`
	BaudRate    int           `mapstructure:"baudRate" yaml:"baudRate"`
	ReadTimeout time.Duration `mapstructure:"readTimeout" yaml:"readTimeout"`
}

// PlayerConfig tunes command behaviour.
type PlayerConfig struct {
	SettleDelay  time.Duration `mapstructure:"settleDelay" yaml:"settleDelay"`
	StrictParams bool          `mapstructure:"strictParams" yaml:"strictParams"`
}

// LumberjackConfig configures log file rotation.
type LumberjackConfig struct {
	Filename   string `mapstructure:"filename" yaml:"filename"`
	MaxSizeMB  int    `mapstructure:"maxSize" yaml:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups" yaml:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAge" yaml:"maxAge"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// LoggingConfig selects log level, format and optional file output.
type LoggingConfig struct {
	Level  string           `mapstructure:"level" yaml:"level"`
	Format string           `mapstructure:"format" yaml:"format"`
	File   LumberjackConfig `mapstructure:"file" yaml:"file"`
}

// MetricsConfig controls the Prometheus endpoint of the shell command.
type MetricsConfig struct {
	Enable bool   `mapstructure:"enable" yaml:"enable"`
	Addr   string `mapstructure:"addr" yaml:"addr"`
	Path   string `mapstructure:"path" yaml:"path"`
}

// Config is the top-level configuration.
type Config struct {
	Serial  SerialConfig  `mapstructure:"serial" yaml:"serial"`
	Player  PlayerConfig  `mapstructure:"player" yaml:"player"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// Load reads configuration from a YAML/TOML/JSON file, environment
// variables and defaults, in decreasing priority of env, file, default.
// If path is empty, wt2003s.yaml is looked up in the working directory
// and ./configs; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.SetConfigName("wt2003s")
		v.SetConfigType("yaml")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("serial.port", "")
	v.SetDefault("serial.txPin", "")
	v.SetDefault("serial.rxPin", "")
	v.SetDefault("serial.baudRate", int(transport.DefaultBaudRate))
	v.SetDefault("serial.readTimeout", transport.DefaultReadTimeout)

	v.SetDefault("player.settleDelay", protocol.SettleDelay)
	v.SetDefault("player.strictParams", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file.filename", "")
	v.SetDefault("logging.file.maxSize", 10)
	v.SetDefault("logging.file.maxBackups", 3)
	v.SetDefault("logging.file.maxAge", 28)
	v.SetDefault("logging.file.compress", false)

	v.SetDefault("metrics.enable", false)
	v.SetDefault("metrics.addr", "127.0.0.1:9310")
	v.SetDefault("metrics.path", "/metrics")
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	if !transport.BaudRate(c.Serial.BaudRate).Valid() {
		return fmt.Errorf("serial.baudRate: unsupported baud rate %d", c.Serial.BaudRate)
	}
	if c.Serial.ReadTimeout < 0 {
		return fmt.Errorf("serial.readTimeout cannot be negative")
	}
	if c.Player.SettleDelay < 0 {
		return fmt.Errorf("player.settleDelay cannot be negative")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// Transport converts the serial section into a transport.Config.
func (c *Config) Transport() transport.Config {
	return transport.Config{
		Port:        c.Serial.Port,
		TXPin:       c.Serial.TXPin,
		RXPin:       c.Serial.RXPin,
		BaudRate:    transport.BaudRate(c.Serial.BaudRate),
		ReadTimeout: c.Serial.ReadTimeout,
	}
}

// WriteYAML writes the effective configuration in the file format Load
// accepts.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
