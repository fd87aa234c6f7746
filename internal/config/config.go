// Package config is the layered configuration of the tmcalc commands:
// built-in defaults, then an optional YAML file, then TMCALC_* environment
// variables, then command-line flags. Viper merges the layers and
// mapstructure decodes them into Config.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tmcalc/core/melting"
)

// EnvPrefix prefixes every environment variable, e.g. TMCALC_OLIGO_CONC.
const EnvPrefix = "TMCALC"

// Config is every setting of every command. Keys match the long flag names.
type Config struct {
	Sequence          string        `mapstructure:"sequence"`
	Complementary     string        `mapstructure:"complementary"`
	Hybridization     string        `mapstructure:"hybridization"`
	OligoConc         Concentration `mapstructure:"oligo-conc"`
	Solution          Solution      `mapstructure:"solution"`
	SelfComplementary bool          `mapstructure:"self-complementary"`
	Factor            int           `mapstructure:"factor"`
	Mode              string        `mapstructure:"mode"`
	Threshold         int           `mapstructure:"threshold"`

	// Methods maps a motif option (nn, sinMM, ...) to "model[:file]".
	Methods         map[string]string `mapstructure:"methods"`
	Approx          string            `mapstructure:"am"`
	Ion             string            `mapstructure:"ion"`
	NaEq            string            `mapstructure:"naeq"`
	DMSOMethod      string            `mapstructure:"dmso-method"`
	FormamideMethod string            `mapstructure:"formamide-method"`
	DataDir         string            `mapstructure:"data-dir"`

	Output     string `mapstructure:"output"`
	Trace      bool   `mapstructure:"trace"`
	LogLevel   string `mapstructure:"log-level"`
	Quiet      bool   `mapstructure:"quiet"`
	MetricsOut string `mapstructure:"metrics-out"`
	Threads    int    `mapstructure:"threads"`
	Header     bool   `mapstructure:"header"`

	Serve ServeConfig `mapstructure:"serve"`
}

// ServeConfig configures `tmcalc serve`.
type ServeConfig struct {
	Addr        string        `mapstructure:"addr"`
	Redis       string        `mapstructure:"redis"`
	RedisPrefix string        `mapstructure:"redis-prefix"`
	CacheTTL    time.Duration `mapstructure:"cache-ttl"`
}

// Defaults are the values every layer starts from.
func Defaults() map[string]any {
	return map[string]any{
		"hybridization":      "dnadna",
		"oligo-conc":         "",
		"solution":           "",
		"mode":               string(melting.ModeDefault),
		"threshold":          melting.DefaultThreshold,
		"output":             "text",
		"log-level":          "warn",
		"threads":            1,
		"header":             true,
		"serve.addr":         ":8080",
		"serve.redis-prefix": "tmcalc:result:",
		"serve.cache-ttl":    "24h",
	}
}

// New returns a viper instance with the defaults and the environment layer
// in place. Flags are bound with BindFlags and the file is read with Load.
func New() *viper.Viper {
	v := viper.New()
	for k, val := range Defaults() {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds every flag of fs to its key. Motif flags (--nn, --sinMM,
// ...) land under methods.<option>; --addr, --redis, --redis-prefix and
// --cache-ttl under serve.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Name == "config" {
			return
		}
		err = v.BindPFlag(Key(f.Name), f)
	})
	return err
}

var serveKeys = map[string]bool{"addr": true, "redis": true, "redis-prefix": true, "cache-ttl": true}

// Key maps a flag name to its configuration key.
func Key(flag string) string {
	if _, ok := motifOption(flag); ok {
		return "methods." + strings.ToLower(flag)
	}
	if serveKeys[flag] {
		return "serve." + flag
	}
	return flag
}

// Load reads the YAML file at path (if not empty) and decodes every layer
// into a Config.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrConfig, path, err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c, viper.DecodeHook(decodeHook())); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return c, nil
}

// ErrConfig marks a configuration file or value that cannot be decoded.
var ErrConfig = errors.New("configuration error")
