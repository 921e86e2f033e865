// Package config loads host settings from defaults, an optional TOML file and SCENERY_ env vars.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/scenery/audio"
	"github.com/lixenwraith/scenery/engine/fsm"
	"github.com/lixenwraith/scenery/parameter"
)

//go:embed default.toml
var defaultGraph []byte

// EnvPrefix namespaces environment overrides, e.g. SCENERY_AUDIO_ENABLED=true
const EnvPrefix = "SCENERY"

// Config holds application configuration
type Config struct {
	Tick  time.Duration `mapstructure:"tick"`
	Log   LogConfig     `mapstructure:"log"`
	Audio audio.Config  `mapstructure:"audio"`
	Graph fsm.Config    `mapstructure:"graph"`
}

// LogConfig holds file logging settings
type LogConfig struct {
	Debug   bool   `mapstructure:"debug"`
	Dir     string `mapstructure:"dir"`
	File    string `mapstructure:"file"`
	MaxSize int64  `mapstructure:"max_size"`
}

// New returns a viper instance carrying defaults and env binding
// The CLI binds its flags into the returned instance before Load
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("tick", parameter.TickInterval)
	v.SetDefault("log.debug", false)
	v.SetDefault("log.dir", parameter.LogDir)
	v.SetDefault("log.file", parameter.LogFileName)
	v.SetDefault("log.max_size", parameter.LogMaxSize)

	def := audio.DefaultConfig()
	v.SetDefault("audio.enabled", def.Enabled)
	v.SetDefault("audio.sample_rate", def.SampleRate)
	v.SetDefault("audio.volume", def.Volume)

	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return v
}

// Load reads path, or config.toml under $HOME/.config/scenery when path is empty
// A missing default file is not an error; a missing explicit path is
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "scenery"))
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(c.Graph.States) == 0 {
		graph, err := DefaultGraph()
		if err != nil {
			return Config{}, err
		}
		c.Graph = graph
	}

	if c.Tick <= 0 {
		return Config{}, fmt.Errorf("config: tick must be positive, got %s", c.Tick)
	}
	return c, nil
}

// DefaultGraph decodes the embedded state graph
func DefaultGraph() (fsm.Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(bytes.NewReader(defaultGraph)); err != nil {
		return fsm.Config{}, fmt.Errorf("read default graph: %w", err)
	}

	var graph fsm.Config
	if err := v.UnmarshalKey("graph", &graph); err != nil {
		return fsm.Config{}, fmt.Errorf("unmarshal default graph: %w", err)
	}
	return graph, nil
}

// LogPath returns the log file location
func (c Config) LogPath() string {
	return filepath.Join(c.Log.Dir, c.Log.File)
}
