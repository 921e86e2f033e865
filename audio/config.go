package audio

import "github.com/lixenwraith/scenery/parameter"

// Config holds audio settings decoded from the [audio] config table
type Config struct {
	Enabled    bool    `mapstructure:"enabled"`
	SampleRate int     `mapstructure:"sample_rate"`
	Volume     float64 `mapstructure:"volume"`
}

// DefaultConfig returns muted defaults
func DefaultConfig() Config {
	return Config{
		Enabled:    false,
		SampleRate: parameter.AudioSampleRate,
		Volume:     parameter.AudioVolume,
	}
}
