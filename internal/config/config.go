package config

import (
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/neurowave/internal/wave"
)

const (
	DefaultDt       = 0.001
	DefaultDuration = 1.0
	DefaultVertices = 64
	DefaultModes    = 16
)

type Config struct {
	Method   string         `yaml:"method"`
	GammaS   float64        `yaml:"gamma_s"`
	RS       float64        `yaml:"r_s"`
	Dt       float64        `yaml:"dt"`
	Duration float64        `yaml:"duration"`
	Vertices int            `yaml:"vertices"`
	Modes    int            `yaml:"modes"`
	Workers  int            `yaml:"workers"`
	Stimulus StimulusConfig `yaml:"stimulus"`
}

// StimulusConfig describes the synthetic external input used by the CLI: a
// spatial Gaussian bump gated by a temporal window.
type StimulusConfig struct {
	Center    float64 `yaml:"center"`    // spatial center on the unit line
	Width     float64 `yaml:"width"`     // spatial standard deviation
	Onset     float64 `yaml:"onset"`     // time the stimulus switches on
	Duration  float64 `yaml:"duration"`  // how long it stays on
	Amplitude float64 `yaml:"amplitude"`
}

func DefaultConfig() *Config {
	return &Config{
		Method:   wave.MethodODE.String(),
		GammaS:   wave.DefaultGamma,
		RS:       wave.DefaultLengthScale,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Vertices: DefaultVertices,
		Modes:    DefaultModes,
		Stimulus: StimulusConfig{
			Center:    0.5,
			Width:     0.1,
			Onset:     0.05,
			Duration:  0.05,
			Amplitude: 1.0,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Params() wave.Params {
	return wave.Params{Gamma: c.GammaS, LengthScale: c.RS}
}

// TimeGrid builds the uniform simulation grid [0, Duration] with step Dt.
func (c *Config) TimeGrid() wave.TimeGrid {
	n := int(math.Round(c.Duration/c.Dt)) + 1
	if n < 2 {
		n = 2
	}
	return wave.Span(0, c.Dt*float64(n-1), n)
}
