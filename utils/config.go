package utils

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"
)

const (
	RendererTerminal = "terminal"
	RendererGUI      = "gui"
)

// Duration is a time.Duration that reads and writes JSON as "100ms" style strings
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Wrap(err, "[Duration.UnmarshalJSON] invalid JSON")
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return errors.Wrapf(err, "[Duration.UnmarshalJSON] invalid duration: %+v", value)
		}
		d.Duration = parsed
	default:
		return errors.Errorf("[Duration.UnmarshalJSON] unsupported duration value: %s", data)
	}
	return nil
}

// Config holds the configuration for the game
type Config struct {
	Width               int      `json:"width"`
	Height              int      `json:"height"`
	Tick                Duration `json:"tick"`
	Seed                int64    `json:"seed"`
	MaxGenerations      int      `json:"max_generations"`
	AutoRestart         bool     `json:"auto_restart"`
	StagnationThreshold int      `json:"stagnation_threshold"`
	Renderer            string   `json:"renderer"`
	CellSize            int      `json:"cell_size"`
}

// DefaultConfig returns the windowed defaults: a 75x50 board stepped every 100ms
func DefaultConfig() Config {
	return Config{
		Width:               75,
		Height:              50,
		Tick:                Duration{100 * time.Millisecond},
		Seed:                0, // 0 seeds from the clock
		MaxGenerations:      0, // 0 runs until interrupted
		AutoRestart:         true,
		StagnationThreshold: 5,
		Renderer:            RendererTerminal,
		CellSize:            10,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Bind attaches the configuration to the provided FlagSet. Values already in
// the config become the flag defaults.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "board width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "board height in cells")
	fs.DurationVar(&c.Tick.Duration, "tick", c.Tick.Duration, "delay between generations")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for board randomization (0 uses the clock)")
	fs.IntVar(&c.MaxGenerations, "generations", c.MaxGenerations, "stop after this many generations (0 runs forever)")
	fs.BoolVar(&c.AutoRestart, "auto-restart", c.AutoRestart, "re-randomize the board on extinction or stagnation")
	fs.IntVar(&c.StagnationThreshold, "stagnation", c.StagnationThreshold, "stagnant generations before a restart")
	fs.StringVar(&c.Renderer, "renderer", c.Renderer, "renderer to use: terminal or gui")
	fs.IntVar(&c.CellSize, "cell-size", c.CellSize, "pixel size of a cell in the gui renderer")
}

// Validate reports the first setting that cannot be used
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Errorf("[Validate] board must have positive dimensions, got %dx%d", c.Width, c.Height)
	case c.Tick.Duration <= 0:
		return errors.Errorf("[Validate] tick must be positive, got %v", c.Tick.Duration)
	case c.MaxGenerations < 0:
		return errors.Errorf("[Validate] max generations must not be negative, got %d", c.MaxGenerations)
	case c.StagnationThreshold <= 0:
		return errors.Errorf("[Validate] stagnation threshold must be positive, got %d", c.StagnationThreshold)
	case c.CellSize <= 0:
		return errors.Errorf("[Validate] cell size must be positive, got %d", c.CellSize)
	case c.Renderer != RendererTerminal && c.Renderer != RendererGUI:
		return errors.Errorf("[Validate] unknown renderer %q", c.Renderer)
	}
	return nil
}
