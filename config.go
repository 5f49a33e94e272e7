package crossroad

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration is a time.Duration read from JSON as a string such as "250ms"
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw string

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	value, err := time.ParseDuration(raw)

	if err != nil {
		return err
	}

	*d = Duration(value)
	return nil
}

// GreenIntervals holds the green phase length of every controller group, in
// time units
type GreenIntervals struct {
	TrunkForward int `json:"trunk_forward"`
	MinorForward int `json:"minor_forward"`
	TrunkRight   int `json:"trunk_right"`
}

// Config describes one simulation run. Intervals are counted in TimeUnit
type Config struct {
	Vehicles        int            `json:"vehicles"`
	MaxArrivalGap   int            `json:"max_arrival_gap"`
	IntersectionGap int            `json:"intersection_gap"`
	Green           GreenIntervals `json:"green"`
	AllRed          int            `json:"all_red"`
	TimeUnit        Duration       `json:"time_unit"`
	Seed            *uint64        `json:"seed,omitempty"`
}

// DefaultConfig returns the defaults every other source is layered on
func DefaultConfig() *Config {
	return &Config{
		AllRed:   2,
		TimeUnit: Duration(time.Second),
	}
}

// ReadConfig reads a JSON config file on top of DefaultConfig
func ReadConfig(file string) (*Config, error) {

	var config = DefaultConfig()

	fd, err := os.Open(file)

	if err != nil {
		return nil, err
	}

	defer fd.Close()

	if err := json.NewDecoder(fd).Decode(config); err != nil {
		return nil, NewInputError("config", file, err)
	}

	return config, nil
}

// Validate checks that every interval is usable
func (c *Config) Validate() error {
	if c.Vehicles < 0 {
		return NewConfigurationError("vehicles", fmt.Sprintf("must not be negative, got %d", c.Vehicles))
	}

	positive := []struct {
		name  string
		value int
	}{
		{"max_arrival_gap", c.MaxArrivalGap},
		{"intersection_gap", c.IntersectionGap},
		{"green.trunk_forward", c.Green.TrunkForward},
		{"green.minor_forward", c.Green.MinorForward},
		{"green.trunk_right", c.Green.TrunkRight},
	}

	for _, field := range positive {
		if field.value <= 0 {
			return NewConfigurationError(field.name, fmt.Sprintf("must be positive, got %d", field.value))
		}
	}

	if c.AllRed < 0 {
		return NewConfigurationError("all_red", fmt.Sprintf("must not be negative, got %d", c.AllRed))
	}

	if c.TimeUnit <= 0 {
		return NewConfigurationError("time_unit", "must be positive")
	}

	return nil
}

// GreenInterval returns the green phase length of group g, in time units
func (c *Config) GreenInterval(g Group) int {
	switch g {
	case TrunkForward:
		return c.Green.TrunkForward
	case MinorForward:
		return c.Green.MinorForward
	case TrunkRight:
		return c.Green.TrunkRight
	}
	return 0
}

// Units converts a number of time units into a duration
func (c *Config) Units(n float64) time.Duration {
	return time.Duration(n * float64(c.TimeUnit))
}
