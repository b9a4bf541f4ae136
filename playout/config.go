package playout

import (
	"runtime"

	"github.com/pkg/errors"
)

// Config configures a Runner.
type Config struct {
	GameLen      int     `yaml:"gamelen"`       // moves allowed in a game, including the moves already played
	Workers      int     `yaml:"workers"`       // number of concurrent workers
	Threshold    float32 `yaml:"threshold"`     // fraction of playouts required to judge a point. In (0.5, 1]
	RecordNakade bool    `yaml:"record_nakade"` // count nakade plays in the AMAF records
	Policy       string  `yaml:"policy"`        // "light" or "capture"

	// Seed makes the runner reproducible for a given number of workers. 0 seeds from system entropy.
	Seed uint64 `yaml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		GameLen:   400,
		Workers:   runtime.NumCPU(),
		Threshold: 0.8,
		Policy:    "light",
	}
}

// Validate returns the first problem found with the config.
func (c Config) Validate() error {
	switch {
	case c.GameLen < MinGameLen || c.GameLen > MaxGameLen:
		return errors.Errorf("GameLen must be between %d and %d. Got %d", MinGameLen, MaxGameLen, c.GameLen)
	case c.Workers < 1:
		return errors.Errorf("Expected at least one worker. Got %d", c.Workers)
	case c.Threshold <= 0.5 || c.Threshold > 1:
		return errors.Errorf("Threshold must be in (0.5, 1]. Got %v", c.Threshold)
	}
	_, err := PolicyByName(c.Policy)
	return err
}

func (c Config) IsValid() bool { return c.Validate() == nil }
