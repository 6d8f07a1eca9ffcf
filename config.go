package pumpd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/mdouchement/pumpd/environment"
	"github.com/mdouchement/pumpd/stepper"
	"github.com/robfig/cron/v3"
	"go.yaml.in/yaml/v4"
)

const (
	StorageBolt   = "bolt"
	StorageMemory = "memory"

	DefaultSocket    = "/run/pumpd/pumpd.sock"
	DefaultTick      = 10 * time.Millisecond
	DefaultMQTTTopic = "pumpd/panel"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Debug     bool          `yaml:"debug"`
	Socket    string        `yaml:"socket"`
	Tick      Duration      `yaml:"tick"`
	Storage   StorageConfig `yaml:"storage"`
	Motor     MotorConfig   `yaml:"motor"`
	Defaults  *Settings     `yaml:"defaults"`
	Schedules []*Schedule   `yaml:"schedules"`
	MQTT      MQTTConfig    `yaml:"mqtt"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type MotorConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
	VID      string `yaml:"vid"`
	PID      string `yaml:"pid"`
}

// A Schedule presses start at every cron occurrence.
type Schedule struct {
	Label    string        `yaml:"label"`
	Cron     string        `yaml:"cron"`
	Schedule cron.Schedule `yaml:"-"`
}

type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	Topic    string `yaml:"topic"`
	ClientID string `yaml:"client_id"`
}

func Load(path string) (Config, error) {
	var c Config

	f, err := os.Open(path)
	if err != nil {
		return c, err
	}
	defer f.Close()

	codec := yaml.NewDecoder(f)
	err = codec.Decode(&c)
	if err != nil {
		return c, err
	}

	return c, c.normalize()
}

// LoadOrDefault is Load falling back to DefaultConfig when path does not exist.
func LoadOrDefault(path string) (Config, error) {
	c, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return c, err
}

// DefaultConfig is used when no config file is provided.
func DefaultConfig() Config {
	var c Config
	c.normalize() // Defaults are always valid
	return c
}

func (c *Config) normalize() error {
	if c.Socket == "" {
		c.Socket = environment.GetEnvPath(environment.KeySocket, DefaultSocket)
	}

	if c.Tick.Duration == 0 {
		c.Tick.Duration = DefaultTick
	}
	if c.Tick.Duration < 0 {
		return fmt.Errorf("%w: tick: must be positive", ErrInvalidConfig)
	}

	//

	switch c.Storage.Driver {
	case "":
		c.Storage.Driver = StorageBolt
	case StorageBolt, StorageMemory:
	default:
		return fmt.Errorf("%w: storage: unsupported driver %s", ErrInvalidConfig, c.Storage.Driver)
	}
	if c.Storage.Path == "" {
		c.Storage.Path = environment.StatePath("eeprom.db")
	}

	//

	if c.Motor.VID == "" {
		c.Motor.VID = stepper.DefaultVID
	}
	if c.Motor.PID == "" {
		c.Motor.PID = stepper.DefaultPID
	}

	//

	if c.Defaults == nil {
		c.Defaults = ToPtr(DefaultSettings())
	}
	if c.Defaults.StepsPerRevolution == 0 {
		return fmt.Errorf("%w: defaults: steps_per_revolution must be greater than zero", ErrInvalidConfig)
	}
	if c.Defaults.UnitsPerRun > MaxUnitsPerRun {
		return fmt.Errorf("%w: defaults: units_per_run must be lower than %d", ErrInvalidConfig, MaxUnitsPerRun+1)
	}

	//

	labels := map[string]bool{}
	for i, s := range c.Schedules {
		if s.Label == "" {
			s.Label = fmt.Sprintf("schedule%d", i+1)
		}
		if labels[s.Label] {
			return fmt.Errorf("%w: schedules: duplicated label %s", ErrInvalidConfig, s.Label)
		}
		labels[s.Label] = true

		var err error
		s.Schedule, err = cron.ParseStandard(s.Cron)
		if err != nil {
			return fmt.Errorf("%w: schedules: %s: %w", ErrInvalidConfig, s.Label, err)
		}
	}

	//

	if c.MQTT.Broker != "" {
		if c.MQTT.Topic == "" {
			c.MQTT.Topic = DefaultMQTTTopic
		}
		if c.MQTT.ClientID == "" {
			c.MQTT.ClientID = "pumpd"
		}
	}

	return nil
}
