package pumpd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.yaml.in/yaml/v4"
)

// Duration reads "10ms"-like strings. A bare integer is a count of milliseconds.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	if data[0] != '"' {
		return d.parse(string(data))
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	return d.parse(str)
}

func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}
	return d.parse(str)
}

func (d *Duration) parse(str string) (err error) {
	if str == "" {
		return nil
	}

	if ms, err := strconv.ParseInt(str, 10, 64); err == nil {
		d.Duration = time.Duration(ms) * time.Millisecond
		return nil
	}

	d.Duration, err = time.ParseDuration(str)
	if err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	return nil
}
