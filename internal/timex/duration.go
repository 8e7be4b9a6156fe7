// Package timex holds time helpers shared by the config loaders.
package timex

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so config files may specify intervals either
// as Go duration strings ("90s", "15m") or as integer nanoseconds.
type Duration struct {
	time.Duration
}

var errInvalidDuration = errors.New("invalid duration")

func parse(v any) (time.Duration, error) {
	switch value := v.(type) {
	case float64:
		return time.Duration(value), nil
	case int:
		return time.Duration(value), nil
	case string:
		return time.ParseDuration(value)
	default:
		return 0, fmt.Errorf("%w: %v", errInvalidDuration, v)
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	parsed, err := parse(v)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	parsed, err := parse(v)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}
