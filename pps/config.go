/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package pps

import (
	"errors"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// ErrPulseWidth is returned when the configured pulse width is out of range.
var ErrPulseWidth = errors.New("pulse width out of range")

// ChannelConfig describes one PPS output channel.
type ChannelConfig struct {
	// Pin is the GPIO line name, e.g. "GPIO18".
	Pin string `yaml:"pin"`
	// PulseWidth is the delay between setting and dropping the signal.
	// Omit it in the config file to get DefaultPulseWidth.
	PulseWidth time.Duration `yaml:"pulsewidth"`
}

// Validate makes sure the channel can be started.
func (c *ChannelConfig) Validate() error {
	if c.Pin == "" {
		return fmt.Errorf("bad config: 'pin' must be specified")
	}
	if c.PulseWidth < 0 || c.PulseWidth > MaxPulseWidth {
		return fmt.Errorf("%w: %v not in [0, %v]", ErrPulseWidth, c.PulseWidth, MaxPulseWidth)
	}
	return nil
}

// Config is the daemon configuration: one or more independent channels plus
// the monitoring setup.
type Config struct {
	Channels       []ChannelConfig `yaml:"channels"`
	MonitoringPort int             `yaml:"monitoringport"`
}

// Validate checks every channel.
func (c *Config) Validate() error {
	if len(c.Channels) == 0 {
		return fmt.Errorf("bad config: at least one channel must be specified")
	}
	for i := range c.Channels {
		if err := c.Channels[i].Validate(); err != nil {
			return fmt.Errorf("channel %d: %w", i, err)
		}
	}
	return nil
}

// ReadConfig reads config and unmarshals it from yaml into Config
func ReadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Config{}
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return nil, err
	}
	for i := range c.Channels {
		if c.Channels[i].PulseWidth == 0 {
			c.Channels[i].PulseWidth = DefaultPulseWidth
		}
	}
	return &c, nil
}
