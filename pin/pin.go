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

// Package pin binds PPS output channels to GPIO lines through periph.io.
package pin

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/facebook/ppsgen/pps"
)

// GPIO is one GPIO output line.
type GPIO struct {
	p gpio.PinIO
}

var _ pps.Pin = (*GPIO)(nil)

// Open initializes the host GPIO drivers and acquires the named line,
// configured as an output driven LOW.
func Open(name string) (*GPIO, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("initializing gpio drivers: %w", err)
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("no GPIO pin named %q", name)
	}
	if err := p.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("configuring %q as output: %w", name, err)
	}
	return &GPIO{p: p}, nil
}

// Set drives the line to the given level.
func (g *GPIO) Set(level pps.Level) error {
	return g.p.Out(gpio.Level(level))
}

// Close releases the line.
func (g *GPIO) Close() error {
	return g.p.Halt()
}

// Name returns the line name.
func (g *GPIO) Name() string {
	return g.p.Name()
}
