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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestChannelConfigValidate(t *testing.T) {
	testCases := []struct {
		name  string
		width time.Duration
		ok    bool
	}{
		{"zero width", 0, true},
		{"default width", DefaultPulseWidth, true},
		{"max width", MaxPulseWidth, true},
		{"above max", MaxPulseWidth + time.Nanosecond, false},
		{"negative", -time.Nanosecond, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := ChannelConfig{Pin: "GPIO18", PulseWidth: tc.width}
			err := c.Validate()
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrPulseWidth)
			}
		})
	}
}

func TestChannelConfigValidateNoPin(t *testing.T) {
	c := ChannelConfig{PulseWidth: DefaultPulseWidth}
	require.Error(t, c.Validate())
}

func TestConfigValidateNoChannels(t *testing.T) {
	c := Config{}
	require.Error(t, c.Validate())
}

func TestReadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ppsgen.yaml")
	content := `channels:
- pin: GPIO18
- pin: GPIO23
  pulsewidth: 50000
monitoringport: 8890
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := ReadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, 8890, cfg.MonitoringPort)
	require.Len(t, cfg.Channels, 2)
	// omitted pulse width falls back to the default
	require.Equal(t, DefaultPulseWidth, cfg.Channels[0].PulseWidth)
	require.Equal(t, 50*time.Microsecond, cfg.Channels[1].PulseWidth)
}

func TestReadConfigUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ppsgen.yaml")
	content := `channels:
- pin: GPIO18
  polarity: inverted
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := ReadConfig(path)
	require.Error(t, err)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
