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
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeClock replays a fixed sequence of wall-clock readings. Once the
// sequence is exhausted it keeps returning the last reading.
type fakeClock struct {
	times []time.Time
	idx   int
}

func (c *fakeClock) Now() time.Time {
	if c.idx >= len(c.times) {
		return c.times[len(c.times)-1]
	}
	ts := c.times[c.idx]
	c.idx++
	return ts
}

// calibrationClock builds a clock where the i-th pin write appears to take
// durations[i%len(durations)].
func calibrationClock(durations []time.Duration) *fakeClock {
	base := time.Unix(1000, 0)
	times := make([]time.Time, 0, 2*calibrationLoops)
	for i := 0; i < calibrationLoops; i++ {
		start := base.Add(time.Duration(i) * time.Millisecond)
		times = append(times, start, start.Add(durations[i%len(durations)]))
	}
	return &fakeClock{times: times}
}

func TestCalibrateMean(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockPin := NewMockPin(ctrl)
	mockPin.EXPECT().Set(Low).Return(nil).Times(calibrationLoops)

	clk := calibrationClock([]time.Duration{500 * time.Nanosecond})

	instr, err := Calibrate(clk, mockPin, OSThreadSection{})
	require.NoError(t, err)
	require.Equal(t, int64(500), instr.Nanoseconds())
}

func TestCalibrateMeanMixedDurations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockPin := NewMockPin(ctrl)
	mockPin.EXPECT().Set(Low).Return(nil).Times(calibrationLoops)

	// 50 samples of 1µs and 50 of 3µs average out to 2µs
	durations := make([]time.Duration, calibrationLoops)
	for i := range durations {
		durations[i] = time.Microsecond
		if i >= calibrationLoops/2 {
			durations[i] = 3 * time.Microsecond
		}
	}
	clk := calibrationClock(durations)

	instr, err := Calibrate(clk, mockPin, OSThreadSection{})
	require.NoError(t, err)
	require.InDelta(t, 2000, instr.Nanoseconds(), 1)
}

func TestCalibratePinError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockPin := NewMockPin(ctrl)
	mockPin.EXPECT().Set(Low).Return(fmt.Errorf("gpio write failed"))

	clk := calibrationClock([]time.Duration{500 * time.Nanosecond})

	_, err := Calibrate(clk, mockPin, OSThreadSection{})
	require.Error(t, err)
}
