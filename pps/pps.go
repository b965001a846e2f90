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

/*
Package pps implements a self-calibrating pulse-per-second generator.

Every second the generator produces a single rising/falling edge pair on a
digital output line, aligned to the wall-clock second boundary. Two running
estimates make the alignment possible: the measured cost of a single pin
write (so the edge can be started early enough to complete exactly on the
boundary) and the smoothed wake latency of the deadline timer (so the
generator asks to be woken early enough to busy-wait the rest of the way).
*/
package pps

import "time"

// Timing parameters of the generator.
const (
	// DefaultPulseWidth is the default delay between setting and dropping the signal.
	DefaultPulseWidth = 30 * time.Microsecond
	// MaxPulseWidth is the maximum accepted pulse width.
	MaxPulseWidth = 100 * time.Microsecond
	// SafetyInterval is a fixed margin subtracted from computed deadlines
	// to absorb residual scheduling jitter.
	SafetyInterval = 10 * time.Microsecond

	nsPerSec = int64(time.Second)
)
