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
	"time"

	"github.com/eclesh/welford"
	log "github.com/sirupsen/logrus"
)

// calibrationLoops is the number of samples taken before periodic operation starts.
const calibrationLoops = 100

// Calibrate measures how long a single write of the output line takes.
// The scheduler needs this number up front so it can start the physical edge
// early enough that it completes by the exact second boundary. Each sample is
// taken inside the critical section to keep other work from contaminating the
// measurement. The line is left at the LOW level.
func Calibrate(clock Clock, pin Pin, section Section) (time.Duration, error) {
	stats := welford.New()
	for i := 0; i < calibrationLoops; i++ {
		exit := section.Enter()
		t1 := clock.Now()
		err := pin.Set(Low)
		t2 := clock.Now()
		exit()
		if err != nil {
			return 0, fmt.Errorf("calibration write %d: %w", i, err)
		}
		stats.Add(float64(t2.Sub(t1).Nanoseconds()))
	}
	instrTime := time.Duration(stats.Mean())
	log.Infof("pin write takes %dns (stddev %.0fns over %d samples)",
		instrTime.Nanoseconds(), stats.Stddev(), calibrationLoops)
	return instrTime, nil
}
