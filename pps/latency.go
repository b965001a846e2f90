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

// latencyFilter keeps a smoothed estimate of timer wake latency in ns.
// If a new sample is bigger than the estimate, the estimate jumps to it; if
// not, the estimate slowly moves towards the sample. This way it is safe in
// bad conditions and efficient in good conditions.
type latencyFilter struct {
	avg int64
}

func newLatencyFilter() *latencyFilter {
	return &latencyFilter{avg: SafetyInterval.Nanoseconds()}
}

// update feeds one sample and returns the new estimate.
func (f *latencyFilter) update(sample int64) int64 {
	if sample > f.avg {
		f.avg = sample
	} else {
		f.avg = (3*f.avg + sample) / 4
	}
	return f.avg
}
