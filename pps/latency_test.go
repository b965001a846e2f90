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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLatencyFilterInit(t *testing.T) {
	f := newLatencyFilter()
	require.Equal(t, SafetyInterval.Nanoseconds(), f.avg)
}

func TestLatencyFilterUpdate(t *testing.T) {
	f := &latencyFilter{avg: 10000}

	// sample below the estimate decays it slowly
	require.Equal(t, int64(8750), f.update(5000))
	// sample above the estimate replaces it outright
	require.Equal(t, int64(20000), f.update(20000))
	require.Equal(t, int64(17000), f.update(8000))
}

func TestLatencyFilterNegativeSample(t *testing.T) {
	// pathological wake before the deadline still decays towards the sample
	f := &latencyFilter{avg: 8000}
	require.Equal(t, int64(5000), f.update(-4000))
}
