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

package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollectRuntimeStats(t *testing.T) {
	s := NewSysStats()
	stats, err := s.CollectRuntimeStats(10 * time.Second)
	require.NoError(t, err)

	require.Contains(t, stats, "runtime.cpu.goroutines")
	require.Contains(t, stats, "runtime.mem.heap.alloc")
	require.Contains(t, stats, "runtime.gc.count")
	require.Greater(t, stats["runtime.cpu.goroutines"], int64(0))

	// the delta counter only appears from the second collection on
	require.NotContains(t, stats, "runtime.gc.pause_ns.sum")
	stats, err = s.CollectRuntimeStats(10 * time.Second)
	require.NoError(t, err)
	require.Contains(t, stats, "runtime.gc.pause_ns.sum")
}
