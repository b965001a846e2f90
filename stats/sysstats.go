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
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/process"
)

var procStartTime = time.Now()

// SysStats gathers cpu, mem and gc statistics of the daemon itself.
// A generator stalled by its own GC or paging shows up here first.
type SysStats struct {
	memstats *runtime.MemStats
}

// NewSysStats returns a new SysStats
func NewSysStats() *SysStats {
	return &SysStats{}
}

// CollectRuntimeStats gathers cpu, mem, gc statistics
func (s *SysStats) CollectRuntimeStats(interval time.Duration) (map[string]int64, error) {
	stats := make(map[string]int64)
	m := &runtime.MemStats{}
	runtime.ReadMemStats(m)

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	stats["process.uptime"] = time.Now().Unix() - procStartTime.Unix()

	if val, err := proc.Percent(0); err == nil {
		stats[fmt.Sprintf("process.cpu_pct.avg.%d", int(interval.Seconds()))] = int64(val * 100)
	}
	if val, err := proc.MemoryInfo(); err == nil {
		stats["process.rss"] = int64(val.RSS)
		stats["process.vms"] = int64(val.VMS)
	}
	if val, err := proc.NumFDs(); err == nil {
		stats["process.num_fds"] = int64(val)
	}
	if val, err := proc.NumThreads(); err == nil {
		stats["process.num_threads"] = int64(val)
	}

	stats["runtime.cpu.goroutines"] = int64(runtime.NumGoroutine())
	stats["runtime.mem.heap.alloc"] = int64(m.HeapAlloc)
	stats["runtime.mem.heap.objects"] = int64(m.HeapObjects)
	stats["runtime.gc.count"] = int64(m.NumGC)
	stats["runtime.gc.pause_total"] = int64(m.PauseTotalNs)
	if s.memstats != nil {
		// GC pauses since last collection matter more than the lifetime sum:
		// a pause inside the timing-critical window means missed cycles.
		stats["runtime.gc.pause_ns.sum"] = int64(m.PauseTotalNs - s.memstats.PauseTotalNs)
	}
	s.memstats = m
	return stats, nil
}
