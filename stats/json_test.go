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
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONStatsHandleRequest(t *testing.T) {
	s := NewJSONStats()
	s.SetCounter("ppsgen.GPIO18.instr_time_ns", 750)
	s.UpdateCounterBy("ppsgen.GPIO18.cycles", 5)

	w := httptest.NewRecorder()
	s.handleRequest(w, httptest.NewRequest("GET", "/", nil))

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	counters := map[string]int64{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&counters))
	require.Equal(t, int64(750), counters["ppsgen.GPIO18.instr_time_ns"])
	require.Equal(t, int64(5), counters["ppsgen.GPIO18.cycles"])
}
