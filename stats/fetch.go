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
	"fmt"
	"io"
	"net/http"
	"time"
)

var fetchClient = &http.Client{Timeout: time.Second}

// FetchCounters returns the counters of a running daemon from its
// monitoring endpoint.
func FetchCounters(url string) (map[string]int64, error) {
	resp, err := fetchClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("querying %s: status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	counters := map[string]int64{}
	if err := json.Unmarshal(body, &counters); err != nil {
		return nil, fmt.Errorf("parsing counters from %s: %w", url, err)
	}
	return counters, nil
}
