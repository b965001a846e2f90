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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchCounters(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintln(w, `{"ppsgen.GPIO18.cycles": 3600, "ppsgen.GPIO18.missed": 1}`)
	}))
	defer ts.Close()

	counters, err := FetchCounters(ts.URL)
	require.NoError(t, err)
	require.Equal(t, map[string]int64{
		"ppsgen.GPIO18.cycles": 3600,
		"ppsgen.GPIO18.missed": 1,
	}, counters)
}

func TestFetchCountersBadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := FetchCounters(ts.URL)
	require.Error(t, err)
}

func TestFetchCountersBadJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintln(w, `not json`)
	}))
	defer ts.Close()

	_, err := FetchCounters(ts.URL)
	require.Error(t, err)
}

func TestFetchCountersNoServer(t *testing.T) {
	_, err := FetchCounters("http://localhost:1/")
	require.Error(t, err)
}
