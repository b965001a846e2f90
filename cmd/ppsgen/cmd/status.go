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

package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/facebook/ppsgen/stats"
)

var statusPortFlag int

func init() {
	RootCmd.AddCommand(statusCmd)
	statusCmd.Flags().IntVarP(&statusPortFlag, "monitoringport", "m", 8889, "monitoring port of the running daemon")
}

func printCounters(counters map[string]int64) {
	keys := make([]string, 0, len(counters))
	for k := range counters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"counter", "value"})
	for _, k := range keys {
		v := counters[k]
		val := fmt.Sprintf("%d", v)
		if strings.HasSuffix(k, ".missed") || strings.HasSuffix(k, ".pin_error") {
			if v > 0 {
				val = color.RedString(val)
			} else {
				val = color.GreenString(val)
			}
		}
		table.Append([]string{k, val})
	}
	table.Render()
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print counters of a running ppsgen daemon",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
		counters, err := stats.FetchCounters(fmt.Sprintf("http://localhost:%d", statusPortFlag))
		if err != nil {
			log.Fatal(err)
		}
		printCounters(counters)
	},
}
