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
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/facebook/ppsgen/stats"
)

var (
	exporterListenPortFlag int
	exporterTargetPortFlag int
	exporterIntervalFlag   time.Duration
)

func init() {
	RootCmd.AddCommand(exporterCmd)
	exporterCmd.Flags().IntVar(&exporterListenPortFlag, "listenport", 9121, "port to expose the prometheus metrics endpoint on")
	exporterCmd.Flags().IntVar(&exporterTargetPortFlag, "targetport", 8889, "monitoring port of the running daemon")
	exporterCmd.Flags().DurationVar(&exporterIntervalFlag, "interval", 10*time.Second, "scrape interval")
}

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Re-export daemon counters in Prometheus format",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
		e := stats.NewPrometheusExporter(exporterListenPortFlag, exporterTargetPortFlag, exporterIntervalFlag)
		log.Fatal(e.Start())
	},
}
