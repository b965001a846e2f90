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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/facebook/ppsgen/pin"
	"github.com/facebook/ppsgen/pps"
)

var calibratePinFlag string

func init() {
	RootCmd.AddCommand(calibrateCmd)
	calibrateCmd.Flags().StringVarP(&calibratePinFlag, "pin", "p", "", "GPIO line to measure")
}

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Measure the write cost of a GPIO line and exit",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
		if calibratePinFlag == "" {
			log.Fatal("-pin must be specified")
		}
		p, err := pin.Open(calibratePinFlag)
		if err != nil {
			log.Fatal(err)
		}
		defer p.Close()
		instr, err := pps.Calibrate(pps.SystemClock{}, p, pps.OSThreadSection{})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s: pin write takes %dns\n", calibratePinFlag, instr.Nanoseconds())
	},
}
