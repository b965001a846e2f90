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
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/facebook/ppsgen/pin"
	"github.com/facebook/ppsgen/pps"
	"github.com/facebook/ppsgen/rt"
	"github.com/facebook/ppsgen/stats"
)

var (
	runPinFlag           string
	runWidthFlag         time.Duration
	runConfigFlag        string
	runMonPortFlag       int
	runRTPrioFlag        int
	runStatsIntervalFlag time.Duration
)

func init() {
	RootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runPinFlag, "pin", "p", "", "GPIO line to pulse, e.g. GPIO18")
	runCmd.Flags().DurationVarP(&runWidthFlag, "width", "w", pps.DefaultPulseWidth, fmt.Sprintf("delay between setting and dropping the signal, max %v", pps.MaxPulseWidth))
	runCmd.Flags().StringVarP(&runConfigFlag, "config", "c", "", "path to a yaml config; overrides -pin/-width and allows multiple channels")
	runCmd.Flags().IntVar(&runMonPortFlag, "monitoringport", 8889, "port to run monitoring server on")
	runCmd.Flags().IntVar(&runRTPrioFlag, "rtprio", 0, "SCHED_FIFO priority for the process, 0 leaves scheduling untouched")
	runCmd.Flags().DurationVar(&runStatsIntervalFlag, "statsinterval", time.Minute, "interval of runtime stats collection")
}

func runConfig() (*pps.Config, error) {
	if runConfigFlag != "" {
		cfg, err := pps.ReadConfig(runConfigFlag)
		if err != nil {
			return nil, err
		}
		if cfg.MonitoringPort == 0 {
			cfg.MonitoringPort = runMonPortFlag
		}
		return cfg, cfg.Validate()
	}
	cfg := &pps.Config{
		Channels:       []pps.ChannelConfig{{Pin: runPinFlag, PulseWidth: runWidthFlag}},
		MonitoringPort: runMonPortFlag,
	}
	return cfg, cfg.Validate()
}

func doRun(cfg *pps.Config) error {
	if runRTPrioFlag > 0 {
		if err := rt.SetScheduler(runRTPrioFlag); err != nil {
			log.Warningf("Failed to set SCHED_FIFO priority %d: %v. Timing precision will degrade.", runRTPrioFlag, err)
		}
		if err := rt.LockMemory(); err != nil {
			log.Warningf("Failed to lock memory: %v", err)
		}
	}

	st := stats.NewJSONStats()
	go st.Start(cfg.MonitoringPort)

	gens := make([]*pps.Generator, 0, len(cfg.Channels))
	for _, ch := range cfg.Channels {
		p, err := pin.Open(ch.Pin)
		if err != nil {
			stopAll(gens)
			return fmt.Errorf("acquiring pin %q: %w", ch.Pin, err)
		}
		g := pps.NewGenerator(ch, p, st)
		if err := g.Start(); err != nil {
			_ = p.Close()
			stopAll(gens)
			return fmt.Errorf("starting channel on pin %q: %w", ch.Pin, err)
		}
		gens = append(gens, g)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		sys := stats.NewSysStats()
		ticker := time.NewTicker(runStatsIntervalFlag)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				counters, err := sys.CollectRuntimeStats(runStatsIntervalFlag)
				if err != nil {
					log.Errorf("collecting runtime stats: %v", err)
					continue
				}
				for k, v := range counters {
					st.SetCounter(k, v)
				}
			}
		}
	})

	<-ctx.Done()
	_ = eg.Wait()
	stopAll(gens)
	return nil
}

func stopAll(gens []*pps.Generator) {
	for _, g := range gens {
		g.Stop()
	}
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the PPS generator daemon",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
		cfg, err := runConfig()
		if err != nil {
			log.Fatal(err)
		}
		if err := doRun(cfg); err != nil {
			log.Fatal(err)
		}
	},
}
