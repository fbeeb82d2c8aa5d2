package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/satforge/cdcl/internal/config"
	"github.com/satforge/cdcl/internal/metrics"
	"github.com/satforge/cdcl/parsers"
	"github.com/satforge/cdcl/sat"
)

var (
	flagCPUProfile bool
	flagMemProfile bool
	flagGzipped    bool
	flagMetricsAddr string
	flagSeed       int64
	flagVerbose    bool
)

func main() {
	root := &cobra.Command{
		Use:   "cdcl [instance.cnf]",
		Short: "A CDCL SAT solver",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}

	root.Flags().BoolVar(&flagCPUProfile, "cpuprof", false, "save pprof CPU profile in cpuprof")
	root.Flags().BoolVar(&flagMemProfile, "memprof", false, "save pprof memory profile in memprof")
	root.Flags().BoolVar(&flagGzipped, "gzip", false, "instance file is gzip-compressed")
	root.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address until solve completes")
	root.Flags().Int64Var(&flagSeed, "seed", 1, "random decision seed")
	root.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	if err := root.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := logrus.New()
	if flagVerbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if flagCPUProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			return err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	cfg := config.Default()
	cfg.Seed = flagSeed
	if err := cfg.Validate(); err != nil {
		return err
	}

	solver := sat.New(cfg.ToSolverOptions())
	solver.WithLogger(logger.WithField("component", "solver"))

	if err := parsers.LoadDIMACS(args[0], flagGzipped, solver); err != nil {
		return fmt.Errorf("could not parse instance: %s", err)
	}

	if flagMetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(metrics.NewCollector(solver.Stats))
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: flagMetricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.WithError(err).Warn("metrics server stopped")
			}
		}()
		defer srv.Close()
	}

	fmt.Printf("c variables:  %d\n", solver.NumVars())

	start := time.Now()
	status := solver.Solve(context.Background())
	elapsed := time.Since(start)

	stats := solver.Stats()
	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c conflicts:  %d (%.2f /sec)\n", stats.Conflicts, float64(stats.Conflicts)/elapsed.Seconds())
	fmt.Printf("c restarts:   %d\n", stats.Restarts)
	fmt.Printf("c status:     %s\n", status.String())

	if flagMemProfile {
		f, err := os.Create("memprof")
		if err != nil {
			return err
		}
		defer f.Close()
		return pprof.WriteHeapProfile(f)
	}
	return nil
}
