package main

import (
	"flag"
	"fmt"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courier-scheduler/formatter"
	"courier-scheduler/metrics"
	"courier-scheduler/models"
	"courier-scheduler/parser"
	"courier-scheduler/solver"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

func main() {
	// Define flags
	modelFlag := flag.String("model", "", "Model variant: base|fixed|partflex|flex (required)")
	instance := flag.String("instance", "", "Input JSON instance file (required)")
	outsourcingCost := flag.Float64("outsourcing-cost-multiplier", math.NaN(), "Outsourcing cost multiplier (required)")
	regional := flag.Float64("regional-multiplier", math.NaN(), "Regional hiring bound multiplier (required)")
	global := flag.Float64("global-multiplier", math.NaN(), "Global hiring bound multiplier (required)")
	maxShifts := flag.Int("max-n-shifts", 0, "Maximum number of distinct shift-start periods (partflex only)")
	output := flag.String("output", "", "Output file path (default derived from instance name and parameters)")
	timeLimit := flag.Duration("time-limit", 0, "Solver time limit (0 = no limit)")
	metricsAddr := flag.String("metrics-addr", "", "Address to expose Prometheus metrics (e.g., :9090)")
	pushGateway := flag.String("push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	wait := flag.Bool("wait", false, "Keep process running after completion to allow for metric scraping")

	// Parse command-line flags
	flag.Parse()

	// Start metrics server if address provided
	if *metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			fmt.Printf("Metrics server listening on %s/metrics\n", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				fmt.Printf("Metrics server error: %v\n", err)
			}
		}()
	}

	cfg := models.Config{
		Model:                     models.Variant(*modelFlag),
		InstancePath:              *instance,
		OutsourcingCostMultiplier: *outsourcingCost,
		RegionalMultiplier:        *regional,
		GlobalMultiplier:          *global,
		MaxShiftStartPeriods:      *maxShifts,
		OutputPath:                *output,
		TimeLimit:                 *timeLimit,
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Open instance file
	file, err := os.Open(cfg.InstancePath)
	if err != nil {
		fmt.Printf("Error opening instance file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	parseStart := time.Now()
	raw, err := parser.Parse(file)
	if err != nil {
		fmt.Printf("Error parsing instance: %v\n", err)
		os.Exit(1)
	}
	metrics.ParseDurationSeconds.Observe(time.Since(parseStart).Seconds())

	inst, err := parser.NewInstance(raw, cfg)
	if err != nil {
		fmt.Printf("Error deriving instance data: %v\n", err)
		os.Exit(1)
	}

	metrics.ResetRunGauges()
	results, err := solver.Solve(cfg, inst)
	if err != nil {
		fmt.Printf("Error solving %s model: %v\n", cfg.Model, err)
		os.Exit(1)
	}
	metrics.RecordResults(results)

	fmt.Print(formatter.FormatText(results, inst))

	payload, err := formatter.FormatJSON(results)
	if err != nil {
		fmt.Printf("Error formatting results: %v\n", err)
		os.Exit(1)
	}
	outputPath := formatter.OutputPath(cfg, inst)
	if err := os.WriteFile(outputPath, []byte(payload), 0o644); err != nil {
		fmt.Printf("Error writing results file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nResults written to %s\n", outputPath)

	// Handle metrics pushing or waiting
	if *pushGateway != "" {
		jobName := "courier_scheduler"
		if err := push.New(*pushGateway, jobName).Gatherer(metrics.Registry).Push(); err != nil {
			fmt.Fprintf(os.Stderr, "Error pushing to Pushgateway: %v\n", err)
		} else {
			fmt.Println("\nMetrics successfully pushed to Pushgateway")
		}
	}

	if *wait && *metricsAddr != "" {
		fmt.Println("\nProcess kept alive for metric scraping. Press Ctrl+C to exit.")
		// Wait for interrupt signal
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		fmt.Println("\nExiting...")
	} else if *metricsAddr != "" && *pushGateway == "" {
		// Small delay to allow final scrape if not waiting explicitly
		// but typically batch jobs should use pushgateway or wait
		time.Sleep(100 * time.Millisecond)
	}
}
