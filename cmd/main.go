package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/edp1096/rfsim/internal/logging"
	"github.com/edp1096/rfsim/pkg/analysis"
	"github.com/edp1096/rfsim/pkg/export"
	"github.com/edp1096/rfsim/pkg/netlist"
	"github.com/edp1096/rfsim/pkg/util"
)

var (
	format   = flag.String("format", "table", "output format: table, csv, touchstone")
	output   = flag.String("o", "", "output file (default stdout)")
	logLevel = flag.String("loglevel", "warn", "log level: debug, info, warn, error")
	quiet    = flag.Bool("q", false, "suppress progress output")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("Usage: rfsim [flags] <circuit.json>")
	}

	logger := logging.New(*logLevel)

	// 1. Read and parse circuit file
	content, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("Error reading circuit file: %v", err)
	}
	doc, err := netlist.Parse(content)
	if err != nil {
		log.Fatalf("Error parsing circuit: %v", err)
	}

	// 2. Build circuit
	ckt, err := netlist.Build(doc, logger)
	if err != nil {
		log.Fatalf("Error building circuit: %v", err)
	}

	// 3. Run sweep
	cfg := netlist.SweepConfig(doc)
	calc := analysis.NewCalculator(logger)

	progress := func(done, total int) {
		if !*quiet {
			fmt.Fprintf(os.Stderr, "\rSweeping %d/%d", done, total)
			if done == total {
				fmt.Fprintln(os.Stderr)
			}
		}
	}

	result, err := calc.Run(context.Background(), ckt, cfg, progress)
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}
	if result.Degenerate > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d of %d points solved on the degenerate path\n",
			result.Degenerate, result.Points())
	}

	// 4. Emit
	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("Error creating output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	switch *format {
	case "csv":
		err = export.CSV(out, result)
	case "touchstone":
		err = export.Touchstone(out, result)
	case "table":
		printResults(result)
	default:
		log.Fatalf("Unknown format: %s", *format)
	}
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}
}

func printResults(r *analysis.SweepResult) {
	fmt.Println("\nSweep Results:")
	fmt.Println("==============")
	fmt.Printf("%d-port network, %d frequency points, Z0=%g ohm\n\n",
		r.PortCount, r.Points(), r.Config.Z0)

	keys := make([]string, 0, len(r.S))
	for key := range r.S {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Print("Frequency    ")
	for _, key := range keys {
		fmt.Printf("  %s (dB/deg)        ", key)
	}
	fmt.Println("  Zin")
	for k, freq := range r.Frequencies {
		fmt.Printf("%-13s", util.FormatFrequency(freq))
		for _, key := range keys {
			t := r.S[key]
			fmt.Printf("  %s<%s ", util.FormatMagnitudeDB(t.MagDB[k]), util.FormatPhase(t.PhaseDeg[k]))
		}
		fmt.Printf("  %s\n", util.FormatImpedance(r.Zin[k]))
	}

	if min, err := r.MinimumMagnitude(1, 1); err == nil {
		fmt.Printf("\nS11 minimum: %s at %s",
			util.FormatMagnitudeDB(min.MagDB), util.FormatFrequency(min.Frequency))
		if band, err := r.Bandwidth(1, 1, 3); err == nil && band.Width > 0 {
			fmt.Printf("  (-3 dB width %s, Q=%.1f)",
				util.FormatFrequency(band.Width), band.Q)
		}
		fmt.Println()
	}
	if vswr, err := r.VSWRTrace(); err == nil && len(vswr) > 0 {
		fmt.Printf("VSWR at first point: %.3f\n", vswr[0])
	}
}
