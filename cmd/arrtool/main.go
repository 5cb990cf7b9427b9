// Command arrtool is the CLI entry point: run one bulk operator
// headlessly against a generated demo dataset, or launch the terminal
// inspector or the graphical heatmap viewer over it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Daniel-Alievsky/algart-sub004/array"
	"github.com/Daniel-Alievsky/algart-sub004/bulk"
	"github.com/Daniel-Alievsky/algart-sub004/config"
	"github.com/Daniel-Alievsky/algart-sub004/inspect"
	"github.com/Daniel-Alievsky/algart-sub004/kind"
	"github.com/Daniel-Alievsky/algart-sub004/matrix"
	"github.com/Daniel-Alievsky/algart-sub004/telemetry"
	"github.com/Daniel-Alievsky/algart-sub004/viewer"
)

var (
	// Version is overridden at build time with -ldflags "-X main.Version=...".
	Version = "dev"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		tuiMode     = flag.Bool("tui", false, "Launch the terminal inspector")
		guiMode     = flag.Bool("gui", false, "Launch the graphical heatmap viewer")
		demoOp      = flag.String("demo", "", "Run one bulk operator headless and print the result (sum, precise-sum, range, histogram)")
		configPath  = flag.String("config", "", "Load configuration from this TOML file")
		workers     = flag.Int("workers", 0, "Override max_workers (0 = auto)")
		profile     = flag.Bool("profile", false, "Force enable_profiling on")
		length      = flag.Int64("length", 10000, "Length of the generated demo array")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("arrtool %s\n", Version)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "arrtool: %v\n", err)
		os.Exit(1)
	}
	if *workers > 0 {
		cfg.Executor.MaxWorkers = *workers
	}
	if *profile {
		cfg.Executor.EnableProfiling = true
	}

	tracer := telemetry.NewBroadcaster()
	defer tracer.Close()

	demo := generateDemoArray(*length)

	switch {
	case *tuiMode:
		in := inspect.NewInspector(demo, &cfg.Inspector, tracer)
		defer in.Close()
		if err := in.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "arrtool: tui: %v\n", err)
			os.Exit(1)
		}
	case *guiMode:
		m, err := matrix.NewMatrix(demo, []int64{100, demo.Length() / 100})
		if err != nil {
			fmt.Fprintf(os.Stderr, "arrtool: gui: %v\n", err)
			os.Exit(1)
		}
		v := viewer.NewViewer(m, &cfg.Viewer, tracer)
		defer v.Close()
		v.Run()
	case *demoOp != "":
		ctx := context.Background()
		if cfg.Executor.EnableProfiling {
			stop := telemetry.LogSink(tracer, nil)
			defer stop()
			ctx = bulk.WithTracer(ctx, tracer)
		}
		if err := runDemo(ctx, *demoOp, demo); err != nil {
			fmt.Fprintf(os.Stderr, "arrtool: demo: %v\n", err)
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(0)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(path)
}

func generateDemoArray(length int64) array.Array {
	a := array.NewNumericArray[float64](kind.F64, length, false)
	for i := int64(0); i < length; i++ {
		_ = a.Set(i, float64(i%997)/997.0)
	}
	return a
}

func runDemo(ctx context.Context, op string, data array.Array) error {
	switch op {
	case "sum":
		total, err := bulk.Summator(ctx, data)
		if err != nil {
			return err
		}
		fmt.Printf("sum = %v\n", total)
	case "precise-sum":
		total, err := bulk.PreciseSummator(ctx, data)
		if err != nil {
			return err
		}
		fmt.Printf("precise sum = %v\n", total)
	case "range":
		res, err := bulk.RangeCalculator(ctx, data)
		if err != nil {
			return err
		}
		fmt.Printf("min=%v@%d max=%v@%d\n", res.MinValue, res.MinIndex, res.MaxValue, res.MaxIndex)
	case "histogram":
		res, err := bulk.HistogramCalculator(ctx, data, 0, 1, 10)
		if err != nil {
			return err
		}
		fmt.Printf("histogram(allInside=%v) = %v\n", res.AllInside, res.Bins)
	default:
		return fmt.Errorf("unknown demo operator %q", op)
	}
	return nil
}
