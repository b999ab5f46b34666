package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/darkmatter/internal/config"
	"golang.org/x/sync/errgroup"
)

func main() {
	worlds := flag.Int("worlds", runtime.NumCPU(), "Number of independent worlds simulated in parallel.")
	frames := flag.Int("frames", 60*60*5, "Frames simulated per world.")
	seed := flag.Uint64("seed", 1, "Seed of the first world; world i uses seed+i.")
	check := flag.Bool("check", true, "Run every world twice and require identical final state.")
	timeout := flag.Duration("timeout", 5*time.Minute, "Abort the run after this long.")
	profileMode := flag.String("profile", "", "Write a cpu, mem or trace profile to the working directory.")
	configPath := flag.String("config", "", "Game configuration file (TOML or YAML).")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "trace":
		defer profile.Start(profile.TraceProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatalf("Unknown profile mode %q", *profileMode)
	}

	log.Printf("Simulating %d worlds for %d frames each...\n", *worlds, *frames)

	report := &Report{
		Worlds:         *worlds,
		Frames:         *frames,
		Checked:        *check,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	startTime := time.Now()
	results, err := simulate(ctx, *cfg, *seed, *worlds, *frames, *check)
	report.TotalTime = time.Since(startTime)
	runtime.ReadMemStats(&report.MemStatsEnd)
	if err != nil {
		log.Printf("Simulation failed: %v", err)
		os.Exit(1)
	}
	report.Add(results...)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// simulate runs the worlds in parallel. With check set each world runs twice and a
// differing final digest is an error.
func simulate(ctx context.Context, cfg config.Config, seed uint64, worlds, frames int, check bool) ([]WorldResult, error) {
	results := make([]WorldResult, worlds)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range worlds {
		g.Go(func() error {
			s := seed + uint64(i)
			res, err := runWorld(ctx, cfg, s, frames)
			if err != nil {
				return fmt.Errorf("world %d: %w", s, err)
			}
			if check {
				again, err := runWorld(ctx, cfg, s, frames)
				if err != nil {
					return fmt.Errorf("world %d replay: %w", s, err)
				}
				if again.Digest != res.Digest {
					return fmt.Errorf("world %d is not deterministic: digest %016x then %016x", s, res.Digest, again.Digest)
				}
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
