package cmd

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/apexsim/apexsim/sim"
	"github.com/apexsim/apexsim/sim/advisor"
)

var (
	// CLI flags for race setup
	seed         int64  // Seed for the race's random stream
	trackID      string // Built-in track id (monaco, monza, spa)
	laps         int    // Race distance in laps
	startingTire string // Compound the whole grid starts on
	fuelKG       float64
	maxTicks     int64  // Safety cap on simulation length
	logLevel     string // Log verbosity level
	configPath   string // Optional yaml tuning override
	advisorPath  string // Optional pit advisor coefficient file
	useAdvisor   bool   // Run with the built-in advisor coefficients
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "apexsim",
	Short: "Deterministic tick-based race strategy simulator",
}

// runCmd simulates a full race using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a full race simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := LoadConfig(configPath)
		if err != nil {
			logrus.Fatalf("unable to load config: %v", err)
		}

		pitAdvisor, err := buildAdvisor()
		if err != nil {
			logrus.Fatalf("unable to load pit advisor: %v", err)
		}

		state, err := sim.NewRaceState(trackID, seed, laps, sim.TireCompound(startingTire), fuelKG)
		if err != nil {
			logrus.Fatalf("invalid race setup: %v", err)
		}

		logrus.Infof("Starting race: %s, %d laps, seed=%d, tires=%s, fuel=%.0fkg",
			state.Track.Name, laps, seed, startingTire, fuelKG)

		startTime := time.Now()
		engine := sim.NewEngine(cfg, pitAdvisor)
		rng := sim.NewSeededRNG(seed)
		commands := sim.CommandBatch{}

		for !state.Finished() && state.Meta.Tick < maxTicks {
			state, _ = engine.Tick(state, rng, commands)
		}

		if !state.Finished() {
			logrus.Warnf("tick cap %d reached before the race classified", maxTicks)
		}
		printClassification(state, time.Since(startTime))
	},
}

// buildAdvisor wires the pit advisor from flags. No flags means no
// advisor: the engine falls back to its heuristic chain.
func buildAdvisor() (sim.PitAdvisor, error) {
	if advisorPath != "" {
		coeffs, err := advisor.LoadCoefficients(advisorPath)
		if err != nil {
			return nil, err
		}
		return advisor.NewLogistic(coeffs)
	}
	if useAdvisor {
		return advisor.NewLogistic(advisor.DefaultCoefficients())
	}
	return nil, nil
}

// printClassification writes the final order, one row per car, plus a
// short event tally.
func printClassification(state *sim.RaceState, elapsed time.Duration) {
	byPosition := make([]sim.Car, len(state.Cars))
	copy(byPosition, state.Cars)
	sort.Slice(byPosition, func(i, j int) bool {
		return byPosition[i].Timing.Position < byPosition[j].Timing.Position
	})

	fmt.Printf("\n=== Classification after %d laps (%d ticks, %.2fs wall) ===\n",
		state.LeaderLap(), state.Meta.Tick, elapsed.Seconds())
	for _, car := range byPosition {
		gap := "  leader"
		if car.Status == sim.StatusDNF {
			gap = "     DNF"
		} else if car.Timing.GapToLeader != nil {
			gap = fmt.Sprintf("+%7.3fs", *car.Timing.GapToLeader)
		}
		best := "      -"
		if car.Timing.BestLapTime != nil {
			best = fmt.Sprintf("%7.3f", *car.Timing.BestLapTime)
		}
		fmt.Printf("P%-3d %-4s %-18s %s  best %s  stops %d  tires %s\n",
			car.Timing.Position, car.Identity.Driver, car.Identity.Team,
			gap, best, car.PitStops, car.Telemetry.Tire.Compound)
	}

	overtakes, pitStops, dnfs := 0, 0, 0
	for _, ev := range state.Events {
		switch ev.Type {
		case sim.EventOvertake:
			overtakes++
		case sim.EventPitStop:
			pitStops++
		case sim.EventDNF:
			dnfs++
		}
	}
	fmt.Printf("\n%d overtakes, %d pit stops, %d retirements, %d events total\n",
		overtakes, pitStops, dnfs, len(state.Events))
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for the race's random stream")
	runCmd.Flags().StringVar(&trackID, "track", "monaco", "Track id (monaco, monza, spa)")
	runCmd.Flags().IntVar(&laps, "laps", 50, "Race distance in laps")
	runCmd.Flags().StringVar(&startingTire, "tires", "MEDIUM", "Starting compound (SOFT, MEDIUM, HARD, INTERMEDIATE, WET)")
	runCmd.Flags().Float64Var(&fuelKG, "fuel", 100.0, "Starting fuel load in kg")
	runCmd.Flags().Int64Var(&maxTicks, "max-ticks", 2_000_000, "Safety cap on simulation ticks")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&configPath, "config", "", "Optional yaml file overriding tuning defaults")
	runCmd.Flags().StringVar(&advisorPath, "advisor-model", "", "Pit advisor coefficient yaml file")
	runCmd.Flags().BoolVar(&useAdvisor, "advisor", false, "Use the built-in pit advisor coefficients")

	rootCmd.AddCommand(runCmd)
}
