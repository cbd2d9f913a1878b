package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/apexsim/apexsim/sim"
	"github.com/apexsim/apexsim/sim/scenario"
)

var (
	scenarioID       string // Built-in scenario id
	scenarioFile     string // Scenario definition yaml file
	scenarioSeed     int64  // Override the scenario's seed; 0 keeps it
	scenarioMaxTicks int64  // Safety cap for scenario runs
)

// scenarioCmd runs one scenario: a built-in catalog entry or a yaml file.
var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Run a focused scenario instead of a full race",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		sc, err := resolveScenario()
		if err != nil {
			logrus.Fatalf("unable to resolve scenario: %v", err)
		}
		if scenarioSeed != 0 {
			sc.Seed = scenarioSeed
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			logrus.Fatalf("unable to load config: %v", err)
		}
		pitAdvisor, err := buildAdvisor()
		if err != nil {
			logrus.Fatalf("unable to load pit advisor: %v", err)
		}

		startTime := time.Now()
		result, err := scenario.NewRunner(sc, cfg, pitAdvisor, scenarioMaxTicks).Run()
		if err != nil {
			logrus.Fatalf("scenario failed: %v", err)
		}
		printScenarioResult(result, time.Since(startTime))
	},
}

// listScenariosCmd prints the built-in catalog.
var listScenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the built-in scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		for _, sc := range scenario.Catalog() {
			fmt.Printf("%-20s %-10s %-22s %s\n", sc.ID, sc.Difficulty, sc.Type, sc.Name)
			fmt.Printf("%20s %s\n", "", sc.Description)
		}
	},
}

func resolveScenario() (*scenario.Scenario, error) {
	switch {
	case scenarioFile != "":
		return scenario.Load(scenarioFile)
	case scenarioID != "":
		return scenario.Find(scenarioID)
	default:
		return nil, fmt.Errorf("either --id or --file is required (see `apexsim scenarios`)")
	}
}

func printScenarioResult(result *scenario.Result, elapsed time.Duration) {
	fmt.Printf("\n=== %s — %d ticks (%.2fs wall) ===\n", result.ScenarioName, result.TotalTicks, elapsed.Seconds())
	for _, row := range result.Classification {
		gap := "  leader"
		if row.Status == sim.StatusDNF {
			gap = "     DNF"
		} else if row.GapToLeader != nil {
			gap = fmt.Sprintf("+%7.3fs", *row.GapToLeader)
		}
		fmt.Printf("P%-3d %-4s %-18s %s  laps %d  stops %d\n",
			row.Position, row.Driver, row.Team, gap, row.Laps, row.PitStops)
	}
	if result.FastestLap != nil {
		fmt.Printf("\nFastest lap: %s %.3fs\n", result.FastestLap.Driver, result.FastestLap.Time)
	}
	fmt.Printf("%d overtakes, %d pit stops, %d retirements\n",
		result.TotalOvertakes, result.TotalPitStops, len(result.DNFs))
}

func init() {
	scenarioCmd.Flags().StringVar(&scenarioID, "id", "", "Built-in scenario id")
	scenarioCmd.Flags().StringVar(&scenarioFile, "file", "", "Scenario definition yaml file")
	scenarioCmd.Flags().Int64Var(&scenarioSeed, "seed", 0, "Override the scenario seed (0 keeps the scenario's own)")
	scenarioCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	scenarioCmd.Flags().StringVar(&configPath, "config", "", "Optional yaml file overriding tuning defaults")
	scenarioCmd.Flags().StringVar(&advisorPath, "advisor-model", "", "Pit advisor coefficient yaml file")
	scenarioCmd.Flags().BoolVar(&useAdvisor, "advisor", false, "Use the built-in pit advisor coefficients")
	scenarioCmd.Flags().Int64Var(&scenarioMaxTicks, "max-ticks", 200_000, "Safety cap on simulation ticks")

	rootCmd.AddCommand(scenarioCmd)
	rootCmd.AddCommand(listScenariosCmd)
}
