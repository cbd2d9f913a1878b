// Package scenario sets up and drives focused simulations: a partial
// grid, scripted forced events, and a result summary. Scenarios are the
// supported way to reach race-control states the engine never enters on
// its own (VSC, red flag) and to script weather or pit calls at exact
// race points.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/apexsim/apexsim/sim"
)

// Type categorizes a scenario.
type Type string

const (
	TypeRaceSituation     Type = "RACE_SITUATION"
	TypeStrategyDilemma   Type = "STRATEGY_DILEMMA"
	TypeWeatherTransition Type = "WEATHER_TRANSITION"
	TypeBattle            Type = "BATTLE"
)

// Difficulty is how chaotic the scenario gets.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// Car is a car's initial state in the scenario. Zero values fall back
// to sensible defaults; a nil DriverSkill uses the roster skill.
type Car struct {
	Driver       string           `yaml:"driver"`
	Team         string           `yaml:"team"`
	Position     int              `yaml:"position"`
	Lap          int              `yaml:"lap"`
	LapProgress  float64          `yaml:"lap_progress"`
	TireCompound sim.TireCompound `yaml:"tire_compound"`
	TireAge      int              `yaml:"tire_age"`
	TireWear     float64          `yaml:"tire_wear"`
	FuelKG       float64          `yaml:"fuel_kg"`
	PitStops     int              `yaml:"pit_stops"`
	Mode         sim.DrivingMode  `yaml:"driving_mode"`
	DriverSkill  *float64         `yaml:"driver_skill"`
}

// Action is what a forced event does when it fires.
type Action string

const (
	ActionSafetyCar Action = "SAFETY_CAR"
	ActionVSC       Action = "VSC"
	ActionRedFlag   Action = "RED_FLAG"
	ActionGreen     Action = "GREEN"
	ActionRain      Action = "RAIN"
	ActionDry       Action = "DRY"
	ActionPitDriver Action = "PIT_DRIVER"
)

// ForcedEvent is a scripted event that fires exactly once when the
// leader reaches the trigger point.
type ForcedEvent struct {
	TriggerLap      int     `yaml:"trigger_lap"`
	TriggerProgress float64 `yaml:"trigger_progress"`
	Action          Action  `yaml:"action"`
	TargetDriver    string  `yaml:"target_driver,omitempty"`
	RainProbability float64 `yaml:"rain_probability,omitempty"` // RAIN action only; 0 = default heavy rain
}

// Scenario is a complete scenario definition: everything needed to set
// up and run a focused simulation.
type Scenario struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Type        Type       `yaml:"type"`
	Difficulty  Difficulty `yaml:"difficulty"`

	TrackID     string          `yaml:"track_id"`
	StartingLap int             `yaml:"starting_lap"`
	TotalLaps   int             `yaml:"total_laps"`
	Weather     *sim.Weather    `yaml:"weather,omitempty"` // nil = track default
	RaceControl sim.RaceControl `yaml:"race_control"`

	Cars         []Car         `yaml:"cars"`
	ForcedEvents []ForcedEvent `yaml:"forced_events"`

	Seed int64    `yaml:"seed"`
	Tags []string `yaml:"tags"`
}

// Load reads a scenario definition from a yaml file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) validate() error {
	if sc.ID == "" {
		return fmt.Errorf("scenario: id is required")
	}
	if sc.TotalLaps <= 0 {
		return fmt.Errorf("scenario %s: total_laps must be positive", sc.ID)
	}
	if len(sc.Cars) == 0 {
		return fmt.Errorf("scenario %s: at least one car is required", sc.ID)
	}
	return nil
}

// ticksPerLap is the nominal lap length in ticks used to synthesize
// the starting clock for mid-race scenarios.
const ticksPerLap = 1000

// rosterSkill returns the roster skill for a driver, or the baseline
// for drivers not on the synthetic roster.
func rosterSkill(driver string) float64 {
	for _, entry := range sim.Roster {
		if entry.Driver == driver {
			return entry.Skill
		}
	}
	return 0.90
}

// buildCar converts a scenario car spec into a full sim.Car.
func buildCar(spec Car, startingTick int64) sim.Car {
	skill := rosterSkill(spec.Driver)
	if spec.DriverSkill != nil {
		skill = *spec.DriverSkill
	}
	compound := spec.TireCompound
	if compound == "" {
		compound = sim.CompoundMedium
	}
	mode := spec.Mode
	if mode == "" {
		mode = sim.ModeBalanced
	}
	fuel := spec.FuelKG
	if fuel == 0 {
		fuel = 100.0
	}

	return sim.Car{
		Identity: sim.CarIdentity{Driver: spec.Driver, Team: spec.Team},
		Telemetry: sim.CarTelemetry{
			Fuel:        fuel,
			LapProgress: spec.LapProgress,
			Tire:        sim.TireState{Compound: compound, Age: spec.TireAge, Wear: spec.TireWear},
		},
		Systems:  sim.CarSystems{ERSBattery: 4.0},
		Strategy: sim.CarStrategy{Mode: mode},
		Timing: sim.CarTiming{
			Position:     spec.Position,
			Lap:          spec.Lap,
			LapStartTick: startingTick,
		},
		PitStops:    spec.PitStops,
		Status:      sim.StatusRacing,
		DriverSkill: skill,
	}
}

// BuildInitialState converts a scenario into the initial RaceState the
// runner advances.
func BuildInitialState(sc *Scenario) (*sim.RaceState, error) {
	if err := sc.validate(); err != nil {
		return nil, err
	}
	trackID := sc.TrackID
	if trackID == "" {
		trackID = "monaco"
	}
	track, ok := sim.Tracks[trackID]
	if !ok {
		return nil, fmt.Errorf("scenario %s: unknown track %q", sc.ID, trackID)
	}
	if sc.Weather != nil {
		track.Weather = *sc.Weather
	}

	startingTick := int64(sc.StartingLap) * ticksPerLap
	cars := make([]sim.Car, 0, len(sc.Cars))
	for i, spec := range sc.Cars {
		car := buildCar(spec, startingTick)
		if car.Timing.Position == 0 {
			car.Timing.Position = i + 1
		}
		if car.Timing.Lap == 0 && sc.StartingLap > 0 {
			car.Timing.Lap = sc.StartingLap
		}
		cars = append(cars, car)
	}

	raceControl := sc.RaceControl
	if raceControl == "" {
		raceControl = sim.ControlGreen
	}
	var scDeployLap *int
	if raceControl == sim.ControlSafetyCar {
		lap := sc.StartingLap
		scDeployLap = &lap
	}

	return &sim.RaceState{
		Meta: sim.Meta{
			Seed:        sc.Seed,
			Tick:        startingTick,
			TimestampMS: startingTick * sim.TickMillis,
			LapsTotal:   sc.StartingLap + sc.TotalLaps,
		},
		Track:       track,
		Cars:        cars,
		Events:      []sim.Event{},
		RaceControl: raceControl,
		DRSEnabled:  raceControl == sim.ControlGreen,
		SCDeployLap: scDeployLap,
	}, nil
}
