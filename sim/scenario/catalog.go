package scenario

import "fmt"

// Catalog returns the built-in scenarios, stable order. Each returns a
// fresh value so callers can tweak seeds or cars without poisoning the
// catalog.
func Catalog() []*Scenario {
	return []*Scenario{
		scRestartBattle(),
		undercutWindow(),
		rainTransition(),
		lastLapDuel(),
	}
}

// Find returns the built-in scenario with the given id.
func Find(id string) (*Scenario, error) {
	for _, sc := range Catalog() {
		if sc.ID == id {
			return sc, nil
		}
	}
	return nil, fmt.Errorf("unknown scenario %q", id)
}

// scRestartBattle: the field is bunched behind the safety car and the
// restart decides the race. Worn leader, fresh-tired chaser.
func scRestartBattle() *Scenario {
	return &Scenario{
		ID:          "sc-restart-battle",
		Name:        "Safety Car Restart Battle",
		Description: "Safety car in its final lap, P2 on fresher tires right behind the leader. Hold position through the restart or lose it into turn one.",
		Type:        TypeRaceSituation,
		Difficulty:  DifficultyHard,
		TrackID:     "monza",
		StartingLap: 30,
		TotalLaps:   8,
		RaceControl: "SAFETY_CAR",
		Cars: []Car{
			{Driver: "VER", Team: "Red Bull Racing", Position: 1, TireCompound: "MEDIUM", TireAge: 18, TireWear: 0.55, FuelKG: 40, PitStops: 1},
			{Driver: "HAM", Team: "Mercedes", Position: 2, LapProgress: 0.0, TireCompound: "SOFT", TireAge: 2, TireWear: 0.04, FuelKG: 38, PitStops: 2},
			{Driver: "LEC", Team: "Ferrari", Position: 3, TireCompound: "MEDIUM", TireAge: 15, TireWear: 0.45, FuelKG: 41, PitStops: 1},
			{Driver: "NOR", Team: "McLaren", Position: 4, TireCompound: "HARD", TireAge: 10, TireWear: 0.20, FuelKG: 42, PitStops: 1},
		},
		Seed: 42,
		Tags: []string{"safety-car", "restart", "defense"},
	}
}

// undercutWindow: classic strategy dilemma. The leader's tires are going
// off, the chaser pits first, and the scripted stop tests whether track
// position survives the fresh-tire delta.
func undercutWindow() *Scenario {
	return &Scenario{
		ID:          "undercut-window",
		Name:        "Undercut Window",
		Description: "P2 boxes for fresh mediums while the worn leader stays out. Two laps to make the undercut stick.",
		Type:        TypeStrategyDilemma,
		Difficulty:  DifficultyMedium,
		TrackID:     "spa",
		StartingLap: 20,
		TotalLaps:   10,
		RaceControl: "GREEN",
		Cars: []Car{
			{Driver: "LEC", Team: "Ferrari", Position: 1, LapProgress: 0.30, TireCompound: "SOFT", TireAge: 16, TireWear: 0.62, FuelKG: 55},
			{Driver: "RUS", Team: "Mercedes", Position: 2, LapProgress: 0.28, TireCompound: "SOFT", TireAge: 16, TireWear: 0.58, FuelKG: 54},
			{Driver: "PIA", Team: "McLaren", Position: 3, LapProgress: 0.20, TireCompound: "MEDIUM", TireAge: 8, TireWear: 0.18, FuelKG: 56},
		},
		ForcedEvents: []ForcedEvent{
			{TriggerLap: 20, TriggerProgress: 0.90, Action: ActionPitDriver, TargetDriver: "RUS"},
		},
		Seed: 1234,
		Tags: []string{"undercut", "pit-strategy"},
	}
}

// rainTransition: a dry race turns wet mid-stint and dries again. Slicks
// versus the crossover point.
func rainTransition() *Scenario {
	return &Scenario{
		ID:          "rain-transition",
		Name:        "Rain Transition",
		Description: "Heavy rain arrives two laps in, clears three laps later. Time the switch to intermediates and back.",
		Type:        TypeWeatherTransition,
		Difficulty:  DifficultyHard,
		TrackID:     "spa",
		StartingLap: 10,
		TotalLaps:   12,
		RaceControl: "GREEN",
		Cars: []Car{
			{Driver: "VER", Team: "Red Bull Racing", Position: 1, LapProgress: 0.10, TireCompound: "MEDIUM", TireAge: 9, TireWear: 0.22, FuelKG: 70},
			{Driver: "ALO", Team: "Aston Martin", Position: 2, LapProgress: 0.06, TireCompound: "MEDIUM", TireAge: 9, TireWear: 0.24, FuelKG: 69},
			{Driver: "GAS", Team: "Alpine", Position: 3, LapProgress: 0.02, TireCompound: "INTERMEDIATE", TireAge: 1, TireWear: 0.01, FuelKG: 71},
			{Driver: "ALB", Team: "Williams", Position: 4, TireCompound: "MEDIUM", TireAge: 12, TireWear: 0.30, FuelKG: 68},
		},
		ForcedEvents: []ForcedEvent{
			{TriggerLap: 12, TriggerProgress: 0.50, Action: ActionRain, RainProbability: 0.85},
			{TriggerLap: 15, TriggerProgress: 0.50, Action: ActionDry},
		},
		Seed: 777,
		Tags: []string{"weather", "rain", "crossover"},
	}
}

// lastLapDuel: one lap, two cars, nothing in hand. DRS range at the
// line with a small battery advantage for the chaser.
func lastLapDuel() *Scenario {
	return &Scenario{
		ID:          "last-lap-duel",
		Name:        "Last Lap Duel",
		Description: "Final lap, eight tenths between the top two, chaser in DRS range with battery to burn.",
		Type:        TypeBattle,
		Difficulty:  DifficultyMedium,
		TrackID:     "monza",
		StartingLap: 52,
		TotalLaps:   1,
		RaceControl: "GREEN",
		Cars: []Car{
			{Driver: "NOR", Team: "McLaren", Position: 1, LapProgress: 0.012, TireCompound: "HARD", TireAge: 20, TireWear: 0.48, FuelKG: 3},
			{Driver: "VER", Team: "Red Bull Racing", Position: 2, LapProgress: 0.0, TireCompound: "HARD", TireAge: 18, TireWear: 0.44, FuelKG: 3},
		},
		Seed: 9001,
		Tags: []string{"battle", "drs", "final-lap"},
	}
}
