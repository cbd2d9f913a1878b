package sim

import "fmt"

// Synthetic circuits and roster for simulation without external data.
// These mirror real venues closely enough to exercise every physics
// path: Monaco is corner-dominated, Monza is flat out, Spa mixes both
// and usually carries rain risk.

// TrackMonaco is a slow, tight street circuit.
var TrackMonaco = Track{
	ID:     "monaco_synthetic",
	Name:   "Circuit de Monaco (Synthetic)",
	Length: 3337,
	Sectors: []Sector{
		{Type: SectorSlow, Length: 1112},
		{Type: SectorMedium, Length: 1112},
		{Type: SectorSlow, Length: 1113},
	},
	Weather:  Weather{RainProbability: 0.1, Temperature: 25.0, WindSpeed: 5.0},
	DRSZones: []DRSZone{{Start: 0.40, End: 0.55}},
}

// TrackMonza is a low-downforce power circuit.
var TrackMonza = Track{
	ID:     "monza_synthetic",
	Name:   "Autodromo di Monza (Synthetic)",
	Length: 5793,
	Sectors: []Sector{
		{Type: SectorFast, Length: 1931},
		{Type: SectorFast, Length: 1931},
		{Type: SectorMedium, Length: 1931},
	},
	Weather:  Weather{RainProbability: 0.2, Temperature: 28.0, WindSpeed: 8.0},
	DRSZones: []DRSZone{{Start: 0.00, End: 0.15}, {Start: 0.40, End: 0.55}},
}

// TrackSpa is a long, fast circuit with real rain risk.
var TrackSpa = Track{
	ID:     "spa_synthetic",
	Name:   "Circuit de Spa-Francorchamps (Synthetic)",
	Length: 7004,
	Sectors: []Sector{
		{Type: SectorFast, Length: 2335},
		{Type: SectorMedium, Length: 2335},
		{Type: SectorFast, Length: 2334},
	},
	Weather:  Weather{RainProbability: 0.4, Temperature: 18.0, WindSpeed: 12.0},
	DRSZones: []DRSZone{{Start: 0.05, End: 0.20}, {Start: 0.75, End: 0.90}},
}

// Tracks maps short ids to the built-in circuits.
var Tracks = map[string]Track{
	"monaco": TrackMonaco,
	"monza":  TrackMonza,
	"spa":    TrackSpa,
}

// DriverEntry is one roster slot.
type DriverEntry struct {
	Driver string
	Team   string
	Skill  float64
}

// Roster is the synthetic 20-driver grid in starting order.
var Roster = []DriverEntry{
	{"VER", "Red Bull Racing", 0.99},
	{"HAM", "Mercedes", 0.98},
	{"LEC", "Ferrari", 0.96},
	{"NOR", "McLaren", 0.96},
	{"RUS", "Mercedes", 0.95},
	{"SAI", "Ferrari", 0.94},
	{"PER", "Red Bull Racing", 0.94},
	{"ALO", "Aston Martin", 0.95},
	{"PIA", "McLaren", 0.93},
	{"GAS", "Alpine", 0.91},
	{"OCO", "Alpine", 0.89},
	{"STR", "Aston Martin", 0.88},
	{"HUL", "Haas", 0.90},
	{"TSU", "RB", 0.89},
	{"RIC", "RB", 0.91},
	{"ALB", "Williams", 0.90},
	{"BOT", "Sauber", 0.89},
	{"MAG", "Haas", 0.87},
	{"ZHO", "Sauber", 0.86},
	{"SAR", "Williams", 0.85},
}

// NewGridCars builds the full roster in starting order, everyone on the
// same compound and fuel load.
func NewGridCars(compound TireCompound, fuelKG float64) []Car {
	cars := make([]Car, 0, len(Roster))
	for i, entry := range Roster {
		cars = append(cars, Car{
			Identity: CarIdentity{Driver: entry.Driver, Team: entry.Team},
			Telemetry: CarTelemetry{
				Speed:       0.0,
				Fuel:        fuelKG,
				LapProgress: 0.0,
				Tire:        TireState{Compound: compound, Age: 0, Wear: 0.0},
			},
			Systems:     CarSystems{ERSBattery: 4.0},
			Strategy:    CarStrategy{Mode: ModeBalanced},
			Timing:      CarTiming{Position: i + 1},
			Status:      StatusRacing,
			DriverSkill: entry.Skill,
		})
	}
	return cars
}

// NewRaceState is the initial-state factory: full grid on the named
// track at tick zero. Input validation happens here, once, so the
// engine never re-checks structural preconditions per tick.
func NewRaceState(trackID string, seed int64, laps int, compound TireCompound, fuelKG float64) (*RaceState, error) {
	track, ok := Tracks[trackID]
	if !ok {
		return nil, fmt.Errorf("unknown track %q", trackID)
	}
	if laps <= 0 {
		return nil, fmt.Errorf("laps must be positive, got %d", laps)
	}
	if !IsValidCompound(compound) {
		return nil, fmt.Errorf("unknown tire compound %q", compound)
	}
	if fuelKG < 0 {
		return nil, fmt.Errorf("fuel must be non-negative, got %g", fuelKG)
	}
	if track.Length <= 0 {
		return nil, fmt.Errorf("track %q has non-positive length", trackID)
	}

	return &RaceState{
		Meta: Meta{
			Seed:      seed,
			Tick:      0,
			LapsTotal: laps,
		},
		Track:       track,
		Cars:        NewGridCars(compound, fuelKG),
		Events:      []Event{},
		RaceControl: ControlGreen,
		DRSEnabled:  true,
	}, nil
}
