package sim

// TireCompound identifies a tire compound. The set is closed; the pit
// ladder in PitConfig maps every compound to its replacement.
type TireCompound string

const (
	CompoundSoft         TireCompound = "SOFT"
	CompoundMedium       TireCompound = "MEDIUM"
	CompoundHard         TireCompound = "HARD"
	CompoundIntermediate TireCompound = "INTERMEDIATE"
	CompoundWet          TireCompound = "WET"
)

// validCompounds maps accepted compound strings.
var validCompounds = map[TireCompound]bool{
	CompoundSoft:         true,
	CompoundMedium:       true,
	CompoundHard:         true,
	CompoundIntermediate: true,
	CompoundWet:          true,
}

// IsValidCompound returns true if the given compound is recognized.
func IsValidCompound(c TireCompound) bool {
	return validCompounds[c]
}

// CarStatus is the car lifecycle state. PITTED is transient: a car is
// PITTED only for the tick its stop executes and is back RACING on the
// next tick. DNF is terminal.
type CarStatus string

const (
	StatusRacing CarStatus = "RACING"
	StatusPitted CarStatus = "PITTED"
	StatusDNF    CarStatus = "DNF"
)

// SectorType classifies a track sector by its dominant speed profile.
type SectorType string

const (
	SectorSlow   SectorType = "SLOW"   // tight corners
	SectorMedium SectorType = "MEDIUM" // mixed sections
	SectorFast   SectorType = "FAST"   // straights
)

// DrivingMode is the per-tick strategy a driver runs.
type DrivingMode string

const (
	ModePush     DrivingMode = "PUSH"
	ModeBalanced DrivingMode = "BALANCED"
	ModeConserve DrivingMode = "CONSERVE"
)

// RaceControl is the flag state governing the whole field. States are
// mutually exclusive. GREEN is initial; SAFETY_CAR can be entered by the
// engine itself (DNF escalation); VSC and RED_FLAG only enter via
// externally forced events.
type RaceControl string

const (
	ControlGreen     RaceControl = "GREEN"
	ControlYellow    RaceControl = "YELLOW"
	ControlVSC       RaceControl = "VSC"
	ControlSafetyCar RaceControl = "SAFETY_CAR"
	ControlRedFlag   RaceControl = "RED_FLAG"
)

// Command is a team-wall instruction for one driver. PUSH, CONSERVE and
// BALANCED persist until replaced; BOX_THIS_LAP is one-shot and reported
// back as consumed once the pit entry happens.
type Command string

const (
	CommandPush       Command = "PUSH"
	CommandConserve   Command = "CONSERVE"
	CommandBalanced   Command = "BALANCED"
	CommandBoxThisLap Command = "BOX_THIS_LAP"
)

// CommandBatch maps driver id to a pending command. The engine treats
// the batch as read-only; consumed one-shot commands are returned from
// Tick so the caller updates its own bookkeeping.
type CommandBatch map[string]Command

// TireState is the current tire set on a car.
type TireState struct {
	Compound TireCompound `json:"compound"`
	Age      int          `json:"age"`  // laps on this set
	Wear     float64      `json:"wear"` // 0.0 new .. 1.0 gone
}

// Weather holds track weather conditions. All three fields perform
// bounded random walks during the race (see driftWeather).
type Weather struct {
	RainProbability float64 `json:"rain_probability"` // [0,1]
	Temperature     float64 `json:"temperature"`      // Celsius
	WindSpeed       float64 `json:"wind_speed"`       // km/h
}

// DRSZone is a lap-progress interval where DRS may be opened.
type DRSZone struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Sector is one of the three track sections.
type Sector struct {
	Type   SectorType `json:"type"`
	Length float64    `json:"length"` // meters
}

// Track describes the circuit. Length must be > 0; NewRaceState
// enforces this so the engine never re-checks per tick.
type Track struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Length   float64   `json:"length"` // meters
	Sectors  []Sector  `json:"sectors"`
	Weather  Weather   `json:"weather"`
	DRSZones []DRSZone `json:"drs_zones"`
}

// CarIdentity is the immutable part of a car.
type CarIdentity struct {
	Driver string `json:"driver"`
	Team   string `json:"team"`
}

// CarTelemetry is the continuously simulated physical state.
type CarTelemetry struct {
	Speed          float64   `json:"speed"`        // km/h
	Fuel           float64   `json:"fuel"`         // kg
	LapProgress    float64   `json:"lap_progress"` // [0,1)
	Tire           TireState `json:"tire_state"`
	DirtyAirEffect float64   `json:"dirty_air_effect"`
}

// CarSystems holds the driver-aid systems.
type CarSystems struct {
	DRSActive   bool    `json:"drs_active"`
	ERSBattery  float64 `json:"ers_battery"` // MJ, [0,4]
	ERSDeployed bool    `json:"ers_deployed"`
}

// CarStrategy is the strategic state: the mode being driven this tick
// and the command (if any) that produced it.
type CarStrategy struct {
	Mode          DrivingMode `json:"driving_mode"`
	ActiveCommand Command     `json:"active_command,omitempty"`
}

// CarTiming is position and timing bookkeeping. GapToLeader and
// Interval are nil for the leader; LastLapTime and BestLapTime are nil
// until a full lap has been timed.
type CarTiming struct {
	Position     int      `json:"position"`
	Lap          int      `json:"lap"`
	Sector       int      `json:"sector"` // 0..2
	GapToLeader  *float64 `json:"gap_to_leader,omitempty"`
	Interval     *float64 `json:"interval,omitempty"`
	LastLapTime  *float64 `json:"last_lap_time,omitempty"`
	BestLapTime  *float64 `json:"best_lap_time,omitempty"`
	LapStartTick int64    `json:"lap_start_tick"`
}

// Car is the complete state of one entry. Cars are values: every tick
// builds new Car values, never writes fields in place.
type Car struct {
	Identity    CarIdentity  `json:"identity"`
	Telemetry   CarTelemetry `json:"telemetry"`
	Systems     CarSystems   `json:"systems"`
	Strategy    CarStrategy  `json:"strategy"`
	Timing      CarTiming    `json:"timing"`
	PitStops    int          `json:"pit_stops"`
	Status      CarStatus    `json:"status"`
	DriverSkill float64      `json:"driver_skill"` // [0,1]
	InPitLane   bool         `json:"in_pit_lane"`
}

// Racing reports whether the car is still running (RACING, or PITTED
// which is the transient same-tick pit state).
func (c *Car) Racing() bool {
	return c.Status != StatusDNF
}

// Meta is simulation metadata for replay and determinism.
type Meta struct {
	Seed        int64 `json:"seed"`
	Tick        int64 `json:"tick"`
	TimestampMS int64 `json:"timestamp_ms"`
	LapsTotal   int   `json:"laps_total"`
}

// RaceState is the single source of truth for one race. It is a value:
// Tick consumes one state and produces a new one, never mutating its
// input. Every field is part of the contract for external projectors,
// exporters and renderers.
type RaceState struct {
	Meta        Meta        `json:"meta"`
	Track       Track       `json:"track"`
	Cars        []Car       `json:"cars"`
	Events      []Event     `json:"events"`
	RaceControl RaceControl `json:"race_control"`
	DRSEnabled  bool        `json:"drs_enabled"`
	// SCDeployLap is the leader lap at safety-car deployment, nil when
	// no safety car is out. Kept on the state value so concurrent races
	// never share deployment tracking.
	SCDeployLap *int `json:"sc_deploy_lap,omitempty"`
}

// Leader returns the running car holding P1, or nil when the field has
// no racing cars.
func (s *RaceState) Leader() *Car {
	for i := range s.Cars {
		c := &s.Cars[i]
		if c.Timing.Position == 1 && c.Racing() {
			return c
		}
	}
	return nil
}

// LeaderLap returns the leader's lap, or 0 with no leader.
func (s *RaceState) LeaderLap() int {
	if leader := s.Leader(); leader != nil {
		return leader.Timing.Lap
	}
	return 0
}

// RacingCount returns the number of non-DNF cars.
func (s *RaceState) RacingCount() int {
	n := 0
	for i := range s.Cars {
		if s.Cars[i].Racing() {
			n++
		}
	}
	return n
}

// Finished reports whether the race has classified: the leader has
// completed the advertised distance, or nobody is left racing.
func (s *RaceState) Finished() bool {
	if s.RacingCount() == 0 {
		return true
	}
	return s.LeaderLap() >= s.Meta.LapsTotal
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
