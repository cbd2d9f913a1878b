package sim

import (
	"math"

	"github.com/sirupsen/logrus"
)

// Engine advances a race one tick at a time. It holds only tuning and
// the injected pit advisor — all race state lives on the RaceState
// value, so one Engine can serve many independent races as long as each
// race owns its own SeededRNG and state lineage.
type Engine struct {
	cfg     *Config
	advisor PitAdvisor
}

// NewEngine creates an Engine. A nil config means DefaultConfig; a nil
// advisor means the decision chain runs on heuristics alone.
func NewEngine(cfg *Config, advisor PitAdvisor) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Engine{cfg: cfg, advisor: advisor}
}

// Config returns the engine's tuning.
func (e *Engine) Config() *Config {
	return e.cfg
}

// Tick advances the race by one 100ms step. It is a pure transition:
// the input state and the command batch are never mutated, and the same
// (state, rng stream, commands) always produce the same successor.
//
// The returned slice lists the driver ids whose one-shot BOX_THIS_LAP
// command was honored this tick; the caller clears its own bookkeeping.
//
// Per-tick control flow: advance clock → drift weather → evaluate
// safety-car duration → per car in roster order: DNF draws →
// gap-to-ahead → pit-or-drive → lap bookkeeping → recompute positions,
// gaps and overtakes → assemble the successor state.
func (e *Engine) Tick(state *RaceState, rng *SeededRNG, commands CommandBatch) (*RaceState, []string) {
	newTick := state.Meta.Tick + 1
	newMeta := Meta{
		Seed:        state.Meta.Seed,
		Tick:        newTick,
		TimestampMS: state.Meta.TimestampMS + TickMillis,
		LapsTotal:   state.Meta.LapsTotal,
	}

	events := make([]Event, len(state.Events), len(state.Events)+8)
	copy(events, state.Events)

	currentLap := state.LeaderLap()

	// Weather drift. The drift chance draw happens every tick so the
	// draw order never depends on the weather itself.
	newTrack := state.Track
	if rng.Chance(e.cfg.Weather.DriftChance) {
		newWeather := driftWeather(&e.cfg.Weather, state.Track.Weather, rng)
		oldRain := state.Track.Weather.RainProbability
		newTrack.Weather = newWeather

		wet := e.cfg.Weather.WetThreshold
		switch {
		case oldRain < wet && newWeather.RainProbability >= wet:
			events = append(events, Event{
				Tick: newTick, Lap: currentLap, Type: EventWeatherChange,
				Payload: WeatherChangePayload{RainProbability: newWeather.RainProbability, Started: true},
			})
		case oldRain >= wet && newWeather.RainProbability < wet:
			events = append(events, Event{
				Tick: newTick, Lap: currentLap, Type: EventWeatherChange,
				Payload: WeatherChangePayload{RainProbability: newWeather.RainProbability, Started: false},
			})
		}
	}

	scActive := state.RaceControl == ControlSafetyCar
	vscActive := state.RaceControl == ControlVSC
	newRaceControl := state.RaceControl
	newSCDeployLap := state.SCDeployLap

	// Safety car comes in after the configured number of leader laps.
	if scActive && newSCDeployLap != nil && currentLap >= *newSCDeployLap+e.cfg.SafetyCar.LapsDuration {
		newRaceControl = ControlGreen
		newSCDeployLap = nil
		events = append(events, Event{Tick: newTick, Lap: currentLap, Type: EventGreenFlag, Payload: FlagPayload{}})
	}

	// Under a red flag the field is stationary: the clock and weather
	// advance, nothing else does. Racing resumes on a forced GREEN.
	if state.RaceControl == ControlRedFlag {
		next := &RaceState{
			Meta:        newMeta,
			Track:       newTrack,
			Cars:        append([]Car(nil), state.Cars...),
			Events:      events,
			RaceControl: newRaceControl,
			DRSEnabled:  true,
			SCDeployLap: newSCDeployLap,
		}
		return next, nil
	}

	// Previous-tick positions drive this tick's gap lookups.
	carsByPosition := make(map[int]*Car, len(state.Cars))
	for i := range state.Cars {
		if state.Cars[i].Racing() {
			carsByPosition[state.Cars[i].Timing.Position] = &state.Cars[i]
		}
	}

	newCars := make([]Car, 0, len(state.Cars))
	var consumed []string
	completedLap := make(map[string]bool)

	for i := range state.Cars {
		car := state.Cars[i]

		// DNF is terminal: no draws, no physics, carried unchanged.
		if car.Status == StatusDNF {
			newCars = append(newCars, car)
			continue
		}
		// PITTED lasts exactly one tick.
		if car.Status == StatusPitted {
			car.Status = StatusRacing
		}

		updated, dnfEvent := checkForDNF(&e.cfg.Failures, car, rng, newTick)
		if dnfEvent != nil {
			events = append(events, *dnfEvent)
			logrus.Debugf("[tick %07d] %s retires: %v", newTick, car.Identity.Driver, dnfEvent.Payload)
			if newRaceControl == ControlGreen && rng.Chance(e.cfg.Failures.SafetyCarEscalation) {
				newRaceControl = ControlSafetyCar
				newSCDeployLap = intPtr(currentLap)
				events = append(events, Event{
					Tick: newTick, Lap: car.Timing.Lap, Type: EventSafetyCar,
					Payload: SafetyCarPayload{Cause: car.Identity.Driver},
				})
			}
			newCars = append(newCars, updated)
			continue
		}
		car = updated

		var ahead *Car
		if car.Timing.Position > 1 {
			ahead = carsByPosition[car.Timing.Position-1]
		}
		gapAhead := gapToCarAhead(&e.cfg.Physics, &car, ahead, state.Track.Length)

		oldLap := car.Timing.Lap
		command := commands[car.Identity.Driver]

		inPitWindow := car.Telemetry.LapProgress < e.cfg.Pit.WindowProgress && car.Timing.Lap > 0 && !car.InPitLane
		if inPitWindow && shouldPit(e.cfg, car, state.Cars, rng, state.Track.Length, scActive, vscActive, command, e.advisor) {
			pitted, pitEvent := executePitStop(&e.cfg.Pit, car, rng, newTick, scActive, vscActive)
			events = append(events, pitEvent)
			if command == CommandBoxThisLap {
				consumed = append(consumed, car.Identity.Driver)
			}
			car = pitted
		} else {
			car = e.updateCar(car, &newTrack, rng,
				newRaceControl == ControlSafetyCar,
				newRaceControl == ControlVSC,
				gapAhead, currentLap, newTick, command)
		}

		if car.Timing.Lap > oldLap && car.Timing.LastLapTime != nil {
			completedLap[car.Identity.Driver] = true
			events = append(events, Event{
				Tick: newTick, Lap: car.Timing.Lap, Type: EventLapComplete,
				Driver: car.Identity.Driver,
				Payload: LapCompletePayload{
					LapTime:  *car.Timing.LastLapTime,
					Compound: car.Telemetry.Tire.Compound,
					TireWear: car.Telemetry.Tire.Wear,
					Fuel:     car.Telemetry.Fuel,
				},
			})
		}

		newCars = append(newCars, car)
	}

	oldPositions := make(map[string]int, len(state.Cars))
	for i := range state.Cars {
		oldPositions[state.Cars[i].Identity.Driver] = state.Cars[i].Timing.Position
	}
	newCars, overtakes := recalculatePositions(&e.cfg.Physics, newCars, state.Track.Length, oldPositions, newTick, currentLap)
	events = append(events, overtakes...)

	events = append(events, fastestLapEvents(newCars, completedLap, newTick)...)

	next := &RaceState{
		Meta:        newMeta,
		Track:       newTrack,
		Cars:        newCars,
		Events:      events,
		RaceControl: newRaceControl,
		DRSEnabled:  !(newRaceControl == ControlSafetyCar || newRaceControl == ControlVSC),
		SCDeployLap: newSCDeployLap,
	}
	return next, consumed
}

// updateCar runs the full physics update for one racing car.
// Consumes exactly two rng draws (speed variance, wear variance).
func (e *Engine) updateCar(car Car, track *Track, rng *SeededRNG, scActive, vscActive bool, gapToAhead float64, leaderLap int, currentTick int64, command Command) Car {
	cfg := &e.cfg.Physics
	sector := track.Sectors[car.Timing.Sector]
	baseSpeed, ok := cfg.BaseSpeed[sector.Type]
	if !ok {
		baseSpeed = cfg.BaseSpeed[SectorMedium]
	}

	mode := e.resolveMode(&car, gapToAhead, command)

	dirtyAir := DirtyAirPenalty(cfg, gapToAhead, sector.Type)

	speed := CalculateSpeed(cfg, baseSpeed,
		car.Telemetry.Tire.Wear, car.Telemetry.Fuel, car.DriverSkill, rng,
		track.Weather.RainProbability, car.Telemetry.Tire.Compound, mode, dirtyAir)

	drsActive := CanActivateDRS(cfg, car.Telemetry.LapProgress, gapToAhead, track.DRSZones,
		track.Weather.RainProbability, scActive, vscActive)
	speed += DRSBoost(cfg, drsActive)

	speed += SlipstreamBoost(cfg, gapToAhead, sector.Type)

	battery := ERSHarvest(cfg, car.Systems.ERSBattery, sector.Type)
	battery, ersBoost, ersDeploying := ERSDeploy(cfg, battery, sector.Type)
	speed += ersBoost

	if ShouldYieldBlueFlag(car.Timing.Lap, leaderLap) {
		speed *= 1.0 - BlueFlagPenalty(cfg)
	}

	if scActive {
		speed = math.Min(speed, e.cfg.SafetyCar.SpeedCap)
		drsActive = false
	} else if vscActive {
		speed *= 1.0 - e.cfg.SafetyCar.VSCSpeedReduction
		drsActive = false
	}

	newWear := CalculateTireWear(&e.cfg.Tires, car.Telemetry.Tire.Wear, car.Telemetry.Tire.Compound, rng, mode)
	newFuel := CalculateFuelConsumption(&e.cfg.Tires, car.Telemetry.Fuel, mode)

	distanceM := speed / 3600 * TickSeconds * 1000
	newProgress := car.Telemetry.LapProgress + distanceM/track.Length

	newLap := car.Timing.Lap
	newLastLap := car.Timing.LastLapTime
	newBestLap := car.Timing.BestLapTime
	newLapStart := car.Timing.LapStartTick
	newAge := car.Telemetry.Tire.Age

	if newProgress >= 1.0 {
		newProgress -= 1.0
		lapTime := float64(currentTick-car.Timing.LapStartTick) * TickSeconds
		newLastLap = floatPtr(lapTime)
		if newBestLap == nil || lapTime < *newBestLap {
			newBestLap = floatPtr(lapTime)
		}
		newLapStart = currentTick
		newLap++
		newAge++
	}

	return Car{
		Identity: car.Identity,
		Telemetry: CarTelemetry{
			Speed:       speed,
			Fuel:        newFuel,
			LapProgress: newProgress,
			Tire: TireState{
				Compound: car.Telemetry.Tire.Compound,
				Age:      newAge,
				Wear:     newWear,
			},
			DirtyAirEffect: dirtyAir,
		},
		Systems: CarSystems{
			DRSActive:   drsActive,
			ERSBattery:  battery,
			ERSDeployed: ersDeploying,
		},
		Strategy: CarStrategy{
			Mode:          mode,
			ActiveCommand: command,
		},
		Timing: CarTiming{
			Position:     car.Timing.Position,
			Lap:          newLap,
			Sector:       sectorIndex(newProgress, track),
			LastLapTime:  newLastLap,
			BestLapTime:  newBestLap,
			LapStartTick: newLapStart,
		},
		PitStops:    car.PitStops,
		Status:      car.Status,
		DriverSkill: car.DriverSkill,
		InPitLane:   car.InPitLane,
	}
}

// resolveMode picks the driving mode: an explicit team-wall command
// always wins; otherwise the car manages itself.
func (e *Engine) resolveMode(car *Car, gapToAhead float64, command Command) DrivingMode {
	switch command {
	case CommandPush:
		return ModePush
	case CommandConserve:
		return ModeConserve
	case CommandBalanced:
		return ModeBalanced
	}

	st := &e.cfg.Strategy
	wear := car.Telemetry.Tire.Wear
	switch {
	case wear > st.ConserveWear || car.Telemetry.Fuel < st.ConserveFuel:
		return ModeConserve
	case gapToAhead < st.AttackGap && car.Systems.ERSBattery > st.AttackBattery:
		return ModePush
	case gapToAhead > st.FreeAirGap && wear < st.FreeAirMaxWear:
		return ModePush
	}
	return ModeBalanced
}

// fastestLapEvents emits FASTEST_LAP for any car that just completed a
// lap faster than every rival's best. Only cars that crossed the line
// this tick are considered, so the event fires once per record lap.
func fastestLapEvents(cars []Car, completedLap map[string]bool, tick int64) []Event {
	var events []Event
	for i := range cars {
		car := &cars[i]
		if !completedLap[car.Identity.Driver] || !car.Racing() {
			continue
		}
		if car.Timing.BestLapTime == nil || car.Timing.LastLapTime == nil {
			continue
		}
		if *car.Timing.LastLapTime != *car.Timing.BestLapTime {
			continue
		}
		globalBest := math.Inf(1)
		for j := range cars {
			if cars[j].Identity.Driver == car.Identity.Driver {
				continue
			}
			if best := cars[j].Timing.BestLapTime; best != nil && *best < globalBest {
				globalBest = *best
			}
		}
		if *car.Timing.BestLapTime < globalBest {
			events = append(events, Event{
				Tick: tick, Lap: car.Timing.Lap, Type: EventFastestLap,
				Driver:  car.Identity.Driver,
				Payload: FastestLapPayload{Time: *car.Timing.BestLapTime},
			})
		}
	}
	return events
}
