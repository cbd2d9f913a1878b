package sim

import "github.com/sirupsen/logrus"

// PitAdvisor is the injected pit-strategy capability. Implementations
// must be side-effect free and non-blocking: the engine calls Advise in
// its hot path. A nil advisor, a false answer and a panicking advisor
// all mean "no advice to pit" — the decision chain falls through to the
// racing heuristics.
type PitAdvisor interface {
	Advise(car Car, scActive, vscActive bool) bool
}

// adviseSafely wraps the advisor call so a misbehaving model can never
// take the engine down. Failure is "no".
func adviseSafely(advisor PitAdvisor, car Car, scActive, vscActive bool) (decision bool) {
	if advisor == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			logrus.Warnf("pit advisor panicked for %s: %v", car.Identity.Driver, r)
			decision = false
		}
	}()
	return advisor.Advise(car, scActive, vscActive)
}

// shouldPit runs the pit decision chain for one car. Precedence is
// fixed and short-circuiting:
//
//  1. explicit BOX_THIS_LAP from the team wall
//  2. tire wear above the hard safety ceiling
//  3. the injected advisor
//  4. undercut defense: a close rival on near-new tires while this
//     car's tires are past the defend threshold
//
// Only step 4 consumes an rng draw, and only when a matching rival
// exists, so an advisor swap changes no draw the heuristics take before
// it.
func shouldPit(cfg *Config, car Car, allCars []Car, rng *SeededRNG, trackLength float64, scActive, vscActive bool, command Command, advisor PitAdvisor) bool {
	if command == CommandBoxThisLap {
		return true
	}

	wear := car.Telemetry.Tire.Wear
	if wear > cfg.Pit.WearCeiling {
		return true
	}

	if adviseSafely(advisor, car, scActive, vscActive) {
		return true
	}

	// Undercut defense. The advisor doesn't see rival tire state, so
	// this one specialized heuristic stays active alongside it.
	if wear > cfg.Pit.DefendWearThreshold {
		for i := range allCars {
			rival := &allCars[i]
			if rival.Identity.Driver == car.Identity.Driver || rival.Status != StatusRacing {
				continue
			}
			interval := gapToCarAhead(&cfg.Physics, rival, &car, trackLength)
			if interval < cfg.Pit.DefendRivalGap && rival.Telemetry.Tire.Wear < cfg.Pit.DefendRivalFreshWear {
				if rng.Chance(cfg.Pit.DefendProbability) {
					return true
				}
			}
		}
	}

	return false
}

// executePitStop performs the stop: next compound down the ladder,
// fresh tires, a bounded progress penalty (halved under SC/VSC when the
// field is crawling anyway), and a full reset of the transient systems.
// Status is PITTED for this tick only.
//
// Consumes exactly one rng draw.
func executePitStop(cfg *PitConfig, car Car, rng *SeededRNG, tick int64, scActive, vscActive bool) (Car, Event) {
	newCompound, ok := cfg.Ladder[car.Telemetry.Tire.Compound]
	if !ok {
		newCompound = CompoundMedium
	}

	penalty := rng.Uniform(cfg.PenaltyMin, cfg.PenaltyMax)
	if scActive || vscActive {
		penalty *= cfg.SCPenaltyFactor
	}

	car.Telemetry.Speed = cfg.PitLaneSpeed
	car.Telemetry.LapProgress = clamp(car.Telemetry.LapProgress-penalty, 0.0, 1.0)
	car.Telemetry.Tire = TireState{Compound: newCompound, Age: 0, Wear: 0.0}
	car.Telemetry.DirtyAirEffect = 0.0
	car.Systems.DRSActive = false
	car.Systems.ERSDeployed = false
	car.Strategy = CarStrategy{Mode: ModeBalanced}
	car.PitStops++
	car.Status = StatusPitted
	car.InPitLane = false

	event := Event{
		Tick:   tick,
		Lap:    car.Timing.Lap,
		Type:   EventPitStop,
		Driver: car.Identity.Driver,
		Payload: PitStopPayload{
			Compound:   newCompound,
			StopNumber: car.PitStops,
		},
	}
	return car, event
}
