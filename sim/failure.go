package sim

// checkForDNF runs the per-tick failure draws for one car: mechanical
// failure first, then crash (far more likely on badly worn tires).
// Returns the updated car and a DNF event when the car retires.
// The mechanical draw always happens first; the crash draw is only
// taken when it misses.
func checkForDNF(cfg *FailureConfig, car Car, rng *SeededRNG, tick int64) (Car, *Event) {
	if rng.Chance(cfg.MechanicalProbability) {
		return createDNF(car, tick, "Mechanical failure")
	}

	crashProb := cfg.CrashProbability
	if car.Telemetry.Tire.Wear > cfg.WornTireThreshold {
		crashProb = cfg.CrashProbabilityWornTires
	}
	if rng.Chance(crashProb) {
		return createDNF(car, tick, "Crashed")
	}

	return car, nil
}

// createDNF builds the terminal car value: speed frozen at zero, all
// transient systems cleared, status DNF. No physics update ever touches
// the car again.
func createDNF(car Car, tick int64, reason string) (Car, *Event) {
	car.Telemetry.Speed = 0.0
	car.Telemetry.DirtyAirEffect = 0.0
	car.Systems.DRSActive = false
	car.Systems.ERSDeployed = false
	car.Strategy = CarStrategy{Mode: ModeBalanced}
	car.Status = StatusDNF

	event := &Event{
		Tick:    tick,
		Lap:     car.Timing.Lap,
		Type:    EventDNF,
		Driver:  car.Identity.Driver,
		Payload: DNFPayload{Reason: reason},
	}
	return car, event
}
