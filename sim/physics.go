package sim

import "math"

// Pure physics formulas. Nothing in this file holds state: every
// function maps (config, inputs, rng draws) to a value, and the only
// ordering constraint is that callers take their rng draws in a fixed,
// state-independent order.

// gripFactor returns the weather/tire grip multiplier. Dry running is
// 1.0; light and heavy rain cut grip globally and, once the track is
// properly wet, the compound choice starts to matter.
func gripFactor(cfg *PhysicsConfig, rainProbability float64, compound TireCompound) float64 {
	if rainProbability < cfg.LightRainThreshold {
		return 1.0
	}
	grip := cfg.LightRainGrip
	if rainProbability >= cfg.HeavyRainThreshold {
		grip = cfg.HeavyRainGrip
	}
	if wet, ok := cfg.WetGrip[compound]; ok {
		grip *= wet
	}
	return grip
}

// CalculateSpeed computes the car's speed for one tick, before DRS,
// slipstream, ERS, blue-flag and race-control adjustments.
//
// Consumes exactly one rng draw (the variance) so the replay draw order
// is fixed regardless of conditions.
func CalculateSpeed(
	cfg *PhysicsConfig,
	baseSectorSpeed float64,
	tireWear float64,
	fuelKG float64,
	driverSkill float64,
	rng *SeededRNG,
	rainProbability float64,
	compound TireCompound,
	mode DrivingMode,
	dirtyAirPenalty float64,
) float64 {
	speed := baseSectorSpeed + (driverSkill-cfg.SkillBaseline)*cfg.SkillBonusScale

	if factor, ok := cfg.ModeSpeedFactor[mode]; ok {
		speed *= factor
	}

	speed *= gripFactor(cfg, rainProbability, compound)
	speed *= 1.0 - dirtyAirPenalty

	speed -= tireWear * cfg.TireWearSpeedPenalty
	speed -= fuelKG * cfg.FuelWeightSpeedPenalty

	speed *= rng.Uniform(1.0-cfg.SpeedVariance, 1.0+cfg.SpeedVariance)

	return math.Max(speed, cfg.MinSpeed)
}

// CalculateTireWear returns the new wear level after one tick.
// Consumes exactly one rng draw.
func CalculateTireWear(cfg *TireConfig, currentWear float64, compound TireCompound, rng *SeededRNG, mode DrivingMode) float64 {
	increase := cfg.WearRates[compound] * rng.Uniform(cfg.WearVarianceMin, cfg.WearVarianceMax)
	if factor, ok := cfg.ModeWearFactor[mode]; ok {
		increase *= factor
	}
	// Worn tires fall off a cliff.
	if currentWear > cfg.WornThreshold {
		increase *= cfg.WornAcceleration
	}
	return math.Min(currentWear+increase, 1.0)
}

// CalculateFuelConsumption returns the remaining fuel after one tick.
func CalculateFuelConsumption(cfg *TireConfig, currentFuel float64, mode DrivingMode) float64 {
	burn := cfg.FuelPerTick
	if factor, ok := cfg.ModeFuelFactor[mode]; ok {
		burn *= factor
	}
	return math.Max(currentFuel-burn, 0.0)
}

// InDRSZone reports whether the given lap progress falls inside any of
// the track's DRS activation zones.
func InDRSZone(lapProgress float64, zones []DRSZone) bool {
	for _, z := range zones {
		if lapProgress >= z.Start && lapProgress <= z.End {
			return true
		}
	}
	return false
}

// CanActivateDRS checks all DRS conditions: inside a zone, within the
// detection gap, dry enough, and no safety car of either kind.
func CanActivateDRS(cfg *PhysicsConfig, lapProgress, gapToCarAhead float64, zones []DRSZone, rainProbability float64, scActive, vscActive bool) bool {
	if scActive || vscActive {
		return false
	}
	if rainProbability >= cfg.DRSMaxRain {
		return false
	}
	if gapToCarAhead > cfg.DRSGapSeconds {
		return false
	}
	return InDRSZone(lapProgress, zones)
}

// DRSBoost returns the additive speed gain from an open rear wing.
func DRSBoost(cfg *PhysicsConfig, active bool) float64 {
	if !active {
		return 0.0
	}
	return cfg.DRSBoost
}

// SlipstreamBoost returns the additive speed gain from running in the
// tow of the car ahead. Full strength on straights, much weaker in the
// corners where the tow doesn't help.
func SlipstreamBoost(cfg *PhysicsConfig, gapToCarAhead float64, sectorType SectorType) float64 {
	if gapToCarAhead >= cfg.SlipstreamWindow {
		return 0.0
	}
	boost := cfg.SlipstreamMaxBoost * (1.0 - gapToCarAhead/cfg.SlipstreamWindow)
	return boost * cfg.SlipstreamSectorFactor[sectorType]
}

// ERSHarvest returns the new battery level after harvesting under
// braking. Only slow sectors harvest; the battery caps at max.
func ERSHarvest(cfg *PhysicsConfig, battery float64, sectorType SectorType) float64 {
	if sectorType != SectorSlow {
		return battery
	}
	return math.Min(battery+cfg.ERSHarvestRate, cfg.ERSMaxBattery)
}

// ERSDeploy computes deployment for one tick: in fast sectors with
// charge above the floor the battery drains and the car gains the
// deployment boost. Returns the new battery, the boost, and whether the
// system is deploying this tick.
func ERSDeploy(cfg *PhysicsConfig, battery float64, sectorType SectorType) (newBattery, boost float64, deploying bool) {
	if sectorType != SectorFast || battery <= cfg.ERSMinDeploy {
		return battery, 0.0, false
	}
	return math.Max(battery-cfg.ERSDeployDrain, 0.0), cfg.ERSDeployBoost, true
}

// DirtyAirPenalty returns the fractional speed penalty from following
// another car closely. Worst in tight corners; zero on straights where
// the slipstream dominates instead.
func DirtyAirPenalty(cfg *PhysicsConfig, gapToCarAhead float64, sectorType SectorType) float64 {
	if gapToCarAhead >= cfg.DirtyAirRange {
		return 0.0
	}
	penalty := cfg.DirtyAirMaxPenalty * (1.0 - gapToCarAhead/cfg.DirtyAirRange)
	return penalty * cfg.DirtyAirSectorWeight[sectorType]
}

// ShouldYieldBlueFlag reports whether a lapped car must yield. A lap
// deficit of two or more guarantees the car is more than one full lap
// behind on distance regardless of lap progress; a deficit of one may
// be a fraction of a lap and never shows blue flags.
func ShouldYieldBlueFlag(carLap, leaderLap int) bool {
	return leaderLap > carLap+1
}

// BlueFlagPenalty returns the fractional speed cut a yielding car takes.
func BlueFlagPenalty(cfg *PhysicsConfig) float64 {
	return cfg.BlueFlagPenalty
}
