package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_CoversClosedSets(t *testing.T) {
	cfg := DefaultConfig()

	compounds := []TireCompound{CompoundSoft, CompoundMedium, CompoundHard, CompoundIntermediate, CompoundWet}
	for _, c := range compounds {
		assert.Contains(t, cfg.Tires.WearRates, c, "wear rate missing")
		assert.Contains(t, cfg.Pit.Ladder, c, "pit ladder missing")
		assert.Contains(t, cfg.Physics.WetGrip, c, "wet grip missing")
	}

	sectors := []SectorType{SectorSlow, SectorMedium, SectorFast}
	for _, s := range sectors {
		assert.Contains(t, cfg.Physics.BaseSpeed, s)
		assert.Contains(t, cfg.Physics.SlipstreamSectorFactor, s)
		assert.Contains(t, cfg.Physics.DirtyAirSectorWeight, s)
	}

	modes := []DrivingMode{ModePush, ModeBalanced, ModeConserve}
	for _, m := range modes {
		assert.Contains(t, cfg.Physics.ModeSpeedFactor, m)
		assert.Contains(t, cfg.Tires.ModeWearFactor, m)
		assert.Contains(t, cfg.Tires.ModeFuelFactor, m)
	}
}

func TestDefaultConfig_LadderTargetsAreValid(t *testing.T) {
	cfg := DefaultConfig()
	for from, to := range cfg.Pit.Ladder {
		if !IsValidCompound(to) {
			t.Errorf("ladder %s -> %s targets an unknown compound", from, to)
		}
	}
}

func TestDefaultConfig_OrderedThresholds(t *testing.T) {
	cfg := DefaultConfig()

	assert.Less(t, cfg.Physics.LightRainThreshold, cfg.Physics.HeavyRainThreshold)
	assert.Less(t, cfg.Tires.WearVarianceMin, cfg.Tires.WearVarianceMax)
	assert.Less(t, cfg.Pit.PenaltyMin, cfg.Pit.PenaltyMax)
	assert.Less(t, cfg.Pit.DefendWearThreshold, cfg.Pit.WearCeiling)
	assert.Less(t, cfg.Failures.CrashProbability, cfg.Failures.CrashProbabilityWornTires)
	assert.Greater(t, cfg.SafetyCar.SpeedCap, 0.0)
}
