package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// yesAdvisor always calls the car in.
type yesAdvisor struct{}

func (yesAdvisor) Advise(Car, bool, bool) bool { return true }

// panicAdvisor simulates a broken model.
type panicAdvisor struct{}

func (panicAdvisor) Advise(Car, bool, bool) bool { panic("model exploded") }

func TestAdviseSafely_NilAdvisorMeansNo(t *testing.T) {
	if adviseSafely(nil, testCar("VER"), false, false) {
		t.Error("nil advisor returned yes")
	}
}

func TestAdviseSafely_PanicMeansNo(t *testing.T) {
	// A panicking advisor must not take the engine down and must read
	// as "no advice".
	if adviseSafely(panicAdvisor{}, testCar("VER"), false, false) {
		t.Error("panicking advisor returned yes")
	}
}

func TestShouldPit_BoxCommandWins(t *testing.T) {
	cfg := DefaultConfig()
	car := testCar("VER")
	car.Telemetry.Tire.Wear = 0.0 // fresh tires, no other reason to stop

	if !shouldPit(cfg, car, []Car{car}, NewSeededRNG(1), 5000, false, false, CommandBoxThisLap, nil) {
		t.Error("BOX_THIS_LAP was ignored")
	}
}

func TestShouldPit_WearCeiling(t *testing.T) {
	cfg := DefaultConfig()
	car := testCar("VER")
	car.Telemetry.Tire.Wear = 0.86

	if !shouldPit(cfg, car, []Car{car}, NewSeededRNG(1), 5000, false, false, "", nil) {
		t.Error("wear above the ceiling did not force a stop")
	}
}

func TestShouldPit_AdvisorConsulted(t *testing.T) {
	cfg := DefaultConfig()
	car := testCar("VER")
	car.Telemetry.Tire.Wear = 0.30 // below ceiling and defend threshold

	if !shouldPit(cfg, car, []Car{car}, NewSeededRNG(1), 5000, false, false, "", yesAdvisor{}) {
		t.Error("advisor yes was ignored")
	}
	if shouldPit(cfg, car, []Car{car}, NewSeededRNG(1), 5000, false, false, "", nil) {
		t.Error("no advisor, fresh tires: should stay out")
	}
}

func TestShouldPit_RivalDefense(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pit.DefendProbability = 1.0 // make the defense draw deterministic

	car := carAt("VER", 10, 0.50, 1)
	car.Telemetry.Tire.Wear = 0.50 // past the defend threshold

	rival := carAt("HAM", 10, 0.46, 2) // 200m back, ~2.4s at 300 km/h
	rival.Telemetry.Tire.Wear = 0.01   // fresh out of the pits
	rival.Telemetry.Speed = 300

	if !shouldPit(cfg, car, []Car{car, rival}, NewSeededRNG(1), 5000, false, false, "", nil) {
		t.Error("fresh-tired rival in range: should cover the undercut")
	}

	// Same situation but the rival's tires are old too: stay out.
	rival.Telemetry.Tire.Wear = 0.40
	if shouldPit(cfg, car, []Car{car, rival}, NewSeededRNG(1), 5000, false, false, "", nil) {
		t.Error("worn rival is no undercut threat")
	}

	// Defense never fires with probability zero.
	cfg.Pit.DefendProbability = 0.0
	rival.Telemetry.Tire.Wear = 0.01
	if shouldPit(cfg, car, []Car{car, rival}, NewSeededRNG(1), 5000, false, false, "", nil) {
		t.Error("defense fired with probability zero")
	}
}

func TestExecutePitStop_CompoundLadder(t *testing.T) {
	cfg := &DefaultConfig().Pit
	tests := []struct {
		from, to TireCompound
	}{
		{CompoundSoft, CompoundMedium},
		{CompoundMedium, CompoundHard},
		{CompoundHard, CompoundMedium},
		{CompoundIntermediate, CompoundMedium},
		{CompoundWet, CompoundMedium},
	}
	for _, tt := range tests {
		car := testCar("VER")
		car.Telemetry.Tire = TireState{Compound: tt.from, Age: 20, Wear: 0.7}

		pitted, _ := executePitStop(cfg, car, NewSeededRNG(1), 100, false, false)
		if pitted.Telemetry.Tire.Compound != tt.to {
			t.Errorf("%s -> %s, want %s", tt.from, pitted.Telemetry.Tire.Compound, tt.to)
		}
		assert.Equal(t, 0.0, pitted.Telemetry.Tire.Wear, "fresh tires")
		assert.Equal(t, 0, pitted.Telemetry.Tire.Age)
	}
}

func TestExecutePitStop_PenaltyAndState(t *testing.T) {
	cfg := &DefaultConfig().Pit
	car := testCar("VER")
	car.Telemetry.LapProgress = 0.04
	car.Telemetry.Tire.Wear = 0.7

	pitted, event := executePitStop(cfg, car, NewSeededRNG(1), 100, false, false)

	lost := car.Telemetry.LapProgress - pitted.Telemetry.LapProgress
	if lost < cfg.PenaltyMin || lost >= cfg.PenaltyMax {
		t.Errorf("progress lost %v, want [%v,%v)", lost, cfg.PenaltyMin, cfg.PenaltyMax)
	}
	assert.Equal(t, StatusPitted, pitted.Status)
	assert.Equal(t, 1, pitted.PitStops)
	assert.Equal(t, cfg.PitLaneSpeed, pitted.Telemetry.Speed)
	assert.False(t, pitted.Systems.DRSActive)

	assert.Equal(t, EventPitStop, event.Type)
	payload := event.Payload.(PitStopPayload)
	assert.Equal(t, 1, payload.StopNumber)
	assert.Equal(t, CompoundHard, payload.Compound)
}

func TestExecutePitStop_CheaperUnderSafetyCar(t *testing.T) {
	cfg := &DefaultConfig().Pit
	car := testCar("VER")
	car.Telemetry.LapProgress = 0.04

	// Same rng draw, with and without the safety car.
	green, _ := executePitStop(cfg, car, NewSeededRNG(9), 100, false, false)
	underSC, _ := executePitStop(cfg, car, NewSeededRNG(9), 100, true, false)

	greenLoss := car.Telemetry.LapProgress - green.Telemetry.LapProgress
	scLoss := car.Telemetry.LapProgress - underSC.Telemetry.LapProgress
	assert.InDelta(t, greenLoss*cfg.SCPenaltyFactor, scLoss, 1e-12)
}

func TestExecutePitStop_ProgressNeverNegative(t *testing.T) {
	cfg := &DefaultConfig().Pit
	car := testCar("VER")
	car.Telemetry.LapProgress = 0.01 // penalty exceeds remaining progress

	pitted, _ := executePitStop(cfg, car, NewSeededRNG(1), 100, false, false)
	if pitted.Telemetry.LapProgress < 0.0 {
		t.Errorf("lap progress went negative: %v", pitted.Telemetry.LapProgress)
	}
}
