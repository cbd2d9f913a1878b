package sim

import "testing"

func testCar(driver string) Car {
	return Car{
		Identity:    CarIdentity{Driver: driver, Team: "Test"},
		Telemetry:   CarTelemetry{Speed: 200, Fuel: 80, Tire: TireState{Compound: CompoundMedium}},
		Systems:     CarSystems{ERSBattery: 2.0, DRSActive: true, ERSDeployed: true},
		Strategy:    CarStrategy{Mode: ModePush},
		Timing:      CarTiming{Position: 1, Lap: 5},
		Status:      StatusRacing,
		DriverSkill: 0.95,
	}
}

func TestCheckForDNF_NeverFiresAtZeroProbability(t *testing.T) {
	cfg := &FailureConfig{}
	rng := NewSeededRNG(1)
	car := testCar("VER")

	for i := 0; i < 1000; i++ {
		updated, event := checkForDNF(cfg, car, rng, int64(i))
		if event != nil || updated.Status != StatusRacing {
			t.Fatalf("tick %d: DNF fired with zero probabilities", i)
		}
	}
}

func TestCheckForDNF_AlwaysFiresAtCertainty(t *testing.T) {
	cfg := &FailureConfig{MechanicalProbability: 1.0}
	updated, event := checkForDNF(cfg, testCar("VER"), NewSeededRNG(1), 100)

	if event == nil {
		t.Fatal("expected a DNF event")
	}
	if updated.Status != StatusDNF {
		t.Errorf("status = %s, want DNF", updated.Status)
	}
	if event.Type != EventDNF || event.Driver != "VER" {
		t.Errorf("event = %+v, want DNF for VER", event)
	}
	payload, ok := event.Payload.(DNFPayload)
	if !ok || payload.Reason != "Mechanical failure" {
		t.Errorf("payload = %+v, want mechanical failure", event.Payload)
	}
}

func TestCheckForDNF_WornTiresRaiseCrashRisk(t *testing.T) {
	// Crash certain on worn tires, impossible on fresh ones.
	cfg := &FailureConfig{
		CrashProbability:          0.0,
		CrashProbabilityWornTires: 1.0,
		WornTireThreshold:         0.8,
	}

	fresh := testCar("VER")
	fresh.Telemetry.Tire.Wear = 0.2
	if _, event := checkForDNF(cfg, fresh, NewSeededRNG(1), 1); event != nil {
		t.Error("fresh tires crashed with base probability zero")
	}

	worn := testCar("VER")
	worn.Telemetry.Tire.Wear = 0.9
	_, event := checkForDNF(cfg, worn, NewSeededRNG(1), 1)
	if event == nil {
		t.Fatal("worn tires should have crashed")
	}
	if payload := event.Payload.(DNFPayload); payload.Reason != "Crashed" {
		t.Errorf("reason = %q, want Crashed", payload.Reason)
	}
}

func TestCreateDNF_ClearsTransientSystems(t *testing.T) {
	car, _ := createDNF(testCar("HAM"), 50, "Crashed")

	if car.Telemetry.Speed != 0.0 {
		t.Errorf("speed = %v, want 0", car.Telemetry.Speed)
	}
	if car.Systems.DRSActive || car.Systems.ERSDeployed {
		t.Error("driver aids still active after DNF")
	}
	if car.Strategy.Mode != ModeBalanced {
		t.Errorf("mode = %s, want BALANCED", car.Strategy.Mode)
	}
}
