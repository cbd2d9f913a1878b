package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func carAt(driver string, lap int, progress float64, position int) Car {
	car := testCar(driver)
	car.Timing.Lap = lap
	car.Timing.Position = position
	car.Telemetry.LapProgress = progress
	return car
}

func TestGapToCarAhead(t *testing.T) {
	cfg := physicsCfg()
	const trackLength = 5000.0

	behind := carAt("HAM", 10, 0.40, 2)
	ahead := carAt("VER", 10, 0.50, 1)

	// 500m at 200 km/h (55.55 m/s) is 9 seconds.
	gap := gapToCarAhead(cfg, &behind, &ahead, trackLength)
	assert.InDelta(t, 9.0, gap, 1e-6)

	// A lap of difference counts as distance.
	lapped := carAt("SAR", 9, 0.50, 3)
	gap = gapToCarAhead(cfg, &lapped, &ahead, trackLength)
	assert.InDelta(t, 90.0, gap, 1e-6)

	// No car ahead, or "ahead" actually behind: +Inf sentinel.
	if !math.IsInf(gapToCarAhead(cfg, &behind, nil, trackLength), 1) {
		t.Error("nil ahead should give +Inf")
	}
	if !math.IsInf(gapToCarAhead(cfg, &ahead, &behind, trackLength), 1) {
		t.Error("ahead car behind on distance should give +Inf")
	}
}

func TestGapToCarAhead_SpeedFloor(t *testing.T) {
	cfg := physicsCfg()
	crawling := carAt("HAM", 10, 0.40, 2)
	crawling.Telemetry.Speed = 1.0 // nearly stationary
	ahead := carAt("VER", 10, 0.50, 1)

	// The gap is computed at the floor speed, not the crawl.
	want := 500.0 / (cfg.MinGapSpeed * 1000 / 3600)
	assert.InDelta(t, want, gapToCarAhead(cfg, &crawling, &ahead, 5000), 1e-6)
}

func TestRecalculatePositions_OrdersByDistance(t *testing.T) {
	cfg := physicsCfg()
	cars := []Car{
		carAt("HAM", 10, 0.30, 1),
		carAt("VER", 10, 0.60, 2), // further along, should take P1
		carAt("LEC", 9, 0.90, 3),  // a lap down
	}
	old := map[string]int{"HAM": 1, "VER": 2, "LEC": 3}

	newCars, _ := recalculatePositions(cfg, cars, 5000, old, 100, 10)

	byDriver := map[string]Car{}
	for _, c := range newCars {
		byDriver[c.Identity.Driver] = c
	}
	assert.Equal(t, 1, byDriver["VER"].Timing.Position)
	assert.Equal(t, 2, byDriver["HAM"].Timing.Position)
	assert.Equal(t, 3, byDriver["LEC"].Timing.Position)

	// Leader carries no gaps; the rest carry both.
	assert.Nil(t, byDriver["VER"].Timing.GapToLeader)
	assert.Nil(t, byDriver["VER"].Timing.Interval)
	assert.NotNil(t, byDriver["HAM"].Timing.GapToLeader)
	assert.NotNil(t, byDriver["HAM"].Timing.Interval)
	assert.NotNil(t, byDriver["LEC"].Timing.GapToLeader)
}

func TestRecalculatePositions_EmitsOvertake(t *testing.T) {
	cfg := physicsCfg()
	cars := []Car{
		carAt("HAM", 10, 0.30, 1),
		carAt("VER", 10, 0.60, 2),
	}
	old := map[string]int{"HAM": 1, "VER": 2}

	_, events := recalculatePositions(cfg, cars, 5000, old, 100, 10)

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1 overtake", len(events))
	}
	payload := events[0].Payload.(OvertakePayload)
	assert.Equal(t, "VER", payload.Overtaker)
	assert.Equal(t, "HAM", payload.Overtaken)
	assert.Equal(t, 1, payload.Position)
	assert.Equal(t, EventOvertake, events[0].Type)
}

func TestRecalculatePositions_NoOvertakeWithoutChange(t *testing.T) {
	cfg := physicsCfg()
	cars := []Car{
		carAt("VER", 10, 0.60, 1),
		carAt("HAM", 10, 0.30, 2),
	}
	old := map[string]int{"VER": 1, "HAM": 2}

	_, events := recalculatePositions(cfg, cars, 5000, old, 100, 10)
	assert.Empty(t, events)
}

func TestRecalculatePositions_RetiredRankLast(t *testing.T) {
	cfg := physicsCfg()
	dnf := carAt("SAI", 10, 0.90, 1) // was leading when it broke
	dnf.Status = StatusDNF
	cars := []Car{
		dnf,
		carAt("VER", 10, 0.50, 2),
		carAt("HAM", 10, 0.30, 3),
	}
	old := map[string]int{"SAI": 1, "VER": 2, "HAM": 3}

	newCars, _ := recalculatePositions(cfg, cars, 5000, old, 100, 10)

	byDriver := map[string]Car{}
	for _, c := range newCars {
		byDriver[c.Identity.Driver] = c
	}
	assert.Equal(t, 1, byDriver["VER"].Timing.Position)
	assert.Equal(t, 2, byDriver["HAM"].Timing.Position)
	assert.Equal(t, 3, byDriver["SAI"].Timing.Position, "retired car ranks after the field")
	assert.Nil(t, byDriver["SAI"].Timing.GapToLeader)
}

func TestRecalculatePositions_PermutationInvariant(t *testing.T) {
	// The final ordering must not depend on input slice order.
	cfg := physicsCfg()
	forward := []Car{
		carAt("VER", 10, 0.60, 1),
		carAt("HAM", 10, 0.30, 2),
		carAt("LEC", 10, 0.10, 3),
	}
	reversed := []Car{forward[2], forward[1], forward[0]}
	old := map[string]int{"VER": 1, "HAM": 2, "LEC": 3}

	a, _ := recalculatePositions(cfg, forward, 5000, old, 100, 10)
	b, _ := recalculatePositions(cfg, reversed, 5000, old, 100, 10)

	posA := map[string]int{}
	posB := map[string]int{}
	for _, c := range a {
		posA[c.Identity.Driver] = c.Timing.Position
	}
	for _, c := range b {
		posB[c.Identity.Driver] = c.Timing.Position
	}
	assert.Equal(t, posA, posB)
}

func TestSectorIndex(t *testing.T) {
	track := TrackMonaco // three sectors of ~equal length
	tests := []struct {
		progress float64
		want     int
	}{
		{0.0, 0},
		{0.20, 0},
		{0.40, 1},
		{0.60, 1},
		{0.70, 2},
		{0.99, 2},
	}
	for _, tt := range tests {
		if got := sectorIndex(tt.progress, &track); got != tt.want {
			t.Errorf("sectorIndex(%v) = %d, want %d", tt.progress, got, tt.want)
		}
	}
}
