package sim

import (
	"math"
	"sort"
)

// gapToCarAhead converts the distance between two cars into a time gap
// in seconds, accounting for lap difference. Returns +Inf when there is
// no car ahead or the "ahead" car is actually behind on distance. The
// chasing car's speed is floored so a crawling car doesn't report an
// absurd gap.
func gapToCarAhead(cfg *PhysicsConfig, car, ahead *Car, trackLength float64) float64 {
	if ahead == nil {
		return math.Inf(1)
	}

	carDistance := float64(car.Timing.Lap)*trackLength + car.Telemetry.LapProgress*trackLength
	aheadDistance := float64(ahead.Timing.Lap)*trackLength + ahead.Telemetry.LapProgress*trackLength

	delta := aheadDistance - carDistance
	if delta <= 0 {
		return math.Inf(1)
	}

	speedMPS := math.Max(car.Telemetry.Speed, cfg.MinGapSpeed) * 1000 / 3600
	return delta / speedMPS
}

// recalculatePositions runs once per tick after every car has moved.
// Running cars are ranked by (lap, lap progress) descending with a
// stable tie-break on input order and take positions 1..N; retired cars
// rank after the field in the same ordering. Intervals and leader gaps
// are recomputed for every non-leader, and an OVERTAKE event is emitted
// for each racing driver whose position strictly improved since the
// previous tick.
func recalculatePositions(cfg *PhysicsConfig, cars []Car, trackLength float64, oldPositions map[string]int, tick int64, currentLap int) ([]Car, []Event) {
	running := make([]Car, 0, len(cars))
	retired := make([]Car, 0)
	for _, c := range cars {
		if c.Racing() {
			running = append(running, c)
		} else {
			retired = append(retired, c)
		}
	}

	byProgress := func(list []Car) func(i, j int) bool {
		return func(i, j int) bool {
			if list[i].Timing.Lap != list[j].Timing.Lap {
				return list[i].Timing.Lap > list[j].Timing.Lap
			}
			return list[i].Telemetry.LapProgress > list[j].Telemetry.LapProgress
		}
	}
	sort.SliceStable(running, byProgress(running))
	sort.SliceStable(retired, byProgress(retired))

	ordered := append(running, retired...)

	var events []Event
	newCars := make([]Car, 0, len(ordered))
	var leader *Car
	if len(running) > 0 {
		leader = &running[0]
	}

	for i := range ordered {
		car := ordered[i]
		newPosition := i + 1

		if oldPos, ok := oldPositions[car.Identity.Driver]; ok && newPosition < oldPos && car.Racing() {
			// Name whoever held this slot a tick ago.
			overtaken := ""
			for driver, pos := range oldPositions {
				if pos == newPosition && driver != car.Identity.Driver {
					overtaken = driver
					break
				}
			}
			if overtaken != "" {
				events = append(events, Event{
					Tick:   tick,
					Lap:    currentLap,
					Type:   EventOvertake,
					Driver: car.Identity.Driver,
					Payload: OvertakePayload{
						Overtaker: car.Identity.Driver,
						Overtaken: overtaken,
						Position:  newPosition,
					},
				})
			}
		}

		car.Timing.Position = newPosition
		if i > 0 && car.Racing() && leader != nil {
			ahead := &ordered[i-1]
			interval := gapToCarAhead(cfg, &car, ahead, trackLength)
			leaderGap := gapToCarAhead(cfg, &car, leader, trackLength)
			car.Timing.Interval = finiteGap(interval)
			car.Timing.GapToLeader = finiteGap(leaderGap)
		} else {
			car.Timing.Interval = nil
			car.Timing.GapToLeader = nil
		}

		newCars = append(newCars, car)
	}

	return newCars, events
}

// finiteGap returns a pointer to the gap, or nil for the +Inf sentinel
// (car ahead not actually ahead on distance).
func finiteGap(gap float64) *float64 {
	if math.IsInf(gap, 1) {
		return nil
	}
	return floatPtr(gap)
}

// sectorIndex maps a lap progress to its sector from the cumulative
// sector-length boundaries.
func sectorIndex(lapProgress float64, track *Track) int {
	cumulative := 0.0
	for i, sector := range track.Sectors {
		cumulative += sector.Length
		if lapProgress < cumulative/track.Length {
			return i
		}
	}
	return len(track.Sectors) - 1
}
