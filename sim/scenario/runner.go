package scenario

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/apexsim/apexsim/sim"
)

// heavyRain is the rain probability a RAIN forced event sets when the
// scenario does not pin one.
const heavyRain = 0.8

// Classification is one row of the final order.
type Classification struct {
	Position    int           `json:"position"`
	Driver      string        `json:"driver"`
	Team        string        `json:"team"`
	Laps        int           `json:"laps"`
	PitStops    int           `json:"pit_stops"`
	BestLapTime *float64      `json:"best_lap_time,omitempty"`
	GapToLeader *float64      `json:"gap_to_leader,omitempty"`
	Status      sim.CarStatus `json:"status"`
}

// FastestLap names the race's fastest lap holder.
type FastestLap struct {
	Driver string  `json:"driver"`
	Time   float64 `json:"time"`
}

// Result summarizes a completed scenario run.
type Result struct {
	ScenarioID     string           `json:"scenario_id"`
	ScenarioName   string           `json:"scenario_name"`
	TotalTicks     int64            `json:"total_ticks"`
	Classification []Classification `json:"classification"`
	Events         []sim.Event      `json:"events"`
	TotalOvertakes int              `json:"total_overtakes"`
	TotalPitStops  int              `json:"total_pit_stops"`
	DNFs           []string         `json:"dnfs"`
	FastestLap     *FastestLap      `json:"fastest_lap,omitempty"`
}

// Runner drives a scenario to completion: it owns the command batch,
// fires forced events at their trigger points and builds the result
// summary. One Runner runs one scenario once.
type Runner struct {
	engine   *sim.Engine
	scenario *Scenario
	maxTicks int64

	commands sim.CommandBatch
	fired    []bool
}

// NewRunner builds a runner. A nil config means sim.DefaultConfig; a
// nil advisor leaves the pit decision chain on heuristics. maxTicks
// bounds runaway scenarios, <= 0 means the default cap.
func NewRunner(sc *Scenario, cfg *sim.Config, advisor sim.PitAdvisor, maxTicks int64) *Runner {
	if maxTicks <= 0 {
		maxTicks = 200_000
	}
	return &Runner{
		engine:   sim.NewEngine(cfg, advisor),
		scenario: sc,
		maxTicks: maxTicks,
		commands: sim.CommandBatch{},
		fired:    make([]bool, len(sc.ForcedEvents)),
	}
}

// Run executes the scenario until the race classifies or the tick cap
// is reached.
func (r *Runner) Run() (*Result, error) {
	state, err := BuildInitialState(r.scenario)
	if err != nil {
		return nil, err
	}
	rng := sim.NewSeededRNG(r.scenario.Seed)
	startTick := state.Meta.Tick

	logrus.Infof("scenario %s: %d cars, %d laps on %s (seed %d)",
		r.scenario.ID, len(state.Cars), r.scenario.TotalLaps, state.Track.ID, r.scenario.Seed)

	for !state.Finished() && state.Meta.Tick-startTick < r.maxTicks {
		state = r.applyForcedEvents(state)

		next, consumed := r.engine.Tick(state, rng, r.commands)
		for _, driver := range consumed {
			delete(r.commands, driver)
		}
		state = next
	}

	if !state.Finished() {
		logrus.Warnf("scenario %s: tick cap %d reached before classification", r.scenario.ID, r.maxTicks)
	}
	return buildResult(r.scenario, state, startTick), nil
}

// applyForcedEvents fires every armed event whose trigger point the
// leader has reached. Each fires exactly once.
func (r *Runner) applyForcedEvents(state *sim.RaceState) *sim.RaceState {
	leader := state.Leader()
	if leader == nil {
		return state
	}
	for i := range r.scenario.ForcedEvents {
		if r.fired[i] {
			continue
		}
		ev := &r.scenario.ForcedEvents[i]
		reached := leader.Timing.Lap > ev.TriggerLap ||
			(leader.Timing.Lap == ev.TriggerLap && leader.Telemetry.LapProgress >= ev.TriggerProgress)
		if !reached {
			continue
		}
		r.fired[i] = true
		state = r.applyAction(state, ev)
	}
	return state
}

// applyAction produces a new state with the forced event applied. The
// input state is never mutated.
func (r *Runner) applyAction(state *sim.RaceState, ev *ForcedEvent) *sim.RaceState {
	next := *state
	next.Cars = append([]sim.Car(nil), state.Cars...)
	next.Events = append([]sim.Event(nil), state.Events...)

	tick := state.Meta.Tick
	lap := state.LeaderLap()
	logrus.Infof("scenario %s: forcing %s at lap %d", r.scenario.ID, ev.Action, lap)

	switch ev.Action {
	case ActionSafetyCar:
		next.RaceControl = sim.ControlSafetyCar
		deployLap := lap
		next.SCDeployLap = &deployLap
		next.DRSEnabled = false
		next.Events = append(next.Events, sim.Event{
			Tick: tick, Lap: lap, Type: sim.EventSafetyCar,
			Payload: sim.SafetyCarPayload{Cause: "race control"},
		})
	case ActionVSC:
		next.RaceControl = sim.ControlVSC
		next.DRSEnabled = false
		next.Events = append(next.Events, sim.Event{
			Tick: tick, Lap: lap, Type: sim.EventVirtualSafetyCar, Payload: sim.FlagPayload{},
		})
	case ActionRedFlag:
		next.RaceControl = sim.ControlRedFlag
		next.Events = append(next.Events, sim.Event{
			Tick: tick, Lap: lap, Type: sim.EventRedFlag, Payload: sim.FlagPayload{},
		})
	case ActionGreen:
		next.RaceControl = sim.ControlGreen
		next.SCDeployLap = nil
		next.DRSEnabled = true
		next.Events = append(next.Events, sim.Event{
			Tick: tick, Lap: lap, Type: sim.EventGreenFlag, Payload: sim.FlagPayload{},
		})
	case ActionRain:
		rain := ev.RainProbability
		if rain == 0 {
			rain = heavyRain
		}
		next.Track.Weather.RainProbability = rain
		next.Events = append(next.Events, sim.Event{
			Tick: tick, Lap: lap, Type: sim.EventWeatherChange,
			Payload: sim.WeatherChangePayload{RainProbability: rain, Started: true},
		})
	case ActionDry:
		next.Track.Weather.RainProbability = 0.0
		next.Events = append(next.Events, sim.Event{
			Tick: tick, Lap: lap, Type: sim.EventWeatherChange,
			Payload: sim.WeatherChangePayload{RainProbability: 0.0, Started: false},
		})
	case ActionPitDriver:
		// Delivered as a regular one-shot command so the pit still goes
		// through the normal window and execution path.
		if ev.TargetDriver != "" {
			r.commands[ev.TargetDriver] = sim.CommandBoxThisLap
		}
	default:
		logrus.Warnf("scenario %s: unknown forced action %q ignored", r.scenario.ID, ev.Action)
	}
	return &next
}

// buildResult summarizes the final state. Only events appended during
// the run are reported; the scenario's synthetic history is excluded.
func buildResult(sc *Scenario, state *sim.RaceState, startTick int64) *Result {
	cars := append([]sim.Car(nil), state.Cars...)
	sort.SliceStable(cars, func(i, j int) bool {
		return cars[i].Timing.Position < cars[j].Timing.Position
	})

	classification := make([]Classification, 0, len(cars))
	var dnfs []string
	for _, car := range cars {
		classification = append(classification, Classification{
			Position:    car.Timing.Position,
			Driver:      car.Identity.Driver,
			Team:        car.Identity.Team,
			Laps:        car.Timing.Lap,
			PitStops:    car.PitStops,
			BestLapTime: car.Timing.BestLapTime,
			GapToLeader: car.Timing.GapToLeader,
			Status:      car.Status,
		})
		if car.Status == sim.StatusDNF {
			dnfs = append(dnfs, car.Identity.Driver)
		}
	}

	var events []sim.Event
	overtakes, pitStops := 0, 0
	var fastest *FastestLap
	for _, ev := range state.Events {
		if ev.Tick <= startTick {
			continue
		}
		events = append(events, ev)
		switch ev.Type {
		case sim.EventOvertake:
			overtakes++
		case sim.EventPitStop:
			pitStops++
		case sim.EventFastestLap:
			if p, ok := ev.Payload.(sim.FastestLapPayload); ok {
				fastest = &FastestLap{Driver: ev.Driver, Time: p.Time}
			}
		}
	}

	return &Result{
		ScenarioID:     sc.ID,
		ScenarioName:   sc.Name,
		TotalTicks:     state.Meta.Tick - startTick,
		Classification: classification,
		Events:         events,
		TotalOvertakes: overtakes,
		TotalPitStops:  pitStops,
		DNFs:           dnfs,
		FastestLap:     fastest,
	}
}
