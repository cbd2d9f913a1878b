package sim

// EventType identifies a race event. The set is closed: every event the
// engine emits carries one of these types and the payload shape that
// goes with it.
type EventType string

const (
	EventSafetyCar        EventType = "SAFETY_CAR"
	EventVirtualSafetyCar EventType = "VIRTUAL_SAFETY_CAR"
	EventRedFlag          EventType = "RED_FLAG"
	EventGreenFlag        EventType = "GREEN_FLAG"
	EventPitStop          EventType = "PIT_STOP"
	EventOvertake         EventType = "OVERTAKE"
	EventDNF              EventType = "DNF"
	EventFastestLap       EventType = "FASTEST_LAP"
	EventWeatherChange    EventType = "WEATHER_CHANGE"
	EventLapComplete      EventType = "LAP_COMPLETE"
)

// Event is one entry in the append-only chronological race log.
// Driver is empty for field-wide events (flags, weather).
type Event struct {
	Tick    int64        `json:"tick"`
	Lap     int          `json:"lap"`
	Type    EventType    `json:"type"`
	Driver  string       `json:"driver,omitempty"`
	Payload EventPayload `json:"payload,omitempty"`
}

// EventPayload is the statically-shaped record attached to an event.
// Each EventType has exactly one payload type.
type EventPayload interface {
	eventPayload()
}

// SafetyCarPayload names the incident that brought the safety car out.
type SafetyCarPayload struct {
	Cause string `json:"cause"`
}

// PitStopPayload records the outcome of a pit stop.
type PitStopPayload struct {
	Compound   TireCompound `json:"compound"`
	StopNumber int          `json:"stop_number"`
}

// DNFPayload records why a car retired.
type DNFPayload struct {
	Reason string `json:"reason"`
}

// OvertakePayload records a completed position change.
type OvertakePayload struct {
	Overtaker string `json:"overtaker"`
	Overtaken string `json:"overtaken"`
	Position  int    `json:"position"`
}

// FastestLapPayload carries the new overall fastest lap time in seconds.
type FastestLapPayload struct {
	Time float64 `json:"time"`
}

// WeatherChangePayload records a dry/wet transition. Started is true
// when rain crossed the wet threshold upward.
type WeatherChangePayload struct {
	RainProbability float64 `json:"rain_probability"`
	Started         bool    `json:"started"`
}

// LapCompletePayload is the per-lap telemetry snapshot emitted when a
// car crosses the line.
type LapCompletePayload struct {
	LapTime  float64      `json:"lap_time"` // seconds
	Compound TireCompound `json:"tire_compound"`
	TireWear float64      `json:"tire_wear"`
	Fuel     float64      `json:"fuel"`
}

// FlagPayload is the (empty) payload for flag transitions without extra
// data: VSC, red flag, green flag.
type FlagPayload struct{}

func (SafetyCarPayload) eventPayload()     {}
func (PitStopPayload) eventPayload()       {}
func (DNFPayload) eventPayload()           {}
func (OvertakePayload) eventPayload()      {}
func (FastestLapPayload) eventPayload()    {}
func (WeatherChangePayload) eventPayload() {}
func (LapCompletePayload) eventPayload()   {}
func (FlagPayload) eventPayload()          {}
