// Package advisor implements sim.PitAdvisor with a logistic model over
// car timing and tire features. The weights are the trained pit model
// exported as plain coefficients, so the engine never depends on a
// model runtime artifact: loading a different coefficient file swaps
// the strategy brain without touching the simulation.
package advisor

import (
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/apexsim/apexsim/sim"
)

// featureCount is the fixed feature vector width: lap, position, tire
// age, tire wear, compound code, gap ahead, SC, VSC, pit stops, team
// code.
const featureCount = 10

// Coefficients is the exported model: one weight per feature, a bias,
// and the decision threshold on the sigmoid output.
type Coefficients struct {
	Weights   []float64 `yaml:"weights"`
	Bias      float64   `yaml:"bias"`
	Threshold float64   `yaml:"threshold"`
}

// DefaultCoefficients returns the built-in calibration. The threshold
// sits above the natural 0.5 to stay slightly conservative about early
// pitting.
func DefaultCoefficients() Coefficients {
	return Coefficients{
		Weights: []float64{
			0.02,  // lap
			-0.01, // position
			0.15,  // tire age
			6.5,   // tire wear
			0.05,  // compound code
			-0.04, // gap to car ahead
			1.2,   // safety car out
			0.8,   // virtual safety car
			-0.9,  // stops already made
			0.0,   // team code
		},
		Bias:      -4.5,
		Threshold: 0.65,
	}
}

// LoadCoefficients reads a coefficient file. Callers treat any error as
// "run without an advisor" — the engine's decision chain fails open to
// heuristics.
func LoadCoefficients(path string) (Coefficients, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Coefficients{}, fmt.Errorf("reading advisor coefficients: %w", err)
	}
	var c Coefficients
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Coefficients{}, fmt.Errorf("parsing advisor coefficients: %w", err)
	}
	if len(c.Weights) != featureCount {
		return Coefficients{}, fmt.Errorf("advisor coefficients: want %d weights, got %d", featureCount, len(c.Weights))
	}
	return c, nil
}

// Logistic is the coefficient-backed advisor. Stateless after
// construction and side-effect free, as sim.PitAdvisor requires.
type Logistic struct {
	coeffs    Coefficients
	teamCodes map[string]float64
	tireCodes map[sim.TireCompound]float64
}

// NewLogistic builds an advisor from coefficients. Team and compound
// codes use the same sorted-name encoding the model was trained with.
func NewLogistic(coeffs Coefficients) (*Logistic, error) {
	if len(coeffs.Weights) != featureCount {
		return nil, fmt.Errorf("advisor: want %d weights, got %d", featureCount, len(coeffs.Weights))
	}
	if coeffs.Threshold <= 0 || coeffs.Threshold >= 1 {
		return nil, fmt.Errorf("advisor: threshold must be in (0,1), got %g", coeffs.Threshold)
	}
	return &Logistic{
		coeffs:    coeffs,
		teamCodes: codesFor(teamNames()),
		tireCodes: tireCodesSorted(),
	}, nil
}

// Advise implements sim.PitAdvisor.
func (l *Logistic) Advise(car sim.Car, scActive, vscActive bool) bool {
	gapAhead := 0.0
	if car.Timing.Interval != nil {
		gapAhead = *car.Timing.Interval
	}

	teamCode, ok := l.teamCodes[car.Identity.Team]
	if !ok {
		teamCode = -1
	}
	tireCode, ok := l.tireCodes[car.Telemetry.Tire.Compound]
	if !ok {
		tireCode = -1
	}

	features := [featureCount]float64{
		float64(car.Timing.Lap),
		float64(car.Timing.Position),
		float64(car.Telemetry.Tire.Age),
		car.Telemetry.Tire.Wear,
		tireCode,
		gapAhead,
		boolFeature(scActive),
		boolFeature(vscActive),
		float64(car.PitStops),
		teamCode,
	}

	z := l.coeffs.Bias
	for i, w := range l.coeffs.Weights {
		z += w * features[i]
	}
	probability := 1.0 / (1.0 + math.Exp(-z))
	return probability > l.coeffs.Threshold
}

func boolFeature(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

func teamNames() []string {
	seen := map[string]bool{}
	var names []string
	for _, entry := range sim.Roster {
		if !seen[entry.Team] {
			seen[entry.Team] = true
			names = append(names, entry.Team)
		}
	}
	return names
}

func codesFor(names []string) map[string]float64 {
	sort.Strings(names)
	codes := make(map[string]float64, len(names))
	for i, name := range names {
		codes[name] = float64(i)
	}
	return codes
}

func tireCodesSorted() map[sim.TireCompound]float64 {
	compounds := []string{
		string(sim.CompoundSoft),
		string(sim.CompoundMedium),
		string(sim.CompoundHard),
		string(sim.CompoundIntermediate),
		string(sim.CompoundWet),
	}
	sort.Strings(compounds)
	codes := make(map[sim.TireCompound]float64, len(compounds))
	for i, name := range compounds {
		codes[sim.TireCompound(name)] = float64(i)
	}
	return codes
}
