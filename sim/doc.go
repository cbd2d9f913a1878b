// Package sim provides the deterministic race simulation core for
// apexsim.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - state.go: RaceState and the Car value model (the whole contract)
//   - physics.go: the pure per-tick formulas (speed, wear, DRS, ERS, ...)
//   - engine.go: Engine.Tick, the single state transition everything
//     else observes
//
// # Architecture
//
// The engine is a pure function over values: Tick(state, rng, commands)
// builds a fresh RaceState and never mutates its inputs. All randomness
// flows through one SeededRNG per race, drawn in a fixed roster order,
// so an identical (seed, command sequence) replays bit-for-bit. Tuning
// lives in Config (config.go) — no behavioral constant is embedded in
// engine code.
//
// Extension points:
//   - PitAdvisor: the injected pit-strategy capability (see
//     sim/advisor for the logistic implementation)
//   - Config: every probability, penalty and grip table, yaml-overridable
//
// Sub-packages:
//   - sim/advisor: coefficient-based pit advisor
//   - sim/scenario: scenario specs, forced events, catalog and runner
package sim
