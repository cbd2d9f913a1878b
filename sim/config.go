package sim

// Tick granularity. One engine call advances exactly one tick.
const (
	TickMillis  = 100
	TickSeconds = 0.1
)

// PhysicsConfig groups the per-tick speed model tuning. Every value is
// calibration, not physical law; the defaults reproduce the reference
// tuning and a yaml file can override any field.
type PhysicsConfig struct {
	BaseSpeed       map[SectorType]float64 `yaml:"base_speed"`        // km/h per sector type
	SkillBaseline   float64                `yaml:"skill_baseline"`    // skill at which the bonus is zero
	SkillBonusScale float64                `yaml:"skill_bonus_scale"` // km/h per unit of skill above baseline

	ModeSpeedFactor map[DrivingMode]float64 `yaml:"mode_speed_factor"`

	LightRainThreshold float64                  `yaml:"light_rain_threshold"`
	HeavyRainThreshold float64                  `yaml:"heavy_rain_threshold"`
	LightRainGrip      float64                  `yaml:"light_rain_grip"`
	HeavyRainGrip      float64                  `yaml:"heavy_rain_grip"`
	WetGrip            map[TireCompound]float64 `yaml:"wet_grip"` // applied when rain >= light threshold

	TireWearSpeedPenalty   float64 `yaml:"tire_wear_speed_penalty"`   // km/h lost at 100% wear
	FuelWeightSpeedPenalty float64 `yaml:"fuel_weight_speed_penalty"` // km/h lost per kg
	SpeedVariance          float64 `yaml:"speed_variance"`            // +/- fraction per tick
	MinSpeed               float64 `yaml:"min_speed"`                 // km/h floor
	MinGapSpeed            float64 `yaml:"min_gap_speed"`             // km/h floor for gap conversion

	DRSGapSeconds float64 `yaml:"drs_gap_seconds"`
	DRSMaxRain    float64 `yaml:"drs_max_rain"`
	DRSBoost      float64 `yaml:"drs_boost"` // km/h

	SlipstreamWindow       float64                `yaml:"slipstream_window"`    // seconds
	SlipstreamMaxBoost     float64                `yaml:"slipstream_max_boost"` // km/h
	SlipstreamSectorFactor map[SectorType]float64 `yaml:"slipstream_sector_factor"`

	ERSMaxBattery  float64 `yaml:"ers_max_battery"`  // MJ
	ERSHarvestRate float64 `yaml:"ers_harvest_rate"` // MJ per tick in slow sectors
	ERSDeployBoost float64 `yaml:"ers_deploy_boost"` // km/h
	ERSDeployDrain float64 `yaml:"ers_deploy_drain"` // MJ per tick
	ERSMinDeploy   float64 `yaml:"ers_min_deploy"`   // battery floor for deployment

	DirtyAirRange        float64                `yaml:"dirty_air_range"`       // seconds
	DirtyAirMaxPenalty   float64                `yaml:"dirty_air_max_penalty"` // fraction of speed
	DirtyAirSectorWeight map[SectorType]float64 `yaml:"dirty_air_sector_weight"`

	BlueFlagPenalty float64 `yaml:"blue_flag_penalty"` // fractional speed cut for lapped cars
}

// TireConfig groups tire wear and fuel burn tuning.
type TireConfig struct {
	WearRates        map[TireCompound]float64 `yaml:"wear_rates"` // per tick
	WearVarianceMin  float64                  `yaml:"wear_variance_min"`
	WearVarianceMax  float64                  `yaml:"wear_variance_max"`
	ModeWearFactor   map[DrivingMode]float64  `yaml:"mode_wear_factor"`
	WornThreshold    float64                  `yaml:"worn_threshold"`    // wear above which degradation accelerates
	WornAcceleration float64                  `yaml:"worn_acceleration"` // multiplier past the threshold
	FuelPerTick      float64                  `yaml:"fuel_per_tick"`     // kg
	ModeFuelFactor   map[DrivingMode]float64  `yaml:"mode_fuel_factor"`
}

// FailureConfig groups the per-tick DNF draws.
type FailureConfig struct {
	MechanicalProbability     float64 `yaml:"mechanical_probability"`
	CrashProbability          float64 `yaml:"crash_probability"`
	CrashProbabilityWornTires float64 `yaml:"crash_probability_worn_tires"`
	WornTireThreshold         float64 `yaml:"worn_tire_threshold"`
	SafetyCarEscalation       float64 `yaml:"safety_car_escalation"` // p(DNF brings out the SC)
}

// SafetyCarConfig groups race-control effects.
type SafetyCarConfig struct {
	SpeedCap          float64 `yaml:"speed_cap"`     // km/h under the safety car
	LapsDuration      int     `yaml:"laps_duration"` // leader laps before SC in
	VSCSpeedReduction float64 `yaml:"vsc_speed_reduction"`
}

// WeatherConfig groups the bounded random walks weather performs.
type WeatherConfig struct {
	DriftChance        float64 `yaml:"drift_chance"` // per tick
	RainDrift          float64 `yaml:"rain_drift"`
	TempDrift          float64 `yaml:"temp_drift"`
	WindDrift          float64 `yaml:"wind_drift"`
	WetThreshold       float64 `yaml:"wet_threshold"` // rain level that flips dry/wet
	RainRisingTempBias float64 `yaml:"rain_rising_temp_bias"`
	DryTempBias        float64 `yaml:"dry_temp_bias"`
	TempMin            float64 `yaml:"temp_min"`
	TempMax            float64 `yaml:"temp_max"`
	WindMax            float64 `yaml:"wind_max"`
}

// PitConfig groups pit decision and execution tuning.
type PitConfig struct {
	WindowProgress       float64                       `yaml:"window_progress"` // decision only below this lap progress
	WearCeiling          float64                       `yaml:"wear_ceiling"`    // unconditional pit above this
	DefendWearThreshold  float64                       `yaml:"defend_wear_threshold"`
	DefendRivalGap       float64                       `yaml:"defend_rival_gap"` // seconds
	DefendRivalFreshWear float64                       `yaml:"defend_rival_fresh_wear"`
	DefendProbability    float64                       `yaml:"defend_probability"`
	PenaltyMin           float64                       `yaml:"penalty_min"` // lap progress lost
	PenaltyMax           float64                       `yaml:"penalty_max"`
	SCPenaltyFactor      float64                       `yaml:"sc_penalty_factor"` // relative loss under SC/VSC
	PitLaneSpeed         float64                       `yaml:"pit_lane_speed"`    // km/h out of the box
	Ladder               map[TireCompound]TireCompound `yaml:"ladder"`
}

// StrategyConfig groups the driving-mode heuristics used when the team
// wall has not issued an explicit command.
type StrategyConfig struct {
	ConserveWear    float64 `yaml:"conserve_wear"` // wear above which the car lifts
	ConserveFuel    float64 `yaml:"conserve_fuel"` // kg below which the car lifts
	AttackGap       float64 `yaml:"attack_gap"`    // close enough to push for the pass
	AttackBattery   float64 `yaml:"attack_battery"`
	FreeAirGap      float64 `yaml:"free_air_gap"` // far enough ahead-of-gap to push freely
	FreeAirMaxWear  float64 `yaml:"free_air_max_wear"`
}

// Config is the complete tuning surface of the engine. DefaultConfig
// reproduces the reference calibration; see cmd's --config for yaml
// overrides.
type Config struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Tires     TireConfig      `yaml:"tires"`
	Failures  FailureConfig   `yaml:"failures"`
	SafetyCar SafetyCarConfig `yaml:"safety_car"`
	Weather   WeatherConfig   `yaml:"weather"`
	Pit       PitConfig       `yaml:"pit"`
	Strategy  StrategyConfig  `yaml:"strategy"`
}

// DefaultConfig returns the reference tuning, calibrated for roughly
// 1000 ticks per lap on a 5-6 km circuit.
func DefaultConfig() *Config {
	return &Config{
		Physics: PhysicsConfig{
			BaseSpeed: map[SectorType]float64{
				SectorSlow:   120,
				SectorMedium: 180,
				SectorFast:   280,
			},
			SkillBaseline:   0.90,
			SkillBonusScale: 100,
			ModeSpeedFactor: map[DrivingMode]float64{
				ModePush:     1.03,
				ModeBalanced: 1.0,
				ModeConserve: 0.95,
			},
			LightRainThreshold: 0.3,
			HeavyRainThreshold: 0.6,
			LightRainGrip:      0.85,
			HeavyRainGrip:      0.70,
			WetGrip: map[TireCompound]float64{
				CompoundSoft:         0.85,
				CompoundMedium:       0.88,
				CompoundHard:         0.90,
				CompoundIntermediate: 1.05,
				CompoundWet:          1.12,
			},
			TireWearSpeedPenalty:   50,
			FuelWeightSpeedPenalty: 0.03,
			SpeedVariance:          0.02,
			MinSpeed:               50,
			MinGapSpeed:            100,
			DRSGapSeconds:          1.0,
			DRSMaxRain:             0.3,
			DRSBoost:               15,
			SlipstreamWindow:       1.0,
			SlipstreamMaxBoost:     12,
			SlipstreamSectorFactor: map[SectorType]float64{
				SectorFast:   1.0,
				SectorMedium: 0.6,
				SectorSlow:   0.3,
			},
			ERSMaxBattery:      4.0,
			ERSHarvestRate:     0.02,
			ERSDeployBoost:     20,
			ERSDeployDrain:     0.03,
			ERSMinDeploy:       0.1,
			DirtyAirRange:      2.0,
			DirtyAirMaxPenalty: 0.15,
			DirtyAirSectorWeight: map[SectorType]float64{
				SectorSlow:   1.0,
				SectorMedium: 0.8,
				SectorFast:   0.0,
			},
			BlueFlagPenalty: 0.10,
		},
		Tires: TireConfig{
			WearRates: map[TireCompound]float64{
				CompoundSoft:         0.00002,
				CompoundMedium:       0.00001,
				CompoundHard:         0.000005,
				CompoundIntermediate: 0.000015,
				CompoundWet:          0.00001,
			},
			WearVarianceMin: 0.8,
			WearVarianceMax: 1.2,
			ModeWearFactor: map[DrivingMode]float64{
				ModePush:     1.25,
				ModeBalanced: 1.0,
				ModeConserve: 0.70,
			},
			WornThreshold:    0.5,
			WornAcceleration: 1.5,
			FuelPerTick:      0.005,
			ModeFuelFactor: map[DrivingMode]float64{
				ModePush:     1.15,
				ModeBalanced: 1.0,
				ModeConserve: 0.80,
			},
		},
		Failures: FailureConfig{
			MechanicalProbability:     0.000005,
			CrashProbability:          0.000003,
			CrashProbabilityWornTires: 0.00001,
			WornTireThreshold:         0.8,
			SafetyCarEscalation:       0.3,
		},
		SafetyCar: SafetyCarConfig{
			SpeedCap:          60,
			LapsDuration:      3,
			VSCSpeedReduction: 0.40,
		},
		Weather: WeatherConfig{
			DriftChance:        0.10,
			RainDrift:          0.002,
			TempDrift:          0.05,
			WindDrift:          0.1,
			WetThreshold:       0.2,
			RainRisingTempBias: -0.05,
			DryTempBias:        0.01,
			TempMin:            5.0,
			TempMax:            45.0,
			WindMax:            30.0,
		},
		Pit: PitConfig{
			WindowProgress:       0.05,
			WearCeiling:          0.85,
			DefendWearThreshold:  0.40,
			DefendRivalGap:       3.0,
			DefendRivalFreshWear: 0.02,
			DefendProbability:    0.90,
			PenaltyMin:           0.022,
			PenaltyMax:           0.028,
			SCPenaltyFactor:      0.5,
			PitLaneSpeed:         60,
			Ladder: map[TireCompound]TireCompound{
				CompoundSoft:         CompoundMedium,
				CompoundMedium:       CompoundHard,
				CompoundHard:         CompoundMedium,
				CompoundIntermediate: CompoundMedium,
				CompoundWet:          CompoundMedium,
			},
		},
		Strategy: StrategyConfig{
			ConserveWear:   0.70,
			ConserveFuel:   5.0,
			AttackGap:      1.0,
			AttackBattery:  2.0,
			FreeAirGap:     3.0,
			FreeAirMaxWear: 0.3,
		},
	}
}
