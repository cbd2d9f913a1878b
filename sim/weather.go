package sim

import "math"

// driftWeather performs one step of the bounded random walks: rain
// probability, temperature (biased downward while rain is rising) and
// wind, each clamped to its physical range.
//
// Consumes exactly three rng draws.
func driftWeather(cfg *WeatherConfig, w Weather, rng *SeededRNG) Weather {
	newRain := clamp(w.RainProbability+rng.Uniform(-cfg.RainDrift, cfg.RainDrift), 0.0, 1.0)

	tempTrend := cfg.DryTempBias
	if newRain > cfg.WetThreshold {
		tempTrend = cfg.RainRisingTempBias
	}
	tempChange := rng.Uniform(-cfg.TempDrift, cfg.TempDrift)
	if newRain > w.RainProbability {
		tempChange += tempTrend
	}
	newTemp := clamp(w.Temperature+tempChange, cfg.TempMin, cfg.TempMax)

	newWind := clamp(w.WindSpeed+rng.Uniform(-cfg.WindDrift, cfg.WindDrift), 0.0, cfg.WindMax)

	return Weather{
		RainProbability: newRain,
		Temperature:     newTemp,
		WindSpeed:       newWind,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
