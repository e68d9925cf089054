/*
Copyright © 2024 the VECTRA authors.
This file is part of VECTRA.

VECTRA is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

VECTRA is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with VECTRA.  If not, see <http://www.gnu.org/licenses/>.
*/

package vectra

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/vectra-sim/vectra/rng"
)

// dtFarm is the sub-day step for the deaths/recoveries/detection loop.
// SimulationConfig.DtFarm is carried on the config surface per spec.md §6 but the
// original core hard-codes this value (spec.md §9, Open Question 1); this
// module preserves that and logs the discrepancy once instead of silently
// ignoring a config field that looks load-bearing.
const dtFarm = 0.1

// sheepMortRate is the daily per-animal sheep mortality rate. EpiConfig.
// SheepMortRate is carried on the config surface but the original core
// hard-codes this value (spec.md §9, Open Question 2); preserved as-is.
const sheepMortRate = 0.0055

// overdispersionScale is the fixed multiplier applied to a standard normal
// draw to produce the farm's daily overdispersion term, per spec.md §4.6.
const overdispersionScale = 1.08 + 0.3763

// GetWeather copies today's temperature and rainfall into the farm's
// weather cache and draws a fresh overdispersion term. Grounded on
// original_source/src/farm_epi.c's farm_get_weather.
func (f *Farm) GetWeather(grid *Grid, dayOfYear int, generator *rng.Generator) {
	f.Temp = grid.temp[f.Row][f.Col][dayOfYear]
	f.Rain = grid.rain[f.Row][f.Col][dayOfYear]
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: generator.Source()}
	f.Overdispersion = overdispersionScale * normal.Rand()
}

// DeathsAndRecoveries runs the sub-day Erlang recovery/mortality loop for
// both species (cattle has no mortality) and the once-per-day passive
// detection check, in the order given in spec.md §4.6. Any detection
// trigger sets f.Detected, increments today's counter, and invokes the
// control engine. Grounded on
// original_source/src/farm_epi.c's farm_deaths_and_recoveries.
func (f *Farm) DeathsAndRecoveries(s *State) {
	if !s.dtFarmWarned && s.Sim.DtFarm != 0 && s.Sim.DtFarm != dtFarm {
		s.dtFarmWarned = true
		if s.Log != nil {
			s.Log.WithField("configured_dt_farm", s.Sim.DtFarm).
				Warn("SimulationConfig.DtFarm is ignored; the core uses the hard-coded 0.1 sub-day step")
		}
	}

	if f.NumInfSheep() > 0 {
		f.sheepRecoveryAndMortality(s)
	}
	if f.NumInfCattle() > 0 {
		f.cattleRecovery(s)
	}
	f.passiveDetection(s)
}

func (f *Farm) sheepRecoveryAndMortality(s *State) {
	stages := float64(len(f.ISheep))
	last := len(f.ISheep) - 1
	for t := 0.0; t < 1.0; t += dtFarm {
		x := minInt(s.RNG.Poisson(dtFarm*stages*s.Epi.RecoveryRateSheep*f.ISheep[last]), int(f.ISheep[last]))
		f.ISheep[last] -= float64(x)
		f.RSheep += float64(x)

		x = minInt(s.RNG.Poisson(dtFarm*sheepMortRate*f.ISheep[last]), int(f.ISheep[last]))
		if x > 0 {
			f.triggerDetection(s)
		}
		f.ISheep[last] -= float64(x)
		s.SheepDeathsToday += x

		for n := last - 1; n >= 0; n-- {
			x := minInt(s.RNG.Poisson(dtFarm*stages*s.Epi.RecoveryRateSheep*f.ISheep[n]), int(f.ISheep[n]))
			f.ISheep[n] -= float64(x)
			f.ISheep[n+1] += float64(x)

			x = minInt(s.RNG.Poisson(dtFarm*sheepMortRate*f.ISheep[n]), int(f.ISheep[n]))
			if x > 0 {
				f.triggerDetection(s)
			}
			f.ISheep[n] -= float64(x)
			s.SheepDeathsToday += x
		}
	}
}

func (f *Farm) cattleRecovery(s *State) {
	stages := float64(len(f.ICattle))
	last := len(f.ICattle) - 1
	for t := 0.0; t < 1.0; t += dtFarm {
		x := minInt(s.RNG.Poisson(dtFarm*stages*s.Epi.RecoveryRateCattle*f.ICattle[last]), int(f.ICattle[last]))
		f.ICattle[last] -= float64(x)
		f.RCattle += float64(x)

		for n := last - 1; n >= 0; n-- {
			x := minInt(s.RNG.Poisson(dtFarm*stages*s.Epi.RecoveryRateCattle*f.ICattle[n]), int(f.ICattle[n]))
			f.ICattle[n] -= float64(x)
			f.ICattle[n+1] += float64(x)
		}
	}
}

// passiveDetection is the once-per-day check evaluated for any farm not
// already detected in the sub-day mortality loop above. The probability
// of at least one detection today is computed via the log-space identity
// 1 - exp(c*log(1-p_c) + s*log(1-p_s)) to avoid underflow for large c, s.
func (f *Farm) passiveDetection(s *State) {
	if f.Detected {
		return
	}
	c := f.NumInfCattle()
	sh := f.NumInfSheep()
	if c+sh <= 0 {
		return
	}
	notDetected := math.Exp(c*math.Log(1-s.Epi.DetectionProbCattle) + sh*math.Log(1-s.Epi.DetectionProbSheep))
	if s.RNG.Uniform() <= 1-notDetected {
		f.triggerDetection(s)
	}
}

// triggerDetection applies the common side effects of any detection event:
// marking the farm detected, incrementing today's counter, invoking the
// control engine's farm-level ban (unless NoFarmBan), and recording the
// run's first detection. When NoControl is set only the first two happen:
// no ban is applied and BTVObserved/FirstDetectedFarmID are not set.
func (f *Farm) triggerDetection(s *State) {
	if f.Detected {
		return
	}
	f.Detected = true
	s.DetectionsToday++
	f.EverBeenInfected = true

	if !s.Control.NoControl {
		if !s.Control.NoFarmBan {
			f.MovementBanned = true
			f.FreeArea = false
		}
		s.implementLocalBan(f)
		if !s.BTVObserved {
			s.BTVObserved = true
			s.FirstDetectedFarmID = f.ID
		}
	}
}

// TransmitMidgesToHosts computes the local force of infection from the
// infectious midge density at this farm's cell and draws new sheep/cattle
// infections. Grounded on
// original_source/src/farm_epi.c's farm_transmission_midges_to_hosts.
func (f *Farm) TransmitMidgesToHosts(s *State) {
	const relLocalWeight = 1.0

	bitingProb := 1 - expNeg(s.Profile.BitingRate(f.Temp))
	infDensity := s.Grid.Infectious(f.MidgeRow, f.MidgeCol)
	force := relLocalWeight * infDensity * bitingProb
	f.Force = force

	effN := f.EffNumAnimals(s.Epi.PreferenceForSheep)
	if effN < 1 {
		return
	}

	probBiteSheep := s.Epi.PreferenceForSheep / effN
	probBiteCattle := 1 / effN
	probInfSheep := 1 - expNeg(force*probBiteSheep*s.Epi.PH)
	probInfCattle := 1 - expNeg(force*probBiteCattle*s.Epi.PH)

	a := drawNewInfections(s.RNG, f.SSheep, probInfSheep)
	b := drawNewInfections(s.RNG, f.SCattle, probInfCattle)

	f.SSheep -= float64(a)
	f.ISheep[0] += float64(a)
	s.NewInfectionsSheep += a

	f.SCattle -= float64(b)
	f.ICattle[0] += float64(b)
	s.NewInfectionsCattle += b
}

// drawNewInfections draws the number of newly infected animals out of a
// susceptible pool n at per-animal probability p, using the Poisson
// approximation when n is large and p is small (per spec.md §4.6) to avoid
// an expensive exact binomial draw, and the exact binomial otherwise.
func drawNewInfections(generator *rng.Generator, n, p float64) int {
	if n > 100 && p < 0.01 && n*p < 20 {
		return minInt(generator.Poisson(n*p), int(n))
	}
	return generator.Binomial(int(n), p)
}

// TransmitHostsToMidges seeds the latent midge field from this farm's
// infectious hosts, active only within the active season (day-of-year in
// (60, 330)). Grounded on
// original_source/src/farm_epi.c's farm_transmission_hosts_to_midges.
func (f *Farm) TransmitHostsToMidges(s *State) {
	if s.DayOfYear <= 60 || s.DayOfYear >= 330 {
		return
	}

	d := float64(s.SimulationDay)
	climate := f.VIntercept
	climate += f.SinYearly*math.Sin(2*math.Pi*d/365.25) + f.CosYearly*math.Cos(2*math.Pi*d/365.25)
	climate += f.Sin6m*math.Sin(4*math.Pi*d/365.25) + f.Cos6m*math.Cos(4*math.Pi*d/365.25)
	climate += f.Cos4m * math.Cos(6*math.Pi*d/365.25)
	climate += f.TempEff*f.Temp + f.TempEffSq*f.Temp*f.Temp
	if f.Rain != 0 {
		climate += f.RainEff * f.Rain
	}
	if f.Wind != 0 {
		climate += f.WindEff * f.Wind
	}
	climate += f.Overdispersion + f.Autocorr

	bitesPerAnimal := s.Epi.TransmissionScalar * math.Exp(climate)
	if bitesPerAnimal > 5000 {
		bitesPerAnimal = 5000
	}

	effInf := f.EffNumInfAnimals(s.Epi.PreferenceForSheep)
	newLatent := s.Epi.PV * effInf * bitesPerAnimal
	s.Grid.AddLatent(f.MidgeRow, f.MidgeCol, newLatent)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
