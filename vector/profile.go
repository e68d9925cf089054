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

// Package vector holds temperature-dependent rate functions for the biting
// midge species that transmit Bluetongue virus between farms. A Profile is
// selected once per simulation run and called, never branched on, so that
// adding a new vector only requires implementing the three methods below.
package vector

import "math"

// Profile is the capability set a vector species must provide: its
// per-day biting rate, mortality rate, and extrinsic-incubation progression
// rate, each as a pure function of temperature in degrees Celsius.
type Profile interface {
	// BitingRate returns the expected number of bites per animal per day
	// at temperature T.
	BitingRate(T float64) float64
	// MortalityRate returns the instantaneous daily mortality rate at
	// temperature T.
	MortalityRate(T float64) float64
	// IncubationRate returns the extrinsic-incubation progression rate
	// (stages per day) at temperature T.
	IncubationRate(T float64) float64
	// Name identifies the species, for logging.
	Name() string
}

// Culicoides is the default VECTRA vector profile, fit to Culicoides
// biting midges, the principal BTV vector in Europe.
type Culicoides struct{}

// BitingRate implements Profile.
func (Culicoides) BitingRate(T float64) float64 {
	if T > 3.7 && T < 41.9 {
		return 0.0002 * T * (T - 3.7) * math.Pow(41.9-T, 0.37)
	}
	return 0
}

// MortalityRate implements Profile.
func (Culicoides) MortalityRate(T float64) float64 {
	if T > -2 {
		return 0.009 * math.Exp(0.16*T)
	}
	return 100
}

// IncubationRate implements Profile.
func (Culicoides) IncubationRate(T float64) float64 {
	rate := 0.018 * (T - 13.4)
	if rate > 0 {
		return rate
	}
	return 0
}

// Name implements Profile.
func (Culicoides) Name() string { return "Culicoides" }
