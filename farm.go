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

import "fmt"

// Farm is one livestock holding: its location, cached grid indices, SIR
// state for two host species, vector-abundance regression coefficients,
// control flags, and today's weather cache. Farms are created once by an
// external loader and never change identity, location, or topology
// thereafter; only the fields below evolve day to day.
type Farm struct {
	ID     int
	X, Y   float64
	County int

	// Row, Col index the temperature and rainfall grids.
	Row, Col int
	// MidgeRow, MidgeCol index the midge-density grid, which may have a
	// finer resolution than the temperature grid (see Grid.stride).
	MidgeRow, MidgeCol int

	// SCattle is the susceptible cattle count. ICattle is the Erlang
	// infectious chain, one entry per stage, oldest stage last. RCattle is
	// the recovered count. Counts are real-valued but represent whole
	// animals; stochastic updates use integer draws clamped to the
	// available count.
	SCattle  float64
	ICattle  []float64
	RCattle  float64
	SSheep   float64
	ISheep   []float64
	RSheep   float64

	// Vector-abundance regression coefficients, supplied by the external
	// loader and held fixed for the farm's lifetime.
	VIntercept float64
	SinYearly  float64
	CosYearly  float64
	Sin6m      float64
	Cos6m      float64
	Cos4m      float64
	TempEff    float64
	TempEffSq  float64
	// RainEff, WindEff are additional regression coefficients carried on
	// the original Farm struct alongside the harmonic/temperature terms.
	// The climate regressor in TransmitHostsToMidges only applies them
	// when the corresponding weather input is nonzero. Rain is read from
	// the rainfall grid by GetWeather; Wind is never set by this package.
	RainEff float64
	WindEff float64
	// Autocorr is the farm's fixed spatial-autocorrelation noise term,
	// part of the regression input rather than drawn per day.
	Autocorr float64

	// Control flags.
	Detected                   bool
	MovementBanned             bool
	ProtectionZone             bool
	SurveillanceZone           bool
	FreeArea                   bool
	EverBeenDetected           bool
	EverBeenInfected           bool
	FirstInfectedDueToMovement bool

	// LocalFarmIDs is populated lazily on this farm's first detection and
	// never cleared; see implementLocalBan. Replaces the source's
	// fixed-size static array with a dynamic list per the design note.
	LocalFarmIDs []int

	// Today's weather cache, refreshed by the weather-read step.
	Temp           float64
	Rain           float64
	Wind           float64
	Overdispersion float64

	// Force is the last-computed midge→host force of infection, cached
	// for diagnostics only; it carries no invariant.
	Force float64
}

// NewFarm constructs a Farm with Erlang chains of the given lengths and
// the given initial demography. numStagesCattle and numStagesSheep must be
// positive; this is the "configuration violation" fail-fast case of
// spec.md §7, checked once at construction rather than on every access.
func NewFarm(id int, x, y float64, county, row, col, midgeRow, midgeCol, numStagesCattle, numStagesSheep int) (*Farm, error) {
	if numStagesCattle <= 0 || numStagesSheep <= 0 {
		return nil, fmt.Errorf("vectra: farm %d: num stages must be positive, got cattle=%d sheep=%d", id, numStagesCattle, numStagesSheep)
	}
	return &Farm{
		ID:       id,
		X:        x,
		Y:        y,
		County:   county,
		Row:      row,
		Col:      col,
		MidgeRow: midgeRow,
		MidgeCol: midgeCol,
		ICattle:  make([]float64, numStagesCattle),
		ISheep:   make([]float64, numStagesSheep),
		FreeArea: true,
	}, nil
}

// NumInfCattle returns the total infectious cattle across all Erlang
// stages.
func (f *Farm) NumInfCattle() float64 {
	return sumStages(f.ICattle)
}

// NumInfSheep returns the total infectious sheep across all Erlang stages.
func (f *Farm) NumInfSheep() float64 {
	return sumStages(f.ISheep)
}

// NumCattle returns the farm's total cattle population (S + I + R).
func (f *Farm) NumCattle() float64 {
	return f.SCattle + f.NumInfCattle() + f.RCattle
}

// NumSheep returns the farm's total sheep population (S + I + R).
func (f *Farm) NumSheep() float64 {
	return f.SSheep + f.NumInfSheep() + f.RSheep
}

// EffNumAnimals returns the effective animal count used in force-of-
// infection calculations: cattle counted fully, sheep scaled by pref.
func (f *Farm) EffNumAnimals(pref float64) float64 {
	return f.NumCattle() + pref*f.NumSheep()
}

// EffNumInfAnimals returns the effective infectious animal count used in
// the host→midge climate regressor: infectious cattle counted fully,
// infectious sheep scaled by pref.
func (f *Farm) EffNumInfAnimals(pref float64) float64 {
	return f.NumInfCattle() + pref*f.NumInfSheep()
}

// distanceSquared returns the squared Euclidean distance between f and o,
// used by the control engine's radius classifications so no square root
// is taken on the hot path.
func (f *Farm) distanceSquared(o *Farm) float64 {
	dx := f.X - o.X
	dy := f.Y - o.Y
	return dx*dx + dy*dy
}

func sumStages(stages []float64) float64 {
	total := 0.0
	for _, v := range stages {
		total += v
	}
	return total
}

// withinRadius reports whether o lies within radius of f (inclusive),
// comparing squared distances to avoid a sqrt.
func (f *Farm) withinRadius(o *Farm, radius float64) bool {
	return f.distanceSquared(o) <= radius*radius
}
