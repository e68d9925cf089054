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
	"testing"

	"github.com/vectra-sim/vectra/rng"
	"github.com/vectra-sim/vectra/vector"
)

// newTestGrid builds a small square midge grid with a uniform temperature
// and diffusion coefficient, with stride 1 so every midge cell has its own
// temperature reading.
func newTestGrid(t *testing.T, size, numEIP int, temp, diffusion float64) *Grid {
	t.Helper()
	diff := make([][]float64, size)
	tempGrid := make([][][]float64, size)
	rainGrid := make([][][]float64, size)
	for r := 0; r < size; r++ {
		diff[r] = make([]float64, size)
		tempGrid[r] = make([][]float64, size)
		rainGrid[r] = make([][]float64, size)
		for c := 0; c < size; c++ {
			diff[r][c] = diffusion
			tempGrid[r][c] = make([]float64, 365)
			rainGrid[r][c] = make([]float64, 365)
			for d := 0; d < 365; d++ {
				tempGrid[r][c][d] = temp
			}
		}
	}
	g, err := NewGrid(size, size, numEIP, 1, 1.0, diff, tempGrid, rainGrid)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}

// newTestFarm builds a single farm with the given initial populations, all
// susceptible, aligned to grid cell (row, col).
func newTestFarm(t *testing.T, id, row, col, numStagesCattle, numStagesSheep int, sCattle, sSheep float64) *Farm {
	t.Helper()
	f, err := NewFarm(id, float64(col), float64(row), 1, row, col, row, col, numStagesCattle, numStagesSheep)
	if err != nil {
		t.Fatalf("NewFarm: %v", err)
	}
	f.SCattle = sCattle
	f.SSheep = sSheep
	return f
}

func defaultEpi() EpiConfig {
	return EpiConfig{
		DetectionProbCattle: 0.01,
		DetectionProbSheep:  0.02,
		NumStagesCattle:     3,
		NumStagesSheep:      3,
		NumEIPStages:        4,
		PV:                  0.01,
		PH:                  0.01,
		RecoveryRateCattle:  0.1,
		RecoveryRateSheep:   0.1,
		PreferenceForSheep:  0.5,
		TransmissionScalar:  1.0,
	}
}

func defaultMove() MovementConfig {
	return MovementConfig{
		Cattle: MovementParams{K: 2, P: 0.5},
		Sheep:  MovementParams{K: 2, P: 0.5},
	}
}

// newTestState assembles a minimal State with the given farms over a small
// grid, no movement edges, and default control (no_control=true so tests
// that aren't exercising control don't trip it incidentally).
func newTestState(t *testing.T, farms []*Farm, seed uint64) *State {
	t.Helper()
	grid := newTestGrid(t, 5, 4, 20, 1.0)
	s, err := NewState(farms, grid, nil, SimulationConfig{Dt: 1.0, StartDayOfYear: 100},
		defaultEpi(), ControlConfig{NoControl: true}, defaultMove(),
		vector.Culicoides{}, rng.New(seed), nil)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	return s
}
