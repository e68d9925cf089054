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
	"fmt"
	"math"

	"github.com/vectra-sim/vectra/rng"
	"github.com/vectra-sim/vectra/vector"
)

// inactiveDensity is the threshold below which a midge density is treated
// as inactive: it neither diffuses nor contributes flux.
const inactiveDensity = 1e-5

// Grid holds the dense spatial fields the midge-dynamics phase mutates
// each day, plus the read-only weather rasters it reads from. Dimensions
// are fixed at construction; the algorithms below only require the grid to
// have interior cells, never a specific size.
type Grid struct {
	rows, cols int
	numEIP     int

	// latent[row][col][stage] is the latent (incubating) midge density at
	// each EIP stage. inf[row][col] is the infectious midge density.
	latent [][][]float64
	inf    [][]float64

	// diffusion[row][col] is the per-cell diffusion coefficient D.
	diffusion [][]float64
	// scratch is the double-buffer accumulator folded back after each
	// diffusion sub-step; it is zero before and after every sub-step.
	scratch [][]float64

	// cellWidth is h in the diffusion flux term D*dt*rho/h^2.
	cellWidth float64

	// temp[row][col][doy] and rain[row][col][doy] are read-only daily
	// weather rasters indexed by day-of-year, at the coarser temperature
	// grid resolution. stride is midgeGridWidth/tempGridWidth, the block
	// size of midge cells sharing one temperature reading.
	temp   [][][]float64
	rain   [][][]float64
	stride int
}

// NewGrid constructs a Grid of the given midge-grid dimensions, with the
// given temperature/rainfall grid stride and cell width. diffusion, temp
// and rain are taken by reference; the caller (an external loader) owns
// their initial population. Returns an error if the dimensions can't have
// interior cells, if numEIP or stride is not positive, or if diffusion's
// shape is not rows x cols — a "configuration violation" per spec.md §7,
// checked once here rather than guarded on every access. The shapes of
// temp and rain are not checked.
func NewGrid(rows, cols, numEIP, stride int, cellWidth float64, diffusion [][]float64, temp, rain [][][]float64) (*Grid, error) {
	if rows < 3 || cols < 3 {
		return nil, fmt.Errorf("vectra: grid must have interior cells, got %dx%d", rows, cols)
	}
	if numEIP <= 0 {
		return nil, fmt.Errorf("vectra: numEIP must be positive, got %d", numEIP)
	}
	if stride <= 0 {
		return nil, fmt.Errorf("vectra: stride must be positive, got %d", stride)
	}
	if len(diffusion) != rows {
		return nil, fmt.Errorf("vectra: diffusion grid has %d rows, want %d", len(diffusion), rows)
	}
	for r, row := range diffusion {
		if len(row) != cols {
			return nil, fmt.Errorf("vectra: diffusion grid row %d has %d cols, want %d", r, len(row), cols)
		}
	}
	g := &Grid{
		rows:      rows,
		cols:      cols,
		numEIP:    numEIP,
		cellWidth: cellWidth,
		stride:    stride,
		diffusion: diffusion,
		temp:      temp,
		rain:      rain,
	}
	g.latent = make([][][]float64, rows)
	g.inf = make([][]float64, rows)
	g.scratch = make([][]float64, rows)
	for r := 0; r < rows; r++ {
		g.inf[r] = make([]float64, cols)
		g.scratch[r] = make([]float64, cols)
		g.latent[r] = make([][]float64, cols)
		for c := 0; c < cols; c++ {
			g.latent[r][c] = make([]float64, numEIP)
		}
	}
	return g, nil
}

// Rows, Cols report the midge-grid dimensions.
func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// Infectious returns the infectious midge density at (row, col).
func (g *Grid) Infectious(row, col int) float64 { return g.inf[row][col] }

// SetInfectious sets the infectious midge density at (row, col), for
// seeding the initial infectious distribution.
func (g *Grid) SetInfectious(row, col int, v float64) { g.inf[row][col] = v }

// Latent returns the latent midge density at (row, col, stage).
func (g *Grid) Latent(row, col, stage int) float64 { return g.latent[row][col][stage] }

// AddLatent adds delta to the latent midge density at (row, col, stage=0),
// the deposit point for newly infected midges from host→midge
// transmission.
func (g *Grid) AddLatent(row, col int, delta float64) {
	g.latent[row][col][0] += delta
}

// Temperature returns today's temperature at the temperature-grid cell
// aligned to (row, col) for the given day-of-year.
func (g *Grid) Temperature(row, col, dayOfYear int) float64 {
	tr, tc := row/g.stride, col/g.stride
	return g.temp[tr][tc][dayOfYear]
}

// Rainfall returns today's rainfall at the temperature-grid cell aligned
// to (row, col) for the given day-of-year.
func (g *Grid) Rainfall(row, col, dayOfYear int) float64 {
	tr, tc := row/g.stride, col/g.stride
	return g.rain[tr][tc][dayOfYear]
}

// MortalityAndEIP applies temperature-driven mortality and EIP progression
// in place, for the given day-of-year, using profile's mortality and
// incubation rate functions. The outer loop strides by the temperature/
// midge grid ratio and reads only the top-left temperature cell of each
// aligned block; midge cells the stride skips over are left untouched.
// This mirrors the source exactly rather than broadcasting temperature to
// every cell in a block.
func (g *Grid) MortalityAndEIP(dayOfYear int, profile vector.Profile) {
	tempRows := len(g.temp)
	tempCols := len(g.temp[0])
	for ti := 0; ti < tempRows; ti++ {
		for tj := 0; tj < tempCols; tj++ {
			i, j := ti*g.stride, tj*g.stride
			if i >= g.rows || j >= g.cols {
				continue
			}
			T := g.temp[ti][tj][dayOfYear]
			sigma := expNeg(profile.MortalityRate(T))
			iota := float64(g.numEIP) * profile.IncubationRate(T)

			g.inf[i][j] *= sigma
			for s := 0; s < g.numEIP; s++ {
				g.latent[i][j][s] *= sigma
			}

			if iota <= 0 {
				continue
			}
			total := sumStages(g.latent[i][j])
			if total <= 0 {
				continue
			}
			newLatent := make([]float64, g.numEIP)
			deltaInf := 0.0
			for n := 0; n < g.numEIP; n++ {
				for k := 0; k <= n; k++ {
					newLatent[n] += g.latent[i][j][k] * rng.PoissonPMF(n-k, iota)
				}
			}
			for k := 0; k < g.numEIP; k++ {
				deltaInf += g.latent[i][j][k] * rng.PoissonSurvival(g.numEIP-k-1, iota)
			}
			copy(g.latent[i][j], newLatent)
			g.inf[i][j] += deltaInf
		}
	}
}

// DiffuseForDay runs explicit-Euler 2-D diffusion in sub-steps of size dt
// until the elapsed time reaches one day, for every latent stage in order
// and then the infectious field. Boundary cells are absorbing: they never
// contribute flux, so mass deposited into them by interior neighbours stays
// there.
func (g *Grid) DiffuseForDay(dt float64) {
	for s := 0; s < g.numEIP; s++ {
		stage := s
		g.diffuseField(dt,
			func(r, c int) float64 { return g.latent[r][c][stage] },
			func(r, c int, v float64) { g.latent[r][c][stage] = v })
	}
	g.diffuseField(dt,
		func(r, c int) float64 { return g.inf[r][c] },
		func(r, c int, v float64) { g.inf[r][c] = v })
}

// diffuseField runs one field (get/set pair) through explicit-Euler
// sub-steps of size dt until the elapsed time reaches one day. Interior
// cells exchange flux with their four orthogonal neighbours through the
// scratch grid; boundary cells receive flux from interior neighbours but
// never contribute any.
// scratch is guaranteed zero on entry and is zero again once this returns.
func (g *Grid) diffuseField(dt float64, get func(r, c int) float64, set func(r, c int, v float64)) {
	h2 := g.cellWidth * g.cellWidth
	for elapsed := 0.0; elapsed < 1.0; elapsed += dt {
		for i := 1; i < g.rows-1; i++ {
			for j := 1; j < g.cols-1; j++ {
				rho := get(i, j)
				if rho <= inactiveDensity {
					continue
				}
				flux := g.diffusion[i][j] * dt * rho / h2
				g.scratch[i][j] -= 2 * flux
				g.scratch[i-1][j] += 0.5 * flux
				g.scratch[i+1][j] += 0.5 * flux
				g.scratch[i][j-1] += 0.5 * flux
				g.scratch[i][j+1] += 0.5 * flux
			}
		}
		for i := 0; i < g.rows; i++ {
			for j := 0; j < g.cols; j++ {
				if g.scratch[i][j] == 0 {
					continue
				}
				set(i, j, get(i, j)+g.scratch[i][j])
				g.scratch[i][j] = 0
			}
		}
	}
}

func expNeg(x float64) float64 {
	return math.Exp(-x)
}
