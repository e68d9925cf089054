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

// Package vectra implements the simulation core of VECTRA, a stochastic
// spatial model of Bluetongue virus transmission between livestock farms
// mediated by biting-midge vectors.
//
// A State holds the full mutable world: the farm roster, the midge density
// grids, the movement network, and the daily/cumulative counters. Calling
// (*State).SimulateDay advances the world by exactly one day, running the
// control, midge-dynamics, movement, and per-farm phases in the fixed order
// described in the package's design document.
//
// Loading farm rosters, weather rasters, and movement edge lists; output
// and reporting; configuration-file parsing; the Monte Carlo replicate
// loop; and RNG seed construction are all the responsibility of the
// caller — this package only advances a State that has already been
// populated.
package vectra
