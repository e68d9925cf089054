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

import "github.com/vectra-sim/vectra/rng"

// runMovement iterates the movement edge list in stored order and applies
// movementTransmission to each edge. Edge order is the source of truth for
// tie-breaking: ties are resolved first-come per spec.md §4.5.
func (s *State) runMovement() {
	for _, e := range s.Edges {
		s.movementTransmission(e)
	}
}

// movementTransmission implements one directed edge's daily movement
// sampling: whether the link fires, whether it is interrupted by control,
// species selection, shipment-size sampling, and per-animal infection
// transfer. Grounded on original_source/src/movement.c.
func (s *State) movementTransmission(e MoveEdge) {
	from := s.farmByID(e.From)
	to := s.farmByID(e.To)
	if from == nil || to == nil {
		return
	}

	if s.RNG.Uniform() > e.Risk {
		return
	}

	if s.interrupted(from, to) {
		s.InterruptedMovements++
		if from.NumInfCattle() > 0 || from.NumInfSheep() > 0 {
			s.RiskyMovesBlocked++
		}
		return
	}

	totalSheep := from.NumSheep()
	totalCattle := from.NumCattle()
	if totalSheep+totalCattle < 1 {
		return
	}
	cattleMove := s.RNG.Uniform() > totalSheep/(totalSheep+totalCattle)

	var shipmentParams MovementParams
	if cattleMove {
		shipmentParams = s.Move.Cattle
	} else {
		shipmentParams = s.Move.Sheep
	}
	size := 1 + s.RNG.NegBinomial(shipmentParams.K, shipmentParams.P)

	var sourceTotal float64
	if cattleMove {
		sourceTotal = totalCattle
	} else {
		sourceTotal = totalSheep
	}
	if size > int(sourceTotal) {
		size = int(sourceTotal)
	}
	if size <= 0 {
		return
	}

	anyInfected := s.transferAnimals(from, to, cattleMove, size)
	if anyInfected {
		s.MovementTransmissions++
	}
}

// interrupted reports whether control measures block a move from "from" to
// "to", per spec.md §4.5 step 2.
func (s *State) interrupted(from, to *Farm) bool {
	if from.MovementBanned || to.MovementBanned {
		return true
	}
	if from.ProtectionZone && !to.ProtectionZone {
		return true
	}
	if from.SurveillanceZone && to.FreeArea {
		return true
	}
	return false
}

// transferAnimals draws size animals of one species moving from "from" to
// "to". Only draws landing on an infected animal actually change any
// compartment: per movement.c, a susceptible or recovered animal sampled
// in the shipment produces no state change (source and destination S/R
// counts are not tracked per-animal), so the loop only ever decrements
// the source's and increments the destination's matching Erlang stage. It
// returns whether at least one infected animal moved.
func (s *State) transferAnimals(from, to *Farm, cattle bool, size int) bool {
	fromI, toI := from.ICattle, to.ICattle
	total := from.NumCattle()
	if !cattle {
		fromI, toI = from.ISheep, to.ISheep
		total = from.NumSheep()
	}
	if total < 1 {
		return false
	}

	infCount := sumStages(fromI)
	anyInfected := false
	for a := 0; a < size; a++ {
		density := infCount / total
		if s.RNG.Uniform() >= density {
			continue
		}
		stage := pickStageProportional(s.RNG, fromI)
		fromI[stage]--
		toI[stage]++
		infCount--
		anyInfected = true
	}
	return anyInfected
}

// pickStageProportional samples an Erlang stage index proportionally to
// the per-stage counts in stages, using a single uniform draw.
func pickStageProportional(generator *rng.Generator, stages []float64) int {
	total := sumStages(stages)
	if total <= 0 {
		return 0
	}
	target := generator.Uniform() * total
	cum := 0.0
	for i, v := range stages {
		cum += v
		if target < cum {
			return i
		}
	}
	return len(stages) - 1
}
