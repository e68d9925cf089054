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

// SimulationConfig carries the top-level run parameters that an external
// loader assembles before constructing a State. Parsing a config file into
// this struct is a caller concern; this package only consumes the typed
// fields.
type SimulationConfig struct {
	// Dt is the sub-day diffusion step size, in days, used by
	// (*Grid).DiffuseForDay.
	Dt float64
	// DtFarm is the sub-day step size for the per-farm epidemic loop. The
	// core hard-codes 0.1 regardless of this value; see DeathsAndRecoveries.
	DtFarm float64
	// NumDays is the number of days a single replicate runs. The repetition
	// loop itself lives outside this package.
	NumDays int
	// NumReps is the number of Monte Carlo replicates an external driver
	// should run. Not consumed by State itself.
	NumReps int
	// StartDayOfYear seeds State.DayOfYear at construction.
	StartDayOfYear int
}

// EpiConfig carries per-species and per-process epidemiological parameters.
type EpiConfig struct {
	// DetectionProbCattle, DetectionProbSheep are the per-animal daily
	// passive-detection probabilities used in the log-probability formula.
	DetectionProbCattle float64
	DetectionProbSheep  float64

	// DiffusionLengthScale parameterises the diffusion-coefficient grid an
	// external loader builds; this package only consumes the grid itself.
	DiffusionLengthScale float64

	// NumStagesCattle, NumStagesSheep are the Erlang chain lengths for each
	// species' infectious compartment.
	NumStagesCattle int
	NumStagesSheep  int

	// NumEIPStages is the number of extrinsic-incubation stages in the
	// midge latent field.
	NumEIPStages int

	// PV is the probability a single midge bite on an infectious host
	// results in a newly latent midge (host→midge transmission).
	PV float64
	// PH is the probability a single infectious bite on a susceptible host
	// results in infection (midge→host transmission).
	PH float64

	// SheepMortRate is declared here per the external config surface but
	// the core hard-codes 0.0055; see DeathsAndRecoveries.
	SheepMortRate float64

	// RecoveryRateCattle, RecoveryRateSheep are the per-stage Erlang
	// recovery rates (combined with NumStages* to give the accelerated
	// per-stage rate nStages*recRate).
	RecoveryRateCattle float64
	RecoveryRateSheep  float64

	// PreferenceForSheep scales sheep contribution relative to cattle in
	// force-of-infection and vector-abundance calculations.
	PreferenceForSheep float64

	// TransmissionScalar scales the climate-regression bite rate in
	// host→midge transmission.
	TransmissionScalar float64
}

// ControlConfig carries the reactive-control switches and radii.
type ControlConfig struct {
	// BanRadius is the distance, in the same units as Farm coordinates,
	// used to populate a detected farm's local-ban list.
	BanRadius float64
	// PZRadius, SZRadius are the protection-zone and surveillance-zone
	// radii around the first detected farm.
	PZRadius float64
	SZRadius float64

	// NoControl short-circuits all control when true.
	NoControl bool
	// NoFarmBan suppresses farm-level movement bans; zones still apply.
	NoFarmBan bool
	// CountyBan, on detection, bans the whole county of the detected farm.
	CountyBan bool
	// TotalBan, on detection, bans every farm nationally.
	TotalBan bool
	// RestrictionZones enables PZ/SZ classification on first detection.
	RestrictionZones bool
	// PreMovementTests is reserved; not consumed by the core as specified.
	PreMovementTests bool
}

// GridConfig carries grid discretisation parameters for the external grid
// builder. The core itself only requires the resulting Grid to have
// interior cells; it does not depend on specific dimensions.
type GridConfig struct {
	// MidgeGridWidth, TempGridWidth are the cell counts along one axis of
	// the midge-density grid and the coarser temperature/rainfall grid.
	// Their ratio is the stride R used in MortalityAndEIP.
	MidgeGridWidth int
	TempGridWidth  int
	// CellWidth is the midge-grid cell width h, in the same units as
	// diffusion coefficients, used in the diffusion flux term D*dt/h^2.
	CellWidth float64
}

// MovementParams holds the negative-binomial shipment-size parameters for
// one species. Referenced but not defined in the retrieved original
// source; defined here to match the shape movement.c implies (k, p per
// species) per DESIGN.md.
type MovementParams struct {
	K float64
	P float64
}

// MovementConfig carries shipment-size sampling parameters per species.
type MovementConfig struct {
	Cattle MovementParams
	Sheep  MovementParams
}
