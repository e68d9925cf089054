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

// activeSurveillanceRadius is the fixed radius, in the same units as Farm
// coordinates, searched around the first detected farm for one-shot active
// surveillance. Fixed per spec.md §4.7, not configurable.
const activeSurveillanceRadius = 15000.0

// runControl is the start-of-day control phase: it performs the one-shot
// restriction-zone classification and active surveillance once BTV has
// been observed, and accrues the control-burden counters. Movement bans
// are not applied here; implementLocalBan applies them at detection time
// (via DeathsAndRecoveries). It does nothing while NoControl is set.
func (s *State) runControl() {
	if s.Control.NoControl {
		return
	}
	s.applyControl()
	s.accrueControlBurdenCounters()
}

// applyControl runs the two one-shot reactions to a first detection.
// Restriction-zone classification is gated by Control.RestrictionZones;
// active surveillance runs whenever BTV has been observed and hasn't run
// yet, independent of that switch — see DESIGN.md Open Question 5.
func (s *State) applyControl() {
	if !s.BTVObserved {
		return
	}
	c := s.farmByID(s.FirstDetectedFarmID)
	if c == nil {
		return
	}
	if s.Control.RestrictionZones && !s.RestrictionZonesImplemented {
		s.setupRestrictionZone(c)
	}
	if !s.ActiveSurveillancePerformed {
		s.performActiveSurveillance(c)
	}
}

// accrueControlBurdenCounters adds one farm-day to the cumulative control-
// burden counters for every farm currently under a ban or in a zone, and
// one ban-day for every banned farm. These are diagnostic cumulative
// counters (§3 EXPANSION) distinct from the daily detection counters.
func (s *State) accrueControlBurdenCounters() {
	for _, f := range s.Farms {
		if f.MovementBanned {
			s.BanDays++
			s.TotalFarmDaysBanned++
		}
		if f.MovementBanned || f.ProtectionZone || f.SurveillanceZone {
			s.TotalFarmDaysAffectedByControl++
		}
	}
}

// implementLocalBan is invoked on a farm's first-ever detection (from
// DeathsAndRecoveries, which has already set c's own MovementBanned flag
// when NoFarmBan is false). It lazily populates c.LocalFarmIDs on first
// call and never clears it, then applies movement-ban flags to the local,
// county, or entire farm population depending on Control switches.
// Grounded on original_source/src/farm_epi.c's implement_local_movement_ban.
func (s *State) implementLocalBan(c *Farm) {
	if !c.EverBeenDetected {
		c.LocalFarmIDs = make([]int, 0, len(s.Farms))
		for _, o := range s.Farms {
			if o.ID == c.ID {
				continue
			}
			if c.withinRadius(o, s.Control.BanRadius) {
				c.LocalFarmIDs = append(c.LocalFarmIDs, o.ID)
			}
		}
		c.EverBeenDetected = true
	}

	if !s.Control.NoFarmBan {
		for _, id := range c.LocalFarmIDs {
			if f := s.farmByID(id); f != nil {
				f.MovementBanned = true
				f.FreeArea = false
			}
		}
	}

	if s.Control.CountyBan {
		for _, f := range s.Farms {
			if f.County == c.County {
				f.MovementBanned = true
				f.FreeArea = false
			}
		}
	}

	if s.Control.TotalBan {
		for _, f := range s.Farms {
			f.MovementBanned = true
			f.FreeArea = false
		}
	}
}

// setupRestrictionZone classifies every farm by squared distance to c into
// a protection zone (closer) or surveillance zone (farther, up to SZRadius),
// once, the first time BTV is observed.
func (s *State) setupRestrictionZone(c *Farm) {
	pz2 := s.Control.PZRadius * s.Control.PZRadius
	sz2 := s.Control.SZRadius * s.Control.SZRadius
	for _, f := range s.Farms {
		d2 := f.distanceSquared(c)
		switch {
		case d2 <= pz2:
			f.ProtectionZone = true
			f.FreeArea = false
		case d2 <= sz2:
			f.SurveillanceZone = true
			f.FreeArea = false
		}
	}
	s.RestrictionZonesImplemented = true
}

// performActiveSurveillance runs once, the first time BTV is observed: it
// tests every farm within activeSurveillanceRadius of c and marks any with
// live infection as detected.
func (s *State) performActiveSurveillance(c *Farm) {
	for _, f := range s.Farms {
		if !c.withinRadius(f, activeSurveillanceRadius) {
			continue
		}
		s.FarmsChecked++
		s.Tests += int(f.NumCattle() + f.NumSheep())

		infCattle := f.NumInfCattle()
		infSheep := f.NumInfSheep()
		if infCattle > 0 || infSheep > 0 {
			f.Detected = true
			s.PositiveTests += int(infCattle + infSheep + f.RCattle + f.RSheep)
		}
	}
	s.ActiveSurveillancePerformed = true
}
