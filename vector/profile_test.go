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

package vector

import (
	"math"
	"testing"
)

func TestCulicoidesBitingRateBounds(t *testing.T) {
	var c Culicoides
	tests := []struct {
		T    float64
		want float64
	}{
		{T: 0, want: 0},
		{T: 3.7, want: 0},
		{T: 41.9, want: 0},
		{T: 50, want: 0},
	}
	for _, test := range tests {
		if got := c.BitingRate(test.T); got != test.want {
			t.Errorf("BitingRate(%v) = %v, want %v", test.T, got, test.want)
		}
	}
	if got := c.BitingRate(20); got <= 0 {
		t.Errorf("BitingRate(20) = %v, want > 0", got)
	}
}

func TestCulicoidesMortalityRate(t *testing.T) {
	var c Culicoides
	if got := c.MortalityRate(-5); got != 100 {
		t.Errorf("MortalityRate(-5) = %v, want 100 (effectively total mortality)", got)
	}
	got := c.MortalityRate(0)
	want := 0.009 * math.Exp(0)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("MortalityRate(0) = %v, want %v", got, want)
	}
}

func TestCulicoidesIncubationRate(t *testing.T) {
	var c Culicoides
	if got := c.IncubationRate(13.4); got != 0 {
		t.Errorf("IncubationRate(13.4) = %v, want 0", got)
	}
	if got := c.IncubationRate(0); got != 0 {
		t.Errorf("IncubationRate(0) = %v, want 0 (clamped)", got)
	}
	got := c.IncubationRate(20)
	want := 0.018 * (20 - 13.4)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("IncubationRate(20) = %v, want %v", got, want)
	}
}

func TestCulicoidesName(t *testing.T) {
	var c Culicoides
	if c.Name() != "Culicoides" {
		t.Errorf("Name() = %q, want Culicoides", c.Name())
	}
}

func TestProfileInterfaceSatisfied(t *testing.T) {
	var _ Profile = Culicoides{}
}
