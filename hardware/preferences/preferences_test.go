// This file is part of Gopherfc.
//
// Gopherfc is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopherfc is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopherfc.  If not, see <https://www.gnu.org/licenses/>.

package preferences_test

import (
	"path/filepath"
	"testing"

	"github.com/gopherfc/gopherfc/hardware/preferences"
	"github.com/gopherfc/gopherfc/test"
)

func TestDefaults(t *testing.T) {
	p, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.DeferredWrites.Get().(bool), true)
	test.ExpectEquality(t, p.DeferredMargin.Get().(int), 114)
	test.ExpectEquality(t, p.FastScanline.Get().(bool), true)
	test.ExpectEquality(t, p.LogAborts.Get().(bool), false)
	test.ExpectEquality(t, p.FPSCap.Get().(bool), true)
	test.ExpectFailure(t, p.AllowLogging())
}

func TestRoundTrip(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "preferences")

	p, err := preferences.NewPreferencesFromFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, p.DeferredWrites.Set(false))
	test.ExpectSuccess(t, p.DeferredMargin.Set(200))
	test.ExpectSuccess(t, p.LogAborts.Set(true))
	test.ExpectSuccess(t, p.FPSCap.Set(false))
	test.DemandSuccess(t, p.Save())

	q, err := preferences.NewPreferencesFromFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q.DeferredWrites.Get().(bool), false)
	test.ExpectEquality(t, q.DeferredMargin.Get().(int), 200)
	test.ExpectEquality(t, q.FastScanline.Get().(bool), true)
	test.ExpectSuccess(t, q.AllowLogging())
	test.ExpectEquality(t, q.FPSCap.Get().(bool), false)

	q.SetDefaults()
	test.ExpectEquality(t, q.DeferredMargin.Get().(int), 114)
}
