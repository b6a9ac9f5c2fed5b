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

package registers_test

import (
	"testing"

	"github.com/gopherfc/gopherfc/hardware/cpu/registers"
	"github.com/gopherfc/gopherfc/test"
)

func TestStatus(t *testing.T) {
	var p registers.Status
	test.ExpectEquality(t, p.String(), "nv-bdizc")

	p = registers.PowerOn
	test.ExpectEquality(t, uint8(p), uint8(0x34))
	test.ExpectEquality(t, p.String(), "nv-BdIzc")

	p.Set(registers.Carry, true)
	test.ExpectSuccess(t, p.Is(registers.Carry))
	p.Set(registers.Carry, false)
	test.ExpectFailure(t, p.Is(registers.Carry))
}

func TestSetNZ(t *testing.T) {
	var p registers.Status

	p.SetNZ(0)
	test.ExpectSuccess(t, p.Is(registers.Zero))
	test.ExpectFailure(t, p.Is(registers.Negative))

	p.SetNZ(0x80)
	test.ExpectFailure(t, p.Is(registers.Zero))
	test.ExpectSuccess(t, p.Is(registers.Negative))

	p.SetNZ(0x7f)
	test.ExpectFailure(t, p.Is(registers.Zero))
	test.ExpectFailure(t, p.Is(registers.Negative))
}

func TestStack(t *testing.T) {
	var p registers.Status
	test.ExpectEquality(t, p.Push(true), uint8(0x30))
	test.ExpectEquality(t, p.Push(false), uint8(0x20))

	p.Pull(0xff)
	test.ExpectEquality(t, uint8(p), uint8(0xef))
	test.ExpectFailure(t, p.Is(registers.Break))

	p.Pull(0x00)
	test.ExpectEquality(t, uint8(p), uint8(0x20))
}
