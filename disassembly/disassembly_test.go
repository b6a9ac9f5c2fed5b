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

package disassembly_test

import (
	"strings"
	"testing"

	"github.com/gopherfc/gopherfc/disassembly"
	"github.com/gopherfc/gopherfc/test"
)

type mem []uint8

func (m mem) Read8(address uint16) uint8 {
	if int(address) < len(m) {
		return m[address]
	}
	return 0
}

func TestDecode(t *testing.T) {
	m := mem{
		0xa9, 0x80, // LDA #$80
		0x8d, 0x00, 0x20, // STA PPUCTRL
		0xd0, 0xfe, // BNE $0005
		0x0a,             // ASL A
		0x6c, 0xfc, 0xff, // JMP ($fffc)
		0xb1, 0x10, // LDA ($10),Y
		0xa7, 0x10, // *LAX $10
		0xea, // NOP
	}

	entries := disassembly.Linear(m, 0x0000, 8)
	test.DemandEquality(t, len(entries), 8)

	test.ExpectEquality(t, entries[0].Operand, "#$80")
	test.ExpectEquality(t, entries[1].Operand, "PPUCTRL")
	test.ExpectEquality(t, entries[2].Operand, "$0005")
	test.ExpectEquality(t, entries[3].Operand, "A")
	test.ExpectEquality(t, entries[4].Operand, "($fffc)")
	test.ExpectEquality(t, entries[5].Operand, "($10),Y")
	test.ExpectEquality(t, entries[6].Operand, "$10")
	test.ExpectEquality(t, entries[7].Operand, "")

	test.ExpectEquality(t, entries[1].Address, uint16(0x0002))
	test.ExpectEquality(t, entries[7].Address, uint16(0x000f))

	test.ExpectEquality(t, entries[0].String(), "0000  a9 80     LDA #$80")
	test.ExpectEquality(t, entries[6].String(), "000d  a7 10     *LAX $10")
	test.ExpectEquality(t, entries[7].String(), "000f  ea        NOP")
}

func TestEndOfMemory(t *testing.T) {
	m := make(mem, 0x10000)
	for i := range m {
		m[i] = 0xea
	}

	entries := disassembly.Linear(m, 0xfffe, 10)
	test.ExpectEquality(t, len(entries), 2)

	var b strings.Builder
	test.DemandSuccess(t, disassembly.Write(&b, m, 0xfffe, 10))
	test.ExpectEquality(t, b.String(), "fffe  ea        NOP\nffff  ea        NOP\n")
}
