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

package instructions

import (
	"fmt"
	"strings"
)

// decode table. each entry is the mnemonic followed by the addressing mode.
// an entry without an addressing mode is an implied instruction
var decode = [256]string{
	"BRK_IMM", "ORA_INX", "STP", "SLO_INX", "NOP_ZPA", "ORA_ZPA", "ASL_ZPA", "SLO_ZPA", "PHP", "ORA_IMM", "ASL_ACC", "ANC_IMM", "NOP_ABS", "ORA_ABS", "ASL_ABS", "SLO_ABS",
	"BPL_REL", "ORA_INY", "STP", "SLO_INY", "NOP_ZPX", "ORA_ZPX", "ASL_ZPX", "SLO_ZPX", "CLC", "ORA_ABY", "NOP", "SLO_ABY", "NOP_ABX", "ORA_ABX", "ASL_ABX", "SLO_ABX",
	"JSR_ABS", "AND_INX", "STP", "RLA_INX", "BIT_ZPA", "AND_ZPA", "ROL_ZPA", "RLA_ZPA", "PLP", "AND_IMM", "ROL_ACC", "ANC_IMM", "BIT_ABS", "AND_ABS", "ROL_ABS", "RLA_ABS",
	"BMI_REL", "AND_INY", "STP", "RLA_INY", "NOP_ZPX", "AND_ZPX", "ROL_ZPX", "RLA_ZPX", "SEC", "AND_ABY", "NOP", "RLA_ABY", "NOP_ABX", "AND_ABX", "ROL_ABX", "RLA_ABX",
	"RTI", "EOR_INX", "STP", "SRE_INX", "NOP_ZPA", "EOR_ZPA", "LSR_ZPA", "SRE_ZPA", "PHA", "EOR_IMM", "LSR_ACC", "ALR_IMM", "JMP_ABS", "EOR_ABS", "LSR_ABS", "SRE_ABS",
	"BVC_REL", "EOR_INY", "STP", "SRE_INY", "NOP_ZPX", "EOR_ZPX", "LSR_ZPX", "SRE_ZPX", "CLI", "EOR_ABY", "NOP", "SRE_ABY", "NOP_ABX", "EOR_ABX", "LSR_ABX", "SRE_ABX",
	"RTS", "ADC_INX", "STP", "RRA_INX", "NOP_ZPA", "ADC_ZPA", "ROR_ZPA", "RRA_ZPA", "PLA", "ADC_IMM", "ROR_ACC", "ARR_IMM", "JMP_IND", "ADC_ABS", "ROR_ABS", "RRA_ABS",
	"BVS_REL", "ADC_INY", "STP", "RRA_INY", "NOP_ZPX", "ADC_ZPX", "ROR_ZPX", "RRA_ZPX", "SEI", "ADC_ABY", "NOP", "RRA_ABY", "NOP_ABX", "ADC_ABX", "ROR_ABX", "RRA_ABX",
	"NOP_IMM", "STA_INX", "NOP_IMM", "SAX_INX", "STY_ZPA", "STA_ZPA", "STX_ZPA", "SAX_ZPA", "DEY", "NOP_IMM", "TXA", "XAA_IMM", "STY_ABS", "STA_ABS", "STX_ABS", "SAX_ABS",
	"BCC_REL", "STA_INY", "STP", "AHX_INY", "STY_ZPX", "STA_ZPX", "STX_ZPY", "SAX_ZPY", "TYA", "STA_ABY", "TXS", "TAS_ABY", "SHY_ABX", "STA_ABX", "SHX_ABY", "AHX_ABY",
	"LDY_IMM", "LDA_INX", "LDX_IMM", "LAX_INX", "LDY_ZPA", "LDA_ZPA", "LDX_ZPA", "LAX_ZPA", "TAY", "LDA_IMM", "TAX", "LAX_IMM", "LDY_ABS", "LDA_ABS", "LDX_ABS", "LAX_ABS",
	"BCS_REL", "LDA_INY", "STP", "LAX_INY", "LDY_ZPX", "LDA_ZPX", "LDX_ZPY", "LAX_ZPY", "CLV", "LDA_ABY", "TSX", "LAS_ABY", "LDY_ABX", "LDA_ABX", "LDX_ABY", "LAX_ABY",
	"CPY_IMM", "CMP_INX", "NOP_IMM", "DCP_INX", "CPY_ZPA", "CMP_ZPA", "DEC_ZPA", "DCP_ZPA", "INY", "CMP_IMM", "DEX", "AXS_IMM", "CPY_ABS", "CMP_ABS", "DEC_ABS", "DCP_ABS",
	"BNE_REL", "CMP_INY", "STP", "DCP_INY", "NOP_ZPX", "CMP_ZPX", "DEC_ZPX", "DCP_ZPX", "CLD", "CMP_ABY", "NOP", "DCP_ABY", "NOP_ABX", "CMP_ABX", "DEC_ABX", "DCP_ABX",
	"CPX_IMM", "SBC_INX", "NOP_IMM", "ISC_INX", "CPX_ZPA", "SBC_ZPA", "INC_ZPA", "ISC_ZPA", "INX", "SBC_IMM", "NOP", "SBC_IMM", "CPX_ABS", "SBC_ABS", "INC_ABS", "ISC_ABS",
	"BEQ_REL", "SBC_INY", "STP", "ISC_INY", "NOP_ZPX", "SBC_ZPX", "INC_ZPX", "ISC_ZPX", "SED", "SBC_ABY", "NOP", "ISC_ABY", "NOP_ABX", "SBC_ABX", "INC_ABX", "ISC_ABX",
}

// base number of cycles for each opcode. dynamic penalties for branches and
// page crossing are added by the interpreter
var cycles = [256]int{
	7, 6, 2, 8, 3, 3, 5, 5, 3, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	6, 6, 2, 8, 3, 3, 5, 5, 4, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	6, 6, 2, 8, 3, 3, 5, 5, 3, 2, 2, 2, 3, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	6, 6, 2, 8, 3, 3, 5, 5, 4, 2, 2, 2, 5, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	2, 6, 2, 6, 3, 3, 3, 3, 2, 2, 2, 2, 4, 4, 4, 4,
	2, 6, 2, 6, 4, 4, 4, 4, 2, 5, 2, 5, 5, 5, 5, 5,
	2, 6, 2, 6, 3, 3, 3, 3, 2, 2, 2, 2, 4, 4, 4, 4,
	2, 5, 2, 5, 4, 4, 4, 4, 2, 4, 2, 4, 4, 4, 4, 4,
	2, 6, 2, 8, 3, 3, 5, 5, 2, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	2, 6, 3, 8, 3, 3, 5, 5, 2, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
}

var modes = map[string]AddressingMode{
	"":    Implied,
	"ACC": Accumulator,
	"IMM": Immediate,
	"REL": Relative,
	"ZPA": ZeroPage,
	"ZPX": ZeroPageX,
	"ZPY": ZeroPageY,
	"ABS": Absolute,
	"ABX": AbsoluteX,
	"ABY": AbsoluteY,
	"IND": Indirect,
	"INX": IndexedIndirect,
	"INY": IndirectIndexed,
}

// the official NOP opcode. the other NOP opcodes are unofficial
const officialNop = 0xea

// the official SBC immediate opcode. 0xeb is an unofficial duplicate
const unofficialSbc = 0xeb

var definitions [256]Definition

func init() {
	operators := make(map[string]Operator, numOperators)
	for o := range numOperators {
		operators[o.String()] = o
	}

	for i, entry := range decode {
		mnemonic, m, _ := strings.Cut(entry, "_")

		op, ok := operators[mnemonic]
		if !ok {
			panic(fmt.Sprintf("instructions: unknown mnemonic in decode table: %s", entry))
		}
		mode, ok := modes[m]
		if !ok {
			panic(fmt.Sprintf("instructions: unknown addressing mode in decode table: %s", entry))
		}

		defn := Definition{
			OpCode:         uint8(i),
			Operator:       op,
			Bytes:          mode.Bytes(),
			Cycles:         cycles[i],
			AddressingMode: mode,
			Effect:         op.effect(),
			Unofficial:     op.IsUnofficial(),
			Unimplemented:  op.IsUnstable(),
		}

		switch {
		case op == Nop && i != officialNop:
			defn.Unofficial = true
		case i == unofficialSbc:
			defn.Unofficial = true
		}

		if defn.Effect == Read {
			switch mode {
			case AbsoluteX, AbsoluteY, IndirectIndexed:
				defn.PageSensitive = true
			}
		}

		definitions[i] = defn
	}
}

// GetDefinitions returns the table of definitions, indexed by opcode. The
// table must not be modified.
func GetDefinitions() *[256]Definition {
	return &definitions
}

// Lookup returns the definition for the opcode.
func Lookup(opcode uint8) Definition {
	return definitions[opcode]
}
