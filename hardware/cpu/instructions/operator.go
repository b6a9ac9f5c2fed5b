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

// Operator is the operation performed by an instruction, independent of its
// addressing mode.
type Operator int

// List of operators. The second group are the unofficial operators.
const (
	Nop Operator = iota
	Adc
	And
	Asl
	Bcc
	Bcs
	Beq
	Bit
	Bmi
	Bne
	Bpl
	Brk
	Bvc
	Bvs
	Clc
	Cld
	Cli
	Clv
	Cmp
	Cpx
	Cpy
	Dec
	Dex
	Dey
	Eor
	Inc
	Inx
	Iny
	Jmp
	Jsr
	Lda
	Ldx
	Ldy
	Lsr
	Ora
	Pha
	Php
	Pla
	Plp
	Rol
	Ror
	Rti
	Rts
	Sbc
	Sec
	Sed
	Sei
	Sta
	Stx
	Sty
	Tax
	Tay
	Tsx
	Txa
	Txs
	Tya

	SLO
	RLA
	SRE
	RRA
	SAX
	LAX
	DCP
	ISC
	ANC
	ALR
	ARR
	AXS
	LAS
	XAA
	AHX
	SHY
	SHX
	TAS
	STP

	numOperators
)

var mnemonics = [numOperators]string{
	"NOP", "ADC", "AND", "ASL", "BCC", "BCS", "BEQ", "BIT", "BMI", "BNE",
	"BPL", "BRK", "BVC", "BVS", "CLC", "CLD", "CLI", "CLV", "CMP", "CPX",
	"CPY", "DEC", "DEX", "DEY", "EOR", "INC", "INX", "INY", "JMP", "JSR",
	"LDA", "LDX", "LDY", "LSR", "ORA", "PHA", "PHP", "PLA", "PLP", "ROL",
	"ROR", "RTI", "RTS", "SBC", "SEC", "SED", "SEI", "STA", "STX", "STY",
	"TAX", "TAY", "TSX", "TXA", "TXS", "TYA",
	"SLO", "RLA", "SRE", "RRA", "SAX", "LAX", "DCP", "ISC", "ANC", "ALR",
	"ARR", "AXS", "LAS", "XAA", "AHX", "SHY", "SHX", "TAS", "STP",
}

func (o Operator) String() string {
	if o < 0 || o >= numOperators {
		return "???"
	}
	return mnemonics[o]
}

// IsUnofficial returns true if the operator is not one of the documented
// operators. Note that some opcodes for NOP and SBC are also undocumented.
func (o Operator) IsUnofficial() bool {
	return o >= SLO
}

// IsUnstable returns true for the unofficial operators whose behaviour depends
// on analogue effects in the chip. These are not emulated.
func (o Operator) IsUnstable() bool {
	switch o {
	case XAA, AHX, SHY, SHX, TAS, STP:
		return true
	}
	return false
}

func (o Operator) effect() EffectCategory {
	switch o {
	case Sta, Stx, Sty, SAX, AHX, SHY, SHX, TAS:
		return Write
	case Asl, Lsr, Rol, Ror, Inc, Dec, SLO, RLA, SRE, RRA, DCP, ISC:
		return RMW
	case Bcc, Bcs, Beq, Bmi, Bne, Bpl, Bvc, Bvs, Jmp:
		return Flow
	case Jsr, Rts:
		return Subroutine
	case Brk, Rti:
		return Interrupt
	}
	return Read
}
