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

package cartridge

import (
	"bytes"
	"fmt"

	"github.com/gopherfc/gopherfc/curated"
)

// Sentinal error patterns.
const (
	MalformedHeader = "cartridge: malformed header: %v"
	SizeMismatch    = "cartridge: size mismatch: %d bytes of data, header declares %d"
)

// HeaderSize is the length of the iNES header in bytes.
const HeaderSize = 16

// Bank sizes as used in the header.
const (
	PRGBankSize = 0x4000
	CHRBankSize = 0x2000
	TrainerSize = 0x200
)

var magic = []byte{'N', 'E', 'S', 0x1a}

// Mirroring is the arrangement of the nametables.
type Mirroring int

// List of mirroring modes.
const (
	Horizontal Mirroring = iota
	Vertical
	Single
	FourWay
)

func (m Mirroring) String() string {
	switch m {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Single:
		return "single"
	case FourWay:
		return "four-way"
	}
	return "unknown mirroring"
}

// Header is the information in the iNES/NES2.0 header. Sizes are in bytes.
type Header struct {
	NES2      bool
	PRGSize   int
	CHRSize   int
	Mapper    uint16
	Submapper uint8
	Mirroring Mirroring
	Battery   bool
	Trainer   bool
}

func (h Header) String() string {
	v := "iNES"
	if h.NES2 {
		v = "NES2.0"
	}
	return fmt.Sprintf("%s mapper %d.%d, PRG %dK, CHR %dK, %s mirroring", v, h.Mapper, h.Submapper,
		h.PRGSize/1024, h.CHRSize/1024, h.Mirroring)
}

// ParseHeader extracts the fields from a 16 byte header.
func ParseHeader(h []byte) (Header, error) {
	if len(h) < HeaderSize {
		return Header{}, curated.Errorf(MalformedHeader, fmt.Sprintf("too short (%d bytes)", len(h)))
	}
	if !bytes.Equal(h[:4], magic) {
		return Header{}, curated.Errorf(MalformedHeader, "bad magic bytes")
	}

	var hdr Header

	hdr.NES2 = h[7]&0x0c == 0x08

	prg := int(h[4])
	chr := int(h[5])
	hdr.Mapper = uint16(h[7]&0xf0) | uint16(h[6]>>4)

	if hdr.NES2 {
		prg |= int(h[9]&0x0f) << 8
		chr |= int(h[9]&0xf0) << 4
		hdr.Mapper |= uint16(h[8]&0x0f) << 8
		hdr.Submapper = h[8] >> 4
	}

	hdr.PRGSize = prg * PRGBankSize
	hdr.CHRSize = chr * CHRBankSize

	switch h[6] & 0x09 {
	case 0x00:
		hdr.Mirroring = Horizontal
	case 0x01:
		hdr.Mirroring = Vertical
	case 0x08:
		hdr.Mirroring = Single
	case 0x09:
		hdr.Mirroring = FourWay
	}

	hdr.Battery = h[6]&0x02 == 0x02
	hdr.Trainer = h[6]&0x04 == 0x04

	return hdr, nil
}
