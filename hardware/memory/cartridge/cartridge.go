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

// Package cartridge loads iNES and NES2.0 cartridge images. Only the fixed
// bank layout of mapper 0 is honoured by the rest of the emulation. Other
// mapper numbers parse correctly and are loaded with the same layout.
package cartridge

import (
	"github.com/gopherfc/gopherfc/curated"
	"github.com/gopherfc/gopherfc/logger"
)

// Cartridge is a loaded cartridge image.
type Cartridge struct {
	Header

	// name of the image. for information only
	Filename string

	PRG     []uint8
	CHR     []uint8
	Trainer []uint8
}

// NewCartridge parses and validates the cartridge image. The data after the
// header must exactly equal the sizes declared in the header (including the
// trainer if present).
func NewCartridge(filename string, data []byte) (*Cartridge, error) {
	hdr, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	expected := hdr.PRGSize + hdr.CHRSize
	if hdr.Trainer {
		expected += TrainerSize
	}

	data = data[HeaderSize:]
	if len(data) != expected {
		return nil, curated.Errorf(SizeMismatch, len(data), expected)
	}

	cart := &Cartridge{
		Header:   hdr,
		Filename: filename,
	}

	if hdr.Trainer {
		cart.Trainer = data[:TrainerSize]
		data = data[TrainerSize:]
	}

	cart.PRG = data[:hdr.PRGSize]
	cart.CHR = data[hdr.PRGSize:]

	logger.Logf(logger.Allow, "cartridge", "%s", hdr)
	if hdr.Mapper != 0 {
		logger.Logf(logger.Allow, "cartridge", "mapper %d is not supported. using mapper 0 layout", hdr.Mapper)
	}

	return cart, nil
}

// HasCHRRAM returns true if the cartridge has no CHR data. Such cartridges
// use eight kilobytes of CHR RAM.
func (cart *Cartridge) HasCHRRAM() bool {
	return len(cart.CHR) == 0
}
