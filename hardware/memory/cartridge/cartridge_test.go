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

package cartridge_test

import (
	"testing"

	"github.com/gopherfc/gopherfc/curated"
	"github.com/gopherfc/gopherfc/hardware/memory/cartridge"
	"github.com/gopherfc/gopherfc/test"
)

func header(flags6, flags7, flags8, flags9, prg, chr uint8) []byte {
	return []byte{'N', 'E', 'S', 0x1a, prg, chr, flags6, flags7, flags8, flags9, 0, 0, 0, 0, 0, 0}
}

func TestParseHeader(t *testing.T) {
	hdr, err := cartridge.ParseHeader(header(0x01, 0x00, 0x00, 0x00, 2, 1))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, hdr.PRGSize, 2*cartridge.PRGBankSize)
	test.ExpectEquality(t, hdr.CHRSize, 1*cartridge.CHRBankSize)
	test.ExpectEquality(t, hdr.Mirroring, cartridge.Vertical)
	test.ExpectEquality(t, hdr.Mapper, uint16(0))
	test.ExpectEquality(t, hdr.NES2, false)

	// mapper number split across flags 6 and 7
	hdr, err = cartridge.ParseHeader(header(0x42, 0x10, 0x00, 0x00, 1, 0))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, hdr.Mapper, uint16(0x14))
	test.ExpectEquality(t, hdr.Battery, true)
	test.ExpectEquality(t, hdr.Trainer, false)
	test.ExpectEquality(t, hdr.Mirroring, cartridge.Horizontal)

	// mirroring modes
	hdr, _ = cartridge.ParseHeader(header(0x08, 0x00, 0x00, 0x00, 1, 0))
	test.ExpectEquality(t, hdr.Mirroring, cartridge.Single)
	hdr, _ = cartridge.ParseHeader(header(0x0d, 0x00, 0x00, 0x00, 1, 0))
	test.ExpectEquality(t, hdr.Mirroring, cartridge.FourWay)
	test.ExpectEquality(t, hdr.Trainer, true)
}

func TestParseNES2(t *testing.T) {
	// NES2.0 nibbles extend the sizes and the mapper
	hdr, err := cartridge.ParseHeader(header(0x10, 0x28, 0x53, 0x21, 0x02, 0x03))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, hdr.NES2, true)
	test.ExpectEquality(t, hdr.Mapper, uint16(0x321))
	test.ExpectEquality(t, hdr.Submapper, uint8(5))
	test.ExpectEquality(t, hdr.PRGSize, 0x102*cartridge.PRGBankSize)
	test.ExpectEquality(t, hdr.CHRSize, 0x203*cartridge.CHRBankSize)

	// the same header without the NES2.0 identifier ignores the extensions
	hdr, err = cartridge.ParseHeader(header(0x10, 0x20, 0x53, 0x21, 0x02, 0x03))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, hdr.NES2, false)
	test.ExpectEquality(t, hdr.Mapper, uint16(0x21))
	test.ExpectEquality(t, hdr.Submapper, uint8(0))
	test.ExpectEquality(t, hdr.PRGSize, 2*cartridge.PRGBankSize)
}

func TestBadMagic(t *testing.T) {
	h := header(0, 0, 0, 0, 1, 0)
	h[3] = 0x00
	_, err := cartridge.ParseHeader(h)
	test.ExpectSuccess(t, curated.Is(err, cartridge.MalformedHeader))

	_, err = cartridge.ParseHeader(h[:10])
	test.ExpectSuccess(t, curated.Is(err, cartridge.MalformedHeader))
}

func TestNewCartridge(t *testing.T) {
	data := append(header(0x01, 0, 0, 0, 1, 1), make([]byte, cartridge.PRGBankSize+cartridge.CHRBankSize)...)
	data[cartridge.HeaderSize] = 0xea
	data[cartridge.HeaderSize+cartridge.PRGBankSize] = 0x55

	cart, err := cartridge.NewCartridge("test.nes", data)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(cart.PRG), cartridge.PRGBankSize)
	test.ExpectEquality(t, len(cart.CHR), cartridge.CHRBankSize)
	test.ExpectEquality(t, cart.PRG[0], 0xea)
	test.ExpectEquality(t, cart.CHR[0], 0x55)
	test.ExpectEquality(t, cart.HasCHRRAM(), false)

	// one byte too many
	_, err = cartridge.NewCartridge("test.nes", append(data, 0))
	test.ExpectSuccess(t, curated.Is(err, cartridge.SizeMismatch))

	// one byte too few
	_, err = cartridge.NewCartridge("test.nes", data[:len(data)-1])
	test.ExpectSuccess(t, curated.Is(err, cartridge.SizeMismatch))
}

func TestTrainer(t *testing.T) {
	data := append(header(0x04, 0, 0, 0, 1, 0), make([]byte, cartridge.TrainerSize+cartridge.PRGBankSize)...)
	data[cartridge.HeaderSize+cartridge.TrainerSize] = 0x4c

	cart, err := cartridge.NewCartridge("trainer.nes", data)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(cart.Trainer), cartridge.TrainerSize)
	test.ExpectEquality(t, cart.PRG[0], 0x4c)
	test.ExpectEquality(t, cart.HasCHRRAM(), true)
}
