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

package ppu_test

import (
	"testing"

	"github.com/gopherfc/gopherfc/hardware/ppu"
	"github.com/gopherfc/gopherfc/test"
)

// master cycle of the start of the scanline in the first frame. the PPU
// starts at the beginning of the vertical blank
func lineStart(line int) uint64 {
	return uint64(21+line) * 341 * 4
}

func TestBackdrop(t *testing.T) {
	p, _, _, frames := newPPU()

	setAddress(p, 0x3f00)
	p.WriteRegister(0x2007, 0x21)

	// rendering is disabled so every pixel is the backdrop colour
	p.CatchUp(lineStart(240))
	p.CatchUp(lineStart(240) + evenFrameCycles)
	f := frames.Latest(false)
	for i, px := range f.Pixels {
		if px != 0x21 {
			t.Fatalf("pixel %d is %02x. wanted %02x", i, px, 0x21)
		}
	}
}

func TestSpriteZeroHit(t *testing.T) {
	p, mem, _, _ := newPPU()

	// tile one is solid colour one
	for i := range 8 {
		mem.vram[0x0010+i] = 0xff
	}
	for i := range 960 {
		mem.vram[0x2000+i] = 0x01
	}

	hideSprites(p)
	placeSprite(p, 0, 9, 1, 0, 16)
	p.WriteRegister(0x2001, 0x1e)

	p.CatchUp(lineStart(10))
	test.ExpectEquality(t, p.Status()&0x40, uint8(0x00))

	p.CatchUp(lineStart(11))
	test.ExpectEquality(t, p.Status()&0x40, uint8(0x40))

	// cleared on the pre-render line
	p.CatchUp(lineStart(261) + 8)
	test.ExpectEquality(t, p.Status()&0x40, uint8(0x00))
}

func TestSpriteZeroHitMasked(t *testing.T) {
	p, mem, _, _ := newPPU()
	for i := range 8 {
		mem.vram[0x0010+i] = 0xff
	}
	for i := range 960 {
		mem.vram[0x2000+i] = 0x01
	}

	// sprite zero in the left-most columns with the background hidden there
	hideSprites(p)
	placeSprite(p, 0, 9, 1, 0, 0)
	p.WriteRegister(0x2001, 0x18)

	p.CatchUp(lineStart(20))
	test.ExpectEquality(t, p.Status()&0x40, uint8(0x00))
}

func TestSpritePriority(t *testing.T) {
	p, mem, _, frames := newPPU()

	// tile one is solid colour one. tile two is solid colour two
	for i := range 8 {
		mem.vram[0x0010+i] = 0xff
		mem.vram[0x0028+i] = 0xff
	}
	for i := range 32 {
		mem.vram[0x2000+i] = 0x01
	}

	setAddress(p, 0x3f00)
	for i := range 32 {
		p.WriteRegister(0x2007, uint8(i))
	}
	setAddress(p, 0x0000)

	hideSprites(p)

	// sprite in front of the background
	placeSprite(p, 1, 0, 2, 0x00, 40)

	// sprite behind the background
	placeSprite(p, 2, 0, 2, 0x20, 80)

	// sprite behind the background in front of a sprite in front of the
	// background. the first sprite wins the column even though it is hidden
	placeSprite(p, 3, 0, 2, 0x21, 120)
	placeSprite(p, 4, 0, 2, 0x01, 120)

	p.WriteRegister(0x2001, 0x1e)

	// run the whole of the first frame
	p.CatchUp(lineStart(262))
	f := frames.Latest(false)

	line := 1 * 256
	test.ExpectEquality(t, f.Pixels[line+0], uint8(0x01))
	test.ExpectEquality(t, f.Pixels[line+40], uint8(0x12))
	test.ExpectEquality(t, f.Pixels[line+80], uint8(0x01))
	test.ExpectEquality(t, f.Pixels[line+120], uint8(0x01))

	// line zero never has sprites
	test.ExpectEquality(t, f.Pixels[40], uint8(0x01))
}

// a busy scene with scrolling and sprites
func buildScene(p *ppu.PPU, mem *mockMem) {
	for i := range 0x2000 {
		mem.vram[i] = uint8(i*7 + i>>3)
	}
	for i := 0x2000; i < 0x3000; i++ {
		mem.vram[i] = uint8(i * 13)
	}

	setAddress(p, 0x3f00)
	for i := range 32 {
		p.WriteRegister(0x2007, uint8(i*3))
	}

	for n := range 64 {
		placeSprite(p, n, uint8(n*5), uint8(n*3), uint8(n)&0xe3, uint8(n*11))
	}

	p.WriteRegister(0x2000, 0x11)
	p.ReadRegister(0x2002)
	p.WriteRegister(0x2005, 13)
	p.WriteRegister(0x2005, 21)
	p.WriteRegister(0x2001, 0x1e)
}

func TestFastScanline(t *testing.T) {
	fast, fastMem, _, fastFrames := newPPU()
	slow, slowMem, _, slowFrames := newPPU()
	slow.SetFastScanline(false)

	buildScene(fast, fastMem)
	buildScene(slow, slowMem)

	target := lineStart(0) + 2*evenFrameCycles
	fast.CatchUp(target)
	slow.CatchUp(target)

	test.ExpectEquality(t, fast.Scanline(), slow.Scanline())
	test.ExpectEquality(t, fast.Dot(), slow.Dot())
	test.ExpectEquality(t, fast.Frame(), slow.Frame())
	test.ExpectEquality(t, fast.Status(), slow.Status())

	fv, ft, fx, _ := fast.Scroll()
	sv, st, sx, _ := slow.Scroll()
	test.ExpectEquality(t, fv, sv)
	test.ExpectEquality(t, ft, st)
	test.ExpectEquality(t, fx, sx)

	ff := fastFrames.Latest(false)
	sf := slowFrames.Latest(false)
	test.ExpectEquality(t, ff.Number, sf.Number)
	for i := range ff.Pixels {
		if ff.Pixels[i] != sf.Pixels[i] {
			t.Fatalf("frames differ at pixel %d (%02x and %02x)", i, ff.Pixels[i], sf.Pixels[i])
		}
	}

	// the scene is not blank
	var nonzero int
	for _, px := range ff.Pixels {
		if px != ff.Pixels[0] {
			nonzero++
		}
	}
	test.ExpectInequality(t, nonzero, 0)
}
