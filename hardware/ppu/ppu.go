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

// Package ppu emulates the picture unit. The unit is a state machine over the
// scanline and dot position and is advanced either a dot at a time, with
// Tick(), or a scanline at a time, with RunFastScanline().
//
// Whole scanlines are used when nothing can happen part way through the line.
// The console makes sure that register accesses only happen between calls to
// CatchUp() so the scanline path is used for all visible lines and most of
// the vertical blank. The lines on which the status flags change are always
// run a dot at a time.
//
// The background is drawn using the scroll position at the start of each
// line. Tiles are never fetched into shift registers. Instead, decoded tile
// rows are taken from the pixel cache of the memory bus.
package ppu

import (
	"fmt"

	"github.com/gopherfc/gopherfc/hardware/clocks"
	"github.com/gopherfc/gopherfc/hardware/ppu/framebuffer"
)

// Memory is the picture unit's view of the memory bus.
type Memory interface {
	ReadVRAM8(address uint16) uint8
	WriteVRAM8(address uint16, data uint8)

	// PixelRow returns the decoded row of a tile in the pattern tables
	PixelRow(address uint16, fineY uint8) []uint8

	// DrainRegisterCache applies any deferred register writes
	DrainRegisterCache()
}

// NMISink receives the NMI raised when NMI is enabled during the vertical
// blank.
type NMISink interface {
	RaiseNMI()
}

// scanline numbers
const (
	visibleScanlines  = 240
	vblankScanline    = 241
	preRenderScanline = 261
)

// master cycles in a scanline
const scanlineCycles = clocks.DotsPerScanline * clocks.PPUDivider

// PPU is the picture unit.
type PPU struct {
	mem    Memory
	nmi    NMISink
	frames *framebuffer.Buffers
	render *framebuffer.Frame

	ctrl   uint8
	mask   uint8
	status uint8

	// loopy registers
	v uint16
	t uint16
	x uint8
	w bool

	readBuffer uint8

	// the value of the last register access
	latch uint8

	oamAddr            uint8
	OAM                [256]uint8
	secondary          [maxLineSprites]sprite
	spriteCount        int
	spriteZeroSelected bool
	spriteLine         [framebuffer.Width]spritePixel

	palette [32]uint8

	// scroll position for the current line
	lineV uint16
	lineX uint8

	scanline int
	dot      int
	frame    int
	odd      bool

	// master clock position of the picture unit
	cycle uint64

	fastScanline bool
}

// NewPPU is the preferred method of initialisation for the PPU type. The PPU
// starts at the beginning of the vertical blank.
func NewPPU(mem Memory, nmi NMISink, frames *framebuffer.Buffers) *PPU {
	return &PPU{
		mem:          mem,
		nmi:          nmi,
		frames:       frames,
		render:       frames.RenderTarget(),
		scanline:     vblankScanline,
		fastScanline: true,
	}
}

func (ppu *PPU) String() string {
	return fmt.Sprintf("frame=%d scanline=%d dot=%d %s", ppu.frame, ppu.scanline, ppu.dot, ppu.registersString())
}

// SetFastScanline allows or prevents the use of RunFastScanline() by
// CatchUp().
func (ppu *PPU) SetFastScanline(fast bool) {
	ppu.fastScanline = fast
}

// Scanline returns the current scanline.
func (ppu *PPU) Scanline() int {
	return ppu.scanline
}

// Dot returns the current dot in the scanline.
func (ppu *PPU) Dot() int {
	return ppu.dot
}

// Frame returns the number of frames that have completed.
func (ppu *PPU) Frame() int {
	return ppu.frame
}

// Cycle returns the master clock position of the PPU.
func (ppu *PPU) Cycle() uint64 {
	return ppu.cycle
}

// InVBlank returns true if the PPU is in the vertical blank. The status flag
// is not consulted because it is cleared by reading the status register.
func (ppu *PPU) InVBlank() bool {
	return ppu.scanline >= vblankScanline && ppu.scanline < preRenderScanline
}

// CyclesUntilPreRender returns the number of master cycles before the start
// of the pre-render line.
func (ppu *PPU) CyclesUntilPreRender() int {
	return ((preRenderScanline-ppu.scanline)*clocks.DotsPerScanline - ppu.dot) * clocks.PPUDivider
}

// Tick advances the PPU by one dot.
func (ppu *PPU) Tick() {
	rendering := ppu.RenderingEnabled()

	switch {
	case ppu.scanline < visibleScanlines:
		if ppu.dot == 0 {
			ppu.startLine()
		} else if ppu.dot <= framebuffer.Width {
			ppu.renderPixel(ppu.dot - 1)
		}
		if rendering {
			switch ppu.dot {
			case 256:
				ppu.v = IncrementVScroll(ppu.v)
			case 257:
				ppu.v = copyHorizontal(ppu.v, ppu.t)
				ppu.EvaluateSprites(ppu.scanline)
			}
		}

	case ppu.scanline == vblankScanline:
		if ppu.dot == 1 {
			ppu.status |= statusVBlank
		}

	case ppu.scanline == preRenderScanline:
		if ppu.dot == 1 {
			ppu.status &^= statusFlags
		}
		if rendering {
			switch ppu.dot {
			case 256:
				ppu.v = IncrementVScroll(ppu.v)
			case 257:
				ppu.v = copyHorizontal(ppu.v, ppu.t)
				ppu.spriteCount = 0
			case 280:
				ppu.v = ppu.t
			}
		}
	}

	ppu.cycle += clocks.PPUDivider
	ppu.dot++

	last := clocks.DotsPerScanline - 1

	// the pre-render line of odd frames is one dot shorter
	if ppu.scanline == preRenderScanline && ppu.odd {
		last--
	}

	if ppu.dot > last {
		ppu.dot = 0
		ppu.scanline++
		if ppu.scanline >= clocks.ScanlinesPerFrame {
			ppu.scanline = 0
			ppu.render = ppu.frames.Swap(ppu.frame)
			ppu.frame++
			ppu.odd = !ppu.odd
		}
	}
}

// RunFastScanline advances the PPU by an entire scanline. The PPU must be at
// the start of a line and the line must not be the first line of the vertical
// blank or the pre-render line.
func (ppu *PPU) RunFastScanline() {
	if ppu.scanline < visibleScanlines {
		ppu.startLine()
		ppu.renderLine()
		if ppu.RenderingEnabled() {
			ppu.v = IncrementVScroll(ppu.v)
			ppu.v = copyHorizontal(ppu.v, ppu.t)
			ppu.EvaluateSprites(ppu.scanline)
		}
	}

	ppu.cycle += scanlineCycles
	ppu.scanline++
}

func (ppu *PPU) canRunFastScanline(target uint64) bool {
	return ppu.fastScanline && ppu.dot == 0 &&
		ppu.scanline != vblankScanline && ppu.scanline != preRenderScanline &&
		ppu.cycle+scanlineCycles <= target
}

// CatchUp runs the PPU until it reaches the master clock cycle. Deferred
// register writes are applied first.
func (ppu *PPU) CatchUp(target uint64) {
	ppu.mem.DrainRegisterCache()

	for ppu.cycle < target {
		if ppu.canRunFastScanline(target) {
			ppu.RunFastScanline()
		} else {
			ppu.Tick()
		}
	}
}
