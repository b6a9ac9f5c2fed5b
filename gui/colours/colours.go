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

// Package colours converts the palette indexes produced by the picture unit
// to RGB values.
package colours

import (
	"image"
	"image/color"

	"github.com/gopherfc/gopherfc/hardware/ppu/framebuffer"
)

// NumColours in the palette of the picture unit. Palette RAM entries are six
// bits wide.
const NumColours = 64

// the 2C02 NTSC palette
var ntsc = [NumColours]uint32{
	0x666666, 0x002a88, 0x1412a7, 0x3b00a4, 0x5c007e, 0x6e0040, 0x6c0600, 0x561d00,
	0x333500, 0x0b4800, 0x005200, 0x004f08, 0x00404d, 0x000000, 0x000000, 0x000000,
	0xadadad, 0x155fd9, 0x4240ff, 0x7527fe, 0xa01acc, 0xb71e7b, 0xb53120, 0x994e00,
	0x6b6d00, 0x388700, 0x0c9300, 0x008f32, 0x007c8d, 0x000000, 0x000000, 0x000000,
	0xfffeff, 0x64b0ff, 0x9290ff, 0xc676ff, 0xf36aff, 0xfe6ecc, 0xfe8170, 0xea9e22,
	0xbcbe00, 0x88d800, 0x5ce430, 0x45e082, 0x48cdde, 0x4f4f4f, 0x000000, 0x000000,
	0xfffeff, 0xc0dfff, 0xd3d2ff, 0xe8c8ff, 0xfbc2ff, 0xfec4ea, 0xfeccc5, 0xf7d8a5,
	0xe4e594, 0xcfef96, 0xbdf4ab, 0xb3f3cc, 0xb5ebf2, 0xb8b8b8, 0x000000, 0x000000,
}

// Palette is an immutable table of colours.
type Palette struct {
	rgba    [NumColours]color.RGBA
	palette color.Palette
}

// NewPalette is the preferred method of initialisation for the Palette type.
func NewPalette() *Palette {
	p := &Palette{
		palette: make(color.Palette, NumColours),
	}
	for i, c := range ntsc {
		p.rgba[i] = color.RGBA{
			R: uint8(c >> 16),
			G: uint8(c >> 8),
			B: uint8(c),
			A: 0xff,
		}
		p.palette[i] = p.rgba[i]
	}
	return p
}

// RGBA returns the colour for the palette index. Only the lower six bits of
// the index are used.
func (p *Palette) RGBA(idx uint8) color.RGBA {
	return p.rgba[idx&(NumColours-1)]
}

// ToRGBA converts the frame to four byte RGBA pixels. The destination slice
// must be at least framebuffer.Width * framebuffer.Height * 4 bytes long.
func (p *Palette) ToRGBA(frame *framebuffer.Frame, dst []byte) {
	for i, idx := range frame.Pixels {
		c := p.rgba[idx&(NumColours-1)]
		d := dst[i*4 : i*4+4 : i*4+4]
		d[0] = c.R
		d[1] = c.G
		d[2] = c.B
		d[3] = c.A
	}
}

// Image returns a copy of the frame as a paletted image.
func (p *Palette) Image(frame *framebuffer.Frame) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, framebuffer.Width, framebuffer.Height), p.palette)
	for i, idx := range frame.Pixels {
		img.Pix[i] = idx & (NumColours - 1)
	}
	return img
}
