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

package colours

import (
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"github.com/gopherfc/gopherfc/hardware/ppu/framebuffer"
)

// Screenshot writes the frame as a PNG image, scaled by the integer scale
// value. Scaling uses nearest neighbour so that pixels remain sharp.
func (p *Palette) Screenshot(w io.Writer, frame *framebuffer.Frame, scale int) error {
	img := p.Image(frame)

	scale = max(scale, 1)
	if scale == 1 {
		return png.Encode(w, img)
	}

	dst := image.NewRGBA(image.Rect(0, 0, framebuffer.Width*scale, framebuffer.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	return png.Encode(w, dst)
}
