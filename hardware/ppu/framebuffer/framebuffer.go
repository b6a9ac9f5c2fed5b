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

// Package framebuffer implements the three frame buffers shared between the
// picture unit and the consumer of frames. The picture unit draws into the
// render target. When a frame is complete the render target and the back
// buffer are swapped. The consumer takes the back buffer by swapping it with
// the front buffer.
//
// Pixels are never copied between buffers. Only the roles of the buffers
// change and that happens under a lock.
package framebuffer

import "sync"

// Dimensions of a frame.
const (
	Width  = 256
	Height = 240
)

// Frame is a single frame of palette indexes. The indexes are in the range 0
// to 63.
type Frame struct {
	Pixels [Width * Height]uint8

	// Number of the frame as counted by the picture unit
	Number int
}

// Buffers is the set of three frames.
type Buffers struct {
	crit sync.Mutex

	render *Frame
	back   *Frame
	front  *Frame

	// the back buffer holds a frame that the consumer has not seen
	fresh bool
}

// NewBuffers is the preferred method of initialisation for the Buffers type.
func NewBuffers() *Buffers {
	return &Buffers{
		render: &Frame{},
		back:   &Frame{},
		front:  &Frame{},
	}
}

// RenderTarget returns the frame currently being drawn. Should only be called
// by the producer of frames.
func (fb *Buffers) RenderTarget() *Frame {
	fb.crit.Lock()
	defer fb.crit.Unlock()
	return fb.render
}

// Swap marks the render target as complete and returns the new render target.
// Should only be called by the producer of frames.
func (fb *Buffers) Swap(number int) *Frame {
	fb.crit.Lock()
	defer fb.crit.Unlock()

	fb.render.Number = number
	fb.render, fb.back = fb.back, fb.render
	fb.fresh = true

	return fb.render
}

// Latest returns the most recently completed frame. The frame belongs to the
// caller until the next call to Latest(). If there is no new frame, or if
// paused is true, the same frame as the previous call is returned.
func (fb *Buffers) Latest(paused bool) *Frame {
	fb.crit.Lock()
	defer fb.crit.Unlock()

	if fb.fresh && !paused {
		fb.front, fb.back = fb.back, fb.front
		fb.fresh = false
	}

	return fb.front
}
