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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/gopherfc/gopherfc/hardware/ppu/framebuffer"
)

// Video is an implementation of the Digest interface. The hash is a SHA-1
// fingerprint of every frame, chained with the previous fingerprint. The
// use of SHA-1 is for speed and is not a cryptographic task.
type Video struct {
	digest [sha1.Size]byte

	// the previous digest followed by the pixels of the frame
	pixels []byte

	frameNum int
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo() *Video {
	return &Video{
		pixels:   make([]byte, sha1.Size+len(framebuffer.Frame{}.Pixels)),
		frameNum: -1,
	}
}

// Hash implements digest.Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements digest.Digest interface.
func (dig *Video) ResetDigest() {
	clear(dig.digest[:])
	dig.frameNum = -1
}

// Digest adds the frame to the chained fingerprint. The same frame is not
// added twice in succession.
func (dig *Video) Digest(frame *framebuffer.Frame) {
	if frame == nil || frame.Number == dig.frameNum {
		return
	}

	// chain fingerprints by copying the value of the last fingerprint to the
	// head of the video data
	n := copy(dig.pixels, dig.digest[:])
	copy(dig.pixels[n:], frame.Pixels[:])
	dig.digest = sha1.Sum(dig.pixels)
	dig.frameNum = frame.Number
}
