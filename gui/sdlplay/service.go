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

package sdlplay

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/gopherfc/gopherfc/gui"
	"github.com/gopherfc/gopherfc/logger"
)

// Service handles the queued SDL events and presents the latest frame of the
// emulation. Returns false if the window has been closed or if the quit key
// has been pressed.
//
// MUST ONLY be called from the main thread.
func (scr *SdlPlay) Service(emu Emulation) bool {
	// handle every queued event. truncating the queue would lose user input
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			return false

		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				continue
			}

			key := sdl.GetKeyName(ev.Keysym.Sym)
			down := ev.Type == sdl.KEYDOWN

			if down {
				switch key {
				case "Escape":
					return false
				case "P":
					emu.Pause(!emu.Paused())
					continue
				case "F12":
					scr.screenshot(emu.GetFrame())
					continue
				}
			}

			gui.HandleKey(emu, key, down)
		}
	}

	// wait for frame limiter
	scr.lmtr.Wait()

	err := scr.present(emu.GetFrame())
	if err != nil {
		logger.Log(logger.Allow, "sdlplay", err.Error())
	}

	return true
}
