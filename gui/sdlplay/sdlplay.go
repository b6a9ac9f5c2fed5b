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

// Package sdlplay presents the frames of a running emulation in an SDL window
// and forwards keyboard input to the controllers.
//
// All functions must be called from the main thread.
package sdlplay

import (
	"fmt"
	"os"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/gopherfc/gopherfc/gui"
	"github.com/gopherfc/gopherfc/gui/colours"
	"github.com/gopherfc/gopherfc/hardware/clocks"
	"github.com/gopherfc/gopherfc/hardware/ppu/framebuffer"
	"github.com/gopherfc/gopherfc/logger"
	"github.com/gopherfc/gopherfc/paths"
	"github.com/gopherfc/gopherfc/performance/limiter"
	"github.com/gopherfc/gopherfc/version"
)

const pixelDepth = 4

// screenshots are scaled by this amount
const screenshotScale = 3

// Emulation is the part of the console needed by the window.
type Emulation interface {
	gui.Buttons
	GetFrame() *framebuffer.Frame
	Pause(pause bool)
	Paused() bool
}

// SdlPlay is a simple SDL window showing the frames of the emulation.
type SdlPlay struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	palette *colours.Palette

	// frame converted to RGBA
	pixels []byte

	// limit screen updates to the refresh rate of the console
	lmtr *limiter.FpsLimiter

	// the name of the cartridge is used for screenshot filenames
	name string
}

// NewSdlPlay is the preferred method of initialisation for SdlPlay. The
// window is the size of the frame multiplied by scale.
func NewSdlPlay(name string, scale float32) (*SdlPlay, error) {
	scr := &SdlPlay{
		palette: colours.NewPalette(),
		pixels:  make([]byte, framebuffer.Width*framebuffer.Height*pixelDepth),
		name:    name,
	}

	var err error

	err = sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, fmt.Errorf("sdlplay: %w", err)
	}

	scale = max(scale, 1.0)
	w := int32(float32(framebuffer.Width) * scale)
	h := int32(float32(framebuffer.Height) * scale)

	scr.window, err = sdl.CreateWindow(version.ApplicationName,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		w, h,
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return nil, fmt.Errorf("sdlplay: %w", err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return nil, fmt.Errorf("sdlplay: %w", err)
	}

	// the texture is the size of the frame. the renderer stretches it to fit
	// the window
	scr.texture, err = scr.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING),
		framebuffer.Width, framebuffer.Height)
	if err != nil {
		return nil, fmt.Errorf("sdlplay: %w", err)
	}

	scr.lmtr, err = limiter.NewFPSLimiter(clocks.FramesPerSecond)
	if err != nil {
		return nil, fmt.Errorf("sdlplay: %w", err)
	}

	// mouse motion events are of no interest
	sdl.EventState(sdl.MOUSEMOTION, sdl.IGNORE)

	return scr, nil
}

// Destroy releases the SDL resources.
func (scr *SdlPlay) Destroy() {
	scr.lmtr.Stop()
	if err := scr.texture.Destroy(); err != nil {
		logger.Log(logger.Allow, "sdlplay", err.Error())
	}
	if err := scr.renderer.Destroy(); err != nil {
		logger.Log(logger.Allow, "sdlplay", err.Error())
	}
	if err := scr.window.Destroy(); err != nil {
		logger.Log(logger.Allow, "sdlplay", err.Error())
	}
	sdl.Quit()
}

// present the latest frame in the window
func (scr *SdlPlay) present(frame *framebuffer.Frame) error {
	scr.palette.ToRGBA(frame, scr.pixels)

	dst, pitch, err := scr.texture.Lock(nil)
	if err != nil {
		return err
	}
	row := framebuffer.Width * pixelDepth
	for y := range framebuffer.Height {
		copy(dst[y*pitch:y*pitch+row], scr.pixels[y*row:(y+1)*row])
	}
	scr.texture.Unlock()

	err = scr.renderer.Copy(scr.texture, nil, nil)
	if err != nil {
		return err
	}
	scr.renderer.Present()

	return nil
}

func (scr *SdlPlay) screenshot(frame *framebuffer.Frame) {
	fn := fmt.Sprintf("%s.png", paths.UniqueFilename("screenshot", scr.name))

	f, err := os.Create(fn)
	if err != nil {
		logger.Log(logger.Allow, "sdlplay", err.Error())
		return
	}
	defer f.Close()

	err = scr.palette.Screenshot(f, frame, screenshotScale)
	if err != nil {
		logger.Log(logger.Allow, "sdlplay", err.Error())
		return
	}

	logger.Logf(logger.Allow, "sdlplay", "screenshot saved to %s", fn)
}
