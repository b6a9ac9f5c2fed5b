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

package hardware

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gopherfc/gopherfc/curated"
	"github.com/gopherfc/gopherfc/govern"
	"github.com/gopherfc/gopherfc/hardware/clocks"
	"github.com/gopherfc/gopherfc/hardware/controller"
	"github.com/gopherfc/gopherfc/hardware/cpu"
	"github.com/gopherfc/gopherfc/hardware/memory/bus"
	"github.com/gopherfc/gopherfc/hardware/memory/cartridge"
	"github.com/gopherfc/gopherfc/hardware/ppu"
	"github.com/gopherfc/gopherfc/hardware/ppu/framebuffer"
	"github.com/gopherfc/gopherfc/hardware/preferences"
	"github.com/gopherfc/gopherfc/hardware/scheduler"
	"github.com/gopherfc/gopherfc/logger"
)

// ConsoleError is the pattern for errors raised by the Console type.
const ConsoleError = "console: %v"

// the trainer is loaded into PRG RAM at this address
const trainerOrigin = 0x7000

// Console is the main container for the emulated components of the console.
type Console struct {
	Prefs *preferences.Preferences

	Cart        *cartridge.Cartridge
	Mem         *bus.Bus
	CPU         *cpu.CPU
	PPU         *ppu.PPU
	Sched       *scheduler.Scheduler
	Controllers [2]*controller.Controller

	// the frames shared with the presentation layer
	Frames *framebuffer.Buffers

	// polled by the CPU before every instruction
	stop atomic.Bool

	// the state of the emulation worker
	crit   sync.Mutex
	cond   *sync.Cond
	state  govern.State
	paused bool
	done   chan bool

	// ColdBoot() has been called
	booted bool
}

// NewConsole creates the console and inserts the cartridge. The filename is
// for information only. If prefs is nil then the hardware preferences are
// loaded from the default location.
func NewConsole(filename string, rom []byte, prefs *preferences.Preferences) (*Console, error) {
	cart, err := cartridge.NewCartridge(filename, rom)
	if err != nil {
		return nil, err
	}

	if prefs == nil {
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, curated.Errorf(ConsoleError, err)
		}
	}

	con := &Console{
		Prefs:  prefs,
		Cart:   cart,
		Frames: framebuffer.NewBuffers(),
		state:  govern.EmulatorStart,
	}
	con.cond = sync.NewCond(&con.crit)

	for i := range con.Controllers {
		con.Controllers[i] = controller.NewController()
	}

	con.Mem = bus.NewBus(con.Cart, con.Controllers)
	for i, v := range con.Cart.Trainer {
		con.Mem.Write8(uint16(trainerOrigin+i), v)
	}

	con.CPU = cpu.NewCPU(con.Mem)
	con.CPU.SetStopSignal(&con.stop)
	con.CPU.SetAbortLogging(con.Prefs)

	con.PPU = ppu.NewPPU(con.Mem, con.CPU, con.Frames)
	con.PPU.SetFastScanline(con.Prefs.FastScanline.Get().(bool))
	con.Mem.Plumb(con.PPU)

	con.Sched = scheduler.NewScheduler(con.CPU)

	return con, nil
}

func (con *Console) String() string {
	return fmt.Sprintf("%s\n%s\nframe %d", con.CPU, con.PPU, con.Sched.Frame())
}

// ColdBoot puts the console in the power-on state. The NMI is scheduled to
// occur once every frame and the CPU is reset. Any previously scheduled
// interrupts are removed.
func (con *Console) ColdBoot() {
	con.setState(govern.Initialising)
	con.booted = true
	con.Sched.Clear()
	con.Sched.ScheduleInterrupt(clocks.CyclesPerFrame, scheduler.NMI, true)
	con.CPU.Reset()
	logger.Logf(logger.Allow, "console", "cold boot. PC=%04x", con.CPU.PC)
}

// State returns the current state of the emulation.
func (con *Console) State() govern.State {
	con.crit.Lock()
	defer con.crit.Unlock()
	return con.state
}

func (con *Console) setState(state govern.State) {
	con.crit.Lock()
	defer con.crit.Unlock()
	con.setStateLocked(state)
}

// must be called with the critical section held
func (con *Console) setStateLocked(state govern.State) {
	if con.state == state {
		return
	}
	if !govern.Transition(con.state, state) {
		logger.Logf(logger.Allow, "console", "illegal state change: %s -> %s", con.state, state)
		return
	}
	con.state = state
}

// GetFrame returns the most recently completed frame. The frame belongs to
// the caller until the next call to GetFrame().
func (con *Console) GetFrame() *framebuffer.Frame {
	return con.Frames.Latest(con.Paused())
}

// Press a button on one of the two controllers.
func (con *Console) Press(player int, button controller.Button) {
	if player < 0 || player >= len(con.Controllers) || !button.Valid() {
		return
	}
	con.Controllers[player].Press(button)
}

// Release a button on one of the two controllers.
func (con *Console) Release(player int, button controller.Button) {
	if player < 0 || player >= len(con.Controllers) || !button.Valid() {
		return
	}
	con.Controllers[player].Release(button)
}
