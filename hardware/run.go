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
	"github.com/gopherfc/gopherfc/curated"
	"github.com/gopherfc/gopherfc/govern"
	"github.com/gopherfc/gopherfc/hardware/clocks"
	"github.com/gopherfc/gopherfc/hardware/cpu/registers"
	"github.com/gopherfc/gopherfc/hardware/memory/addresses"
	"github.com/gopherfc/gopherfc/logger"
	"github.com/gopherfc/gopherfc/performance/limiter"
)

// RunFrame runs the emulation until the frame counter of the scheduler
// changes or until Stop() is called.
func (con *Console) RunFrame() {
	frame := con.Sched.Frame()
	for frame == con.Sched.Frame() && !con.stop.Load() {
		con.step()
	}
}

// one block of CPU instructions followed by the catch-up of the rest of the
// console
func (con *Console) step() {
	estimate := con.Sched.CyclesTillNextInterrupt()

	// during the vertical blank nothing the CPU does to the picture unit can
	// be seen until the pre-render line. register writes can be queued until
	// then
	var deferred bool
	if con.PPU.InVBlank() && con.Prefs.DeferredWrites.Get().(bool) {
		remaining := con.PPU.CyclesUntilPreRender()/clocks.CPUDivider - con.Prefs.DeferredMargin.Get().(int)
		if remaining > 0 {
			estimate = min(estimate, remaining)
			deferred = true
		}
	}

	executed := con.CPU.RunFor(estimate, deferred)
	con.Sched.AdvanceBy(executed)
	con.PPU.CatchUp(con.Sched.Cycle())

	con.serviceInterrupts()
}

func (con *Console) serviceInterrupts() {
	var cycles int

	if con.CPU.NMIPending {
		con.CPU.NMIPending = false
		if con.PPU.NMIEnabled() {
			cycles += con.CPU.Interrupt(addresses.NMI)
		}
	}

	if con.CPU.IRQPending && !con.CPU.Status.Is(registers.InterruptDisable) {
		con.CPU.IRQPending = false
		cycles += con.CPU.Interrupt(addresses.IRQ)
	}

	if cycles > 0 {
		con.Sched.AdvanceBy(cycles)
		con.PPU.CatchUp(con.Sched.Cycle())
	}
}

// Run sets the emulation running as quickly as possible on the calling
// goroutine. The continueCheck() function is called at the end of every
// frame and should return govern.Ending when the emulation should end.
func (con *Console) Run(continueCheck func() (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	var err error

	state := govern.Running
	con.setState(state)

	for state != govern.Ending && !con.stop.Load() {
		switch state {
		case govern.Running:
			con.RunFrame()
		case govern.Paused:
		default:
			return curated.Errorf("console: unsupported emulation state (%s) in Run() function", state)
		}

		state, err = continueCheck()
		if err != nil {
			return err
		}
		con.setState(state)
	}

	return nil
}

// RunForFrameCount sets emulator running for the specified number of frames.
// Useful for FPS measurement and digest tests.
func (con *Console) RunForFrameCount(numFrames int, continueCheck func(frame int) (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func(frame int) (govern.State, error) { return govern.Running, nil }
	}

	frameNum := int(con.Sched.Frame())
	targetFrame := frameNum + numFrames

	state := govern.Running
	con.setState(state)

	for frameNum != targetFrame && state != govern.Ending && !con.stop.Load() {
		con.RunFrame()
		frameNum = int(con.Sched.Frame())

		var err error
		state, err = continueCheck(frameNum)
		if err != nil {
			return err
		}
	}

	return nil
}

// Start runs the emulation in its own goroutine. The console is cold booted
// the first time it is started. A console that has been stopped continues
// from where it left off.
//
// The emulation runs until Stop() is called. It is limited to the frame rate
// of the console unless the FPSCap preference is false.
func (con *Console) Start() {
	con.crit.Lock()
	defer con.crit.Unlock()

	if con.done != nil {
		return
	}
	con.done = make(chan bool)
	con.stop.Store(false)

	go con.worker(con.done)
}

func (con *Console) worker(done chan bool) {
	defer close(done)

	if !con.booted {
		con.ColdBoot()
	}

	var lmtr *limiter.FpsLimiter
	if con.Prefs.FPSCap.Get().(bool) {
		var err error
		lmtr, err = limiter.NewFPSLimiter(clocks.FramesPerSecond)
		if err != nil {
			logger.Log(logger.Allow, "console", err.Error())
		} else {
			defer lmtr.Stop()
		}
	}

	logger.Log(logger.Allow, "console", "emulation started")

	for {
		con.crit.Lock()
		for con.paused && !con.stop.Load() {
			con.setStateLocked(govern.Paused)
			con.cond.Wait()
		}
		if con.stop.Load() {
			con.setStateLocked(govern.Ending)
			con.crit.Unlock()
			logger.Log(logger.Allow, "console", "emulation stopped")
			return
		}
		con.setStateLocked(govern.Running)
		con.crit.Unlock()

		con.RunFrame()

		if lmtr != nil {
			lmtr.Wait()
		}
	}
}

// Stop the emulation goroutine started by Start(). The function returns when
// the goroutine has ended. The CPU checks for the stop signal between
// instructions so the goroutine ends promptly.
func (con *Console) Stop() {
	con.crit.Lock()
	done := con.done
	con.stop.Store(true)
	con.cond.Broadcast()
	con.crit.Unlock()

	if done == nil {
		return
	}
	<-done

	con.crit.Lock()
	if con.done == done {
		con.done = nil
	}
	con.crit.Unlock()
}

// Pause or resume the emulation. The pause takes effect at the end of the
// current frame.
func (con *Console) Pause(pause bool) {
	con.crit.Lock()
	defer con.crit.Unlock()

	if con.paused == pause {
		return
	}
	con.paused = pause
	con.cond.Broadcast()

	if pause {
		logger.Log(logger.Allow, "console", "emulation paused")
	} else {
		logger.Log(logger.Allow, "console", "emulation resumed")
	}
}

// Paused returns true if the emulation has been asked to pause.
func (con *Console) Paused() bool {
	con.crit.Lock()
	defer con.crit.Unlock()
	return con.paused
}
