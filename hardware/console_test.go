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

package hardware_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gopherfc/gopherfc/curated"
	"github.com/gopherfc/gopherfc/govern"
	"github.com/gopherfc/gopherfc/hardware"
	"github.com/gopherfc/gopherfc/hardware/controller"
	"github.com/gopherfc/gopherfc/hardware/memory/cartridge"
	"github.com/gopherfc/gopherfc/hardware/preferences"
	"github.com/gopherfc/gopherfc/hardware/scheduler"
	"github.com/gopherfc/gopherfc/test"
)

const prgSize = 0x4000

// a cartridge image with one PRG bank, no CHR and vertical mirroring. the
// PRG is filled with NOP instructions and the reset vector points to the
// start of the PRG
func nopCartridge() []byte {
	rom := make([]byte, cartridge.HeaderSize+prgSize)
	copy(rom, []byte{'N', 'E', 'S', 0x1a, 0x01, 0x00, 0x01})

	prg := rom[cartridge.HeaderSize:]
	for i := range prg {
		prg[i] = 0xea
	}
	prg[0x3ffc] = 0x00
	prg[0x3ffd] = 0x80

	return rom
}

func newConsole(t *testing.T, rom []byte) *hardware.Console {
	t.Helper()

	prefs, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)

	con, err := hardware.NewConsole("test", rom, prefs)
	test.DemandSuccess(t, err)

	return con
}

func TestMalformedCartridge(t *testing.T) {
	rom := nopCartridge()

	_, err := hardware.NewConsole("test", rom[:len(rom)-1], nil)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, cartridge.SizeMismatch))

	rom[0] = 'X'
	_, err = hardware.NewConsole("test", rom, nil)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, cartridge.MalformedHeader))
}

func TestRunFrame(t *testing.T) {
	con := newConsole(t, nopCartridge())
	con.ColdBoot()
	test.ExpectEquality(t, con.CPU.PC, uint16(0x8000))
	test.ExpectEquality(t, con.State(), govern.Initialising)

	con.RunFrame()
	test.ExpectEquality(t, con.Sched.Frame(), uint64(1))

	// the CPU has executed nothing but NOPs
	test.ExpectEquality(t, con.CPU.SP, uint8(0xfd))
	test.ExpectInequality(t, con.CPU.PC, uint16(0x8000))

	// the picture unit is never more than one instruction behind the
	// scheduler
	test.ExpectSuccess(t, con.PPU.Cycle() >= con.Sched.Cycle())
	test.ExpectSuccess(t, con.PPU.Cycle()-con.Sched.Cycle() < 4)
}

func TestNMI(t *testing.T) {
	rom := nopCartridge()
	prg := rom[cartridge.HeaderSize:]

	// enable NMI and loop forever
	copy(prg[0x0000:], []byte{
		0xa9, 0x80, // LDA #$80
		0x8d, 0x00, 0x20, // STA $2000
		0x4c, 0x05, 0x80, // JMP $8005
	})

	// the NMI handler counts the number of interrupts
	copy(prg[0x1000:], []byte{
		0xe6, 0x10, // INC $10
		0x40, // RTI
	})
	prg[0x3ffa] = 0x00
	prg[0x3ffb] = 0x90

	con := newConsole(t, rom)
	con.ColdBoot()

	err := con.RunForFrameCount(3, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, con.Sched.Frame(), uint64(3))

	// the NMI at the end of the third frame has been serviced but the
	// handler has not yet run
	test.ExpectEquality(t, con.Mem.Read8(0x0010), uint8(2))
	test.ExpectEquality(t, con.CPU.PC, uint16(0x9000))
	test.ExpectSuccess(t, con.PPU.NMIEnabled())
}

func TestNMIDisabled(t *testing.T) {
	rom := nopCartridge()
	prg := rom[cartridge.HeaderSize:]
	copy(prg[0x0000:], []byte{
		0x4c, 0x00, 0x80, // JMP $8000
	})
	prg[0x3ffa] = 0x00
	prg[0x3ffb] = 0x90

	con := newConsole(t, rom)
	con.ColdBoot()
	test.DemandSuccess(t, con.RunForFrameCount(2, nil))

	// the scheduled NMI was discarded
	test.ExpectEquality(t, con.CPU.SP, uint8(0xfd))
	test.ExpectFailure(t, con.CPU.NMIPending)
}

func TestContinueCheck(t *testing.T) {
	con := newConsole(t, nopCartridge())
	con.ColdBoot()

	var frames int
	err := con.Run(func() (govern.State, error) {
		frames++
		if frames == 2 {
			return govern.Ending, nil
		}
		return govern.Running, nil
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, con.Sched.Frame(), uint64(2))
	test.ExpectEquality(t, con.State(), govern.Ending)
}

func TestControllers(t *testing.T) {
	con := newConsole(t, nopCartridge())

	con.Press(0, controller.Start)
	con.Press(1, controller.A)
	con.Press(2, controller.A)
	test.ExpectSuccess(t, con.Controllers[0].IsPressed(controller.Start))
	test.ExpectFailure(t, con.Controllers[0].IsPressed(controller.A))
	test.ExpectSuccess(t, con.Controllers[1].IsPressed(controller.A))

	con.Release(0, controller.Start)
	test.ExpectFailure(t, con.Controllers[0].IsPressed(controller.Start))

	// out of range buttons are ignored
	con.Press(0, controller.Button(-1))
	con.Press(1, controller.Button(controller.NumButtons))
	test.ExpectEquality(t, con.Controllers[0].String(), "--------")
	test.ExpectEquality(t, con.Controllers[1].String(), "A-------")
}

// wait for the condition to be true or fail after a generous timeout
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestWorker(t *testing.T) {
	con := newConsole(t, nopCartridge())
	con.Start()

	waitFor(t, func() bool {
		return con.GetFrame().Number >= 2
	})

	con.Pause(true)
	test.ExpectSuccess(t, con.Paused())
	waitFor(t, func() bool {
		return con.State() == govern.Paused
	})

	// the frame doesn't change while paused
	f := con.GetFrame()
	test.ExpectEquality(t, con.GetFrame(), f)

	con.Pause(false)
	waitFor(t, func() bool {
		return con.State() == govern.Running
	})

	con.Stop()
	test.ExpectEquality(t, con.State(), govern.Ending)
}

func TestWorkerRestart(t *testing.T) {
	con := newConsole(t, nopCartridge())
	con.Start()
	waitFor(t, func() bool {
		return con.GetFrame().Number >= 2
	})
	con.Stop()
	test.ExpectEquality(t, con.State(), govern.Ending)

	n := con.GetFrame().Number
	pc := con.CPU.PC

	// the console continues from where it stopped and is not cold booted
	// again
	con.Start()
	waitFor(t, func() bool {
		return con.GetFrame().Number > n
	})
	test.ExpectEquality(t, con.State(), govern.Running)
	con.Stop()

	test.ExpectInequality(t, con.CPU.PC, pc)
	test.ExpectEquality(t, con.Sched.Pending(), 1)
	test.ExpectEquality(t, con.State(), govern.Ending)

	// stopping a stopped console is harmless
	con.Stop()
}

func TestWorkerFPSCap(t *testing.T) {
	con := newConsole(t, nopCartridge())
	test.DemandSuccess(t, con.Prefs.FPSCap.Get().(bool))

	con.Start()
	time.Sleep(500 * time.Millisecond)
	con.Stop()

	// thirty frames in half a second. the limit is generous to allow for a
	// slow start of the worker
	frames := con.Sched.Frame()
	test.ExpectSuccess(t, frames > 0)
	test.ExpectSuccess(t, frames <= 45, frames)
}

// the console starts at the beginning of the vertical blank. the deferred
// write window closes DeferredMargin CPU cycles before the pre-render line
func TestDeferredWriteWindow(t *testing.T) {
	rom := nopCartridge()
	prg := rom[cartridge.HeaderSize:]
	copy(prg[0x0000:], []byte{
		0xa9, 0x04, // LDA #$04
		0x8d, 0x00, 0x20, // STA $2000
	})

	con := newConsole(t, rom)
	con.ColdBoot()
	test.DemandSuccess(t, con.PPU.InVBlank())

	// 20 scanlines of 341 dots is 2273 CPU cycles. less the margin of 114
	// leaves 2159 cycles. the block of two cycle instructions ends at 2158
	test.ExpectEquality(t, con.PPU.CyclesUntilPreRender(), 20*341*4)
	con.Step()
	test.ExpectEquality(t, con.Sched.Cycle(), uint64(2158*12))

	// the register write was queued and applied by the catch-up
	test.ExpectEquality(t, con.PPU.Ctrl(), uint8(0x04))
	test.ExpectEquality(t, con.Mem.PendingRegisterWrites(), 0)

	// without deferred writes the block ends at the register write
	con = newConsole(t, rom)
	test.DemandSuccess(t, con.Prefs.DeferredWrites.Set(false))
	con.ColdBoot()
	con.Step()
	test.ExpectEquality(t, con.Sched.Cycle(), uint64(2*12))
	test.ExpectEquality(t, con.PPU.Ctrl(), uint8(0x00))
	con.Step()
	test.ExpectEquality(t, con.PPU.Ctrl(), uint8(0x04))
}

func TestIRQ(t *testing.T) {
	rom := nopCartridge()
	prg := rom[cartridge.HeaderSize:]
	prg[0x0000] = 0x58 // CLI
	prg[0x3ffe] = 0x00
	prg[0x3fff] = 0x91

	con := newConsole(t, rom)
	con.ColdBoot()
	con.Sched.ScheduleInterrupt(100*12, scheduler.APU, false)

	// the interrupt is serviced at the end of the block and charged seven
	// cycles
	con.Step()
	test.ExpectEquality(t, con.CPU.PC, uint16(0x9100))
	test.ExpectEquality(t, con.CPU.SP, uint8(0xfa))
	test.ExpectFailure(t, con.CPU.IRQPending)
	test.ExpectEquality(t, con.Sched.Cycle(), uint64((100+7)*12))
	test.ExpectSuccess(t, con.PPU.Cycle() >= con.Sched.Cycle())

	// the return address on the stack is the instruction after the block
	test.ExpectEquality(t, con.Mem.Read8(0x01fd), uint8(0x80))
	test.ExpectEquality(t, con.Mem.Read8(0x01fc), uint8(0x32))

	// the interrupt waits while the interrupt disable flag is set
	prg[0x0000] = 0xea
	con = newConsole(t, rom)
	con.ColdBoot()
	con.Sched.ScheduleInterrupt(100*12, scheduler.APU, false)
	con.Step()
	test.ExpectSuccess(t, con.CPU.IRQPending)
	test.ExpectEquality(t, con.CPU.PC, uint16(0x8032))
	test.ExpectEquality(t, con.Sched.Cycle(), uint64(100*12))
}

func BenchmarkRunFrame(b *testing.B) {
	prefs, err := preferences.NewPreferencesFromFile(filepath.Join(b.TempDir(), "preferences"))
	if err != nil {
		b.Fatal(err)
	}

	con, err := hardware.NewConsole("benchmark", nopCartridge(), prefs)
	if err != nil {
		b.Fatal(err)
	}
	con.ColdBoot()

	for b.Loop() {
		con.RunFrame()
	}
}
