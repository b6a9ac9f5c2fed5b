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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/bradleyjkemp/memviz"

	"github.com/gopherfc/gopherfc/digest"
	"github.com/gopherfc/gopherfc/disassembly"
	"github.com/gopherfc/gopherfc/govern"
	"github.com/gopherfc/gopherfc/gui/sdlplay"
	"github.com/gopherfc/gopherfc/hardware"
	"github.com/gopherfc/gopherfc/hardware/clocks"
	"github.com/gopherfc/gopherfc/hardware/memory/addresses"
	"github.com/gopherfc/gopherfc/logger"
	"github.com/gopherfc/gopherfc/modalflag"
	"github.com/gopherfc/gopherfc/performance"
	"github.com/gopherfc/gopherfc/performance/limiter"
	"github.com/gopherfc/gopherfc/prefs"
	"github.com/gopherfc/gopherfc/statsview"
	"github.com/gopherfc/gopherfc/terminal"
	"github.com/gopherfc/gopherfc/version"
)

// SDL requires that window events are handled on the main thread
func init() {
	runtime.LockOSThread()
}

// #mainthread
func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "HEADLESS", "PERFORMANCE", "DIGEST", "MEMVIZ", "DISASM")
	echo := md.AddBool("log", false, "echo log to stdout")
	showVersion := md.AddBool("version", false, "print version information and exit")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* %s\n", err)
		os.Exit(10)
	}

	if *showVersion {
		v, rev, _ := version.Version()
		fmt.Printf("%s %s (%s)\n", version.ApplicationName, v, rev)
		os.Exit(0)
	}

	if *echo {
		logger.SetEcho(os.Stdout, true)
	}

	switch md.Mode() {
	case "RUN":
		err = play(md)
	case "HEADLESS":
		err = headless(md)
	case "PERFORMANCE":
		err = perform(md)
	case "DIGEST":
		err = videoDigest(md)
	case "MEMVIZ":
		err = memoryGraph(md)
	case "DISASM":
		err = disassemble(md)
	}

	if err != nil {
		fmt.Printf("* %s\n", err)
		os.Exit(20)
	}
}

// create the console for the cartridge named in the first argument. the
// prefs string overrides hardware preferences for this run only
func newConsole(md *modalflag.Modes, prefsOverride string) (*hardware.Console, error) {
	filename := md.GetArg(0)
	if filename == "" {
		return nil, fmt.Errorf("%s requires a cartridge file", md.Mode())
	}

	rom, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	prefs.PushCommandLineStack(prefsOverride)
	defer func() {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			logger.Logf(logger.Allow, "gopherfc", "unused preferences: %s", unused)
		}
	}()

	return hardware.NewConsole(filename, rom, nil)
}

func play(md *modalflag.Modes) error {
	md.NewMode()
	scale := md.AddFloat64("scale", 3.0, "window scaling")
	prefsOverride := md.AddString("prefs", "", "hardware preferences for this run (eg. \"hardware.fastscanline::false\")")

	var stats *bool
	if statsview.Available() {
		stats = md.AddBool("statsview", false, "run stats server")
	}

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	if stats != nil && *stats {
		svp, err := statsview.NewPreferences()
		if err != nil {
			return err
		}
		defer statsview.Launch(os.Stdout, svp).Stop()
	}

	con, err := newConsole(md, *prefsOverride)
	if err != nil {
		return err
	}

	scr, err := sdlplay.NewSdlPlay(md.GetArg(0), float32(*scale))
	if err != nil {
		return err
	}
	defer scr.Destroy()

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	con.Start()
	defer con.Stop()

	for scr.Service(con) {
		select {
		case <-intChan:
			return nil
		default:
		}
	}

	return nil
}

func headless(md *modalflag.Modes) error {
	md.NewMode()
	frames := md.AddInt("frames", 0, "number of frames to run (0 runs until quit)")
	uncapped := md.AddBool("uncapped", false, "run as quickly as possible")
	prefsOverride := md.AddString("prefs", "", "hardware preferences for this run")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	con, err := newConsole(md, *prefsOverride)
	if err != nil {
		return err
	}

	// keyboard input is optional
	var quit <-chan bool
	inp, err := terminal.NewInput(os.Stdin)
	if err != nil {
		logger.Log(logger.Allow, "gopherfc", err.Error())
	} else {
		defer inp.CleanUp()
		quit = inp.Start(con)
	}

	var lmtr *limiter.FpsLimiter
	if !*uncapped {
		lmtr, err = limiter.NewFPSLimiter(clocks.FramesPerSecond)
		if err != nil {
			return err
		}
		defer lmtr.Stop()
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	con.ColdBoot()

	var count int
	return con.Run(func() (govern.State, error) {
		select {
		case <-intChan:
			return govern.Ending, nil
		case <-quit:
			return govern.Ending, nil
		default:
		}

		if con.Paused() {
			time.Sleep(10 * time.Millisecond)
			return govern.Paused, nil
		}

		count++
		if *frames > 0 && count >= *frames {
			return govern.Ending, nil
		}

		if lmtr != nil {
			lmtr.Wait()
		}

		return govern.Running, nil
	})
}

func perform(md *modalflag.Modes) error {
	md.NewMode()
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddString("profile", "none", "run performance check with profiling: cpu, mem, trace, all (comma separated)")
	prefsOverride := md.AddString("prefs", "", "hardware preferences for this run")

	var stats *bool
	if statsview.Available() {
		stats = md.AddBool("statsview", false, "run stats server")
	}

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	if stats != nil && *stats {
		svp, err := statsview.NewPreferences()
		if err != nil {
			return err
		}
		defer statsview.Launch(os.Stdout, svp).Stop()
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	con, err := newConsole(md, *prefsOverride)
	if err != nil {
		return err
	}
	con.ColdBoot()

	return performance.Check(os.Stdout, con, *duration, prf)
}

func videoDigest(md *modalflag.Modes) error {
	md.NewMode()
	frames := md.AddInt("frames", 60, "number of frames to run")
	prefsOverride := md.AddString("prefs", "", "hardware preferences for this run")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	con, err := newConsole(md, *prefsOverride)
	if err != nil {
		return err
	}
	con.ColdBoot()

	dig := digest.NewVideo()
	err = con.RunForFrameCount(*frames, func(_ int) (govern.State, error) {
		dig.Digest(con.GetFrame())
		return govern.Running, nil
	})
	if err != nil {
		return err
	}

	fmt.Println(dig.Hash())

	return nil
}

func memoryGraph(md *modalflag.Modes) error {
	md.NewMode()
	frames := md.AddInt("frames", 1, "number of frames to run before writing the graph")
	output := md.AddString("out", "console.dot", "graphviz output file")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	con, err := newConsole(md, "")
	if err != nil {
		return err
	}
	con.ColdBoot()

	err = con.RunForFrameCount(*frames, nil)
	if err != nil {
		return err
	}

	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	defer f.Close()

	memviz.Map(f, con)
	fmt.Printf("console graph written to %s\n", *output)

	return nil
}

func disassemble(md *modalflag.Modes) error {
	md.NewMode()
	origin := md.AddInt("origin", -1, "address to start disassembly. defaults to the reset vector")
	count := md.AddInt("count", 64, "number of instructions to disassemble")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	con, err := newConsole(md, "")
	if err != nil {
		return err
	}

	address := con.Mem.Read16(addresses.Reset)
	if *origin >= 0 {
		if *origin > 0xffff {
			return fmt.Errorf("origin out of range: %#x", *origin)
		}
		address = uint16(*origin)
	}

	return disassembly.Write(os.Stdout, con.Mem, address, *count)
}
