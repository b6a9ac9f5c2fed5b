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

// Package preferences contains the tunables of the emulated console. Values
// are persisted in the shared preferences file under the "hardware." prefix.
package preferences

import (
	"fmt"

	"github.com/gopherfc/gopherfc/curated"
	"github.com/gopherfc/gopherfc/paths"
	"github.com/gopherfc/gopherfc/prefs"
)

// Preferences defines and collates all the preference values used by the
// hardware package.
type Preferences struct {
	dsk *prefs.Disk

	// CPU writes to the PPU and APU registers are queued in the register
	// cache rather than aborting the block when the PPU is in the vertical
	// blank
	DeferredWrites prefs.Bool

	// number of CPU cycles before the pre-render line at which the deferred
	// write window closes
	DeferredMargin prefs.Int

	// whole scanlines may be rendered in one step when nothing can change
	// during the line
	FastScanline prefs.Bool

	// blocks of CPU instructions aborted at an MMIO boundary are logged
	LogAborts prefs.Bool

	// the emulation worker is limited to the frame rate of the console
	FPSCap prefs.Bool
}

func (p *Preferences) String() string {
	return fmt.Sprintf("deferred writes: %s (margin %s), fast scanline: %s, log aborts: %s, fps cap: %s",
		p.DeferredWrites.String(), p.DeferredMargin.String(),
		p.FastScanline.String(), p.LogAborts.String(), p.FPSCap.String())
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return newPreferences(pth)
}

// NewPreferencesFromFile is the same as NewPreferences() except that the
// location of the preferences file is specified.
func NewPreferencesFromFile(pth string) (*Preferences, error) {
	return newPreferences(pth)
}

func newPreferences(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	var err error

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.deferredwrites", &p.DeferredWrites)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.deferredmargin", &p.DeferredMargin)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.fastscanline", &p.FastScanline)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.logaborts", &p.LogAborts)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.fpscap", &p.FPSCap)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load(true)
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all hardware preferences to the default values.
func (p *Preferences) SetDefaults() {
	p.DeferredWrites.Set(true)
	p.DeferredMargin.Set(114)
	p.FastScanline.Set(true)
	p.LogAborts.Set(false)
	p.FPSCap.Set(true)
}

// Load current hardware preference from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// AllowLogging implements the logger.Permission interface. It is the
// permission used to log MMIO aborts.
func (p *Preferences) AllowLogging() bool {
	return p.LogAborts.Get().(bool)
}
