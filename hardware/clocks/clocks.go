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

// Package clocks defines the constant values that define the speed of the
// master clock in the NTSC console and the fixed dividers from which the CPU
// and PPU clocks are derived.
//
// All timing in the emulation is accounted for in master clock cycles. CPU
// cycles and PPU dots are converted with the divider values.
package clocks

// MasterClock is the frequency of the NTSC master clock in Hz.
const MasterClock = 21477272

// FramesPerSecond is the NTSC refresh rate.
const FramesPerSecond = 60.0988118623

// Clock dividers.
const (
	CPUDivider = 12
	PPUDivider = 4
)

// Picture unit geometry.
const (
	DotsPerScanline   = 341
	ScanlinesPerFrame = 262
)

// CyclesPerFrame is the number of master clock cycles in one video frame
// (MasterClock / FramesPerSecond). It is the average of an even frame and an
// odd frame, the odd frame being one dot shorter.
const CyclesPerFrame = 357366

// CPUClock is the frequency of the CPU in Hz.
const CPUClock = float64(MasterClock) / CPUDivider
