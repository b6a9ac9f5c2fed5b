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

// Package hardware is the base package for the emulated console. The Console
// type ties the CPU, the picture unit, the memory bus and the scheduler
// together.
//
// Emulation is advanced one frame at a time with RunFrame(). A frame is run
// as a series of CPU blocks. The length of each block is limited by the next
// scheduled interrupt and, during the vertical blank, by the start of the
// pre-render line. After each block the scheduler is advanced and the picture
// unit catches up with the master clock.
//
// The Start(), Stop() and Pause() functions run the emulation in its own
// goroutine. Completed frames are collected with GetFrame(), which is safe to
// call from any goroutine, as are the Press() and Release() functions.
package hardware
