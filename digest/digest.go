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

// Package digest is used to create checksums of the emulation state. The
// Video type creates a chained digest of every frame produced by the picture
// unit. Two runs of the same cartridge for the same number of frames will
// produce the same digest.
//
// The digest is used by the DIGEST mode of the program to verify that changes
// to the emulation do not alter its output.
package digest

// Digest implementations compute a hash of some aspect of the emulation.
type Digest interface {
	Hash() string
	ResetDigest()
}
