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

// Package paths prepares paths to the emulator's resources.
//
//	pth, err := paths.ResourcePath("screenshots", "frame.png")
//
// If a directory named ".gopherfc" exists in the current directory then
// that is the base path. Otherwise the base is a "gopherfc" directory in the
// location returned by os.UserConfigDir(). On a Linux system that is
// typically:
//
//	/home/user/.config/gopherfc/screenshots/frame.png
//
// Missing directories are created.
package paths

import (
	"os"
	"path/filepath"
)

const localBase = ".gopherfc"
const configBase = "gopherfc"

// ResourcePath returns the path to the resource file in the sub-directory
// subPth. Either argument may be empty. The sub-directory is created if
// necessary.
func ResourcePath(subPth string, file string) (string, error) {
	base, err := basePath()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(base, subPth)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}

	return filepath.Join(dir, file), nil
}

func basePath() (string, error) {
	if fi, err := os.Stat(localBase); err == nil && fi.IsDir() {
		return localBase, nil
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(cnf, configBase), nil
}
