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

// Package version reports the version of the program. The version number is
// set at link time with:
//
//	go build -ldflags "-X github.com/gopherfc/gopherfc/version.number=v0.1.0"
//
// The revision is taken from the build information embedded by the Go tool.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the program.
const ApplicationName = "Gopherfc"

// set by the linker. empty if the program was built without ldflags
var number string

var version string
var revision string

// Version returns the version string, the revision string and whether this is
// a numbered release.
//
// A version of "unreleased" means that the program was built from a
// repository without a version number. A version of "local" means that there
// is no version number and no repository information, which is the case with
// "go run".
func Version() (string, string, bool) {
	return version, revision, number != "" && version == number
}

func init() {
	vcs, rev, modified := buildInfo()

	switch {
	case rev == "":
		revision = "no revision information"
	case modified:
		revision = fmt.Sprintf("%s+dirty", rev)
	default:
		revision = rev
	}

	switch {
	case number != "":
		version = number
	case vcs:
		version = "unreleased"
	default:
		version = "local"
	}
}

func buildInfo() (vcs bool, revision string, modified bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return false, "", false
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs":
			vcs = true
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	return vcs, revision, modified
}
