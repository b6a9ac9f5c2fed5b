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

package version_test

import (
	"testing"

	"github.com/gopherfc/gopherfc/version"
	"github.com/gopherfc/gopherfc/test"
)

func TestVersion(t *testing.T) {
	v, rev, release := version.Version()

	// tests are never built with a version number
	test.ExpectFailure(t, release)
	test.ExpectInequality(t, v, "")
	test.ExpectInequality(t, rev, "")
}
