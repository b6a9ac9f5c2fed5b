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

package terminal_test

import (
	"slices"
	"testing"

	"github.com/gopherfc/gopherfc/terminal"
	"github.com/gopherfc/gopherfc/test"
)

func TestKeyNames(t *testing.T) {
	keys := terminal.KeyNames([]byte("xZ \r"))
	test.ExpectSuccess(t, slices.Equal(keys, []string{"X", "Z", "Space", "Return"}))

	keys = terminal.KeyNames([]byte{0x1b, '[', 'A', 0x1b, '[', 'D', 'p'})
	test.ExpectSuccess(t, slices.Equal(keys, []string{"Up", "Left", "P"}))

	// a lone escape
	keys = terminal.KeyNames([]byte{0x1b})
	test.ExpectSuccess(t, slices.Equal(keys, []string{"Escape"}))

	// control characters are ignored
	keys = terminal.KeyNames([]byte{0x01, 0x7f})
	test.ExpectEquality(t, len(keys), 0)
}
