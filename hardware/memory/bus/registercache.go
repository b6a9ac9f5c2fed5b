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

package bus

import (
	"fmt"

	"github.com/gopherfc/gopherfc/hardware/memory/addresses"
)

// RegisterCacheEntry is a register access that has been deferred.
type RegisterCacheEntry struct {
	Address uint16
	Value   uint8
	IsWrite bool
}

func (e RegisterCacheEntry) String() string {
	sym := addresses.Symbol(e.Address)
	if sym == "" {
		sym = fmt.Sprintf("%04x", e.Address)
	}
	if e.IsWrite {
		return fmt.Sprintf("%s <- %02x", sym, e.Value)
	}
	return fmt.Sprintf("%s ->", sym)
}

// RegisterCache is a FIFO queue of deferred register accesses.
type RegisterCache struct {
	entries []RegisterCacheEntry
}

// Push an entry onto the end of the queue.
func (rc *RegisterCache) Push(e RegisterCacheEntry) {
	rc.entries = append(rc.entries, e)
}

// Len returns the number of entries in the queue.
func (rc *RegisterCache) Len() int {
	return len(rc.entries)
}

// Drain calls f for every entry, in the order they were pushed, and empties
// the queue.
func (rc *RegisterCache) Drain(f func(RegisterCacheEntry)) {
	for _, e := range rc.entries {
		f(e)
	}
	rc.entries = rc.entries[:0]
}
