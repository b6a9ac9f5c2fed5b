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

package limiter_test

import (
	"testing"
	"time"

	"github.com/gopherfc/gopherfc/performance/limiter"
	"github.com/gopherfc/gopherfc/test"
)

func TestLimiter(t *testing.T) {
	_, err := limiter.NewFPSLimiter(0)
	test.ExpectFailure(t, err)

	lim, err := limiter.NewFPSLimiter(100)
	test.DemandSuccess(t, err)
	defer lim.Stop()

	start := time.Now()
	for range 10 {
		lim.Wait()
	}

	// ten ticks at 100fps is at least 90ms because the first tick is
	// immediate
	test.ExpectSuccess(t, time.Since(start) >= 80*time.Millisecond)
}
