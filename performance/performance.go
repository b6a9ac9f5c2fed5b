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

package performance

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gopherfc/gopherfc/govern"
	"github.com/gopherfc/gopherfc/hardware"
)

// sentinal error returned by Run() loop.
var timedOut = errors.New("performance timed out")

// the amount of time the emulation runs before measurement begins
const leadTime = 2 * time.Second

// Check the performance of the emulator with the supplied console. The
// console should have been cold booted.
//
// Emulation will run for the specified duration and will create a cpu, memory
// profile, a trace (or a combination of those) as defined by the Profile
// argument.
func Check(output io.Writer, con *hardware.Console, duration string, profile Profile) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	startFrame := con.Sched.Frame()

	runner := func() error {
		// signals false when the lead time has elapsed and true when the
		// measurement period has finished
		timerChan := make(chan bool, 2)
		time.AfterFunc(leadTime, func() {
			timerChan <- false
			time.AfterFunc(dur, func() {
				timerChan <- true
			})
		})

		return con.Run(func() (govern.State, error) {
			select {
			case v := <-timerChan:
				if v {
					return govern.Ending, timedOut
				}

				// the lead time has concluded and measurement begins
				startFrame = con.Sched.Frame()
			default:
			}
			return govern.Running, nil
		})
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return fmt.Errorf("performance: %w", err)
	}

	numFrames := int(con.Sched.Frame() - startFrame)
	fps, accuracy := CalcFPS(numFrames, dur.Seconds())
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, dur.Seconds(), accuracy)

	return nil
}
