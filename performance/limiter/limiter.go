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

// Package limiter provides a rough and ready way of limiting events to a fixed
// rate.
//
// A new FpsLimiter can be created with (error handling removed for clarity):
//
//	fps, _ := limiter.NewFPSLimiter(60.0)
//
// Operations can then be stalled with the Wait() function. For example:
//
//	for {
//		fps.Wait()
//		renderImage()
//	}
package limiter

import (
	"fmt"
	"sync/atomic"
	"time"
)

// FpsLimiter will trigger every frames per second.
type FpsLimiter struct {
	secondsPerFrame atomic.Int64

	tick chan bool
	quit chan bool
}

// NewFPSLimiter is the preferred method of initialisation for FpsLimiter type.
func NewFPSLimiter(framesPerSecond float64) (*FpsLimiter, error) {
	lim := &FpsLimiter{
		tick: make(chan bool),
		quit: make(chan bool),
	}

	err := lim.SetLimit(framesPerSecond)
	if err != nil {
		return nil, err
	}

	// run ticker concurrently. the sleep duration is adjusted by the amount
	// by which the previous sleep overran
	go func() {
		adjusted := time.Duration(lim.secondsPerFrame.Load())
		t := time.Now()
		for {
			select {
			case lim.tick <- true:
			case <-lim.quit:
				return
			}
			time.Sleep(adjusted)
			nt := time.Now()
			target := time.Duration(lim.secondsPerFrame.Load())
			adjusted -= nt.Sub(t) - target
			adjusted = max(adjusted, 0)
			t = nt
		}
	}()

	return lim, nil
}

// SetLimit changes the limit at which the FpsLimiter waits.
func (lim *FpsLimiter) SetLimit(framesPerSecond float64) error {
	if framesPerSecond <= 0 {
		return fmt.Errorf("limiter: frames per second must be positive (%f)", framesPerSecond)
	}
	lim.secondsPerFrame.Store(int64(float64(time.Second) / framesPerSecond))
	return nil
}

// Wait will block until trigger.
func (lim *FpsLimiter) Wait() {
	<-lim.tick
}

// HasWaited will return true if time has already elapsed and false it it is
// still yet to happen.
func (lim *FpsLimiter) HasWaited() bool {
	select {
	case <-lim.tick:
		return true
	default:
		// default case means that the channel receiving case doesn't block
		return false
	}
}

// Stop the ticker goroutine. The limiter can not be used after Stop() has
// been called.
func (lim *FpsLimiter) Stop() {
	close(lim.quit)
}
