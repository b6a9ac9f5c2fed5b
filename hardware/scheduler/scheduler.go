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

// Package scheduler owns the master clock counter and the queue of pending
// interrupts. The CPU is informed of an interrupt through the Sink interface
// when the master clock crosses the interrupt's deadline.
package scheduler

import (
	"container/heap"
	"strings"

	"github.com/gopherfc/gopherfc/hardware/clocks"
)

// Sink is the receiver of interrupts. In the emulation this is the CPU.
type Sink interface {
	RaiseNMI()
	RaiseIRQ()
}

// Scheduler keeps the master clock. All values are in master cycles unless
// noted otherwise.
type Scheduler struct {
	sink  Sink
	cycle uint64
	frame uint64
	queue queue
}

// NewScheduler is the preferred method of initialisation for the Scheduler type.
func NewScheduler(sink Sink) *Scheduler {
	return &Scheduler{
		sink:  sink,
		queue: make(queue, 0, 4),
	}
}

// Plumb a new Sink into the Scheduler.
func (sch *Scheduler) Plumb(sink Sink) {
	sch.sink = sink
}

func (sch *Scheduler) String() string {
	s := strings.Builder{}
	for i, n := range sch.queue {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(n.String())
	}
	return s.String()
}

// Cycle returns the current master clock cycle.
func (sch *Scheduler) Cycle() uint64 {
	return sch.cycle
}

// Frame returns the number of whole frames that have elapsed.
func (sch *Scheduler) Frame() uint64 {
	return sch.frame
}

// Pending returns the number of interrupts in the queue.
func (sch *Scheduler) Pending() int {
	return len(sch.queue)
}

// Clear removes all pending interrupts. The master clock is unchanged.
func (sch *Scheduler) Clear() {
	sch.queue = sch.queue[:0]
}

// ScheduleInterrupt adds an interrupt that will be raised delta master cycles
// from now. If recurring is true the interrupt will be raised again every
// delta cycles.
func (sch *Scheduler) ScheduleInterrupt(delta uint64, source Source, recurring bool) {
	heap.Push(&sch.queue, Interrupt{
		Deadline:  sch.cycle + delta,
		Source:    source,
		Recurring: recurring,
		Period:    delta,
	})
}

// CyclesTillNextInterrupt returns the number of CPU cycles, rounded down,
// before the earliest interrupt is due.
//
// The function should not be called when the queue is empty. If it is then
// zero is returned, which restricts the CPU to one instruction at a time.
func (sch *Scheduler) CyclesTillNextInterrupt() int {
	if len(sch.queue) == 0 {
		return 0
	}
	return int((sch.queue[0].Deadline - sch.cycle) / clocks.CPUDivider)
}

// AdvanceBy moves the master clock forward by the number of CPU cycles. Any
// interrupts with a deadline that has been reached are raised in deadline
// order.
func (sch *Scheduler) AdvanceBy(cpuCycles int) {
	sch.cycle += uint64(cpuCycles) * clocks.CPUDivider

	for len(sch.queue) > 0 && sch.queue[0].Deadline <= sch.cycle {
		n := heap.Pop(&sch.queue).(Interrupt)

		switch n.Source {
		case NMI:
			sch.sink.RaiseNMI()
		case APU, External:
			sch.sink.RaiseIRQ()
		}

		if n.Recurring && n.Period > 0 {
			n.Deadline += n.Period
			heap.Push(&sch.queue, n)
		}
	}

	sch.frame = sch.cycle / clocks.CyclesPerFrame
}
