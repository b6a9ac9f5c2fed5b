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

package scheduler

import "fmt"

// Source identifies the originator of an interrupt.
type Source int

// List of interrupt sources.
const (
	NMI Source = iota
	APU
	External
)

func (s Source) String() string {
	switch s {
	case NMI:
		return "NMI"
	case APU:
		return "APU"
	case External:
		return "External"
	}
	return "unknown source"
}

// Interrupt is a pending event. The Deadline is in master clock cycles.
type Interrupt struct {
	Deadline  uint64
	Source    Source
	Recurring bool

	// for recurring interrupts the Deadline is advanced by the Period each
	// time the interrupt is raised
	Period uint64
}

func (i Interrupt) String() string {
	if i.Recurring {
		return fmt.Sprintf("%s @ %d (every %d)", i.Source, i.Deadline, i.Period)
	}
	return fmt.Sprintf("%s @ %d", i.Source, i.Deadline)
}

// queue is a min-heap ordered by deadline. it implements heap.Interface
type queue []Interrupt

func (q queue) Len() int {
	return len(q)
}

func (q queue) Less(i, j int) bool {
	return q[i].Deadline < q[j].Deadline
}

func (q queue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *queue) Push(x any) {
	*q = append(*q, x.(Interrupt))
}

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}
