package table

// Ticket identifies a value added to an Allocator. Its slot is known
// once the allocator has finished.
type Ticket int

type entry[T any] struct {
	prev int
	v    T
}

// Allocator assigns slots for one capture cycle.
//
// Values that held a slot in the previous cycle are added with that slot
// and keep it. New values (prev < 0) take the lowest slot nobody claimed,
// and only then extend the table. Slots are vacant by occupancy: a slot
// holding a zero value is still taken.
type Allocator[T any] struct {
	entries []entry[T]
	slots   []int
	out     []T
	done    bool
}

// Add queues v. prev is the slot v's path held in the previous cycle,
// or -1 for a new path.
func (a *Allocator[T]) Add(prev int, v T) Ticket {
	if a.done {
		panic("table: Add after Finish")
	}
	a.entries = append(a.entries, entry[T]{prev: prev, v: v})
	return Ticket(len(a.entries) - 1)
}

// Len returns the number of values added.
func (a *Allocator[T]) Len() int {
	return len(a.entries)
}

// Finish assigns slots and returns the resulting values. Slots that are
// not claimed hold the zero value. Finish may be called more than once.
func (a *Allocator[T]) Finish() []T {
	if a.done {
		return a.out
	}
	a.done = true
	a.slots = make([]int, len(a.entries))
	var taken []bool
	var fresh []int

	for i, e := range a.entries {
		if e.prev < 0 {
			fresh = append(fresh, i)
			continue
		}
		if e.prev >= len(taken) {
			taken = append(taken, make([]bool, e.prev+1-len(taken))...)
			a.out = append(a.out, make([]T, e.prev+1-len(a.out))...)
		}
		if taken[e.prev] {
			// two paths claimed the same slot; the later one is new
			fresh = append(fresh, i)
			continue
		}
		taken[e.prev] = true
		a.out[e.prev] = e.v
		a.slots[i] = e.prev
	}

	next := 0
	for _, i := range fresh {
		for next < len(taken) && taken[next] {
			next++
		}
		if next == len(taken) {
			taken = append(taken, true)
			a.out = append(a.out, a.entries[i].v)
		} else {
			taken[next] = true
			a.out[next] = a.entries[i].v
		}
		a.slots[i] = next
	}
	return a.out
}

// Slot returns the slot assigned to t. It finishes a if needed.
func (a *Allocator[T]) Slot(t Ticket) int {
	a.Finish()
	return a.slots[t]
}
