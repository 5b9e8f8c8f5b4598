package domain

// Collection is the ordered task list. Display order is insertion order.
//
// Every method leaves the receiver untouched and returns a fresh slice, so a
// caller holding the previous version never observes a partial change.
type Collection []Task

// Len returns the number of tasks.
func (c Collection) Len() int {
	return len(c)
}

// IndexOf returns the position of the task with id, or -1.
func (c Collection) IndexOf(id TaskID) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the task with id.
func (c Collection) Find(id TaskID) (Task, bool) {
	if i := c.IndexOf(id); i >= 0 {
		return c[i], true
	}
	return Task{}, false
}

// Contains reports whether a task with id exists.
func (c Collection) Contains(id TaskID) bool {
	return c.IndexOf(id) >= 0
}

// MaxNumericID returns the largest integer id in the collection, or 0 when
// there is none. String ids are skipped.
func (c Collection) MaxNumericID() int64 {
	var max int64
	for i := range c {
		if n, ok := c[i].ID.Int64(); ok && n > max {
			max = n
		}
	}
	return max
}

// Clone returns an independent copy.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// Append returns a new collection with task added at the end.
func (c Collection) Append(task Task) Collection {
	out := make(Collection, len(c), len(c)+1)
	copy(out, c)
	return append(out, task)
}

// Replace returns a new collection with the task sharing task.ID swapped in
// at the same position. The second result is false when no such task exists.
func (c Collection) Replace(task Task) (Collection, bool) {
	i := c.IndexOf(task.ID)
	if i < 0 {
		return c, false
	}
	out := c.Clone()
	out[i] = task
	return out, true
}

// Remove returns a new collection without the task with id. The second
// result is false when no such task exists; the receiver is then returned.
func (c Collection) Remove(id TaskID) (Collection, bool) {
	i := c.IndexOf(id)
	if i < 0 {
		return c, false
	}
	out := make(Collection, 0, len(c)-1)
	out = append(out, c[:i]...)
	return append(out, c[i+1:]...), true
}

// Filter returns the tasks accepted by f, in order.
func (c Collection) Filter(f ListFilter) Collection {
	out := make(Collection, 0, len(c))
	for _, task := range c {
		if f.Accepts(task) {
			out = append(out, task)
		}
	}
	return out
}

// CompletedCount returns how many tasks are completed.
func (c Collection) CompletedCount() int {
	n := 0
	for i := range c {
		if c[i].Completed {
			n++
		}
	}
	return n
}
