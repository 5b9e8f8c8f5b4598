package domain

// ListFilter narrows a task listing. The zero value accepts every task.
type ListFilter struct {
	Completed *bool
	Text      string
}

// Accepts reports whether task passes the filter.
func (f ListFilter) Accepts(task Task) bool {
	if f.Completed != nil && task.Completed != *f.Completed {
		return false
	}
	return task.Matches(f.Text)
}

// Stats summarises a collection.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Active    int `json:"active"`
}

// StatsOf computes Stats for c.
func StatsOf(c Collection) Stats {
	done := c.CompletedCount()
	return Stats{Total: c.Len(), Completed: done, Active: c.Len() - done}
}
