package domain

// EditCursor tracks which task, if any, is being edited. It holds the id
// only, never a copy of the task. The zero value is idle.
type EditCursor struct {
	id TaskID
}

// Start moves the cursor to id. Starting while already editing replaces the
// previous target.
func (c *EditCursor) Start(id TaskID) {
	c.id = id
}

// Clear returns the cursor to idle.
func (c *EditCursor) Clear() {
	c.id = ""
}

// Current returns the edited id and whether an edit is active.
func (c EditCursor) Current() (TaskID, bool) {
	return c.id, !c.id.IsZero()
}

// IsEditing reports whether the cursor points at id.
func (c EditCursor) IsEditing(id TaskID) bool {
	return !c.id.IsZero() && c.id == id
}
