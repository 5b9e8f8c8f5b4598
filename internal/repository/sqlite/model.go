package sqlite

import "time"

// Blob is one stored value together with the time it was last written.
type Blob struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
