package domain

import (
	"strconv"
	"strings"
)

// TaskID identifies a task. Ids te generates are decimal integers; ids read
// from storage may be any non-empty string. The zero value is no id.
type TaskID string

// NumericID returns the TaskID for an integer id.
func NumericID(n int64) TaskID {
	return TaskID(strconv.FormatInt(n, 10))
}

// ParseTaskID reads an id typed by the user. Surrounding whitespace is
// ignored; anything else non-empty is accepted as is.
func ParseTaskID(s string) (TaskID, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if n, ok := TaskID(s).Int64(); ok {
		return NumericID(n), true
	}
	return TaskID(s), true
}

// Int64 returns the integer value of a numeric id. Only the canonical
// decimal form counts, so "007" and "+7" stay strings.
func (id TaskID) Int64() (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil || strconv.FormatInt(n, 10) != string(id) {
		return 0, false
	}
	return n, true
}

func (id TaskID) IsZero() bool {
	return id == ""
}

func (id TaskID) String() string {
	return string(id)
}
