package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"

	"task-editor/internal/domain"
)

// Record is the stored shape of one task.
type Record struct {
	ID          RecordID `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
	CreatedAt   string   `json:"createdAt,omitempty"`
}

// RecordID reads an id written either as a JSON integer or as a string.
// Integers are kept in canonical decimal form and written back as integers;
// any other string is opaque and written back unchanged.
type RecordID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *RecordID) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		if s == "" {
			return fmt.Errorf("id is empty")
		}
		*id = RecordID(s)
		return nil
	}

	n, err := parseInteger(string(raw))
	if err != nil {
		return fmt.Errorf("id %s is not an integer", data)
	}
	*id = RecordID(domain.NumericID(n))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (id RecordID) MarshalJSON() ([]byte, error) {
	if n, ok := domain.TaskID(id).Int64(); ok {
		return strconv.AppendInt(nil, n, 10), nil
	}
	return json.Marshal(string(id))
}

// parseInteger accepts any JSON number with an integral value that fits in
// an int64, so 3, 3.0 and 3e0 are the same id.
func parseInteger(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, _, err := big.ParseFloat(s, 10, 256, big.ToNearestEven)
	if err != nil {
		return 0, err
	}
	if !f.IsInt() {
		return 0, fmt.Errorf("%s has a fraction", s)
	}
	n, acc := f.Int64()
	if acc != big.Exact {
		return 0, fmt.Errorf("%s is out of range", s)
	}
	return n, nil
}
