package sqlite

import (
	"fmt"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// ScanBlob scans a single blob from a database row
func ScanBlob(scanner Scanner) (*Blob, error) {
	blob := &Blob{}
	var updatedAt string

	if err := scanner.Scan(&blob.Key, &blob.Value, &updatedAt); err != nil {
		return nil, err
	}

	parsed, err := ParseTimeFromDB(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid updated_at for %q: %w", blob.Key, err)
	}
	blob.UpdatedAt = parsed

	return blob, nil
}
