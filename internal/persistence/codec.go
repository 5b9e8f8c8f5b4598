package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"task-editor/internal/domain"
)

// Codec turns a task collection into its stored JSON form and back.
type Codec struct {
	schema *jsonschema.Schema
	mapper *TaskMapper
}

// NewCodec compiles the collection schema and returns a ready codec.
func NewCodec() (*Codec, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	return &Codec{schema: schema, mapper: NewTaskMapper()}, nil
}

// Decode parses a stored blob. Any error means the blob is not a valid task
// collection.
func (c *Codec) Decode(value string) ([]domain.Task, error) {
	var doc interface{}
	if err := decodeNumbers([]byte(value), &doc); err != nil {
		return nil, fmt.Errorf("malformed JSON: %w", err)
	}
	if err := c.schema.Validate(doc); err != nil {
		return nil, schemaErrors(err)
	}

	var records []Record
	if err := decodeNumbers([]byte(value), &records); err != nil {
		return nil, err
	}

	tasks, err := c.mapper.FromRecords(records)
	if err != nil {
		return nil, err
	}

	// 1 and "1" are the same id.
	seen := make(map[domain.TaskID]struct{}, len(tasks))
	for _, task := range tasks {
		if !task.IsValid() {
			return nil, fmt.Errorf("task %q: blank id, name or description", task.ID)
		}
		if _, dup := seen[task.ID]; dup {
			return nil, fmt.Errorf("duplicate task id %s", task.ID)
		}
		seen[task.ID] = struct{}{}
	}

	return tasks, nil
}

// Encode serializes the full collection. Insertion order is kept.
func (c *Codec) Encode(tasks []domain.Task) (string, error) {
	data, err := json.Marshal(c.mapper.ToRecords(tasks))
	if err != nil {
		return "", fmt.Errorf("encode tasks: %w", err)
	}
	return string(data), nil
}

// decodeNumbers unmarshals a single JSON document keeping numbers exact.
func decodeNumbers(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected data after JSON value")
	}
	return nil
}
