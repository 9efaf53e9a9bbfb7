package strata

import (
	"encoding/json"
	"fmt"
	"os"
)

// Matrix is the canonical serialization format for raw stratigraphic data:
// the unit and relation lists a layout computation consumes. It is the shape
// produced by field-note ingestion tools and accepted by the layout API.
type Matrix struct {
	Units     []Unit     `json:"units" bson:"units"`
	Relations []Relation `json:"relations" bson:"relations"`
}

// UnmarshalMatrix deserializes JSON bytes into a Matrix.
func UnmarshalMatrix(data []byte) (Matrix, error) {
	var m Matrix
	if err := json.Unmarshal(data, &m); err != nil {
		return Matrix{}, fmt.Errorf("unmarshal matrix: %w", err)
	}
	if len(m.Units) == 0 {
		return Matrix{}, fmt.Errorf("matrix must contain at least one unit")
	}
	return m, nil
}

// MarshalMatrix serializes a Matrix to pretty-printed JSON bytes.
func MarshalMatrix(m Matrix) ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// ReadMatrixFile reads a Matrix from a JSON file.
func ReadMatrixFile(path string) (Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Matrix{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalMatrix(data)
}

// WriteMatrixFile writes a Matrix to a JSON file.
func WriteMatrixFile(m Matrix, path string) error {
	data, err := MarshalMatrix(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
