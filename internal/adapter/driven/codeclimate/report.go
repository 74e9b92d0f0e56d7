// Package codeclimate reads static-analysis reports in Code Climate JSON format.
package codeclimate

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ericfisherdev/ghbots/internal/domain/model"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// Load decodes a JSON array of defects and validates each one. Anything
// but whitespace after the array is rejected.
func Load(r io.Reader) ([]model.Defect, error) {
	var defects []model.Defect
	dec := json.NewDecoder(r)
	if err := dec.Decode(&defects); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty input", model.ErrInvalidReport)
		}
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidReport, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("%w: unexpected data after report", model.ErrInvalidReport)
		}
		return nil, fmt.Errorf("%w: unexpected data after report: %v", model.ErrInvalidReport, err)
	}

	for i, d := range defects {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("defect %d: %w", i, err)
		}
	}

	return defects, nil
}

// LoadFile reads a report from path, or from stdin when path is "-".
func LoadFile(path string, stdin io.Reader) ([]model.Defect, error) {
	if path == Stdin || path == "" {
		return Load(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening report: %w", err)
	}
	defer f.Close()

	return Load(f)
}
