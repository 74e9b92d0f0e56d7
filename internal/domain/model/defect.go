package model

import "fmt"

// Defect is a single static-analysis finding in Code Climate JSON format.
// Only the fields used to build a comment are required; the rest are kept for
// logging.
type Defect struct {
	Type        string   `json:"type,omitempty"`
	Fingerprint string   `json:"fingerprint"`
	CheckName   string   `json:"check_name"`
	Description string   `json:"description"`
	Categories  []string `json:"categories,omitempty"`
	Severity    string   `json:"severity,omitempty"`
	EngineName  string   `json:"engine_name,omitempty"`
	Location    Location `json:"location"`
}

// Location points a defect at a file and line range.
type Location struct {
	Path      string    `json:"path"`
	Positions Positions `json:"positions"`
}

// Positions holds the begin/end of a defect. End is optional.
type Positions struct {
	Begin Position  `json:"begin"`
	End   *Position `json:"end,omitempty"`
}

// Position is a 1-based line reference.
type Position struct {
	Line int `json:"line"`
}

// Line returns the line the defect starts on.
func (d Defect) Line() int {
	return d.Location.Positions.Begin.Line
}

// Validate checks the fields a comment is built from.
func (d Defect) Validate() error {
	switch {
	case d.Fingerprint == "":
		return fmt.Errorf("%w: defect missing fingerprint", ErrInvalidReport)
	case d.CheckName == "":
		return fmt.Errorf("%w: defect %s missing check_name", ErrInvalidReport, d.Fingerprint)
	case d.Location.Path == "":
		return fmt.Errorf("%w: defect %s missing location.path", ErrInvalidReport, d.Fingerprint)
	case d.Line() < 1:
		return fmt.Errorf("%w: defect %s has invalid begin line %d", ErrInvalidReport, d.Fingerprint, d.Line())
	}
	return nil
}
