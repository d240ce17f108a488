package pipeline

import "fmt"

// CurationError is returned when a curation run aborts. No partial report
// accompanies it.
type CurationError struct {
	Step string
	Err  error
}

func (e *CurationError) Error() string {
	return fmt.Sprintf("curation failed at %s: %v", e.Step, e.Err)
}

func (e *CurationError) Unwrap() error {
	return e.Err
}
