package refs

import (
	"fmt"
	"strings"
)

// ReferenceSetError reports a reference list that cannot determine one
// offset per element
type ReferenceSetError struct {
	References int
	Elements   []string
	Msg        string
}

func (e *ReferenceSetError) Error() string {
	if e.Msg != "" {
		return "reference set: " + e.Msg
	}
	kind := "under-determined"
	if e.References > len(e.Elements) {
		kind = "over-determined"
	}
	return fmt.Sprintf("reference set: %d references for %d elements (%s) is %s",
		e.References, len(e.Elements), strings.Join(e.Elements, " "), kind)
}

// SingularSystemError reports linearly dependent reference compositions
type SingularSystemError struct {
	Elements []string
	Err      error
}

func (e *SingularSystemError) Error() string {
	return fmt.Sprintf("reference set: singular composition matrix over %s: %v",
		strings.Join(e.Elements, " "), e.Err)
}

func (e *SingularSystemError) Unwrap() error {
	return e.Err
}

// MissingElementError reports an element with no reference offset
type MissingElementError struct {
	Element string
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("no reference offset for element %s", e.Element)
}
