package thermdat

import "fmt"

// FieldError reports a species that cannot be written
type FieldError struct {
	Species string
	Field   string
	Msg     string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("thermdat: species %q: %s: %s", e.Species, e.Field, e.Msg)
}

// ParseError reports malformed thermdat input
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("thermdat: line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("thermdat: line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
