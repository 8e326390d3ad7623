package interchange

import "fmt"

// ParseError reports a structural failure while decoding an interchange
// file: a missing required table or element, or a record that cannot be
// split into its declared fields. Codec callers treat it as fatal for
// the whole ingestion; there is no partial parse result.
type ParseError struct {
	Format  string // "tabular" or "tree-xml"
	Section string // table or element the failure occurred in
	Msg     string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("%s parse: %s: %s", e.Format, e.Section, e.Msg)
	}
	return fmt.Sprintf("%s parse: %s", e.Format, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError builds a ParseError with an optional wrapped cause.
func NewParseError(format, section, msg string, err error) *ParseError {
	return &ParseError{Format: format, Section: section, Msg: msg, Err: err}
}
