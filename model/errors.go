package model

import "fmt"

// MissingModelDataError reports the first field of an API payload that
// was absent or did not have the expected shape. The message text is
// part of the SDK's contract; callers match on it.
type MissingModelDataError struct {
	// Key is the offending field name as it appears on the wire.
	Key string
	// Expected describes the shape the field should have had, e.g.
	// "a string" or "date format".
	Expected string
}

func (e *MissingModelDataError) Error() string {
	return fmt.Sprintf("Expected key '%s' to contain %s", e.Key, e.Expected)
}
