package availability

import "fmt"

// ===============================
// Error taxonomy
// ===============================
//
// "No slots available" is never an error: it is a successful empty
// result. These types cover the two genuine failure classes: the
// caller sent something malformed, or a read against the store failed.

// InvalidInputError reports a malformed date/time string, an
// out-of-range month or weekday, or a non-positive duration.
type InvalidInputError struct {
	Field string
	Value string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// DataAccessError wraps a failed repository read. The engine never
// retries; retry policy belongs to the store or the caller.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access failed (%s): %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}
