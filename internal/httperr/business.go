package httperr

import "errors"

// BusinessError is a scheduling-rule violation identified by its code
// (too_soon, time_conflict, invalid_state, ...). Handlers match on the
// code to choose the HTTP status and message.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// IsBusiness reports whether err carries the given business code,
// unwrapping as needed.
func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
