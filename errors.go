package ofximport

import "fmt"

// MissingFieldError is returned when a transaction lacks a mandatory field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("error - missing mandatory field %s", e.Field)
}

// MalformedAmountError is returned when an amount is present but is not a decimal number.
type MalformedAmountError struct {
	Value string
	Err   error
}

func (e *MalformedAmountError) Error() string {
	return fmt.Sprintf("error - amount %q can not be parsed", e.Value)
}

func (e *MalformedAmountError) Unwrap() error {
	return e.Err
}

// MalformedTimestampError is returned when a timestamp does not follow the OFX date time format.
type MalformedTimestampError struct {
	Value string
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("error - date string %q can not be parsed", e.Value)
}
