package settings

import "errors"

var (
	// ErrNotDefined is returned when a setting has no value in the table or the environment.
	ErrNotDefined = errors.New("setting not defined")
	// ErrTypeMismatch is returned when a setting's value kind does not fit the requested accessor.
	ErrTypeMismatch = errors.New("setting has unexpected type")
	// ErrBoolParse is returned when a text value is not a recognised boolean literal.
	ErrBoolParse = errors.New("cannot convert string to boolean")
)
