package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmployeeNameExists   = errors.New("an employee with this name already exists")
	ErrInvalidPIN           = errors.New("pin must be exactly 4 digits")
	ErrInvalidPayBasis      = errors.New("pay basis must be monthly or hourly")
	ErrFutureDateNotAllowed = errors.New("date cannot be in the future")
)
