package domain

import "errors"

var (
	// ErrInvalidDate is returned for dates not in YYYY-MM-DD format
	ErrInvalidDate = errors.New("domain: invalid date")

	// ErrInvalidTimeSlot is returned when from/till are malformed or from >= till
	ErrInvalidTimeSlot = errors.New("domain: invalid time slot")
)
