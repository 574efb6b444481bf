package appointments

import "errors"

var (
	// ErrMissingID is returned when an appointment has no identifier
	ErrMissingID = errors.New("appointment id is required")

	// ErrMissingPatientName is returned when the patient name is empty
	ErrMissingPatientName = errors.New("patient name is required")

	// ErrMissingSchedule is returned when date or time is empty
	ErrMissingSchedule = errors.New("date and time are required")

	// ErrInvalidStatus is returned for an unknown appointment status
	ErrInvalidStatus = errors.New("invalid appointment status")
)
