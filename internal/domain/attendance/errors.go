package attendance

import "errors"

// Attendance domain errors
var (
	// Punch errors
	ErrAlreadyPunchedIn  = errors.New("you are already punched in")
	ErrAlreadyPunchedOut = errors.New("you are already punched out")
	ErrNotPunchedIn      = errors.New("you have not punched in yet")
	ErrDuplicatePunch    = errors.New("a punch record already exists for this day")

	// Review errors
	ErrRequestNotFound = errors.New("request not found or already processed")

	// Report errors
	ErrInvalidDateRange = errors.New("invalid date range provided")
)
