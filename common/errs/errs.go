package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// NotFound is returned when a requested item is not found.
	NotFound = ErrorKind("Not Found")

	// InvalidArgument is returned when an argument is out of its domain.
	InvalidArgument = ErrorKind("Invalid Argument")

	// Unsupported is returned when a feature or network is not supported.
	Unsupported = ErrorKind("Unsupported")

	// InvalidEpoch is returned when an externally supplied epoch index cannot be represented.
	InvalidEpoch = ErrorKind("Invalid Epoch")

	// InvalidSchedule is returned when an epoch table breaks its ordering rules.
	InvalidSchedule = ErrorKind("Invalid Schedule")

	// InconsistentSchedule is returned when the ordinal column of a table
	// does not match the supply produced by its heights and subsidies.
	InconsistentSchedule = ErrorKind("Inconsistent Schedule")

	// NotIssued is returned for ordinals that the schedule never creates.
	NotIssued = ErrorKind("Not Issued")

	OverflowUint64  = ErrorKind("Overflow Uint64")
	OverflowUint128 = ErrorKind("Overflow Uint128")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}
