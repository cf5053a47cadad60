package errs

// Sentinel errors shared by the command and query layers.
// Ineligibility is not an error; see eligibility.Verdict.
var (
	// Ledger errors
	ErrReservationNotFound   = New("reservation not found")
	ErrConflictingTransition = New("conflicting ledger transition")
	ErrNotStale              = New("reservation has not outlived its ttl")
	ErrCapInvariant          = New("confirmed usage would exceed the global cap")
	ErrIdentityAttributed    = New("identity already holds a referral")

	// Code errors
	ErrCodeNotFound = New("redeemable code not found")

	// Input errors
	ErrInvalidInput = New("invalid input")

	// Infrastructure errors
	ErrStorageUnavailable      = New("storage unavailable")
	ErrDatabaseOperationFailed = New("database operation failed")
)
