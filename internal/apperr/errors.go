package apperr

import "errors"

// Gate rejections: expected, user-actionable outcomes of submitting a courier
// message. They are surfaced verbatim to the submitting courier and are never
// retried automatically or logged as system errors.
var (
	// ErrOrderNotFound is returned when the referenced order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrCourierAccountMissing is returned when the courier profile record
	// does not exist.
	ErrCourierAccountMissing = errors.New("courier account missing")

	// ErrCourierSuspended is returned when the courier account is suspended.
	ErrCourierSuspended = errors.New("courier suspended")

	// ErrVerificationRequired is returned when an unverified courier offers
	// on an order restricted to verified offerers.
	ErrVerificationRequired = errors.New("verification required")

	// ErrOfferCapReached is returned when the order already collected the
	// maximum number of distinct offers.
	ErrOfferCapReached = errors.New("offer cap reached")
)

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnavailable indicates that the underlying store or push service did not
// answer within the bounded timeout.
var ErrUnavailable = errors.New("unavailable")

// IsRejection reports whether err is one of the gate rejections.
func IsRejection(err error) bool {
	for _, target := range []error{
		ErrOrderNotFound,
		ErrCourierAccountMissing,
		ErrCourierSuspended,
		ErrVerificationRequired,
		ErrOfferCapReached,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
