package pms

import "errors"

// Error is the taxonomy shared by all backends. Code discriminates the
// failure class, Message is the operator-facing detail, and Pretty is a
// short non-technical string safe to show in the report line itself.
type Error struct {
	Code    string
	Message string
	Pretty  string
}

func (e *Error) Error() string { return e.Message }

// Is matches on Code so callers can compare against the sentinels below
// with errors.Is regardless of the wrapped detail.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

var (
	ErrInvalidPeriod        = &Error{Code: "invalid_period"}
	ErrPeriodOrder          = &Error{Code: "period_order"}
	ErrFutureData           = &Error{Code: "future_data"}
	ErrDataNotAvailable     = &Error{Code: "data_not_available"}
	ErrDataIncomplete       = &Error{Code: "data_incomplete"}
	ErrServiceNotFound      = &Error{Code: "service_not_found"}
	ErrUnsupportedPeriod    = &Error{Code: "unsupported_period"}
	ErrUnsupportedOperation = &Error{Code: "unsupported_operation"}
	ErrConfiguration        = &Error{Code: "configuration"}
)

func InvalidPeriodError(msg string) error {
	return &Error{Code: ErrInvalidPeriod.Code, Message: msg, Pretty: "Sorry, I could not understand that period."}
}

func PeriodOrderError(msg string) error {
	return &Error{Code: ErrPeriodOrder.Code, Message: msg, Pretty: "Start date must not exceed end date."}
}

func FutureDataError(msg string) error {
	return &Error{Code: ErrFutureData.Code, Message: msg, Pretty: "Future data not available."}
}

func DataNotAvailableError(msg, pretty string) error {
	return &Error{Code: ErrDataNotAvailable.Code, Message: msg, Pretty: pretty}
}

func DataIncompleteError(msg, pretty string) error {
	return &Error{Code: ErrDataIncomplete.Code, Message: msg, Pretty: pretty}
}

func ServiceNotFoundError(name string) error {
	return &Error{Code: ErrServiceNotFound.Code, Message: "service not found: " + name, Pretty: "Service not found."}
}

func UnsupportedPeriodError(msg, pretty string) error {
	return &Error{Code: ErrUnsupportedPeriod.Code, Message: msg, Pretty: pretty}
}

func UnsupportedOperationError(op string) error {
	return &Error{
		Code:    ErrUnsupportedOperation.Code,
		Message: "unsupported operation: " + op,
		Pretty:  "Sorry, this function hasn't been supported yet.",
	}
}

func ConfigurationError(msg string) error {
	return &Error{Code: ErrConfiguration.Code, Message: msg, Pretty: "The reporting backend is not configured."}
}

// PrettyMessage extracts the user-facing message from any error raised
// while computing a report, falling back to a generic line.
func PrettyMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Pretty != "" {
		return e.Pretty
	}
	return "Data currently unavailable."
}
