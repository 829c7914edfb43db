package mint

import "errors"

var (
	ErrNotConnected        = errors.New("wallet not connected")
	ErrSubmissionInFlight  = errors.New("a submission is already in flight")
	ErrSubmission          = errors.New("submission failed")
	ErrConfirmationTimeout = errors.New("confirmation timed out")
	ErrNoObjectCreated     = errors.New("no object created")
	ErrHistoryFetch        = errors.New("history fetch failed")
)

// Failure is a ledger failure with a stable code and a message fit for the UI.
type Failure struct {
	Code    string
	Message string
	Kind    error
	Cause   error
}

func (e *Failure) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes both the failure kind and the underlying cause to errors.Is.
func (e *Failure) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Cause != nil {
		out = append(out, e.Cause)
	}
	return out
}

func submissionFailure(cause error) error {
	return &Failure{Code: "SUBMISSION_FAILED", Message: "Minting failed. Your score is kept, try again.", Kind: ErrSubmission, Cause: cause}
}

func confirmationTimeout(digest string, cause error) error {
	return &Failure{Code: "CONFIRMATION_TIMEOUT", Message: "Transaction " + digest + " sent but timed out waiting for confirmation.", Kind: ErrConfirmationTimeout, Cause: cause}
}

func noObjectCreated(digest string) error {
	return &Failure{Code: "NO_OBJECT_CREATED", Message: "Transaction " + digest + " succeeded but created no score object.", Kind: ErrNoObjectCreated}
}

func historyFailure(cause error) error {
	return &Failure{Code: "HISTORY_FETCH_FAILED", Message: "Could not load minted scores.", Kind: ErrHistoryFetch, Cause: cause}
}

// UserMessage returns the UI message of a Failure, or err's text otherwise.
func UserMessage(err error) string {
	var f *Failure
	if errors.As(err, &f) {
		return f.Message
	}
	return err.Error()
}
