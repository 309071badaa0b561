package membership

import "errors"

// SubmitFailedMessage is shown when the application could not be stored.
const SubmitFailedMessage = "Failed to process payment. Please try again."

// CaptchaFailedMessage is shown when the captcha response was rejected.
const CaptchaFailedMessage = "Captcha validation failed. Please try again."

var (
	ErrUnknownPlan        = errors.New("unknown membership plan")
	ErrInvalidTransition  = errors.New("invalid wizard transition")
	ErrSubmitFailed       = errors.New("storing payment application failed")
	ErrNotFound           = errors.New("payment application not found")
	ErrNotPending         = errors.New("payment application is no longer pending")
	ErrStatusConflict     = errors.New("payment application was decided by someone else")
	ErrUnknownStatus      = errors.New("unknown payment status")
	ErrVerificationFailed = errors.New("captcha verification failed")
)

// StepError is a guard failure that keeps the wizard on Step and carries
// the single message shown to the visitor.
type StepError struct {
	Step    Step
	Message string
	Err     error
}

func (e *StepError) Error() string {
	return e.Message
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// UserMessage returns the message for a wizard error, or a generic one.
func UserMessage(err error) string {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Message
	}
	if errors.Is(err, ErrVerificationFailed) {
		return CaptchaFailedMessage
	}
	return SubmitFailedMessage
}
